package main

import (
	"context"
	"rdoc-scraper/cmd/rdoc-scraper/commands"
	"rdoc-scraper/lib/serviceutil"
)

func main() {
	ctx, cancel := serviceutil.SignalContext(context.Background())
	defer cancel()
	commands.ExecuteContext(ctx)
}
