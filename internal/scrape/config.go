package scrape

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"rdoc-scraper/internal/catalog"
	"rdoc-scraper/internal/components/telemetry"
	"rdoc-scraper/internal/scrapers/rubydoc"
	"rdoc-scraper/lib/configutil"
	"time"
)

// Config is read from rdoc.json5. Version is the first path segment of the
// output, Template optionally replaces the builtin class description template
// and every http exchange is dumped to HttpDumpDir when running verbose.
type Config struct {
	Version           string           `json:"version"`
	CoreUrl           string           `json:"core_url"`
	StdlibTocUrl      string           `json:"stdlib_toc_url"`
	OutputDir         string           `json:"output_dir"`
	Template          string           `json:"template"`
	UserAgent         string           `json:"user_agent"`
	TimeoutSeconds    int              `json:"timeout_seconds"`
	RequestsPerSecond float64          `json:"requests_per_second"`
	Catalog           catalog.Config   `json:"catalog"`
	Telemetry         telemetry.Config `json:"telemetry"`
	HttpDumpDir       string           `json:"http_dump_dir"`
}

var DefaultConfig = Config{
	Version:           "1.9.3",
	CoreUrl:           rubydoc.DefaultCoreUrl,
	StdlibTocUrl:      rubydoc.DefaultStdlibTocUrl,
	OutputDir:         "java-xml",
	UserAgent:         rubydoc.DefaultUserAgent,
	TimeoutSeconds:    30,
	RequestsPerSecond: 4,
}

func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// LoadConfig reads the config at path (and its .local override). A bare file
// name that is not in the working directory is searched for in its parents, a
// config that is found nowhere leaves every field at its default.
func LoadConfig(path string) (Config, error) {
	config, err := configutil.ReadConfig[Config](path)
	if errors.Is(err, os.ErrNotExist) && filepath.Base(path) == path {
		config, err = configutil.ReadRecursively[Config](path)
	}
	if errors.Is(err, os.ErrNotExist) {
		config = Config{}
	} else if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return configutil.WithDefaults(config, DefaultConfig)
}
