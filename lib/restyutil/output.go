package restyutil

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

type Output interface {
	Write(id string, contents string)
}

// DirOutput writes every exchange to its own file in a directory.
type DirOutput struct {
	directory string
}

// NewDirOutput clears dir of the dumps of a previous run.
func NewDirOutput(dir string) (DirOutput, error) {
	err := os.RemoveAll(dir)
	if err != nil {
		return DirOutput{}, fmt.Errorf("clear dump dir: %w", err)
	}
	err = os.MkdirAll(dir, 0777)
	if err != nil {
		return DirOutput{}, fmt.Errorf("create dump dir: %w", err)
	}
	return DirOutput{directory: dir}, nil
}

func (o DirOutput) Dir() string {
	return o.directory
}

func (o DirOutput) Write(id string, contents string) {
	err := os.WriteFile(filepath.Join(o.directory, id), []byte(contents), 0600)
	if err != nil {
		slog.Warn("failed to write http exchange dump", "id", id, "err", err)
	}
}
