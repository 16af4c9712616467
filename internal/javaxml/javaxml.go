// Package javaxml renders scraped classes as java.beans.XMLDecoder documents,
// the format the editor's rdoc viewer loads its class descriptions from.
package javaxml

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"rdoc-scraper/internal/rdoc"
	"text/template"
)

//go:embed classdescription.xml.tmpl
var classDescriptionTemplate string

// Renderer renders a class with a template. Every field of the records is
// written as-is and expected to already be escaped (see rdoc.Normalize), except
// for the class namespace which the template passes through escape.
type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() (Renderer, error) {
	return parseRenderer("classdescription", classDescriptionTemplate)
}

// NewRendererFromFile uses the template at path instead of the builtin one.
func NewRendererFromFile(path string) (Renderer, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return Renderer{}, err
	}
	return parseRenderer(filepath.Base(path), string(contents))
}

// fields that are not escaped when scraped go through escape
var templateFuncs = template.FuncMap{
	"escape": rdoc.EscapeText,
}

func parseRenderer(name, contents string) (Renderer, error) {
	tmpl, err := template.New(name).
		Funcs(templateFuncs).
		Option("missingkey=error").
		Parse(contents)
	if err != nil {
		return Renderer{}, fmt.Errorf("failed to parse template: %w", err)
	}
	return Renderer{tmpl: tmpl}, nil
}

func (r Renderer) Render(w io.Writer, node rdoc.NodeData) error {
	err := r.tmpl.Execute(w, node)
	if err != nil {
		return fmt.Errorf("failed to execute template for %s: %w", node.Name, err)
	}
	return nil
}

// Writer writes every class to <dir>/<version>/<name>/<name>.xml.
type Writer struct {
	renderer Renderer
	dir      string
	version  string
}

func NewWriter(renderer Renderer, dir, version string) Writer {
	return Writer{renderer: renderer, dir: dir, version: version}
}

func (w Writer) Path(node rdoc.NodeData) string {
	return filepath.Join(w.dir, w.version, node.Name, node.Name+".xml")
}

// Write renders the class and writes it, replacing the file if it exists.
func (w Writer) Write(node rdoc.NodeData) (path string, err error) {
	path = w.Path(node)
	err = os.MkdirAll(filepath.Dir(path), 0777)
	if err != nil {
		return "", err
	}

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer func() {
		closeErr := f.Close()
		if err == nil {
			err = closeErr
		}
	}()

	buffered := bufio.NewWriter(f)
	err = w.renderer.Render(buffered, node)
	if err != nil {
		return "", err
	}
	err = buffered.Flush()
	if err != nil {
		return "", err
	}
	return path, nil
}

// WriteAll writes the classes in order and stops at the first failure.
func (w Writer) WriteAll(nodes []rdoc.NodeData) ([]string, error) {
	paths := make([]string, 0, len(nodes))
	for _, node := range nodes {
		path, err := w.Write(node)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
