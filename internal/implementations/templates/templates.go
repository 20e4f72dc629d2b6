package templates

import (
	"embed"
	"fmt"
	"io/fs"
	"registrar/internal/core/domain/mail"

	"github.com/flosch/pongo2/v6"
)

//go:embed emails
var emails embed.FS

// Pongo2 renders Django-syntax templates compiled once at construction.
type Pongo2 struct {
	templates map[string]*pongo2.Template
}

// New compiles every template from the embedded emails directory.
func New() (*Pongo2, error) {
	return NewFromFS(emails)
}

func NewFromFS(fsys fs.FS) (*Pongo2, error) {
	r := &Pongo2{templates: make(map[string]*pongo2.Template)}
	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		source, err := fs.ReadFile(fsys, path)
		if err != nil {
			return err
		}
		template, err := pongo2.FromBytes(source)
		if err != nil {
			return fmt.Errorf("could not compile template %s: %w", path, err)
		}
		r.templates[path] = template
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Pongo2) Exists(name string) bool {
	_, ok := r.templates[name]
	return ok
}

func (r *Pongo2) Render(name string, data map[string]interface{}) (string, error) {
	template, ok := r.templates[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", mail.ErrTemplateDoesNotExist, name)
	}
	return template.Execute(pongo2.Context(data))
}
