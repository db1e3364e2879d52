package svgmap

import (
	"io"
	"os"

	"github.com/aalvaropc/distmap/internal/domain"
	"github.com/aalvaropc/distmap/internal/ports"
)

// StdoutPath makes Render write the document to its stdout writer instead of a file.
const StdoutPath = "-"

// Renderer paints a fresh copy of a template for every call.
type Renderer struct {
	templatePath string
	stdout       io.Writer
}

type Option func(*Renderer)

func WithStdout(w io.Writer) Option {
	return func(r *Renderer) { r.stdout = w }
}

func NewRenderer(templatePath string, opts ...Option) *Renderer {
	r := &Renderer{
		templatePath: templatePath,
		stdout:       os.Stdout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var _ ports.MapRenderer = (*Renderer)(nil)

func (r *Renderer) Render(countries domain.CountrySet, color string, outPath string) ([]string, error) {
	m, err := Load(r.templatePath)
	if err != nil {
		return nil, err
	}
	painted, err := m.Paint(countries, color)
	if err != nil {
		return nil, err
	}

	if outPath == StdoutPath {
		if _, err := m.WriteTo(r.stdout); err != nil {
			return nil, &domain.OpError{
				Op:   "svgmap.write",
				Kind: domain.KindExecution,
				Path: outPath,
				Err:  err,
			}
		}
		return painted, nil
	}

	if err := m.WriteFile(outPath); err != nil {
		return nil, err
	}
	return painted, nil
}
