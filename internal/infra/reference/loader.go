package reference

import (
	"path/filepath"

	"github.com/aalvaropc/distmap/internal/ports"
)

// Loader reads the reference tables from a data directory. Every call hits
// the disk again; nothing is cached between calls.
type Loader struct {
	codesPath   string
	mappingPath string
}

type Option func(*Loader)

// WithCodesFile overrides the code table file name (relative to the data dir unless absolute).
func WithCodesFile(name string) Option {
	return func(l *Loader) { l.codesPath = name }
}

// WithMappingFile overrides the substitution file name (relative to the data dir unless absolute).
func WithMappingFile(name string) Option {
	return func(l *Loader) { l.mappingPath = name }
}

func NewLoader(dataDir string, opts ...Option) *Loader {
	l := &Loader{
		codesPath:   "codes.txt",
		mappingPath: "mapping_loc_country.json",
	}
	for _, opt := range opts {
		opt(l)
	}
	l.codesPath = join(dataDir, l.codesPath)
	l.mappingPath = join(dataDir, l.mappingPath)
	return l
}

var _ ports.ReferenceLoader = (*Loader)(nil)

func (l *Loader) LoadCodes() (map[string]string, error) {
	return LoadCodes(l.codesPath)
}

func (l *Loader) LoadSubstitutions() (map[string]string, error) {
	return LoadMapping(l.mappingPath)
}

func join(dir, name string) string {
	if filepath.IsAbs(name) || dir == "" {
		return name
	}
	return filepath.Join(dir, name)
}
