// Package datadir locates the bundled map and reference files.
package datadir

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"

	"github.com/aalvaropc/distmap/internal/domain"
	"github.com/aalvaropc/distmap/internal/ports"
)

// DirName is the name of the bundled data directory.
const DirName = "data"

// Files names the bundled files, relative to the data directory.
type Files struct {
	Map     string
	Codes   string
	Mapping string
}

func (f Files) list() []string {
	return []string{f.Map, f.Codes, f.Mapping}
}

// Finder locates the data directory: next to the executable first, then by
// searching upward from the start directory for data/<map file>.
type Finder struct {
	Files      Files
	executable func() (string, error)
}

func NewFinder(files Files) *Finder {
	return &Finder{Files: files, executable: os.Executable}
}

var _ ports.DataLocator = (*Finder)(nil)

func (f *Finder) FindDataDir(startDir string) (string, error) {
	if exe, err := f.executable(); err == nil {
		if resolved, rerr := filepath.EvalSymlinks(exe); rerr == nil {
			exe = resolved
		}
		candidate := filepath.Join(filepath.Dir(exe), DirName)
		if isFile(filepath.Join(candidate, f.Files.Map)) {
			return candidate, nil
		}
	}

	if startDir == "" {
		return "", &domain.OpError{
			Op:   "datadir.find",
			Kind: domain.KindInvalidConfig,
			Err:  errors.New("startDir is empty"),
		}
	}

	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", &domain.OpError{
			Op:   "datadir.find",
			Kind: domain.KindExecution,
			Err:  err,
		}
	}

	cur := filepath.Clean(abs)
	for {
		candidate := filepath.Join(cur, DirName)
		if isFile(filepath.Join(candidate, f.Files.Map)) {
			return candidate, nil
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			return "", &domain.OpError{
				Op:   "datadir.find",
				Kind: domain.KindNotFound,
				Path: startDir,
				Err:  domain.ErrNotFound,
			}
		}
		cur = parent
	}
}

// Check verifies that every bundled file exists in dir. All missing files are
// reported together.
func Check(dir string, files Files) error {
	var merr *multierror.Error
	for _, name := range files.list() {
		p := name
		if !filepath.IsAbs(p) {
			p = filepath.Join(dir, name)
		}
		if !isFile(p) {
			merr = multierror.Append(merr, fmt.Errorf("could not find %s", p))
		}
	}
	if err := merr.ErrorOrNil(); err != nil {
		return &domain.OpError{
			Op:   "datadir.check",
			Kind: domain.KindNotFound,
			Path: dir,
			Err:  err,
		}
	}
	return nil
}

func isFile(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}
