// Package svgmap paints countries on an SVG world map template.
//
// The template layout is fixed: the root element's second child element is
// the container of country elements, and every country element carries an id
// made of one or more ISO 3166 alpha-2 codes joined by "-".
package svgmap

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"

	"github.com/aalvaropc/distmap/internal/domain"
)

const containerIndex = 1

// Map is a parsed map template. Paint mutates it in place.
type Map struct {
	doc *etree.Document
}

// Load parses the SVG template at path.
func Load(path string) (*Map, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		kind := domain.KindInvalidConfig
		if errors.Is(err, os.ErrNotExist) {
			kind = domain.KindNotFound
		}
		return nil, &domain.OpError{
			Op:   "svgmap.load",
			Kind: kind,
			Path: path,
			Err:  err,
		}
	}
	return &Map{doc: doc}, nil
}

// Parse reads an SVG template from r.
func Parse(r io.Reader) (*Map, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, &domain.OpError{
			Op:   "svgmap.parse",
			Kind: domain.KindInvalidConfig,
			Err:  err,
		}
	}
	return &Map{doc: doc}, nil
}

// Countries returns the country elements of the template.
func (m *Map) Countries() ([]*etree.Element, error) {
	root := m.doc.Root()
	if root == nil {
		return nil, &domain.OpError{
			Op:   "svgmap.countries",
			Kind: domain.KindInvalidConfig,
			Err:  errors.New("document has no root element"),
		}
	}
	children := root.ChildElements()
	if len(children) <= containerIndex {
		return nil, &domain.OpError{
			Op:   "svgmap.countries",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("root <%s> has %d child elements, the country container is expected at position %d", root.Tag, len(children), containerIndex+1),
		}
	}
	return children[containerIndex].ChildElements(), nil
}

// Paint sets style="fill: <color>;" on every country element whose id has at
// least one component in countries. Any previous style is overwritten.
// It returns the ids of the painted elements in document order.
func (m *Map) Paint(countries domain.CountrySet, color string) ([]string, error) {
	elems, err := m.Countries()
	if err != nil {
		return nil, err
	}

	style := FillStyle(color)
	painted := []string{}
	for _, el := range elems {
		id := el.SelectAttrValue("id", "")
		if id == "" {
			continue
		}
		if matches(id, countries) {
			el.CreateAttr("style", style)
			painted = append(painted, id)
		}
	}
	return painted, nil
}

// FillStyle is the style declaration written on painted elements.
func FillStyle(color string) string {
	return fmt.Sprintf("fill: %s;", color)
}

func matches(id string, countries domain.CountrySet) bool {
	for _, part := range strings.Split(id, "-") {
		if countries.Has(part) {
			return true
		}
	}
	return false
}

// WriteTo serializes the document to w.
func (m *Map) WriteTo(w io.Writer) (int64, error) {
	return m.doc.WriteTo(w)
}

// WriteFile writes the document to path, replacing any existing file.
// The data goes to a temporary file in the same directory first and is then
// renamed over path.
func (m *Map) WriteFile(path string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return &domain.OpError{
			Op:   "svgmap.write",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}
	tmpName := tmp.Name()

	if _, err := m.doc.WriteTo(tmp); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return &domain.OpError{
			Op:   "svgmap.write",
			Kind: domain.KindExecution,
			Path: tmpName,
			Err:  err,
		}
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return &domain.OpError{
			Op:   "svgmap.write",
			Kind: domain.KindExecution,
			Path: tmpName,
			Err:  err,
		}
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return &domain.OpError{
			Op:   "svgmap.chmod",
			Kind: domain.KindExecution,
			Path: tmpName,
			Err:  err,
		}
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return &domain.OpError{
			Op:   "svgmap.rename",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}
	return nil
}
