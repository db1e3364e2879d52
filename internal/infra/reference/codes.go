package reference

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aalvaropc/distmap/internal/domain"
	"github.com/aalvaropc/distmap/internal/textnorm"
)

// CodeColumn is the header of the column holding ISO 3166 alpha-2 codes.
const CodeColumn = "iso3a2"

// CodeTable maps a lower-cased country name to its alpha-2 code.
type CodeTable map[string]string

// LoadCodes reads a tab-separated country table. The first column is the
// country name; the column named iso3a2 holds the code. Empty cells are kept
// as empty strings. If a name appears twice, the first row wins.
func LoadCodes(path string) (CodeTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "reference.load_codes",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}
	defer f.Close()

	table, err := parseCodes(f)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "reference.load_codes",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}
	return table, nil
}

func parseCodes(r io.Reader) (CodeTable, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("missing header row")
		}
		return nil, err
	}

	codeIdx := -1
	for i, h := range header {
		if h == CodeColumn {
			codeIdx = i
			break
		}
	}
	if codeIdx <= 0 {
		return nil, fmt.Errorf("header has no %q column after the name column", CodeColumn)
	}

	table := CodeTable{}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		key := textnorm.Lower(rec[0])
		if _, dup := table[key]; dup {
			continue
		}
		table[key] = rec[codeIdx]
	}
	return table, nil
}
