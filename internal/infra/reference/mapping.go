package reference

import (
	"encoding/json"
	"errors"
	"os"

	"github.com/aalvaropc/distmap/internal/domain"
	"github.com/aalvaropc/distmap/internal/textnorm"
)

// Substitutions maps a lower-cased alternate location name (a region, island,
// historical name...) to the lower-cased country name used in the CodeTable.
type Substitutions map[string]string

var errEmptyMapping = errors.New("the file containing the location to country mapping appears to be empty")

// LoadMapping reads a JSON object of string to string. Keys and values are
// lower-cased. An empty object is an error.
func LoadMapping(path string) (Substitutions, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "reference.load_mapping",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var raw map[string]string
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, &domain.OpError{
			Op:   "reference.load_mapping",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	out := make(Substitutions, len(raw))
	for k, v := range raw {
		out[textnorm.Lower(k)] = textnorm.Lower(v)
	}

	if len(out) == 0 {
		return nil, &domain.OpError{
			Op:   "reference.load_mapping",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  errEmptyMapping,
		}
	}
	return out, nil
}
