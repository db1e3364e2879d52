package catalogue

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/PaesslerAG/jsonpath"

	"github.com/aalvaropc/distmap/internal/domain"
)

// JSONPath expressions for the fields distmap reads from a webservice response.
const (
	pathErrorMessage = "$.error_message"
	pathResults      = "$.results"
	pathName         = "$.name"
	pathDistribution = "$.distribution"
)

var (
	errNoResults      = errors.New("no results section found in response")
	errNoDistribution = errors.New("no distribution section found in result")
)

// parsed is the decoded part of a response distmap cares about.
type parsed struct {
	dist        domain.Distribution
	resultCount int
}

// parseResponse applies the webservice contract to a raw JSON body.
func parseResponse(orgID string, body []byte) (parsed, error) {
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return parsed{}, opErr(domain.KindParse, fmt.Errorf("response body is not valid JSON: %w", err))
	}
	if _, ok := doc.(map[string]any); !ok {
		return parsed{}, opErr(domain.KindParse, errors.New("response body is not a JSON object"))
	}

	if msg, ok := lookup(pathErrorMessage, doc); ok && truthy(msg) {
		return parsed{}, opErr(domain.KindRemote, &domain.APIError{Message: stringify(msg)})
	}

	rawResults, ok := lookup(pathResults, doc)
	if !ok {
		return parsed{}, opErr(domain.KindParse, errNoResults)
	}
	results, ok := rawResults.([]any)
	if !ok {
		if rawResults == nil {
			return parsed{}, opErr(domain.KindRemote, domain.ErrEmptyResults)
		}
		return parsed{}, opErr(domain.KindParse, fmt.Errorf("results section is %T, expected a list", rawResults))
	}
	if len(results) == 0 {
		return parsed{}, opErr(domain.KindRemote, domain.ErrEmptyResults)
	}

	first, ok := results[0].(map[string]any)
	if !ok {
		return parsed{}, opErr(domain.KindParse, fmt.Errorf("first result is %T, expected an object", results[0]))
	}

	rawDist, ok := lookup(pathDistribution, first)
	if !ok {
		return parsed{}, opErr(domain.KindParse, errNoDistribution)
	}

	locations := domain.LocationSet{}
	switch d := rawDist.(type) {
	case nil:
	case string:
		locations = SplitDistribution(d)
	default:
		return parsed{}, opErr(domain.KindParse, fmt.Errorf("distribution is %T, expected a string", rawDist))
	}

	name := orgID
	if n, ok := lookup(pathName, first); ok {
		if s, isStr := n.(string); isStr && s != "" {
			name = s
		}
	}

	return parsed{
		dist: domain.Distribution{
			OrganismName: name,
			Locations:    locations,
		},
		resultCount: len(results),
	}, nil
}

// lookup evaluates a JSONPath expression; a failed evaluation means the key is absent.
func lookup(expr string, doc any) (any, bool) {
	v, err := jsonpath.Get(expr, doc)
	if err != nil {
		return nil, false
	}
	return v, true
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return true
	}
}

func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

func opErr(kind domain.ErrorKind, err error) error {
	return &domain.OpError{
		Op:   "catalogue.parse",
		Kind: kind,
		Err:  err,
	}
}
