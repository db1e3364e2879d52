// Package resolve maps free-text locations to ISO 3166 alpha-2 codes.
package resolve

import (
	"io"
	"log/slog"

	"github.com/agext/levenshtein"

	"github.com/aalvaropc/distmap/internal/domain"
	"github.com/aalvaropc/distmap/internal/textnorm"
)

const defaultSuggestThreshold = 0.75

// Resolver holds one loaded pair of lookup tables. Resolution of a location
// never depends on other locations.
type Resolver struct {
	codes         map[string]string
	substitutions map[string]string

	foldAccents   bool
	foldedCodes   map[string]string
	foldedSubs    map[string]string
	suggestAbove  float64
	suggestParams *levenshtein.Params

	logger *slog.Logger
}

type Option func(*Resolver)

// WithAccentFolding retries misses with accents stripped from both sides.
func WithAccentFolding(enabled bool) Option {
	return func(r *Resolver) { r.foldAccents = enabled }
}

// WithSuggestThreshold sets the minimum similarity (0..1) for a "did you mean"
// hint on a miss. A value above 1 disables suggestions.
func WithSuggestThreshold(v float64) Option {
	return func(r *Resolver) { r.suggestAbove = v }
}

func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) { r.logger = l }
}

// New builds a resolver over tables keyed by lower-cased names, as produced
// by the reference loader.
func New(codes, substitutions map[string]string, opts ...Option) *Resolver {
	r := &Resolver{
		codes:         codes,
		substitutions: substitutions,
		suggestAbove:  defaultSuggestThreshold,
		suggestParams: levenshtein.NewParams(),
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.foldAccents {
		r.foldedCodes = foldKeys(r.codes, false)
		r.foldedSubs = foldKeys(r.substitutions, true)
	}
	return r
}

// Resolve maps every location to a country code. A location that cannot be
// mapped is logged as a warning and reported in Unresolved; it never aborts
// the run.
func (r *Resolver) Resolve(locations domain.LocationSet) domain.Resolution {
	res := domain.Resolution{
		Countries:  domain.CountrySet{},
		Unresolved: []domain.Unresolved{},
	}

	for _, loc := range locations.Sorted() {
		code, ok := r.lookup(loc)
		if ok {
			res.Countries.Add(code)
			r.logger.Debug("location resolved", "location", loc, "code", code)
			continue
		}

		miss := domain.Unresolved{Location: loc, Suggestion: r.suggest(loc)}
		res.Unresolved = append(res.Unresolved, miss)

		attrs := []any{"location", loc}
		if miss.Suggestion != "" {
			attrs = append(attrs, "suggestion", miss.Suggestion)
		}
		r.logger.Warn("unknown country for location", attrs...)
	}

	return res
}

// CountryCodes is Resolve without the miss report.
func (r *Resolver) CountryCodes(locations domain.LocationSet) domain.CountrySet {
	return r.Resolve(locations).Countries
}

func (r *Resolver) lookup(loc string) (string, bool) {
	key := textnorm.Lower(loc)
	if sub, ok := r.substitutions[key]; ok {
		key = sub
	}
	if code, ok := r.codes[key]; ok {
		return code, true
	}

	if !r.foldAccents {
		return "", false
	}

	key = textnorm.FoldAccents(loc)
	if sub, ok := r.foldedSubs[key]; ok {
		key = sub
	}
	code, ok := r.foldedCodes[key]
	return code, ok
}

func (r *Resolver) suggest(loc string) string {
	if r.suggestAbove > 1 {
		return ""
	}
	key := textnorm.Lower(loc)

	best, bestScore := "", 0.0
	for name := range r.codes {
		score := levenshtein.Match(key, name, r.suggestParams)
		if score > bestScore || (score == bestScore && name < best) {
			best, bestScore = name, score
		}
	}
	if best == "" || bestScore < r.suggestAbove {
		return ""
	}
	return best
}

// foldKeys strips accents from keys, and from values too when they are names.
// On collisions the lexically first original key wins.
func foldKeys(in map[string]string, values bool) map[string]string {
	out := make(map[string]string, len(in))
	origin := make(map[string]string, len(in))
	for k, v := range in {
		fk := textnorm.FoldAccents(k)
		if prev, seen := origin[fk]; seen && prev < k {
			continue
		}
		origin[fk] = k
		if values {
			v = textnorm.FoldAccents(v)
		}
		out[fk] = v
	}
	return out
}
