package domain

import "sort"

// LocationSet is a set of free-text location names as reported by the catalogue.
type LocationSet map[string]struct{}

// NewLocationSet builds a set from the given names.
func NewLocationSet(names ...string) LocationSet {
	s := make(LocationSet, len(names))
	for _, n := range names {
		s.Add(n)
	}
	return s
}

func (s LocationSet) Add(name string) { s[name] = struct{}{} }

func (s LocationSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Sorted returns the locations in lexical order.
func (s LocationSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// CountrySet is a set of ISO 3166 alpha-2 codes.
type CountrySet map[string]struct{}

func NewCountrySet(codes ...string) CountrySet {
	s := make(CountrySet, len(codes))
	for _, c := range codes {
		s.Add(c)
	}
	return s
}

func (s CountrySet) Add(code string) { s[code] = struct{}{} }

func (s CountrySet) Has(code string) bool {
	_, ok := s[code]
	return ok
}

// Sorted returns the codes in lexical order.
func (s CountrySet) Sorted() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Distribution is what the catalogue knows about where an organism occurs.
type Distribution struct {
	OrganismName string
	Locations    LocationSet
}

// Unresolved is a location that could not be mapped to a country code.
type Unresolved struct {
	Location   string
	Suggestion string // Optional: closest known country name
}

// Resolution is the outcome of mapping a LocationSet to country codes.
type Resolution struct {
	Countries  CountrySet
	Unresolved []Unresolved
}
