package ports

// ReferenceLoader loads the lookup tables used to resolve locations.
// Both maps are keyed by lower-cased names.
type ReferenceLoader interface {
	LoadCodes() (map[string]string, error)
	LoadSubstitutions() (map[string]string, error)
}
