// Package domain contains the core model for distmap.
//
// The domain is transport- and persistence-agnostic: it does not depend on JSON parsing,
// net/http, SVG handling or the filesystem. Infra/adapters map into/from these types.
package domain
