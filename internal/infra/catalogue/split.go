package catalogue

import (
	"strings"

	"github.com/aalvaropc/distmap/internal/domain"
)

// trimSet holds the characters stripped from both ends of a location:
// ASCII digits (record counts) and ASCII whitespace.
const trimSet = "0123456789 \t\n\r\v\f"

// SplitDistribution splits a semicolon-delimited distribution field into a
// set of locations. Digits and whitespace are trimmed from both ends of each
// segment, never from the middle. Segments that end up empty are dropped.
func SplitDistribution(distribution string) domain.LocationSet {
	out := domain.LocationSet{}
	for _, seg := range strings.Split(distribution, ";") {
		loc := strings.Trim(seg, trimSet)
		if loc == "" {
			continue
		}
		out.Add(loc)
	}
	return out
}
