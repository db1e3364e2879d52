package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func String() string {
	return fmt.Sprintf("distmap %s (commit=%s, date=%s)", Version, Commit, Date)
}

// UserAgent identifies distmap to remote services.
func UserAgent() string {
	return "distmap/" + Version
}
