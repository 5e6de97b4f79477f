package featureflags

import (
	"os"
	"strings"
)

// Enabled reports whether a named flag is switched on via environment
// variable FLAG_<NAME>. Accepted truthy values: 1, true, yes, on.
// Used for operational toggles like notify_dry_run, which suppresses
// outbound notifications without touching the rest of the pipeline.
func Enabled(name string) bool {
	v := os.Getenv("FLAG_" + strings.ToUpper(name))
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
