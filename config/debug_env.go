package config

import "strings"

// DebugEnabled reports whether UVM_DEBUG is set to a truthy value:
// nonempty and not "0" or "false" (case-insensitive). getenv is
// injected so tests don't need to touch the process environment.
func DebugEnabled(getenv func(string) string) bool {
	v := strings.TrimSpace(getenv("UVM_DEBUG"))
	if v == "" {
		return false
	}
	switch strings.ToLower(v) {
	case "0", "false":
		return false
	default:
		return true
	}
}
