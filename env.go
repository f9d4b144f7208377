package rcconfig

import (
	"slices"
	"strings"
)

const envPathDelimiter = "__"

// DecodeEnv builds a nested Value from the entries of env whose names start with
// prefix, compared case-insensitively. The remainder of each name is split on "__"
// into path segments (empty segments are dropped), so with prefix "myapp_" the
// variable myapp_db__host=x yields {db: {host: "x"}}. Values are kept as strings.
//
// Variables are applied in ascending order of their names. A segment that already
// holds a string stops the walk for that variable, while the final segment always
// replaces whatever was there. As a result, when both MYAPP_param and
// MYAPP_param__sub are set, MYAPP_param is applied first and its scalar wins.
func DecodeEnv(prefix string, env map[string]string) Value {
	names := make([]string, 0, len(env))
	for name := range env {
		if len(name) >= len(prefix) && strings.EqualFold(name[:len(prefix)], prefix) {
			names = append(names, name)
		}
	}
	slices.Sort(names)

	out := make(map[string]any)
	for _, name := range names {
		assignPath(out, splitPath(name[len(prefix):], envPathDelimiter), env[name])
	}
	return out
}

// Environ converts a list of "KEY=value" entries, as returned by os.Environ, into
// an environment snapshot. Entries without a name are ignored.
func Environ(list []string) map[string]string {
	env := make(map[string]string, len(list))
	for _, kv := range list {
		name, value, _ := strings.Cut(kv, "=")
		if name == "" {
			continue
		}
		env[name] = value
	}
	return env
}
