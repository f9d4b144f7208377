package rcconfig

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// PositionalKey holds the arguments that are not flags or flag values.
const PositionalKey = "_"

var (
	decimalPattern = regexp.MustCompile(`^[-+]?(?:\d+(?:\.\d*)?|\.\d+)(?:e[-+]?\d+)?$`)
	hexPattern     = regexp.MustCompile(`^0[xX][0-9a-fA-F]+$`)
	shortNumber    = regexp.MustCompile(`^-?\d+(?:\.\d*)?(?:e-?\d+)?$`)
)

// ParseArgs converts a command-line argument list into a Value using the
// conventional flag syntax:
//
//	--key value, --key=value   key: value
//	--flag                     flag: true (also when followed by another flag)
//	--no-flag                  flag: false
//	-abc                       a, b, c: true (c takes the next argument if it is not a flag)
//	-n5, -n=5                  n: 5
//	--db.host x                db: {host: x}
//	--                         everything after is positional
//
// Numeric values become float64, and "true"/"false" following a flag become
// booleans. A key given more than once collects its values into a list.
// Dotted keys are nested in ascending key order, so when both --a and --a.b are
// given the scalar at a wins and a.b is dropped. Positional arguments are stored
// under PositionalKey when there are any.
func ParseArgs(args []string) Value {
	flat := make(map[string]any)
	var positional []any

	set := func(key string, v any) {
		prev, ok := flat[key]
		if !ok {
			flat[key] = v
			return
		}
		if list, ok := prev.([]any); ok {
			flat[key] = append(list, v)
			return
		}
		flat[key] = []any{prev, v}
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			for _, a := range args[i+1:] {
				positional = append(positional, argValue(a))
			}
			i = len(args)

		case strings.HasPrefix(arg, "--"):
			body := arg[2:]
			if key, value, ok := strings.Cut(body, "="); ok {
				set(key, argValue(value))
				continue
			}
			if key, ok := strings.CutPrefix(body, "no-"); ok {
				set(key, false)
				continue
			}
			if i+1 < len(args) && !isFlag(args[i+1]) {
				i++
				set(body, flagValue(args[i]))
				continue
			}
			set(body, true)

		case isFlag(arg):
			letters := arg[1:]
			consumed := false
			for j := 0; j < len(letters)-1; j++ {
				key, rest := letters[j:j+1], letters[j+1:]
				if rest[0] == '=' {
					set(key, argValue(rest[1:]))
					consumed = true
					break
				}
				if isLetter(letters[j]) && shortNumber.MatchString(rest) {
					set(key, argValue(rest))
					consumed = true
					break
				}
				set(key, true)
			}
			if consumed {
				continue
			}
			key := letters[len(letters)-1:]
			if i+1 < len(args) && !isFlag(args[i+1]) {
				i++
				set(key, flagValue(args[i]))
				continue
			}
			set(key, true)

		default:
			positional = append(positional, argValue(arg))
		}
	}

	keys := make([]string, 0, len(flat))
	for key := range flat {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	out := make(map[string]any)
	for _, key := range keys {
		assignPath(out, splitPath(key, "."), flat[key])
	}
	if len(positional) > 0 {
		out[PositionalKey] = positional
	}
	return out
}

func isFlag(s string) bool {
	return len(s) > 1 && s[0] == '-'
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// flagValue interprets an argument that follows a flag.
func flagValue(s string) any {
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	return argValue(s)
}

// argValue converts numeric strings to float64 and leaves anything else as is.
func argValue(s string) any {
	switch {
	case hexPattern.MatchString(s):
		if n, err := strconv.ParseInt(s[2:], 16, 64); err == nil {
			return float64(n)
		}
	case decimalPattern.MatchString(s):
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return s
}
