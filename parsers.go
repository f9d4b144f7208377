package rcconfig

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/knadh/koanf/maps"
	"github.com/pelletier/go-toml/v2"
	"github.com/tailscale/hujson"
	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

// Parser turns the raw content of a configuration file into a Value. A nil or
// empty Value means the file contributes nothing.
type Parser func(content []byte) (Value, error)

// DefaultParsers returns a new registry with the built-in parsers, keyed by
// extension including the leading dot.
func DefaultParsers() map[string]Parser {
	return map[string]Parser{
		".json": ParseJSON,
		".ini":  ParseINI,
		".yaml": ParseYAML,
		".yml":  ParseYAML,
		".toml": ParseTOML,
	}
}

// ParseJSON parses a JSON object. Comments and trailing commas are accepted.
// A literal null yields an empty Value.
func ParseJSON(content []byte) (Value, error) {
	std, err := hujson.Standardize(bytes.Clone(content))
	if err != nil {
		return nil, err
	}
	var v map[string]any
	if err := json.Unmarshal(std, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// ParseYAML parses a YAML mapping.
func ParseYAML(content []byte) (Value, error) {
	var v map[string]any
	if err := yaml.Unmarshal(content, &v); err != nil {
		return nil, err
	}
	if v != nil {
		maps.IntfaceKeysToStrings(v)
	}
	return v, nil
}

// ParseTOML parses a TOML document.
func ParseTOML(content []byte) (Value, error) {
	var v map[string]any
	if err := toml.Unmarshal(content, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// ParseINI parses an INI document. Keys outside any section are top-level;
// each section becomes a nested object, and dots in section names nest further
// ([db.primary] yields {db: {primary: {...}}}). The values true, false and null
// are converted, a key without a value is true, and keys written as "name[]"
// collect every occurrence into a list.
func ParseINI(content []byte) (Value, error) {
	file, err := ini.LoadSources(ini.LoadOptions{
		AllowShadows:     true,
		AllowBooleanKeys: true,
	}, content)
	if err != nil {
		return nil, err
	}

	out := make(map[string]any)
	for _, section := range file.Sections() {
		target := out
		if name := section.Name(); name != ini.DefaultSection {
			target = iniSection(out, name)
		}
		for _, key := range section.Keys() {
			if name, ok := strings.CutSuffix(key.Name(), "[]"); ok {
				values := key.ValueWithShadows()
				list := make([]any, 0, len(values))
				for _, s := range values {
					list = append(list, iniScalar(s))
				}
				target[name] = list
				continue
			}
			target[key.Name()] = iniScalar(key.Value())
		}
	}
	return out, nil
}

func iniSection(root map[string]any, name string) map[string]any {
	cursor := root
	for _, part := range strings.Split(name, ".") {
		child, ok := cursor[part].(map[string]any)
		if !ok {
			child = make(map[string]any)
			cursor[part] = child
		}
		cursor = child
	}
	return cursor
}

func iniScalar(s string) any {
	switch s {
	case "true":
		return true
	case "false":
		return false
	case "null":
		return nil
	}
	return s
}
