package rcconfig

import (
	"path/filepath"
	"strings"
)

// SearchPaths returns the conventional configuration locations for an application,
// from lowest to highest precedence. On non-Windows systems the list starts with
// /etc/<name> and /etc/<name>/config. The user-level locations under home and the
// working-directory file .<name> always follow, and override, when non-empty, is
// appended last. SearchPaths does not touch the filesystem.
func SearchPaths(name, home, override string, windows bool) []string {
	paths := make([]string, 0, 8)
	if !windows {
		paths = append(paths,
			filepath.Join("/etc", name),
			filepath.Join("/etc", name, "config"),
		)
	}
	paths = append(paths,
		filepath.Join(home, ".config", name),
		filepath.Join(home, ".config", name, "config"),
		filepath.Join(home, "."+name),
		filepath.Join(home, "."+name, "config"),
		"."+name,
	)
	if override != "" {
		paths = append(paths, override)
	}
	return paths
}

// extension returns the extension of the last path element. Unlike filepath.Ext,
// a leading dot does not start an extension, so ".myapp" and ".." have none.
func extension(path string) string {
	base := filepath.Base(path)
	if base == ".." {
		return ""
	}
	i := strings.LastIndexByte(base, '.')
	if i <= 0 {
		return ""
	}
	return base[i:]
}
