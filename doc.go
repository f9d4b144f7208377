// Package rcconfig provides a small, hierarchical configuration loader for Go
// applications and command-line tools.
//
// Given an application name, a Loader:
//  1. Computes an ordered list of conventional configuration file locations
//     (/etc/<name>, ~/.config/<name>, ~/.<name>, ./.<name> and their "config"
//     children), plus an optional explicit override path.
//  2. Loads every file that exists, choosing a parser by extension. Extensionless
//     paths are also probed with each fallback extension (".ini", ".json" by default).
//  3. Decodes environment variables starting with "<name>_" into a nested object,
//     using "__" as the path separator (MYAPP_db__host=x yields {db: {host: x}}).
//  4. Deep-merges defaults, files, environment and command-line arguments, in that
//     order of increasing precedence, and records the loaded files under "configs".
//
// Typical usage:
//
//	cfg, err := rcconfig.Load(
//	    rcconfig.WithName("myapp"),
//	    rcconfig.WithDefaults(rcconfig.Value{"port": 8080}),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	port := cfg.Get("port")
//	files := cfg.Configs()
//
// Any error other than a missing file aborts loading; Load never returns a
// partially merged configuration.
package rcconfig
