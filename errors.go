package rcconfig

import "errors"

// Exported error categories returned by this package. They are wrapped together
// with the offending path, so callers can detect error classes using errors.Is.
//   - ErrNoParser: no parser is registered for a path's extension and no default
//     parser can be derived from the fallback extension list.
//   - ErrUnreadable: a configuration file exists but cannot be read.
//   - ErrUnparsable: a parser rejected the content of a configuration file.
//   - ErrHomeDir: the home directory is needed for path discovery but is unknown.
//   - ErrNoName: the application name could not be determined.
//   - ErrDotenv: a .env file exists but cannot be read or parsed.
var (
	ErrNoParser   = errors.New("no parser")
	ErrUnreadable = errors.New("read config file")
	ErrUnparsable = errors.New("parse config file")
	ErrHomeDir    = errors.New("cannot determine home directory")
	ErrNoName     = errors.New("cannot determine application name")
	ErrDotenv     = errors.New("load dotenv file")
)
