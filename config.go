package rcconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/ygrebnov/rcconfig/streams"
)

// DefaultExtensions is the fallback extension list used when WithExtensions is
// not given. Its last entry also selects the default parser.
var DefaultExtensions = []string{".ini", ".json"}

// Loader assembles a configuration from defaults, files, environment variables
// and command-line arguments.
//
// A Loader only holds its options. Every call to Load resolves paths, reads
// files and decodes the environment anew, so a Loader may be reused and shared
// between goroutines.
type Loader struct {
	name       string
	configPath string
	paths      []string
	parsers    map[string]Parser
	extensions []string
	defaults   Value
	debug      bool
	argv       Value
	args       []string
	env        map[string]string
	dotenv     []string
	homeDir    string
	goos       string
	logger     *zerolog.Logger
	streams    streams.IOStreams
}

// Option configures a Loader at construction time. Options are composable and
// can be passed to New in any order, except that WithParsers discards parsers
// added by an earlier WithParser.
type Option func(*Loader)

// New constructs a Loader with the built-in parsers and DefaultExtensions and
// applies all given options.
func New(opts ...Option) *Loader {
	l := &Loader{
		parsers:    DefaultParsers(),
		extensions: append([]string(nil), DefaultExtensions...),
		goos:       runtime.GOOS,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load is a shorthand for New(opts...).Load().
func Load(opts ...Option) (Value, error) {
	return New(opts...).Load()
}

// WithName sets the application name used for path discovery and as the
// environment prefix "<name>_". When not set, the "name" argument is used, and
// then the executable's base name. Panics if name is empty.
func WithName(name string) Option {
	return func(l *Loader) {
		if name == "" {
			panic("rcconfig: WithName: name cannot be empty")
		}
		l.name = name
	}
}

// WithConfigPath sets an explicit configuration file that is loaded after all
// conventional locations. It takes precedence over the <name>_config environment
// variable and the --config argument. Ignored when WithPaths is used.
func WithConfigPath(path string) Option {
	return func(l *Loader) {
		l.configPath = path
	}
}

// WithPaths replaces path discovery with the given list, probed in order.
// An empty list disables file loading.
func WithPaths(paths ...string) Option {
	return func(l *Loader) {
		l.paths = append([]string{}, paths...)
	}
}

// WithParsers replaces the parser registry. Keys are extensions including the
// leading dot.
func WithParsers(parsers map[string]Parser) Option {
	return func(l *Loader) {
		l.parsers = make(map[string]Parser, len(parsers))
		for ext, p := range parsers {
			l.parsers[ext] = p
		}
	}
}

// WithParser registers p for ext in addition to the current parsers.
// Panics if ext is empty or p is nil.
func WithParser(ext string, p Parser) Option {
	return func(l *Loader) {
		if ext == "" {
			panic("rcconfig: WithParser: ext cannot be empty")
		}
		if p == nil {
			panic("rcconfig: WithParser: parser cannot be nil")
		}
		l.parsers[ext] = p
	}
}

// WithExtensions replaces the fallback extension list.
func WithExtensions(exts ...string) Option {
	return func(l *Loader) {
		l.extensions = append([]string{}, exts...)
	}
}

// WithDefaults sets the lowest-precedence layer.
func WithDefaults(defaults Value) Option {
	return func(l *Loader) {
		l.defaults = defaults
	}
}

// WithDebug enables tracing of the options, the arguments and every probed and
// loaded file. Tracing does not change the result.
func WithDebug(debug bool) Option {
	return func(l *Loader) {
		l.debug = debug
	}
}

// WithArgv sets pre-parsed command-line arguments. It takes precedence over
// WithArgs.
func WithArgv(argv Value) Option {
	return func(l *Loader) {
		l.argv = argv
	}
}

// WithArgs sets the raw argument list passed to ParseArgs instead of os.Args[1:].
func WithArgs(args []string) Option {
	return func(l *Loader) {
		l.args = append([]string{}, args...)
	}
}

// WithEnv sets the environment snapshot instead of os.Environ().
func WithEnv(env map[string]string) Option {
	return func(l *Loader) {
		l.env = env
	}
}

// WithDotenv adds .env files whose variables are visible to the environment
// decoder. Variables of the environment snapshot win over .env files, and an
// earlier file wins over a later one. Missing files are ignored.
func WithDotenv(files ...string) Option {
	return func(l *Loader) {
		l.dotenv = append(l.dotenv, files...)
	}
}

// WithHomeDir sets the home directory used for path discovery instead of
// os.UserHomeDir().
func WithHomeDir(dir string) Option {
	return func(l *Loader) {
		l.homeDir = dir
	}
}

// WithLogger sets the logger used for debug tracing. Without it, traces are
// written in console format to the ErrOut stream.
func WithLogger(logger zerolog.Logger) Option {
	return func(l *Loader) {
		l.logger = &logger
	}
}

// WithStreams sets where debug traces go when no logger is given. Pass adapters
// from the companion streams package.
func WithStreams(s streams.IOStreams) Option {
	return func(l *Loader) {
		l.streams = s
	}
}

// Load resolves the candidate paths, loads the configuration files and returns
// the merge of, in increasing precedence: defaults, each loaded file in path
// order, environment overrides, command-line arguments, and the list of loaded
// files under ManifestKey.
//
// Missing files are skipped. Any other failure aborts Load with an error and no
// configuration.
func (l *Loader) Load() (Value, error) {
	log := l.tracer()
	argv := l.resolveArgv()
	l.traceOptions(log)
	log.Debug().Interface("argv", argv).Msg("arguments")

	name := l.resolveName(argv)
	if name == "" {
		return nil, ErrNoName
	}

	env, err := l.environment()
	if err != nil {
		return nil, err
	}
	envLayer := DecodeEnv(name+"_", env)

	paths := l.paths
	if paths == nil {
		home, err := l.resolveHome()
		if err != nil {
			return nil, err
		}
		paths = SearchPaths(name, home, l.overridePath(envLayer, argv), l.goos == "windows")
	}

	files, manifest, err := l.loadFiles(log, paths)
	if err != nil {
		return nil, err
	}

	layers := make([]Value, 0, len(files)+4)
	layers = append(layers, l.defaults)
	layers = append(layers, files...)
	layers = append(layers, envLayer, argv, Value{ManifestKey: manifest})
	return Merge(layers...), nil
}

func (l *Loader) tracer() zerolog.Logger {
	if !l.debug {
		return zerolog.Nop()
	}
	if l.logger != nil {
		return *l.logger
	}
	s := l.streams
	if s == nil {
		s = streams.Default()
	}
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        s.ErrOut(),
		NoColor:    true,
		TimeFormat: "15:04:05",
	}).With().Timestamp().Logger().Level(zerolog.DebugLevel)
}

func (l *Loader) traceOptions(log zerolog.Logger) {
	e := log.Debug()
	if !e.Enabled() {
		return
	}
	e.Str("name", l.name).
		Str("config", l.configPath).
		Strs("paths", l.paths).
		Strs("extensions", l.extensions).
		Strs("parsers", parserNames(l.parsers)).
		Interface("defaults", l.defaults).
		Strs("dotenv", l.dotenv).
		Msg("options")
}

func parserNames(parsers map[string]Parser) []string {
	names := make([]string, 0, len(parsers))
	for ext := range parsers {
		names = append(names, ext)
	}
	return names
}

func (l *Loader) resolveArgv() Value {
	if l.argv != nil {
		return l.argv
	}
	if l.args != nil {
		return ParseArgs(l.args)
	}
	if len(os.Args) < 2 {
		return Value{}
	}
	return ParseArgs(os.Args[1:])
}

func (l *Loader) resolveName(argv Value) string {
	if l.name != "" {
		return l.name
	}
	if name, ok := argv["name"].(string); ok && name != "" {
		return name
	}
	if len(os.Args) == 0 {
		return ""
	}
	base := filepath.Base(os.Args[0])
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// overridePath picks the explicit configuration file: the WithConfigPath option,
// then the decoded <name>_config variable, then the --config argument.
func (l *Loader) overridePath(envLayer, argv Value) string {
	if l.configPath != "" {
		return l.configPath
	}
	if p, ok := envLayer["config"].(string); ok && p != "" {
		return p
	}
	if p, ok := argv["config"].(string); ok {
		return p
	}
	return ""
}

func (l *Loader) resolveHome() (string, error) {
	if l.homeDir != "" {
		return l.homeDir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrHomeDir, err)
	}
	if home == "" {
		return "", ErrHomeDir
	}
	return home, nil
}

// environment returns the snapshot given to the environment decoder, extended
// with variables from .env files that the snapshot does not define.
func (l *Loader) environment() (map[string]string, error) {
	env := l.env
	if env == nil {
		env = Environ(os.Environ())
	}
	if len(l.dotenv) == 0 {
		return env, nil
	}

	merged := make(map[string]string, len(env))
	for _, file := range l.dotenv {
		vars, err := godotenv.Read(file)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("%w %s: %w", ErrDotenv, file, err)
		}
		for k, v := range vars {
			if _, ok := merged[k]; !ok {
				merged[k] = v
			}
		}
	}
	for k, v := range env {
		merged[k] = v
	}
	return merged, nil
}
