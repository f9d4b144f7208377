package rcconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"syscall"

	"github.com/rs/zerolog"
)

type probeStatus int

const (
	// probeAbsent: nothing to read at the path.
	probeAbsent probeStatus = iota
	// probeEmpty: the file parsed to an empty object.
	probeEmpty
	// probeLoaded: the file contributed a non-empty object.
	probeLoaded
)

type probeResult struct {
	status probeStatus
	value  Value
}

// probe reads and parses a single candidate file. Only a missing file (or a
// directory, or a path through a non-directory) is reported as probeAbsent; every
// other failure is returned as an ErrUnreadable or ErrUnparsable error.
func probe(path string, parse Parser) (probeResult, error) {
	info, err := os.Stat(path)
	switch {
	case err != nil && isNotExist(err):
		return probeResult{status: probeAbsent}, nil
	case err != nil:
		return probeResult{}, fmt.Errorf("%w %s: %w", ErrUnreadable, path, err)
	case info.IsDir():
		return probeResult{status: probeAbsent}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if isNotExist(err) {
			return probeResult{status: probeAbsent}, nil
		}
		return probeResult{}, fmt.Errorf("%w %s: %w", ErrUnreadable, path, err)
	}

	v, err := parse(data)
	if err != nil {
		return probeResult{}, fmt.Errorf("%w %s: %w", ErrUnparsable, path, err)
	}
	if len(v) == 0 {
		return probeResult{status: probeEmpty}, nil
	}
	return probeResult{status: probeLoaded, value: v}, nil
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR)
}

// parserFor returns the parser registered for ext, or the parser of the last
// fallback extension when ext has none.
func (l *Loader) parserFor(path, ext string) (Parser, error) {
	if p, ok := l.parsers[ext]; ok && p != nil {
		return p, nil
	}
	if n := len(l.extensions); n > 0 {
		if p, ok := l.parsers[l.extensions[n-1]]; ok && p != nil {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w for %s", ErrNoParser, path)
}

// loadFiles probes paths in order and returns the parsed objects together with
// the list of files they came from. An extensionless path that does not exist is
// retried with every fallback extension, and each variant found is loaded.
func (l *Loader) loadFiles(log zerolog.Logger, paths []string) ([]Value, []string, error) {
	var layers []Value
	manifest := []string{}

	accept := func(path string, r probeResult) {
		if r.status != probeLoaded {
			return
		}
		log.Debug().Str("path", path).Interface("config", r.value).Msg("loaded config file")
		layers = append(layers, r.value)
		manifest = append(manifest, path)
	}

	for _, path := range paths {
		log.Debug().Str("path", path).Msg("try path")
		ext := extension(path)
		parse, err := l.parserFor(path, ext)
		if err != nil {
			return nil, nil, err
		}
		r, err := probe(path, parse)
		if err != nil {
			return nil, nil, err
		}
		if r.status != probeAbsent || ext != "" {
			accept(path, r)
			continue
		}

		for _, fallback := range l.extensions {
			extended := path + fallback
			log.Debug().Str("path", extended).Msg("try extended path")
			parse, ok := l.parsers[fallback]
			if !ok || parse == nil {
				return nil, nil, fmt.Errorf("%w for %s", ErrNoParser, extended)
			}
			r, err := probe(extended, parse)
			if err != nil {
				return nil, nil, err
			}
			accept(extended, r)
		}
	}
	return layers, manifest, nil
}
