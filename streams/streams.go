// Package streams provides output stream adapters for the rcconfig Loader. The
// Loader writes debug traces to ErrOut; the adapters here route that output to
// stdout/stderr, discard it, capture it in memory, or forward it to a zerolog
// logger.
package streams

import (
	"bytes"
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

// IOStreams is the contract accepted by rcconfig.WithStreams. Types defined in
// other packages satisfy it implicitly.
type IOStreams interface {
	Out() io.Writer
	ErrOut() io.Writer
}

// BasicIOStreams forwards writes to fixed io.Writer targets.
type BasicIOStreams struct {
	out    io.Writer
	errOut io.Writer
}

func (s BasicIOStreams) Out() io.Writer    { return s.out }
func (s BasicIOStreams) ErrOut() io.Writer { return s.errOut }

// Default returns streams backed by os.Stdout and os.Stderr.
func Default() BasicIOStreams {
	return BasicIOStreams{out: os.Stdout, errOut: os.Stderr}
}

// Writers returns streams that write Out to out and ErrOut to errOut.
func Writers(out, errOut io.Writer) BasicIOStreams {
	return BasicIOStreams{out: out, errOut: errOut}
}

// Discard returns streams that drop all output.
func Discard() BasicIOStreams {
	return Writers(io.Discard, io.Discard)
}

// lockedBuffer is a mutex-protected bytes.Buffer.
type lockedBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (l *lockedBuffer) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.b.Write(p)
}

func (l *lockedBuffer) String() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.b.String()
}

func (l *lockedBuffer) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.b.Reset()
}

// BufferStreams captures output in memory. It is safe for concurrent writers,
// so one value can be shared by Loaders running in parallel.
type BufferStreams struct {
	out    lockedBuffer
	errOut lockedBuffer
}

// Buffers returns empty BufferStreams.
func Buffers() *BufferStreams {
	return &BufferStreams{}
}

func (b *BufferStreams) Out() io.Writer    { return &b.out }
func (b *BufferStreams) ErrOut() io.Writer { return &b.errOut }

// Strings returns what has been written to Out and ErrOut so far.
func (b *BufferStreams) Strings() (out, errOut string) {
	return b.out.String(), b.errOut.String()
}

// Reset clears both buffers.
func (b *BufferStreams) Reset() {
	b.out.Reset()
	b.errOut.Reset()
}

// zerologWriter emits one log record per Write, without the trailing newline.
type zerologWriter struct {
	l     zerolog.Logger
	level zerolog.Level
}

func (w zerologWriter) Write(p []byte) (int, error) {
	n := len(p)
	p = bytes.TrimRight(p, "\n")
	w.l.WithLevel(w.level).Msg(string(p))
	return n, nil
}

// Zerolog returns streams that forward Out writes to l at level info and ErrOut
// writes at level errLevel.
func Zerolog(l zerolog.Logger, info, errLevel zerolog.Level) BasicIOStreams {
	return BasicIOStreams{
		out:    zerologWriter{l: l, level: info},
		errOut: zerologWriter{l: l, level: errLevel},
	}
}
