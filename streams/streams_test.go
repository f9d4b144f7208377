package streams

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

func TestDefault(t *testing.T) {
	s := Default()

	if s.Out() != os.Stdout {
		t.Fatalf("Default().Out() should be os.Stdout")
	}
	if s.ErrOut() != os.Stderr {
		t.Fatalf("Default().ErrOut() should be os.Stderr")
	}
}

func TestWriters(t *testing.T) {
	var outBuf, errBuf bytes.Buffer
	s := Writers(&outBuf, &errBuf)

	n, err := s.Out().Write([]byte("hello out\n"))
	if err != nil || n != len("hello out\n") {
		t.Fatalf("Out() write failed: n=%d err=%v", n, err)
	}
	n, err = s.ErrOut().Write([]byte("hello err\n"))
	if err != nil || n != len("hello err\n") {
		t.Fatalf("ErrOut() write failed: n=%d err=%v", n, err)
	}

	if got := outBuf.String(); got != "hello out\n" {
		t.Fatalf("Out buffer = %q, want %q", got, "hello out\n")
	}
	if got := errBuf.String(); got != "hello err\n" {
		t.Fatalf("Err buffer = %q, want %q", got, "hello err\n")
	}
}

func TestDiscard(t *testing.T) {
	s := Discard()

	for _, w := range []io.Writer{s.Out(), s.ErrOut()} {
		n, err := w.Write([]byte("dropped\n"))
		if err != nil || n != len("dropped\n") {
			t.Fatalf("discard write failed: n=%d err=%v", n, err)
		}
	}
}

func TestBuffers(t *testing.T) {
	b := Buffers()

	if _, err := b.Out().Write([]byte("info 1\n")); err != nil {
		t.Fatalf("write to Out: %v", err)
	}
	if _, err := b.ErrOut().Write([]byte("trace 1\n")); err != nil {
		t.Fatalf("write to ErrOut: %v", err)
	}

	out, errS := b.Strings()
	if out != "info 1\n" || errS != "trace 1\n" {
		t.Fatalf("Strings() = %q / %q, want %q / %q", out, errS, "info 1\n", "trace 1\n")
	}

	b.Reset()
	out, errS = b.Strings()
	if out != "" || errS != "" {
		t.Fatalf("after Reset, got %q / %q, want empty / empty", out, errS)
	}
}

func TestBuffers_ConcurrentWriters(t *testing.T) {
	b := Buffers()

	var wg sync.WaitGroup
	wg.Add(200)
	for i := 0; i < 100; i++ {
		go func() {
			defer wg.Done()
			_, _ = b.Out().Write([]byte("O"))
		}()
		go func() {
			defer wg.Done()
			_, _ = b.ErrOut().Write([]byte("E"))
		}()
	}
	wg.Wait()

	out, errS := b.Strings()
	if len(out) != 100 || strings.Count(out, "O") != 100 {
		t.Fatalf("Out length/count mismatch, got len=%d, content=%q", len(out), out)
	}
	if len(errS) != 100 || strings.Count(errS, "E") != 100 {
		t.Fatalf("ErrOut length/count mismatch, got len=%d, content=%q", len(errS), errS)
	}
}

func TestZerolog(t *testing.T) {
	var buf bytes.Buffer
	s := Zerolog(zerolog.New(&buf), zerolog.InfoLevel, zerolog.WarnLevel)

	n, err := s.Out().Write([]byte("loaded\n"))
	if err != nil || n != len("loaded\n") {
		t.Fatalf("Out() write failed: n=%d err=%v", n, err)
	}
	if _, err := s.ErrOut().Write([]byte("careful")); err != nil {
		t.Fatalf("write to ErrOut(): %v", err)
	}

	dec := json.NewDecoder(&buf)
	for _, want := range []struct{ level, message string }{
		{"info", "loaded"},
		{"warn", "careful"},
	} {
		var rec map[string]any
		if err := dec.Decode(&rec); err != nil {
			t.Fatalf("decode record: %v", err)
		}
		if rec["level"] != want.level || rec["message"] != want.message {
			t.Fatalf("record = %v, want level=%s message=%q", rec, want.level, want.message)
		}
	}
}
