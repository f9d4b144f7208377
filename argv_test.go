package rcconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want Value
	}{
		{
			name: "no arguments",
			args: nil,
			want: Value{},
		},
		{
			name: "long flag with separate value",
			args: []string{"--x", "2"},
			want: Value{"x": 2.0},
		},
		{
			name: "long flag with inline value",
			args: []string{"--host=example.com", "--ratio=0.5"},
			want: Value{"host": "example.com", "ratio": 0.5},
		},
		{
			name: "inline value is not converted to bool",
			args: []string{"--flag=true"},
			want: Value{"flag": "true"},
		},
		{
			name: "boolean flags",
			args: []string{"--verbose", "--no-color", "--debug", "true", "--dry", "false"},
			want: Value{"verbose": true, "color": false, "debug": true, "dry": false},
		},
		{
			name: "flag followed by another flag is true",
			args: []string{"--a", "--b", "v"},
			want: Value{"a": true, "b": "v"},
		},
		{
			name: "short flags",
			args: []string{"-abc", "-n5", "-x=y", "-o", "out.txt"},
			want: Value{"a": true, "b": true, "c": true, "n": 5.0, "x": "y", "o": "out.txt"},
		},
		{
			name: "dotted keys nest",
			args: []string{"--db.host", "localhost", "--db.port=5432"},
			want: Value{"db": map[string]any{"host": "localhost", "port": 5432.0}},
		},
		{
			name: "repeated keys collect values",
			args: []string{"--tag", "a", "--tag", "b", "--tag=c"},
			want: Value{"tag": []any{"a", "b", "c"}},
		},
		{
			name: "positional arguments and terminator",
			args: []string{"serve", "--port", "80", "7", "--", "--not-a-flag", "x"},
			want: Value{"port": 80.0, "_": []any{"serve", 7.0, "--not-a-flag", "x"}},
		},
		{
			name: "hex and signed numbers",
			args: []string{"--mask=0xff", "--delta=-3", "--exp=1e3"},
			want: Value{"mask": 255.0, "delta": -3.0, "exp": 1000.0},
		},
		{
			name: "lone dash is positional",
			args: []string{"-"},
			want: Value{"_": []any{"-"}},
		},
		{
			name: "scalar blocks its own dotted sub-key",
			args: []string{"--a", "1", "--a.b", "2"},
			want: Value{"a": 1.0},
		},
		{
			name: "scalar blocks its own dotted sub-key given first",
			args: []string{"--a.b", "2", "--a", "1"},
			want: Value{"a": 1.0},
		},
		{
			name: "empty dotted segments are dropped",
			args: []string{"--db..host", "x"},
			want: Value{"db": map[string]any{"host": "x"}},
		},
		{
			name: "config and name are ordinary keys",
			args: []string{"--name", "myapp", "--config", "/tmp/c.json"},
			want: Value{"name": "myapp", "config": "/tmp/c.json"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseArgs(tt.args))
		})
	}
}

func TestParseArgs_CollisionDoesNotLeakIntoMerge(t *testing.T) {
	for i := 0; i < 20; i++ {
		got := Merge(Value{"b": "defaults"}, ParseArgs([]string{"--a", "1", "--a.b", "2"}))
		assert.Equal(t, Value{"a": 1.0, "b": "defaults"}, got)
	}
}
