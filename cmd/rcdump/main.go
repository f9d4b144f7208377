// Command rcdump prints the merged configuration of an application.
//
// Arguments after "--" are parsed as command-line overrides, exactly as the
// application itself would see them:
//
//	rcdump --app myapp --output yaml -- --db.port 5433
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/ygrebnov/rcconfig"
	"github.com/ygrebnov/rcconfig/streams"
)

// Build information, set via ldflags.
var Version = "dev"

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newApp(out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:      "rcdump",
		Usage:     "print the merged configuration of an application",
		UsageText: "rcdump --app NAME [options] [-- overrides...]",
		Version:   Version,
		Flags:     flags(),
		Writer:    out,
		ErrWriter: errOut,
		Action: func(c *cli.Context) error {
			return run(c, streams.Writers(out, errOut))
		},
	}
}

func flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "app",
			Aliases:  []string{"a"},
			Usage:    "application name used for file discovery and the environment prefix",
			Required: true,
		},
		&cli.StringSliceFlag{
			Name:    "path",
			Aliases: []string{"p"},
			Usage:   "explicit file to load, disables discovery (repeatable)",
		},
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "override file loaded after all discovered files",
		},
		&cli.StringSliceFlag{
			Name:  "env-file",
			Usage: "dotenv file merged into the environment snapshot (repeatable)",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format: json, yaml",
			Value:   "json",
		},
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "trace the resolution steps to stderr",
		},
	}
}

func run(c *cli.Context, s streams.IOStreams) error {
	opts := []rcconfig.Option{
		rcconfig.WithName(c.String("app")),
		rcconfig.WithArgs(c.Args().Slice()),
		rcconfig.WithDebug(c.Bool("debug")),
		rcconfig.WithStreams(s),
	}
	if c.IsSet("path") {
		opts = append(opts, rcconfig.WithPaths(c.StringSlice("path")...))
	}
	if p := c.String("config"); p != "" {
		opts = append(opts, rcconfig.WithConfigPath(p))
	}
	if files := c.StringSlice("env-file"); len(files) > 0 {
		opts = append(opts, rcconfig.WithDotenv(files...))
	}

	cfg, err := rcconfig.Load(opts...)
	if err != nil {
		return err
	}
	return write(s.Out(), c.String("output"), cfg)
}

func write(w io.Writer, format string, cfg rcconfig.Value) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(cfg)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(map[string]any(cfg)); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
