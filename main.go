package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-isatty"
	"github.com/mcncl/symdump/internal/config"
	"github.com/mcncl/symdump/internal/errors"
	"github.com/mcncl/symdump/internal/models"
	"github.com/mcncl/symdump/internal/parser"
	"github.com/mcncl/symdump/internal/report"
)

// CLI defines the command-line interface
var CLI struct {
	Path    string `arg:"" optional:"" help:"Path to the symbol table document. Reads stdin when omitted." type:"path"`
	Config  string `help:"Path to a YAML config file. Defaults to the nearest .symdump.yml." short:"c" type:"path"`
	Filter  string `help:"Expression selecting entries, e.g. 'size > 100 && global'." short:"f"`
	Header  bool   `help:"Print a column header." short:"H"`
	Color   string `help:"Colorize output: auto, always or never."`
	Upper   bool   `help:"Print hex digits in upper case."`
	Strict  bool   `help:"Reject unterminated text and trailing data." short:"s"`
	Dump    bool   `help:"Print the parsed tree instead of the address report."`
	Debug   bool   `help:"Enable debug logging." short:"d"`
	Version bool   `help:"Show version information." short:"v"`
}

// Context holds the runtime context
type Context struct {
	Config *config.Config
	Stdin  io.Reader
	Stdout io.Writer
}

// Version information
const (
	Version = "0.2.0"
)

func main() {
	cliParser := kong.Must(&CLI,
		kong.Name("symdump"),
		kong.Description("Print the address and name of every symbol in a symbol table document"),
		kong.UsageOnError(),
	)

	if _, err := cliParser.Parse(os.Args[1:]); err != nil {
		cliParser.FatalIfErrorf(err)
	}

	if CLI.Version {
		fmt.Printf("symdump version %s\n", Version)
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(1)
	}
	setupLogging(os.Stderr, cfg.Dev.Debug)

	err = run(&Context{Config: cfg, Stdin: os.Stdin, Stdout: os.Stdout})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		fmt.Fprintf(os.Stderr, "\nFor help, run: symdump --help\n")
		os.Exit(1)
	}
}

// loadConfig merges the config file, if any, with command-line flags
func loadConfig() (*config.Config, error) {
	path := CLI.Config
	if path == "" {
		path = config.FindConfigFile()
	}
	cfg, err := config.LoadConfigWithCLI(path, config.CLIOverrides{
		Filter:       CLI.Filter,
		Color:        CLI.Color,
		Header:       CLI.Header,
		UppercaseHex: CLI.Upper,
		Strict:       CLI.Strict,
		Debug:        CLI.Debug,
	})
	if err != nil {
		return nil, errors.NewConfigError("failed to load configuration", err)
	}
	return cfg, nil
}

// run executes the main program logic
func run(ctx *Context) error {
	cfg := ctx.Config

	// 1. Parse the document
	root, err := parseInput(ctx)
	if err != nil {
		return err
	}

	if CLI.Dump {
		return report.Dump(ctx.Stdout, root)
	}

	// 2. Collect entries
	collector, err := report.NewCollector(report.Options{
		AddressField: cfg.Report.AddressField,
		NameField:    cfg.Report.NameField,
		Filter:       cfg.Report.Filter,
	})
	if err != nil {
		return err
	}
	entries, err := collector.Collect(root)
	if err != nil {
		return err
	}

	// 3. Render
	writer := report.NewWriter(report.WriterOptions{
		AddressField: cfg.Report.AddressField,
		NameField:    cfg.Report.NameField,
		Header:       cfg.Report.Header,
		UppercaseHex: cfg.Report.UppercaseHex,
		Color:        useColor(cfg.Report.Color, ctx.Stdout),
	})
	return writer.Write(ctx.Stdout, entries)
}

// parseInput reads the document from the path argument or stdin
func parseInput(ctx *Context) (models.Value, error) {
	opts := ctx.Config.ParserOptions()
	if CLI.Path != "" {
		return parser.ParseFile(CLI.Path, opts...)
	}

	if f, ok := ctx.Stdin.(*os.File); ok {
		stdinInfo, err := f.Stat()
		if err != nil {
			return models.Value{}, errors.NewInputError("failed to access stdin", err)
		}
		if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
			return models.Value{}, errors.NewInputError("no input provided", errors.ErrNoInput)
		}
	}

	return parser.Parse(ctx.Stdin, opts...)
}

// useColor resolves the color mode against the output stream
func useColor(mode string, w io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
