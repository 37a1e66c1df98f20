// Package main is the entry point for the confstore command.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/tidwall/pretty"
	"golang.org/x/term"

	"github.com/dshills/confstore/internal/loader"
	"github.com/dshills/confstore/internal/script"
	"github.com/dshills/confstore/internal/store"
	"github.com/dshills/confstore/internal/watcher"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// errUsage marks bad command-line arguments; the usage text has already
// been printed.
var errUsage = errors.New("usage")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// options are the flags shared by every command.
type options struct {
	verbose   bool
	envPrefix string
}

// cli carries the output streams and shared options into a command.
type cli struct {
	opts   options
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
}

type command struct {
	name  string
	args  string
	about string
	run   func(c *cli, args []string) error
}

var commands = []command{
	{"fmt", "FILE", "print FILE normalized in its own format", cmdFmt},
	{"get", "FILE SECTION NAME", "print one entry; SECTION is a dotted path, \"\" for the root", cmdGet},
	{"set", "FILE SECTION NAME VALUE", "set one entry and save FILE", cmdSet},
	{"convert", "IN OUT", "convert between .json, .toml and .yaml", cmdConvert},
	{"run", "[-save] FILE SCRIPT", "run a Lua script against FILE", cmdRun},
	{"watch", "[-script SCRIPT] FILE", "reload FILE on change and report events", cmdWatch},
	{"version", "", "print version information", cmdVersion},
}

func run(args []string, stdout, stderr io.Writer) int {
	c := &cli{stdout: stdout, stderr: stderr}

	fs := flag.NewFlagSet("confstore", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&c.opts.verbose, "v", false, "Enable debug logging")
	fs.StringVar(&c.opts.envPrefix, "env", "", "Overlay environment variables with this prefix after loading")
	fs.Usage = func() { usage(fs) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() == 0 {
		usage(fs)
		return 2
	}

	level := slog.LevelWarn
	if c.opts.verbose {
		level = slog.LevelDebug
	}
	c.logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	store.SetLogger(c.logger)

	name, rest := fs.Arg(0), fs.Args()[1:]
	for _, cmd := range commands {
		if cmd.name != name {
			continue
		}
		if err := cmd.run(c, rest); err != nil {
			if errors.Is(err, errUsage) {
				return 2
			}
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	fmt.Fprintf(stderr, "Error: unknown command %q\n", name)
	usage(fs)
	return 2
}

func usage(fs *flag.FlagSet) {
	out := fs.Output()
	fmt.Fprintf(out, "confstore - inspect, convert and script configuration files\n\n")
	fmt.Fprintf(out, "Usage: confstore [options] COMMAND [args]\n\n")
	fmt.Fprintf(out, "Commands:\n")
	for _, cmd := range commands {
		fmt.Fprintf(out, "  %-8s %-26s %s\n", cmd.name, cmd.args, cmd.about)
	}
	fmt.Fprintf(out, "\nOptions:\n")
	fs.PrintDefaults()
}

// argsFor parses a command's flags and checks its positional arguments.
func (c *cli) argsFor(fs *flag.FlagSet, args []string, n int, synopsis string) ([]string, error) {
	fs.SetOutput(c.stderr)
	fs.Usage = func() {
		fmt.Fprintf(c.stderr, "Usage: confstore %s %s\n", fs.Name(), synopsis)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return nil, errUsage
	}
	if fs.NArg() != n {
		fs.Usage()
		return nil, errUsage
	}
	return fs.Args(), nil
}

// load reads path into the registry instance named after it and applies
// the environment overlay. The caller releases the config.
func (c *cli) load(path string) (*store.Config, error) {
	cfg := store.GetInstance(path)
	if err := loader.LoadFile(cfg, path, false); err != nil {
		cfg.Release()
		return nil, err
	}
	if c.opts.envPrefix != "" {
		if err := loader.NewEnvLoader(c.opts.envPrefix).Apply(cfg, true); err != nil {
			cfg.Release()
			return nil, err
		}
	}
	return cfg, nil
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func cmdFmt(c *cli, args []string) error {
	args, err := c.argsFor(flag.NewFlagSet("fmt", flag.ContinueOnError), args, 1, "FILE")
	if err != nil {
		return err
	}

	format, err := loader.FormatFromPath(args[0])
	if err != nil {
		return err
	}
	cfg, err := c.load(args[0])
	if err != nil {
		return err
	}
	defer cfg.Release()

	out, err := loader.Encode(cfg, format)
	if err != nil {
		return err
	}
	if format == loader.FormatJSON && isTerminal(c.stdout) {
		out = pretty.Color(out, nil)
	}
	_, err = c.stdout.Write(out)
	return err
}

func cmdGet(c *cli, args []string) error {
	args, err := c.argsFor(flag.NewFlagSet("get", flag.ContinueOnError), args, 3, "FILE SECTION NAME")
	if err != nil {
		return err
	}

	cfg, err := c.load(args[0])
	if err != nil {
		return err
	}
	defer cfg.Release()

	sec := cfg.Root().Descend(args[1], false)
	if sec == nil {
		return fmt.Errorf("section %q not found", args[1])
	}
	if e := sec.GetEntry(args[2]); e != nil {
		fmt.Fprintln(c.stdout, e.String())
		return nil
	}
	if child := sec.GetSection(args[2]); child != nil {
		out := child.ToJSON()
		if isTerminal(c.stdout) {
			out = pretty.Color(pretty.Pretty(out), nil)
		}
		fmt.Fprintln(c.stdout, string(out))
		return nil
	}
	return fmt.Errorf("entry %q not found in section %q", args[2], args[1])
}

func cmdSet(c *cli, args []string) error {
	args, err := c.argsFor(flag.NewFlagSet("set", flag.ContinueOnError), args, 4, "FILE SECTION NAME VALUE")
	if err != nil {
		return err
	}

	cfg, err := c.load(args[0])
	if err != nil {
		return err
	}
	defer cfg.Release()

	sec := cfg.Root().Descend(args[1], true)
	if !sec.Import(args[2], loader.ParseValue(args[3]), true) {
		return fmt.Errorf("cannot store %q", args[3])
	}
	return loader.SaveFile(cfg, args[0])
}

func cmdConvert(c *cli, args []string) error {
	args, err := c.argsFor(flag.NewFlagSet("convert", flag.ContinueOnError), args, 2, "IN OUT")
	if err != nil {
		return err
	}
	if _, err := loader.FormatFromPath(args[1]); err != nil {
		return err
	}

	cfg, err := c.load(args[0])
	if err != nil {
		return err
	}
	defer cfg.Release()

	return loader.SaveFile(cfg, args[1])
}

func cmdRun(c *cli, args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	save := fs.Bool("save", false, "Write the config back to FILE after the script")
	args, err := c.argsFor(fs, args, 2, "[-save] FILE SCRIPT")
	if err != nil {
		return err
	}

	cfg, err := c.load(args[0])
	if err != nil {
		return err
	}
	defer cfg.Release()

	st, err := script.NewState(cfg, script.WithLogger(c.logger))
	if err != nil {
		return err
	}
	defer st.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := st.RunFile(ctx, args[1]); err != nil {
		return err
	}
	if *save {
		return loader.SaveFile(cfg, args[0])
	}
	return nil
}

func cmdWatch(c *cli, args []string) error {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	scriptPath := fs.String("script", "", "Lua script whose confstore.on handlers observe reloads")
	debounce := fs.Duration("debounce", 0, "Quiet period before a reload (0 uses the watcher default)")
	args, err := c.argsFor(fs, args, 1, "[-script SCRIPT] [-debounce D] FILE")
	if err != nil {
		return err
	}

	cfg, err := c.load(args[0])
	if err != nil {
		return err
	}
	defer cfg.Release()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var st *script.State
	if *scriptPath != "" {
		if st, err = script.NewState(cfg, script.WithLogger(c.logger)); err != nil {
			return err
		}
		defer st.Close()
		if err := st.RunFile(ctx, *scriptPath); err != nil {
			return err
		}
	}

	opts := []watcher.Option{watcher.WithLogger(c.logger)}
	if *debounce > 0 {
		opts = append(opts, watcher.WithDebounce(*debounce))
	}
	w, err := watcher.New(opts...)
	if err != nil {
		return err
	}
	defer w.Close()

	w.OnChange(func(e watcher.Event) {
		if e.Err != nil {
			fmt.Fprintf(c.stdout, "%s %s: %v\n", e.Op, e.Path, e.Err)
			return
		}
		fmt.Fprintf(c.stdout, "%s %s\n", e.Op, e.Path)
		if st != nil {
			if err := st.Dispatch(); err != nil {
				c.logger.Warn("script dispatch failed", "error", err)
			}
		}
	})
	if err := w.Watch(args[0], cfg); err != nil {
		return err
	}

	c.logger.Info("watching", "path", args[0])
	<-ctx.Done()
	return nil
}

func cmdVersion(c *cli, _ []string) error {
	fmt.Fprintf(c.stdout, "confstore %s\n", version)
	fmt.Fprintf(c.stdout, "Commit: %s\n", commit)
	fmt.Fprintf(c.stdout, "Built: %s\n", date)
	return nil
}
