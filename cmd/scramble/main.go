package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/idursun/scramble/internal/config"
	"github.com/idursun/scramble/internal/plain"
	"github.com/idursun/scramble/internal/scramble"
	"github.com/idursun/scramble/internal/ui"
	"github.com/idursun/scramble/internal/ui/common"
	"github.com/idursun/scramble/internal/ui/scrambletext"
)

var Version = "dev"

type flags struct {
	configFile   string
	text         string
	speed        float64
	direction    string
	revealLength int
	easing       string
	bezier       string
	charset      string
	chars        string
	seed         uint64
	fps          int
	plain        bool
	debug        bool
	version      bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func parseFlags(args []string, stderr io.Writer) (*flags, *flag.FlagSet, error) {
	var f flags
	fs := flag.NewFlagSet("scramble", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: scramble [flags] [text ...]")
		fmt.Fprintln(stderr, "Each text is revealed on its own line; \"-\" reads the text from stdin.")
		fs.PrintDefaults()
	}
	fs.StringVar(&f.configFile, "config", "", "config file (default: "+config.GetConfigDir()+"/config.toml)")
	fs.StringVar(&f.text, "text", "", "text shown instead of every target")
	fs.Float64Var(&f.speed, "speed", 0, "frames per character")
	fs.StringVar(&f.direction, "direction", "", "fromLeft or fromRight")
	fs.IntVar(&f.revealLength, "reveal-length", 0, "characters scrambled when revealing from the right (0 = all)")
	fs.StringVar(&f.easing, "easing", "", "easing curve name")
	fs.StringVar(&f.bezier, "bezier", "", "bezier control points \"x1,y1,x2,y2\"")
	fs.StringVar(&f.charset, "charset", "", "named scramble charset")
	fs.StringVar(&f.chars, "chars", "", "custom scramble characters, overrides --charset")
	fs.Uint64Var(&f.seed, "seed", 0, "random seed (0 = time based)")
	fs.IntVar(&f.fps, "fps", 0, "frames per second")
	fs.BoolVar(&f.plain, "plain", false, "write frames to stdout without the interactive UI")
	fs.BoolVar(&f.debug, "debug", false, "log to scramble.log")
	fs.BoolVar(&f.version, "version", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return &f, fs, nil
}

// overrides turns the flags given on the command line into a target overlay
// so they win over both [animation] and per-target settings.
func (f *flags) overrides(fs *flag.FlagSet) config.TargetConfig {
	var o config.TargetConfig
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "speed":
			o.Speed = &f.speed
		case "direction":
			o.Direction = &f.direction
		case "reveal-length":
			o.RevealLength = &f.revealLength
		case "easing":
			o.Easing = &f.easing
		case "bezier":
			o.Bezier = &f.bezier
		case "charset":
			o.Charset = &f.charset
		case "chars":
			o.Chars = &f.chars
		}
	})
	return o
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	f, fs, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if f.version {
		fmt.Fprintln(stdout, Version)
		return 0
	}

	if f.debug {
		logFile, err := tea.LogToFile("scramble.log", "scramble")
		if err != nil {
			fmt.Fprintf(stderr, "error opening log file: %v\n", err)
			return 1
		}
		defer logFile.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	cfg, err := config.LoadConfig(f.configFile)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	if f.seed != 0 {
		cfg.Animation.Seed = f.seed
	}
	if f.fps > 0 {
		cfg.FPS = f.fps
	}
	config.Current = cfg
	common.DefaultPalette.Update(cfg.UI.Colors)

	cli := f.overrides(fs)
	notices := warnings(cfg, cli)
	for _, w := range notices {
		fmt.Fprintf(stderr, "warning: %s\n", w)
	}

	targets, readStdin, err := collectTargets(cfg, fs.Args(), stdin)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	animators := make([]*scramble.Animator, 0, len(targets))
	for _, target := range targets {
		resolved := cli.Resolve(target.Resolve(cfg.Animation))
		text := scramble.ResolveTargetText(f.text, target.Text, scramble.DefaultText)
		animators = append(animators, scramble.New(text, resolved.Options()))
	}
	interval := config.GetFrameInterval(cfg)
	log.Printf("revealing %d targets at %s per frame", len(animators), interval)

	if f.plain {
		return runPlain(animators, interval, stdout, stderr)
	}

	items := make([]*scrambletext.Model, 0, len(animators))
	for _, a := range animators {
		items = append(items, scrambletext.New(a, interval))
	}
	opts := []tea.ProgramOption{tea.WithOutput(stdout)}
	if readStdin {
		opts = append(opts, tea.WithInput(nil))
	} else {
		opts = append(opts, tea.WithInput(stdin))
	}
	p := tea.NewProgram(ui.New(items, cfg.ExitOnComplete, notices...), opts...)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

// warnings reports config problems first, then flag values that did not
// parse.
func warnings(cfg *config.Config, cli config.TargetConfig) []string {
	out := cfg.Warnings()
	seen := make(map[string]bool)
	for _, w := range cfg.Animation.Warnings() {
		seen[w] = true
	}
	for _, w := range cli.Resolve(cfg.Animation).Warnings() {
		if !seen[w] {
			out = append(out, "flags: "+w)
		}
	}
	return out
}

// collectTargets prefers positional texts over configured targets. A lone "-"
// is replaced by everything read from stdin.
func collectTargets(cfg *config.Config, args []string, stdin io.Reader) ([]config.TargetConfig, bool, error) {
	if len(args) == 0 {
		if len(cfg.Targets) == 0 {
			return []config.TargetConfig{{}}, false, nil
		}
		return cfg.Targets, false, nil
	}
	var stdinText *string
	readStdin := false
	targets := make([]config.TargetConfig, 0, len(args))
	for _, arg := range args {
		if arg == "-" {
			if stdinText == nil {
				data, err := io.ReadAll(stdin)
				if err != nil {
					return nil, false, fmt.Errorf("reading stdin: %w", err)
				}
				s := string(data)
				stdinText = &s
				readStdin = true
			}
			arg = *stdinText
		}
		targets = append(targets, config.TargetConfig{Text: arg})
	}
	return targets, readStdin, nil
}

func runPlain(animators []*scramble.Animator, interval time.Duration, stdout, stderr io.Writer) int {
	board := plain.NewBoard(len(animators))
	clock := scramble.NewTickerClock(interval)
	for i, a := range animators {
		a.Play(clock, board.Line(i))
	}
	var flushErr error
	clock.AfterTick = func() {
		if err := board.Flush(stdout); err != nil && flushErr == nil {
			flushErr = err
		}
	}
	if err := board.Flush(stdout); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	runErr := clock.Run(ctx)
	if err := board.Close(stdout); err != nil && flushErr == nil {
		flushErr = err
	}
	if flushErr != nil {
		fmt.Fprintf(stderr, "error: %v\n", flushErr)
		return 1
	}
	if errors.Is(runErr, context.Canceled) {
		return 130
	}
	return 0
}
