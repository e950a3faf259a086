package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/example/drawg/internal/config"
	"github.com/example/drawg/internal/export"
	"github.com/example/drawg/internal/notify"
	"github.com/example/drawg/internal/session"
	"github.com/example/drawg/internal/storage"
	"github.com/example/drawg/internal/theme"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs            *flag.FlagSet
	program       string
	notifier      *notify.Notifier
	config        *config.Config
	loader        *config.Loader
	captureAlerts bool
	saveAlerts    bool
	copyAlerts    bool
	themeName     string
	formatName    string
	saveDir       string
	activeTheme   *theme.Theme
	stdout        io.Writer
}

func (r *root) Program() string {
	return r.program
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func newRoot() *root {
	loader := config.NewLoader(version, configPathOverride)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}
	return newRootWithConfig(cfg, loader)
}

func newRootWithConfig(cfg *config.Config, loader *config.Loader) *root {
	r := &root{
		fs:       flag.NewFlagSet("drawg", flag.ContinueOnError),
		program:  "drawg",
		notifier: notify.New(notify.FromEnv(os.LookupEnv)...),
		config:   cfg,
		loader:   loader,
		stdout:   os.Stdout,
	}
	r.fs.BoolVar(&r.captureAlerts, "notify-capture", cfg.Notify.Capture, "show a desktop notification after capturing a screenshot")
	r.fs.BoolVar(&r.saveAlerts, "notify-save", cfg.Notify.Save, "show a desktop notification after saving an image")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", cfg.Notify.Copy, "show a desktop notification after copying to the clipboard")

	// Precedence: CLI > Env > Config > Default. The loader has already
	// folded the environment into cfg.
	r.fs.StringVar(&r.themeName, "theme", cfg.Theme, "color theme to use (light, dark, or a .theme file)")
	r.fs.StringVar(&r.formatName, "format", string(cfg.Format), "output format: png or jpeg")
	r.fs.StringVar(&r.saveDir, "save-dir", cfg.SaveDir, "directory captures are saved to (default ~/.drawg/captures)")
	r.fs.Usage = usageFunc(r)
	return r
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	r.notifier.Configure(r.captureAlerts, r.saveAlerts, r.copyAlerts)

	format, err := export.ParseFormat(r.formatName)
	if err != nil {
		return fmt.Errorf("-format: %w", err)
	}
	r.config.Format = format
	r.config.SaveDir = r.saveDir
	r.config.Theme = r.themeName

	t, err := r.config.ResolveTheme(nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load theme '%s': %v. using default.\n", r.themeName, err)
		t = theme.Default()
	}
	r.activeTheme = t

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var cmd runnable
	switch cmdName {
	case "annotate":
		cmd, err = parseAnnotateCmd(subArgs, r)
	case "capture":
		cmd, err = parseCaptureCmd(subArgs, r)
	case "monitors":
		cmd, err = parseMonitorsCmd(subArgs, r)
	case "list":
		cmd, err = parseListCmd(subArgs, r)
	case "delete":
		cmd, err = parseDeleteCmd(subArgs, r)
	case "thumb":
		cmd, err = parseThumbCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{r: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

// subcommand returns the program name shown in help for name.
func (r *root) subcommand(name string) string {
	return strings.TrimSpace(strings.Join([]string{r.program, name}, " "))
}

// openStore opens the configured captures directory.
func (r *root) openStore() (*storage.Store, error) {
	store, err := storage.Open(r.config.SaveDir)
	if err != nil {
		return nil, fmt.Errorf("open captures directory: %w", err)
	}
	return store, nil
}

// newSession builds the save-and-copy pipeline for store.
func (r *root) newSession(store *storage.Store, opts ...session.Option) *session.Session {
	opts = append([]session.Option{session.WithNotifier(r.notifier)}, opts...)
	return session.New(store, r.config.Format, opts...)
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
