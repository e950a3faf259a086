package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/example/drawg/internal/export"
	"github.com/example/drawg/internal/storage"
)

// listCmd prints saved captures, newest first.
type listCmd struct {
	watch bool
	*root
	fs *flag.FlagSet
}

func (l *listCmd) FlagSet() *flag.FlagSet {
	return l.fs
}

func (l *listCmd) Program() string {
	return l.subcommand("list")
}

func parseListCmd(args []string, r *root) (*listCmd, error) {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	l := &listCmd{root: r, fs: fs}
	fs.BoolVar(&l.watch, "watch", false, "keep running and reprint when the directory changes")
	fs.Usage = usageFunc(l)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: l}
	}
	return l, nil
}

func (l *listCmd) Run() error {
	store, err := l.openStore()
	if err != nil {
		return err
	}
	l.print(store)
	if !l.watch {
		return nil
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	err = store.Watch(ctx, func() {
		fmt.Fprintln(l.stdout)
		l.print(store)
	})
	if err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

func (l *listCmd) print(store *storage.Store) {
	caps := store.List()
	if len(caps) == 0 {
		fmt.Fprintf(l.stdout, "no captures in %s\n", store.Dir())
		return
	}
	for _, c := range caps {
		fmt.Fprintf(l.stdout, "%s  %8d  %s\n", c.CreatedAt.Format("2006-01-02 15:04:05"), c.Size, c.Name())
	}
}

// deleteCmd removes saved captures by name or path.
type deleteCmd struct {
	*root
	fs *flag.FlagSet
}

func (d *deleteCmd) FlagSet() *flag.FlagSet {
	return d.fs
}

func (d *deleteCmd) Program() string {
	return d.subcommand("delete")
}

func parseDeleteCmd(args []string, r *root) (*deleteCmd, error) {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	d := &deleteCmd{root: r, fs: fs}
	fs.Usage = usageFunc(d)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() < 1 {
		return nil, &UsageError{of: d}
	}
	return d, nil
}

func (d *deleteCmd) Run() error {
	store, err := d.openStore()
	if err != nil {
		return err
	}
	for _, name := range d.fs.Args() {
		path := capturePath(store, name)
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("delete %s: %w", name, err)
		}
		store.Delete(path)
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("delete %s: not removed", name)
		}
		fmt.Fprintf(d.stdout, "deleted %s\n", filepath.Base(path))
	}
	return nil
}

// thumbCmd writes a scaled-down PNG of a saved capture.
type thumbCmd struct {
	size   int
	output string
	*root
	fs *flag.FlagSet
}

func (t *thumbCmd) FlagSet() *flag.FlagSet {
	return t.fs
}

func (t *thumbCmd) Program() string {
	return t.subcommand("thumb")
}

func parseThumbCmd(args []string, r *root) (*thumbCmd, error) {
	fs := flag.NewFlagSet("thumb", flag.ContinueOnError)
	t := &thumbCmd{root: r, fs: fs}
	fs.IntVar(&t.size, "size", storage.DefaultThumbnailSize, "longest edge of the thumbnail in pixels")
	fs.StringVar(&t.output, "o", "", "output file (default <name>.thumb.png in the current directory)")
	fs.Usage = usageFunc(t)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 1 {
		return nil, &UsageError{of: t}
	}
	if t.size <= 0 {
		return nil, fmt.Errorf("-size must be positive, got %d", t.size)
	}
	return t, nil
}

func (t *thumbCmd) Run() error {
	store, err := t.openStore()
	if err != nil {
		return err
	}
	src := capturePath(store, t.fs.Arg(0))
	img, err := store.Thumbnail(src, t.size)
	if err != nil {
		return err
	}
	out := t.output
	if out == "" {
		base := filepath.Base(src)
		out = strings.TrimSuffix(base, filepath.Ext(base)) + ".thumb.png"
	}
	data, err := export.Encode(img, export.PNG)
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write thumbnail: %w", err)
	}
	fmt.Fprintln(t.stdout, out)
	return nil
}

// capturePath resolves a bare file name against the store directory.
func capturePath(store *storage.Store, name string) string {
	if filepath.IsAbs(name) || strings.ContainsRune(name, os.PathSeparator) {
		return name
	}
	return filepath.Join(store.Dir(), name)
}
