package main

import (
	"flag"
	"fmt"
)

type monitorsCmd struct {
	*root
	fs *flag.FlagSet
}

func (m *monitorsCmd) FlagSet() *flag.FlagSet {
	return m.fs
}

func (m *monitorsCmd) Program() string {
	return m.subcommand("monitors")
}

func parseMonitorsCmd(args []string, r *root) (*monitorsCmd, error) {
	fs := flag.NewFlagSet("monitors", flag.ContinueOnError)
	cmd := &monitorsCmd{root: r, fs: fs}
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (m *monitorsCmd) Run() error {
	mons, err := listMonitorsFn()
	if err != nil {
		return err
	}
	if len(mons) == 0 {
		fmt.Fprintln(m.stdout, "no monitors available")
		return nil
	}
	fmt.Fprintln(m.stdout, "available monitors (* marks the primary display):")
	for _, mon := range mons {
		marker := " "
		if mon.Primary {
			marker = "*"
		}
		r := mon.Rect
		fmt.Fprintf(m.stdout, "%s %d: %dx%d at %d,%d\n", marker, mon.Index, r.Dx(), r.Dy(), r.Min.X, r.Min.Y)
	}
	return nil
}
