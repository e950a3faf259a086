package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/example/drawg/internal/config"
)

type configCmd struct {
	*root
	fs *flag.FlagSet
}

func (c *configCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *configCmd) Program() string {
	return c.subcommand("config")
}

func parseConfigCmd(args []string, r *root) (*configCmd, error) {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	c := &configCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() < 1 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *configCmd) Run() error {
	switch sub := c.fs.Arg(0); sub {
	case "print":
		return c.runPrint()
	case "path":
		return c.runPath()
	case "save":
		return c.runSave()
	default:
		return fmt.Errorf("unknown config command: %s", sub)
	}
}

func (c *configCmd) runPrint() error {
	fmt.Fprint(c.stdout, c.config.String())
	return nil
}

func (c *configCmd) runPath() error {
	l := c.configLoader()
	if p := l.GetConfigPath(); p != "" {
		fmt.Fprintf(c.stdout, "config: %s\n", p)
	} else {
		fmt.Fprintln(c.stdout, "config: (none)")
	}
	if p := l.GetEnvPath(); p != "" {
		fmt.Fprintf(c.stdout, "env:    %s\n", p)
	}
	return nil
}

func (c *configCmd) runSave() error {
	path, err := c.configLoader().Save(c.config)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Configuration saved to %s\n", path)
	return nil
}

func (c *configCmd) configLoader() *config.Loader {
	if c.loader != nil {
		return c.loader
	}
	return config.NewLoader(version, configPathOverride)
}
