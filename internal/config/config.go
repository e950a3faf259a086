package config

import (
	"fmt"
	"image/color"
	"sort"
	"strconv"
	"strings"

	"github.com/example/drawg/internal/annotation"
	"github.com/example/drawg/internal/export"
	"github.com/example/drawg/internal/theme"
)

// Notify holds notification settings.
type Notify struct {
	Capture bool
	Save    bool
	Copy    bool
}

// Tools holds the initial markup style of the editor.
type Tools struct {
	Color       color.RGBA
	StrokeWidth float64
	FontSize    float64
}

// Style converts the tool settings into an annotation style.
func (t Tools) Style() annotation.Style {
	return annotation.Style{Color: t.Color, StrokeWidth: t.StrokeWidth}
}

// Config holds the application configuration.
type Config struct {
	Theme   string
	Format  export.Format
	SaveDir string
	Notify  Notify
	Tools   Tools
	Themes  map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Format: export.PNG,
		Notify: Notify{Save: true, Copy: true},
		Tools: Tools{
			Color:       annotation.DefaultColor,
			StrokeWidth: annotation.DefaultStrokeWidth,
			FontSize:    annotation.DefaultFontSize,
		},
		Themes: make(map[string]*theme.Theme),
	}
}

// ResolveTheme returns the active theme, preferring themes defined inline.
func (c *Config) ResolveTheme(l *theme.Loader) (*theme.Theme, error) {
	if t, ok := c.Themes[c.Theme]; ok {
		return t, nil
	}
	if l == nil {
		l = theme.NewLoader()
	}
	return l.Load(c.Theme)
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	fmt.Fprintf(&sb, "format = %s\n", c.Format)
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "capture = %v\n", c.Notify.Capture)
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	sb.WriteString("[tools]\n")
	fmt.Fprintf(&sb, "color = %s\n", theme.Hex(c.Tools.Color))
	fmt.Fprintf(&sb, "stroke_width = %s\n", strconv.FormatFloat(c.Tools.StrokeWidth, 'g', -1, 64))
	fmt.Fprintf(&sb, "font_size = %s\n", strconv.FormatFloat(c.Tools.FontSize, 'g', -1, 64))
	sb.WriteString("\n")

	// Sort keys for deterministic output
	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		for _, f := range t.Fields() {
			fmt.Fprintf(&sb, "%s: %s\n", f.Key, theme.Hex(f.Value))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
