package config

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/example/drawg/internal/annotation"
	"github.com/example/drawg/internal/export"
	"github.com/example/drawg/internal/theme"
)

// Parse reads configuration from an io.Reader.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	var currentSection string
	var currentTheme *theme.Theme

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			currentSection = strings.TrimSuffix(strings.TrimPrefix(line, "["), "]")
			currentTheme = nil

			if strings.HasPrefix(currentSection, "theme.") {
				themeName := strings.TrimPrefix(currentSection, "theme.")
				// Start with defaults so missing keys are fine
				currentTheme = theme.Default()
				currentTheme.Name = themeName
				cfg.Themes[themeName] = currentTheme
			}
			continue
		}

		// Key = Value or Key: Value. Colours contain no '=' so '=' wins.
		var key, value string
		var ok bool
		if key, value, ok = strings.Cut(line, "="); !ok {
			if key, value, ok = strings.Cut(line, ":"); !ok {
				continue
			}
		}
		key = strings.TrimSpace(key)
		value = unquote(strings.TrimSpace(value))

		var err error
		switch {
		case currentTheme != nil:
			err = currentTheme.Set(key, value)
		case currentSection == "notify":
			err = setNotifyField(&cfg.Notify, key, value)
		case currentSection == "tools":
			err = setToolsField(&cfg.Tools, key, value)
		case currentSection == "":
			err = setRootField(cfg, key, value)
		}
		if err != nil {
			if currentSection == "" {
				return nil, fmt.Errorf("error in root section: %w", err)
			}
			return nil, fmt.Errorf("error in section [%s]: %w", currentSection, err)
		}
	}

	return cfg, scanner.Err()
}

func unquote(v string) string {
	if len(v) >= 2 && strings.HasPrefix(v, "\"") && strings.HasSuffix(v, "\"") {
		return v[1 : len(v)-1]
	}
	return v
}

func setRootField(cfg *Config, key, value string) error {
	switch strings.ToLower(key) {
	case "theme":
		cfg.Theme = value
	case "save_dir":
		cfg.SaveDir = value
	case "format":
		f, err := export.ParseFormat(value)
		if err != nil {
			return fmt.Errorf("invalid format %q: %w", value, err)
		}
		cfg.Format = f
	}
	return nil
}

func setNotifyField(n *Notify, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid boolean for key %s: %w", key, err)
	}
	switch strings.ToLower(key) {
	case "capture":
		n.Capture = b
	case "save":
		n.Save = b
	case "copy":
		n.Copy = b
	}
	return nil
}

func setToolsField(t *Tools, key, value string) error {
	switch strings.ToLower(key) {
	case "color", "colour":
		c, err := theme.ParseColor(value)
		if err != nil {
			return fmt.Errorf("invalid color for key %s: %w", key, err)
		}
		t.Color = c
	case "stroke_width":
		w, err := parsePositive(key, value)
		if err != nil {
			return err
		}
		t.StrokeWidth = math.Min(math.Max(w, annotation.MinStrokeWidth), annotation.MaxStrokeWidth)
	case "font_size":
		s, err := parsePositive(key, value)
		if err != nil {
			return err
		}
		t.FontSize = s
	}
	return nil
}

func parsePositive(key, value string) (float64, error) {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number for key %s: %w", key, err)
	}
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("key %s must be positive, got %s", key, value)
	}
	return v, nil
}
