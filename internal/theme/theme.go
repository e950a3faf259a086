package theme

import (
	"image/color"
	"strings"
)

// Theme defines the colours of the editor window chrome.
type Theme struct {
	Name string

	// Window
	Background color.RGBA // behind the canvas
	Foreground color.RGBA // status text

	// Toolbar
	ToolbarBackground     color.RGBA
	ButtonBackground      color.RGBA
	ButtonBackgroundHover color.RGBA
	ButtonBackgroundPress color.RGBA
	ButtonText            color.RGBA
	ButtonBorder          color.RGBA
	Selection             color.RGBA // outline of the active tool, colour and width
}

// Default returns the built-in light theme.
func Default() *Theme {
	return &Theme{
		Name:                  "light",
		Background:            color.RGBA{220, 220, 220, 255},
		Foreground:            color.RGBA{0, 0, 0, 255},
		ToolbarBackground:     color.RGBA{235, 235, 235, 255},
		ButtonBackground:      color.RGBA{200, 200, 200, 255},
		ButtonBackgroundHover: color.RGBA{180, 180, 180, 255},
		ButtonBackgroundPress: color.RGBA{150, 150, 150, 255},
		ButtonText:            color.RGBA{0, 0, 0, 255},
		ButtonBorder:          color.RGBA{90, 90, 90, 255},
		Selection:             color.RGBA{0, 122, 255, 255},
	}
}

// Dark returns the built-in dark theme.
func Dark() *Theme {
	return &Theme{
		Name:                  "dark",
		Background:            color.RGBA{30, 30, 30, 255},
		Foreground:            color.RGBA{230, 230, 230, 255},
		ToolbarBackground:     color.RGBA{45, 45, 45, 255},
		ButtonBackground:      color.RGBA{64, 64, 64, 255},
		ButtonBackgroundHover: color.RGBA{80, 80, 80, 255},
		ButtonBackgroundPress: color.RGBA{100, 100, 100, 255},
		ButtonText:            color.RGBA{230, 230, 230, 255},
		ButtonBorder:          color.RGBA{20, 20, 20, 255},
		Selection:             color.RGBA{10, 132, 255, 255},
	}
}

// Builtin returns a copy of the named built-in theme.
func Builtin(name string) (*Theme, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "default", "light":
		return Default(), true
	case "dark":
		return Dark(), true
	}
	return nil, false
}

// Field is a named colour of a theme.
type Field struct {
	Key   string
	Value color.RGBA
}
