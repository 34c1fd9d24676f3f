package palette

// Theme bundles everything the renderer reads from the theme flag.
type Theme struct {
	Name       string
	Palette    Palette
	Background RGB
	Alpha      float64
}

var (
	lightTheme = Theme{
		Name:       "light",
		Palette:    Light,
		Background: mustHex("#fafafa"),
		Alpha:      0.40,
	}
	darkTheme = Theme{
		Name:       "dark",
		Palette:    Dark,
		Background: mustHex("#09090b"),
		Alpha:      0.45,
	}
)

// ThemeFor picks the light or dark theme.
func ThemeFor(dark bool) Theme {
	if dark {
		return darkTheme
	}
	return lightTheme
}

func mustHex(s string) RGB {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}
