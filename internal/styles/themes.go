package styles

// ColorPalette holds all theme colors.
type ColorPalette struct {
	// Window chrome
	BgPrimary   string
	BgSecondary string
	BgList      string

	// Text
	TextPrimary   string
	TextSecondary string
	TextMuted     string

	// List rows
	RowSelectedBg  string
	RowSelectedFg  string
	PinnedBg       string
	PinnedSelected string
	SeparatorColor string

	// Accents
	Accent       string
	Highlight    string
	Error        string
	DialogBorder string
}

// Theme is a complete theme configuration.
type Theme struct {
	Name   string
	Colors ColorPalette
}

// Built-in themes. The palettes follow the application's lavender light
// theme and graphite dark theme.
var (
	LightTheme = Theme{
		Name: "light",
		Colors: ColorPalette{
			BgPrimary:   "#EDE7F6",
			BgSecondary: "#FFFFFF",
			BgList:      "#D1C4E9",

			TextPrimary:   "#2f2f2f",
			TextSecondary: "#4d4d4d",
			TextMuted:     "#686274",

			RowSelectedBg:  "#B39DDB",
			RowSelectedFg:  "#FFFFFF",
			PinnedBg:       "#f1dbea",
			PinnedSelected: "#eecbe3",
			SeparatorColor: "#e0e0e0",

			Accent:       "#aa95cf",
			Highlight:    "#e4d5ff",
			Error:        "#c94f4f",
			DialogBorder: "#B39DDB",
		},
	}

	DarkTheme = Theme{
		Name: "dark",
		Colors: ColorPalette{
			BgPrimary:   "#2f2f2f",
			BgSecondary: "#232323",
			BgList:      "#3a3a3a",

			TextPrimary:   "#ffffff",
			TextSecondary: "#dddddd",
			TextMuted:     "#999999",

			RowSelectedBg:  "#858585",
			RowSelectedFg:  "#ffffff",
			PinnedBg:       "#484444",
			PinnedSelected: "#858585",
			SeparatorColor: "#444444",

			Accent:       "#775c88",
			Highlight:    "#775c88",
			Error:        "#e06c6c",
			DialogBorder: "#775c88",
		},
	}
)

// ThemeByName returns the named built-in theme, defaulting to light.
func ThemeByName(name string) Theme {
	if name == "dark" {
		return DarkTheme
	}
	return LightTheme
}
