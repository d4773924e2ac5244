package cli

import (
	"image/color"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/x/exp/charmtone"

	"github.com/macropower/kontrol/pkg/config"
	"github.com/macropower/kontrol/pkg/ui/themes"
)

// ColorSchemeFunc styles the help and error output with the theme of the
// default configuration file, if it can be read.
func ColorSchemeFunc(c lipgloss.LightDarkFunc) fang.ColorScheme {
	l, err := config.NewLoaderFromFile(config.GetPath(), config.New, nil)
	if err != nil {
		return ThemeColorScheme(themes.Default, c)
	}

	name := l.Theme()
	if name == "" {
		return ThemeColorScheme(themes.Default, c)
	}

	return ThemeColorScheme(themes.New(name), c)
}

func ThemeColorScheme(t *themes.Theme, c lipgloss.LightDarkFunc) fang.ColorScheme {
	return fang.ColorScheme{
		Base:           t.TextStyle.GetForeground(),
		Title:          t.LogoStyle.GetBackground(),
		Codeblock:      c(charmtone.Salt, color.RGBA{R: 0x2f, G: 0x2e, B: 0x36, A: 0xff}),
		Program:        t.LogoStyle.GetBackground(),
		Command:        t.LogoStyle.GetBackground(),
		DimmedArgument: t.SubtleStyle.GetForeground(),
		Comment:        t.SubtleStyle.GetForeground(),
		Flag:           t.LogoStyle.GetBackground(),
		Argument:       t.TextStyle.GetForeground(),
		Description:    t.TextStyle.GetForeground(),
		FlagDefault:    t.HelpStyle.GetForeground(),
		QuotedString:   t.TextStyle.GetForeground(),
		ErrorHeader: [2]color.Color{
			t.LogoStyle.GetForeground(),
			t.ErrorStyle.GetBackground(),
		},
	}
}
