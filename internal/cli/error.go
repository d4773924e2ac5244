package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"

	"github.com/macropower/kontrol/pkg/yaml"
)

// ErrorHandler renders errors returned by the root command. Configuration
// errors keep their annotated source unindented so that its columns line up.
func ErrorHandler(w io.Writer, styles fang.Styles, err error) {
	mustN(fmt.Fprintln(w, styles.ErrorHeader.String()))

	var yamlErr *yaml.Error
	if errors.As(err, &yamlErr) {
		mustN(fmt.Fprintln(w, err.Error()))
	} else {
		mustN(fmt.Fprintln(w, lipgloss.NewStyle().MarginLeft(2).Render(err.Error())))
	}

	mustN(fmt.Fprintln(w))

	if isUsageError(err) {
		mustN(fmt.Fprintln(w, lipgloss.JoinHorizontal(
			lipgloss.Left,
			styles.ErrorText.UnsetWidth().Render("Try"),
			styles.Program.Flag.Render("--help"),
			styles.ErrorText.UnsetWidth().UnsetMargins().UnsetTransform().PaddingLeft(1).Render("for usage."),
		)))
		mustN(fmt.Fprintln(w))
	}
}

// Cobra does not type its usage errors, so they are detected by prefix.
// See: https://github.com/spf13/cobra/pull/2266
var usageErrorPrefixes = []string{
	"flag needs an argument:",
	"unknown flag:",
	"unknown shorthand flag:",
	"unknown command",
	"invalid argument",
}

func isUsageError(err error) bool {
	s := err.Error()
	for _, prefix := range usageErrorPrefixes {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}

	return false
}

func mustN(_ int, err error) {
	if err != nil {
		panic(err)
	}
}
