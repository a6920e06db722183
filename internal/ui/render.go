package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/R-Stev/invest/internal/classify"
	"github.com/R-Stev/invest/internal/markup"
)

// renderContent turns the buffer's accumulated markup into styled terminal
// lines. Each stored line is decomposed back into its class and display
// text; the class picks the style.
func renderContent(content string, st Styles) string {
	if content == "" {
		return st.MutedText.Render("Waiting for output...")
	}
	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	out := make([]string, len(lines))
	for i, line := range lines {
		class, text := markup.Fragment(line).Decompose()
		out[i] = st.styleFor(class).Render(text)
	}
	return strings.Join(out, "\n")
}

func (s Styles) styleFor(class string) lipgloss.Style {
	switch class {
	case classify.ClassError:
		return s.DangerText
	case classify.ClassPrimary:
		return s.AccentText
	}
	return s.Text
}
