package ui

import (
	"strings"
	"testing"

	"github.com/R-Stev/invest/internal/classify"
	"github.com/R-Stev/invest/internal/markup"
)

func TestRenderContentDecodesStoredMarkup(t *testing.T) {
	content := string(markup.Wrap(classify.ClassError, `raise ValueError("n < 1")`)) + "\n" +
		string(markup.Wrap("", "building overviews")) + "\n"

	got := renderContent(content, GetTheme("dark").Styles())

	if strings.Contains(got, "<span") || strings.Contains(got, "&lt;") {
		t.Errorf("rendered output leaks markup:\n%s", got)
	}
	if !strings.Contains(got, `raise ValueError("n < 1")`) {
		t.Errorf("rendered output lost decoded text:\n%s", got)
	}
	if !strings.Contains(got, "building overviews") {
		t.Errorf("rendered output lost plain line:\n%s", got)
	}
}

func TestRenderContentOneRowPerLine(t *testing.T) {
	content := string(markup.Wrap("", "one")) + "\n" +
		string(markup.Wrap(classify.ClassPrimary, "two")) + "\n" +
		string(markup.Wrap("", "three")) + "\n"

	got := renderContent(content, GetTheme("dark").Styles())
	if rows := strings.Count(got, "\n") + 1; rows != 3 {
		t.Errorf("rendered %d rows, want 3:\n%s", rows, got)
	}
}

func TestRenderContentEmptyBuffer(t *testing.T) {
	got := renderContent("", GetTheme("dark").Styles())
	if !strings.Contains(got, "Waiting for output") {
		t.Errorf("empty buffer rendered %q, want waiting notice", got)
	}
}
