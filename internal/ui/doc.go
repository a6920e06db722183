// Package ui renders the log panel as a Bubble Tea program.
//
// The model polls the session's buffer on a tick and re-renders only when
// the buffer's version moved, so an idle run costs nothing. Stored lines
// are decomposed back into class and text, and the class selects the
// lipgloss style: error lines stand out, module-name lines are accented,
// everything else is plain.
//
// The panel follows the newest output by default. Scrolling away from the
// bottom suspends following; Space toggles it back, G jumps to the end.
// Theme and follow choices persist through the prefs package.
package ui
