package markup

import (
	"html"
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

// Fragment is a single classified, sanitized unit of markup derived from one
// input line. The zero value is the empty fragment.
type Fragment string

// policy is the fixed allow-list: span elements carrying a class attribute,
// nothing else. Everything outside the allow-list is stripped or escaped.
var policy = func() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowAttrs("class").OnElements("span")
	return p
}()

// classRe restricts class names to plain CSS identifiers. The class is
// interpolated into an attribute, so anything else cannot be trusted there.
var classRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

// Wrap encloses line in a span carrying class and sanitizes the result.
// An empty or malformed class yields the sanitized line with no wrapping
// element.
func Wrap(class, line string) Fragment {
	if !classRe.MatchString(class) {
		return Sanitize(line)
	}
	return Sanitize(`<span class="` + class + `">` + html.EscapeString(line) + `</span>`)
}

// Sanitize runs the allow-list policy over raw markup. It is idempotent:
// sanitizing an already-sanitized fragment returns it unchanged.
func Sanitize(raw string) Fragment {
	return Fragment(policy.Sanitize(raw))
}

func (f Fragment) String() string { return string(f) }

var spanRe = regexp.MustCompile(`^<span class="([^"]*)">(.*)</span>$`)

// Decompose splits a fragment into its class name and display text. A
// fragment with no wrapping span yields an empty class. The text has HTML
// entities decoded for presentation.
func (f Fragment) Decompose() (class, text string) {
	if m := spanRe.FindStringSubmatch(string(f)); m != nil {
		return m[1], html.UnescapeString(m[2])
	}
	return "", html.UnescapeString(string(f))
}
