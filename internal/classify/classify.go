package classify

import (
	"fmt"
	"regexp"

	"github.com/R-Stev/invest/internal/markup"
)

// Class names assigned by the standard rule set.
const (
	ClassError   = "error"
	ClassPrimary = "primary"
)

// errorRe is the generic error detector. It fires on Python tracebacks,
// exception names, and upper-case severity markers without matching INFO
// lines that merely mention a module name.
var errorRe = regexp.MustCompile(`Traceback|\bERROR\b|\bCRITICAL\b|[A-Z][A-Za-z]*Error\b`)

// Rule pairs a class name with the pattern that selects it.
type Rule struct {
	Class   string
	Pattern *regexp.Regexp
}

// RuleSet is an ordered set of classification rules. Order matters: the
// first matching rule wins, so the error rule must precede the module-name
// rule — a traceback line may also contain the module name.
type RuleSet struct {
	rules []Rule
}

// New builds a RuleSet from rules in the given order.
func New(rules ...Rule) *RuleSet {
	return &RuleSet{rules: rules}
}

// NewStandard builds the two-rule set used for one log session: the generic
// error detector followed by a module-name detector compiled from
// modulePattern. An invalid modulePattern is a configuration error surfaced
// here, at session start, never per line.
func NewStandard(modulePattern string) (*RuleSet, error) {
	primary, err := regexp.Compile(modulePattern)
	if err != nil {
		return nil, fmt.Errorf("compile module pattern %q: %w", modulePattern, err)
	}
	return New(
		Rule{Class: ClassError, Pattern: errorRe},
		Rule{Class: ClassPrimary, Pattern: primary},
	), nil
}

// Classify returns the sanitized fragment for line, wrapped in the class of
// the first rule whose pattern matches. Lines matching no rule come back
// sanitized but unwrapped. Classify is pure: no state, no errors.
func (rs *RuleSet) Classify(line string) markup.Fragment {
	for _, r := range rs.rules {
		if r.Pattern.MatchString(line) {
			return markup.Wrap(r.Class, line)
		}
	}
	return markup.Wrap("", line)
}
