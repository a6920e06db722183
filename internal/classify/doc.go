// Package classify assigns at most one class label to each raw log line.
//
// A RuleSet is an ordered mapping from class name to pattern, built once
// per log session. Scanning stops at the first match, which is why the
// generic error detector is always ordered before the module-name rule:
// a traceback frame frequently names the module that raised it, and such a
// line must still classify as an error.
//
// Classification is a pure function from (line, rules) to a sanitized
// markup fragment; the only failure mode is an invalid module pattern,
// which is rejected when the rule set is constructed.
package classify
