// Package rules builds production tables from their textual form
// "<letter> -> <body>".
//
// There is no escaping: a body cannot contain the separator.
package rules

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/aabizri/lsys"
	"github.com/pkg/errors"
)

// Separator splits the letter from the body of a rule.
const Separator = "->"

// MalformedRuleError reports a rule string that does not follow the
// "<letter> -> <body>" form.
type MalformedRuleError struct {
	Rule   string // Rule as given
	Index  int    // Position in the rule set, -1 for a lone rule
	Reason string // Human-readable reason for failure
}

func (e *MalformedRuleError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("malformed rule %q: %s", e.Rule, e.Reason)
	}
	return fmt.Sprintf("malformed rule #%d %q: %s", e.Index, e.Rule, e.Reason)
}

// Is makes errors.Is(err, lsys.ErrMalformedRule) hold.
func (e *MalformedRuleError) Is(target error) bool {
	return target == lsys.ErrMalformedRule
}

// Parse parses a single rule. Whitespace around the letter and the body is
// ignored.
func Parse(s string) (lsys.Rule, error) {
	if n := strings.Count(s, Separator); n != 1 {
		return lsys.Rule{}, &MalformedRuleError{
			Rule:   s,
			Index:  -1,
			Reason: fmt.Sprintf("expected exactly one %q, found %d", Separator, n),
		}
	}

	name, body, _ := strings.Cut(s, Separator)
	name = strings.TrimSpace(name)
	body = strings.TrimSpace(body)

	if utf8.RuneCountInString(name) != 1 {
		return lsys.Rule{}, &MalformedRuleError{
			Rule:   s,
			Index:  -1,
			Reason: fmt.Sprintf("letter %q is not a single symbol", name),
		}
	}
	if body == "" {
		return lsys.Rule{}, &MalformedRuleError{
			Rule:   s,
			Index:  -1,
			Reason: "empty body",
		}
	}

	l, _ := utf8.DecodeRuneInString(name)
	return lsys.Rule{
		On:   lsys.Letter(l),
		Body: lsys.ParseWord(body),
	}, nil
}

// ParseAll parses every rule and builds their table. The whole set is
// rejected on the first malformed rule. When a letter has several rules, the
// last one wins.
func ParseAll(ss []string) (*lsys.Table, error) {
	parsed := make([]lsys.Rule, len(ss))
	for i, s := range ss {
		r, err := Parse(s)
		if err != nil {
			var mre *MalformedRuleError
			if errors.As(err, &mre) {
				mre.Index = i
			}
			return nil, err
		}
		parsed[i] = r
	}
	return lsys.NewTable(parsed...), nil
}

// Duplicates returns the letters having more than one rule in ss, in order of
// first appearance. Malformed rules are skipped.
func Duplicates(ss []string) []lsys.Letter {
	seen := make(map[lsys.Letter]int, len(ss))
	var dups []lsys.Letter
	for _, s := range ss {
		r, err := Parse(s)
		if err != nil {
			continue
		}
		seen[r.On]++
		if seen[r.On] == 2 {
			dups = append(dups, r.On)
		}
	}
	return dups
}
