package query

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultBlockedKeywords is used when no keywords are configured
var DefaultBlockedKeywords = []string{"import", "os", "sys", "eval", "exec", "__"}

// shortKeyword is the length below which an alphanumeric keyword only
// matches as a whole word, so "os" does not trip on "cost"
const shortKeyword = 4

// Guard rejects model output that mentions blocked keywords. Matching is
// case-sensitive. Keywords shorter than four word characters match whole
// words; all others match anywhere in the text.
//
// The whole-word rule departs from plain substring matching on purpose:
// the text screened is a JSON plan naming columns, and substring matching
// on "os" would reject columns like "cost" or "position".
type Guard struct {
	rules []guardRule
}

type guardRule struct {
	keyword string
	word    *regexp.Regexp
}

var wordKeyword = regexp.MustCompile(`^\w+$`)

func NewGuard(keywords []string) *Guard {
	if len(keywords) == 0 {
		keywords = DefaultBlockedKeywords
	}
	g := &Guard{}
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		rule := guardRule{keyword: kw}
		if len(kw) < shortKeyword && wordKeyword.MatchString(kw) {
			rule.word = regexp.MustCompile(`\b` + regexp.QuoteMeta(kw) + `\b`)
		}
		g.rules = append(g.rules, rule)
	}
	return g
}

// Check returns an error wrapping ErrRestrictedContent for the first blocked
// keyword found in text.
func (g *Guard) Check(text string) error {
	for _, r := range g.rules {
		var hit bool
		if r.word != nil {
			hit = r.word.MatchString(text)
		} else {
			hit = strings.Contains(text, r.keyword)
		}
		if hit {
			return fmt.Errorf("%w: %q", ErrRestrictedContent, r.keyword)
		}
	}
	return nil
}
