// Package knowledge holds the per-mode songwriting rules and the keyword
// retriever that picks the ones relevant to a message.
package knowledge

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/Conceptual-Machines/echo-api/internal/models"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	phraseScore    = 3
	tokenScore     = 2
	substringScore = 1

	// DefaultLimit is how many rules a chat turn carries
	DefaultLimit = 3

	rulesHeader = "DYNAMIC GUIDE RULES (apply if relevant):"
)

var (
	wordPattern  = regexp.MustCompile(`[a-zA-Z']+`)
	spacePattern = regexp.MustCompile(`\s+`)
)

// ScoredRule is a rule together with its relevance score for one message
type ScoredRule struct {
	Rule  Rule
	Score int
}

// Retrieve returns up to limit rules of the mode ranked by relevance to the
// message. When nothing matches, the mode's default rules are returned, so
// the result is never empty for limit >= 1 and a known mode.
func Retrieve(message string, mode models.Mode, limit int) []Rule {
	ranked := Rank(message, mode)
	out := make([]Rule, 0, limit)
	for _, sr := range ranked {
		if len(out) >= limit {
			break
		}
		out = append(out, sr.Rule)
	}
	return out
}

// Rank scores every rule of the mode and returns the matching ones in
// descending score order. Ties keep rule-list order. Falls back to the
// default rules with score 0.
func Rank(message string, mode models.Mode) []ScoredRule {
	rules := RulesFor(mode)
	if len(rules) == 0 {
		return nil
	}

	norm := normalize(message)
	tokens := tokenize(message)

	var scored []ScoredRule
	for _, r := range rules {
		if s := score(norm, tokens, r); s > 0 {
			scored = append(scored, ScoredRule{Rule: r, Score: s})
		}
	}

	if len(scored) == 0 {
		for _, r := range DefaultRules(mode) {
			scored = append(scored, ScoredRule{Rule: r})
		}
		return scored
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

// Score returns the relevance of a single rule for a message
func Score(message string, rule Rule) int {
	return score(normalize(message), tokenize(message), rule)
}

func score(norm string, tokens map[string]struct{}, rule Rule) int {
	total := 0
	for _, kw := range rule.Keywords {
		kw = normalize(kw)
		if kw == "" {
			continue
		}
		if strings.Contains(kw, " ") {
			if strings.Contains(norm, kw) {
				total += phraseScore
			}
			continue
		}
		if _, ok := tokens[kw]; ok {
			total += tokenScore
		} else if strings.Contains(norm, kw) {
			// "rhyme" inside "rhymes"
			total += substringScore
		}
	}
	return total
}

// FormatRules renders rules as the labeled bullet block placed in the prompt
func FormatRules(rules []Rule) string {
	if len(rules) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(rulesHeader)
	for _, r := range rules {
		b.WriteString("\n- ")
		b.WriteString(r.Advice)
	}
	b.WriteString("\n")
	return b.String()
}

// normalize lowercases, folds accents ("cliché" -> "cliche") and collapses
// whitespace
func normalize(text string) string {
	return strings.TrimSpace(spacePattern.ReplaceAllString(fold(text), " "))
}

func tokenize(text string) map[string]struct{} {
	words := wordPattern.FindAllString(fold(text), -1)
	tokens := make(map[string]struct{}, len(words))
	for _, w := range words {
		tokens[w] = struct{}{}
	}
	return tokens
}

func fold(text string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, text)
	if err != nil {
		folded = text
	}
	return strings.ToLower(folded)
}
