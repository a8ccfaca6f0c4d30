// Package voice maps transcribed kitchen utterances to structured
// commands. It is a rule-based, single-pass parser: intent detection
// by keyword groups in fixed priority order, then item and quantity
// extraction against static dictionaries. Transcription itself happens
// upstream; this package only ever sees text.
package voice

import (
	"regexp"
	"strings"

	"github.com/pantrykit/pantrykit/internal/core"
)

// intentRule detects one action. Groups are alternatives; a group
// matches when every one of its keywords occurs as a whole word in
// the text. Rule order is a strict priority: the first rule with any
// matching group wins, so do not reorder.
type intentRule struct {
	action core.ActionType
	groups [][]string

	// stopWords are dropped before item extraction for this intent
	stopWords []string

	// confidence with and without an extracted item
	withItem    float64
	withoutItem float64
}

var intentRules = []intentRule{
	{
		action: core.ActionAddToShopping,
		groups: [][]string{
			{"add", "shopping"}, {"add", "list"}, {"buy"}, {"need"},
		},
		stopWords:   []string{"add", "shopping", "list", "buy", "need", "to", "my"},
		withItem:    0.9,
		withoutItem: 0.6,
	},
	{
		action: core.ActionAddToInventory,
		groups: [][]string{
			{"add", "inventory"}, {"add", "stock"},
		},
		stopWords:   []string{"add", "inventory", "stock", "to", "my"},
		withItem:    0.9,
		withoutItem: 0.6,
	},
	{
		action: core.ActionLogUsage,
		groups: [][]string{
			{"used"}, {"consumed"}, {"cooked"}, {"made"}, {"finished"}, {"ate"},
		},
		stopWords:   []string{"used", "consumed", "cooked", "made", "finished", "ate", "i", "we", "today"},
		withItem:    0.8,
		withoutItem: 0.5,
	},
	{
		action: core.ActionCheckStock,
		groups: [][]string{
			{"check", "stock"}, {"how", "much"}, {"do", "have"},
		},
		stopWords:   []string{"check", "stock", "how", "much", "do", "have", "we", "i", "is", "there", "left"},
		withItem:    0.8,
		withoutItem: 0.5,
	},
	{
		action: core.ActionCreateReminder,
		groups: [][]string{
			{"remind"}, {"reminder"}, {"remember"}, {"alert"},
		},
		stopWords:   []string{"remind", "reminder", "remember", "alert", "me", "set", "to", "about"},
		withItem:    0.8,
		withoutItem: 0.4,
	},
}

// genericStopWords are dropped for every intent
var genericStopWords = []string{"the", "a", "an", "some", "of", "and", "or", "with"}

// unknownConfidence is attached when no intent matches
const unknownConfidence = 0.1

// quantityPattern pairs a regex with its canonical unit. Patterns are
// tried in order; the first match wins. The trailing bare-number
// pattern implies pieces.
type quantityPattern struct {
	re   *regexp.Regexp
	unit string
}

var quantityPatterns = []quantityPattern{
	{regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:kg|kilograms?)\b`), "kg"},
	{regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:g|grams?)\b`), "g"},
	{regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:l|liters?|litres?)\b`), "L"},
	{regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:ml|milliliters?)\b`), "ml"},
	{regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:pieces?|pcs)\b`), "pcs"},
	{regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:bottles?)\b`), "bottle"},
	{regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:packs?|packets?)\b`), "pack"},
	{regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:cups?)\b`), "cup"},
	{regexp.MustCompile(`(\d+(?:\.\d+)?)\b`), "pcs"},
}

var numberRe = regexp.MustCompile(`^\d+(?:\.\d+)?$`)

// Parse classifies a raw utterance into a VoiceCommand. It never
// fails: unrecognized input degrades to ActionUnknown with low
// confidence.
func Parse(raw string) core.VoiceCommand {
	text := strings.ToLower(strings.TrimSpace(raw))

	cmd := core.VoiceCommand{
		Action:     core.ActionUnknown,
		Confidence: unknownConfidence,
		RawText:    raw,
		Metadata:   map[string]interface{}{},
	}
	if text == "" {
		return cmd
	}

	words := tokenize(text)

	rule, keywords, ok := detectIntent(words)
	if !ok {
		return cmd
	}

	cmd.Action = rule.action
	cmd.Metadata["keywords"] = keywords
	cmd.Item = extractItem(text, rule)
	cmd.Quantity, cmd.Unit = extractQuantity(text)

	if cmd.Item != "" {
		cmd.Confidence = rule.withItem
	} else {
		cmd.Confidence = rule.withoutItem
	}

	if rule.action == core.ActionLogUsage {
		if words["cooked"] {
			cmd.Metadata["usageType"] = string(core.UsageCooked)
		} else {
			cmd.Metadata["usageType"] = string(core.UsageConsumed)
		}
	}

	return cmd
}

// tokenize splits the utterance into punctuation-trimmed words.
// Intent keywords are matched against these whole words, never as
// substrings, so "ate" cannot fire inside "water".
func tokenize(text string) map[string]bool {
	words := make(map[string]bool)
	for _, w := range strings.Fields(text) {
		if w = strings.Trim(w, ".,!?;:"); w != "" {
			words[w] = true
		}
	}
	return words
}

// detectIntent returns the first rule whose any keyword group fully
// matches, along with the matched group.
func detectIntent(words map[string]bool) (intentRule, []string, bool) {
	for _, rule := range intentRules {
		for _, group := range rule.groups {
			if containsAll(words, group) {
				return rule, group, true
			}
		}
	}
	return intentRule{}, nil, false
}

func containsAll(words map[string]bool, keywords []string) bool {
	for _, kw := range keywords {
		if !words[kw] {
			return false
		}
	}
	return true
}

// extractItem finds the target item: drop stop words and numbers,
// prefer a food-dictionary hit, otherwise capitalize the first
// surviving word.
func extractItem(text string, rule intentRule) string {
	var remaining []string
	for _, word := range strings.Fields(text) {
		word = strings.Trim(word, ".,!?;:")
		if word == "" || numberRe.MatchString(word) {
			continue
		}
		if wordIn(word, rule.stopWords) || wordIn(word, genericStopWords) {
			continue
		}
		remaining = append(remaining, word)
	}

	for _, word := range remaining {
		if canonical, ok := foodDictionary[word]; ok {
			return canonical
		}
	}

	if len(remaining) > 0 {
		return capitalize(remaining[0])
	}
	return ""
}

// extractQuantity tries the unit patterns in order, then the bare
// number fallback. No match returns (0, "").
func extractQuantity(text string) (float64, string) {
	for _, p := range quantityPatterns {
		if m := p.re.FindStringSubmatch(text); m != nil {
			return parseFloat(m[1]), p.unit
		}
	}
	return 0, ""
}

func wordIn(word string, list []string) bool {
	for _, w := range list {
		if word == w {
			return true
		}
	}
	return false
}

func capitalize(word string) string {
	if word == "" {
		return ""
	}
	return strings.ToUpper(word[:1]) + word[1:]
}
