package status

import "strings"

// categoryRule maps name substrings to a category. Rule order is
// significant: the first rule with any matching substring wins, so a
// name hitting several rules takes the earliest-listed category.
type categoryRule struct {
	substrings []string
	category   string
}

var categoryRules = []categoryRule{
	{[]string{"rice", "wheat", "flour", "atta", "dal", "lentil", "oats", "poha"}, "grains"},
	{[]string{"milk", "curd", "yogurt", "cheese", "paneer", "butter", "ghee"}, "dairy"},
	{[]string{"tomato", "onion", "potato", "carrot", "spinach", "capsicum", "vegetable"}, "vegetables"},
	{[]string{"oil", "salt", "sugar", "masala", "spice", "turmeric", "chilli"}, "cooking"},
	{[]string{"tea", "coffee", "juice", "soda"}, "beverages"},
}

// DefaultCategory is returned when no rule matches
const DefaultCategory = "pantry"

// InferCategory returns the first matching category for an item name
func InferCategory(name string) string {
	for _, rule := range categoryRules {
		if matchAny(name, rule.substrings) {
			return rule.category
		}
	}
	return DefaultCategory
}

// emojiRule is a separate table from the category rules so display
// glyphs can be more specific than categories
type emojiRule struct {
	substrings []string
	emoji      string
}

var emojiRules = []emojiRule{
	{[]string{"rice"}, "🍚"},
	{[]string{"wheat", "flour", "atta"}, "🌾"},
	{[]string{"bread"}, "🍞"},
	{[]string{"milk"}, "🥛"},
	{[]string{"curd", "yogurt"}, "🥣"},
	{[]string{"cheese", "paneer"}, "🧀"},
	{[]string{"butter", "ghee"}, "🧈"},
	{[]string{"egg"}, "🥚"},
	{[]string{"tomato"}, "🍅"},
	{[]string{"onion"}, "🧅"},
	{[]string{"potato"}, "🥔"},
	{[]string{"carrot"}, "🥕"},
	{[]string{"spinach"}, "🥬"},
	{[]string{"oil"}, "🫙"},
	{[]string{"salt"}, "🧂"},
	{[]string{"tea"}, "🍵"},
	{[]string{"coffee"}, "☕"},
}

// DefaultEmoji is the fallback glyph
const DefaultEmoji = "🧺"

// InferEmoji returns the first matching display glyph for an item name
func InferEmoji(name string) string {
	for _, rule := range emojiRules {
		if matchAny(name, rule.substrings) {
			return rule.emoji
		}
	}
	return DefaultEmoji
}

func matchAny(name string, substrings []string) bool {
	lower := strings.ToLower(name)
	for _, sub := range substrings {
		if strings.Contains(lower, sub) {
			return true
		}
	}
	return false
}
