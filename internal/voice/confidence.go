package voice

import "github.com/pantrykit/pantrykit/internal/core"

// ConfidenceLevel buckets a confidence score for display
type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "high"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceLow    ConfidenceLevel = "low"
)

// Level returns the display bucket for a confidence score
func Level(score float64) ConfidenceLevel {
	switch {
	case score >= 0.8:
		return ConfidenceHigh
	case score >= 0.6:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// Suggestions returns static hints for improving a command. Pure
// presentation guidance; the parser itself never consumes these.
func Suggestions(cmd core.VoiceCommand) []string {
	var hints []string

	if cmd.Action == core.ActionUnknown {
		hints = append(hints,
			"Try commands like 'Add 2 kg rice to shopping list'",
			"Say 'check stock of tomatoes' to look something up",
			"Say 'I used 1 liter milk' to log usage",
		)
		return hints
	}

	if Level(cmd.Confidence) == ConfidenceLow {
		hints = append(hints, "Mention the item by name so I can match it")
	}
	if cmd.Item == "" {
		hints = append(hints, "I didn't catch which item you meant")
	}
	if cmd.Quantity == 0 {
		hints = append(hints, "Include a quantity like '2 kg' or '3 packs'")
	}

	return hints
}
