package voice

import (
	"testing"

	"github.com/pantrykit/pantrykit/internal/core"
)

// ============================================================================
// Parse Tests - intents
// ============================================================================

func TestParse_FullCommands(t *testing.T) {
	tests := []struct {
		text           string
		wantAction     core.ActionType
		wantItem       string
		wantQty        float64
		wantUnit       string
		wantConfidence float64
	}{
		{"Add 2 kg rice to shopping list", core.ActionAddToShopping, "Rice", 2, "kg", 0.9},
		{"I need milk", core.ActionAddToShopping, "Milk", 0, "", 0.9},
		{"buy 3 bottles of juice", core.ActionAddToShopping, "Juice", 3, "bottle", 0.9},
		{"add rice to my inventory", core.ActionAddToInventory, "Rice", 0, "", 0.9},
		{"add 500 g paneer to stock", core.ActionAddToInventory, "Paneer", 500, "g", 0.9},
		{"I used 1 liter milk", core.ActionLogUsage, "Milk", 1, "L", 0.8},
		{"we finished the sugar", core.ActionLogUsage, "Sugar", 0, "", 0.8},
		{"cooked 2 cups rice today", core.ActionLogUsage, "Rice", 2, "cup", 0.8},
		{"check stock of tomatoes", core.ActionCheckStock, "Tomatoes", 0, "", 0.8},
		{"how much flour do we have", core.ActionCheckStock, "Flour", 0, "", 0.8},
		{"remind me about the eggs", core.ActionCreateReminder, "Eggs", 0, "", 0.8},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			cmd := Parse(tt.text)

			if cmd.Action != tt.wantAction {
				t.Errorf("Action = %q, want %q", cmd.Action, tt.wantAction)
			}
			if cmd.Item != tt.wantItem {
				t.Errorf("Item = %q, want %q", cmd.Item, tt.wantItem)
			}
			if cmd.Quantity != tt.wantQty {
				t.Errorf("Quantity = %v, want %v", cmd.Quantity, tt.wantQty)
			}
			if cmd.Unit != tt.wantUnit {
				t.Errorf("Unit = %q, want %q", cmd.Unit, tt.wantUnit)
			}
			if cmd.Confidence != tt.wantConfidence {
				t.Errorf("Confidence = %v, want %v", cmd.Confidence, tt.wantConfidence)
			}
			if cmd.RawText != tt.text {
				t.Errorf("RawText = %q, want original input", cmd.RawText)
			}
		})
	}
}

func TestParse_Unknown(t *testing.T) {
	for _, text := range []string{"", "   ", "xyzzy frobnicate", "hello there"} {
		cmd := Parse(text)
		if cmd.Action != core.ActionUnknown {
			t.Errorf("Parse(%q).Action = %q, want unknown", text, cmd.Action)
		}
		if cmd.Confidence != 0.1 {
			t.Errorf("Parse(%q).Confidence = %v, want 0.1", text, cmd.Confidence)
		}
	}
}

// Shopping outranks reminders: "buy" anywhere in the text claims the
// utterance even when "remind" is present too.
func TestParse_IntentPriority(t *testing.T) {
	cmd := Parse("remind me to buy milk")

	if cmd.Action != core.ActionAddToShopping {
		t.Errorf("Action = %q, want %q", cmd.Action, core.ActionAddToShopping)
	}
	if cmd.Item != "Milk" {
		t.Errorf("Item = %q, want Milk", cmd.Item)
	}
}

// Keywords only count as standalone words. "water" must not trip the
// usage rule through its embedded "ate", and "reminder" still reaches
// the reminder rule on its own.
func TestParse_KeywordsMatchWholeWords(t *testing.T) {
	tests := []struct {
		text       string
		wantAction core.ActionType
		wantItem   string
	}{
		{"check stock of water", core.ActionCheckStock, "Water"},
		{"how much chocolate do we have", core.ActionCheckStock, "Chocolate"},
		{"set a reminder for milk", core.ActionCreateReminder, "Milk"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			cmd := Parse(tt.text)
			if cmd.Action != tt.wantAction {
				t.Errorf("Action = %q, want %q", cmd.Action, tt.wantAction)
			}
			if cmd.Item != tt.wantItem {
				t.Errorf("Item = %q, want %q", cmd.Item, tt.wantItem)
			}
		})
	}
}

func TestParse_ConfidenceWithoutItem(t *testing.T) {
	tests := []struct {
		text string
		want float64
	}{
		{"buy", 0.6},
		{"add to inventory", 0.6},
		{"I used some", 0.5},
		{"remind me", 0.4},
	}

	for _, tt := range tests {
		cmd := Parse(tt.text)
		if cmd.Item != "" {
			t.Errorf("Parse(%q).Item = %q, want none", tt.text, cmd.Item)
		}
		if cmd.Confidence != tt.want {
			t.Errorf("Parse(%q).Confidence = %v, want %v", tt.text, cmd.Confidence, tt.want)
		}
	}
}

// ============================================================================
// Parse Tests - item extraction
// ============================================================================

func TestParse_ItemExtraction(t *testing.T) {
	// Dictionary hit beats first-word fallback even when it comes later
	cmd := Parse("buy fresh organic tomatoes")
	if cmd.Item != "Tomatoes" {
		t.Errorf("Item = %q, want Tomatoes (dictionary hit)", cmd.Item)
	}

	// No dictionary hit: first surviving word, capitalized
	cmd = Parse("buy shampoo")
	if cmd.Item != "Shampoo" {
		t.Errorf("Item = %q, want Shampoo (capitalized fallback)", cmd.Item)
	}

	// Punctuation trimmed before lookup
	cmd = Parse("I need milk!")
	if cmd.Item != "Milk" {
		t.Errorf("Item = %q, want Milk", cmd.Item)
	}
}

// ============================================================================
// Parse Tests - quantity extraction
// ============================================================================

func TestParse_QuantityUnits(t *testing.T) {
	tests := []struct {
		text     string
		wantQty  float64
		wantUnit string
	}{
		{"buy 2 kg rice", 2, "kg"},
		{"buy 2 kilograms rice", 2, "kg"},
		{"buy 250 g butter", 250, "g"},
		{"buy 1.5 liters milk", 1.5, "L"},
		{"buy 500 ml juice", 500, "ml"},
		{"buy 6 pieces eggs", 6, "pcs"},
		{"buy 2 bottles juice", 2, "bottle"},
		{"buy 3 packs biscuits", 3, "pack"},
		{"buy 2 cups sugar", 2, "cup"},
		{"buy 4 eggs", 4, "pcs"},
		{"buy rice", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			cmd := Parse(tt.text)
			if cmd.Quantity != tt.wantQty {
				t.Errorf("Quantity = %v, want %v", cmd.Quantity, tt.wantQty)
			}
			if cmd.Unit != tt.wantUnit {
				t.Errorf("Unit = %q, want %q", cmd.Unit, tt.wantUnit)
			}
		})
	}
}

// ============================================================================
// Parse Tests - metadata
// ============================================================================

func TestParse_UsageType(t *testing.T) {
	cmd := Parse("cooked rice today")
	if cmd.Metadata["usageType"] != string(core.UsageCooked) {
		t.Errorf("usageType = %v, want %q", cmd.Metadata["usageType"], core.UsageCooked)
	}

	cmd = Parse("I used 1 liter milk")
	if cmd.Metadata["usageType"] != string(core.UsageConsumed) {
		t.Errorf("usageType = %v, want %q", cmd.Metadata["usageType"], core.UsageConsumed)
	}

	// Non-usage intents carry no usage type
	cmd = Parse("buy milk")
	if _, ok := cmd.Metadata["usageType"]; ok {
		t.Error("shopping command should not carry a usageType")
	}
}

func TestParse_MatchedKeywords(t *testing.T) {
	cmd := Parse("add 2 kg rice to shopping list")

	keywords, ok := cmd.Metadata["keywords"].([]string)
	if !ok {
		t.Fatal("keywords metadata missing")
	}
	if len(keywords) != 2 || keywords[0] != "add" || keywords[1] != "shopping" {
		t.Errorf("keywords = %v, want [add shopping]", keywords)
	}
}

// ============================================================================
// Confidence level Tests
// ============================================================================

func TestLevel(t *testing.T) {
	tests := []struct {
		score float64
		want  ConfidenceLevel
	}{
		{0.95, ConfidenceHigh},
		{0.8, ConfidenceHigh},
		{0.79, ConfidenceMedium},
		{0.6, ConfidenceMedium},
		{0.59, ConfidenceLow},
		{0.1, ConfidenceLow},
	}

	for _, tt := range tests {
		if got := Level(tt.score); got != tt.want {
			t.Errorf("Level(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestSuggestions(t *testing.T) {
	// Unknown gets the example commands
	hints := Suggestions(Parse("gibberish"))
	if len(hints) == 0 {
		t.Fatal("expected hints for unknown command")
	}

	// Complete high-confidence command gets nothing
	hints = Suggestions(Parse("add 2 kg rice to shopping list"))
	if len(hints) != 0 {
		t.Errorf("expected no hints, got %v", hints)
	}

	// Missing quantity gets a quantity hint
	hints = Suggestions(Parse("buy milk"))
	if len(hints) != 1 {
		t.Errorf("expected one hint for missing quantity, got %v", hints)
	}
}
