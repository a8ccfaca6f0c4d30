// PantryKit CLI - The command-line interface for your kitchen.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pantrykit/pantrykit/internal/actions"
	"github.com/pantrykit/pantrykit/internal/core"
	"github.com/pantrykit/pantrykit/internal/festivals"
	"github.com/pantrykit/pantrykit/internal/status"
	"github.com/pantrykit/pantrykit/internal/storage"
	"github.com/pantrykit/pantrykit/internal/voice"
)

var (
	// Config
	dataDir string

	// Version
	version = "0.1.0"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pantry",
		Short: "PantryKit - your kitchen inventory from the terminal",
		Long: `PantryKit keeps track of what is in your kitchen, what is
about to expire, and what you need to buy next.

Run 'pantryd' for the full dashboard with reminders and voice
commands over HTTP; this CLI works directly against the same
local database.`,
	}

	// Global flags
	home, _ := os.UserHomeDir()
	defaultDataDir := filepath.Join(home, ".pantrykit")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", defaultDataDir, "data directory")

	// Commands
	rootCmd.AddCommand(statusCmd())
	rootCmd.AddCommand(addCmd())
	rootCmd.AddCommand(sayCmd())
	rootCmd.AddCommand(shoppingCmd())
	rootCmd.AddCommand(festivalsCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openDB opens (and migrates) the local database
func openDB() (*storage.DB, error) {
	dbPath := filepath.Join(dataDir, "pantrykit.db")
	db, err := storage.Open(storage.Config{Path: dbPath})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	return db, nil
}

// statusCmd shows the inventory with heat-sorted statuses
func statusCmd() *cobra.Command {
	var sortBy string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show inventory status",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			items, err := storage.NewItemStore(db).GetAll()
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Println("🧺 Your pantry is empty.")
				fmt.Println("   Try: pantry add \"Rice\" --qty 5 --unit kg")
				return nil
			}

			engine := status.NewEngine(status.DefaultConfig())
			recalced := status.Sort(engine.Recalc(items), core.SortType(sortBy))

			fmt.Println("📊 Pantry Status")
			fmt.Println()
			for _, item := range recalced {
				fmt.Printf("   %s %-20s %6.1f %-6s %s%s\n",
					item.Emoji, item.Name, item.Qty, item.Unit,
					statusBadge(item.Status), expiryNote(item))
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&sortBy, "sort", string(core.SortHeat), "sort order (heat, expiry, qty_asc, qty_desc, recent)")
	return cmd
}

func statusBadge(s core.ItemStatus) string {
	switch s {
	case core.StatusExpired:
		return "🔴 EXPIRED"
	case core.StatusExpiring:
		return "🟠 EXPIRING"
	case core.StatusLow:
		return "🟡 LOW"
	default:
		return "🟢 OK"
	}
}

func expiryNote(item core.Item) string {
	if item.Expiry.IsZero() {
		return ""
	}
	days := int(time.Until(item.Expiry).Hours() / 24)
	if days < 0 {
		return fmt.Sprintf("  (expired %s)", item.Expiry.Format("Jan 2"))
	}
	return fmt.Sprintf("  (expires %s)", item.Expiry.Format("Jan 2"))
}

// addCmd adds an item straight into the inventory
func addCmd() *cobra.Command {
	var (
		qty    float64
		unit   string
		expiry string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add an item to the inventory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			item := &core.Item{
				ID:   core.ItemID(uuid.NewString()),
				Name: args[0],
				Qty:  qty,
				Unit: unit,
			}
			if expiry != "" {
				parsed, err := time.Parse("2006-01-02", expiry)
				if err != nil {
					return fmt.Errorf("invalid expiry date (want YYYY-MM-DD): %w", err)
				}
				item.Expiry = parsed
			}

			engine := status.NewEngine(status.DefaultConfig())
			recalced := engine.Recalc([]core.Item{*item})[0]
			recalced.ID = item.ID

			if err := storage.NewItemStore(db).Create(&recalced); err != nil {
				return err
			}

			fmt.Printf("✅ Added %s %s (%.1f %s)\n", recalced.Emoji, recalced.Name, recalced.Qty, recalced.Unit)
			return nil
		},
	}

	cmd.Flags().Float64Var(&qty, "qty", 1, "quantity")
	cmd.Flags().StringVar(&unit, "unit", "pcs", "unit (kg, g, L, ml, pcs, ...)")
	cmd.Flags().StringVar(&expiry, "expiry", "", "expiry date (YYYY-MM-DD)")
	return cmd
}

// sayCmd parses a voice-style command and optionally executes it
func sayCmd() *cobra.Command {
	var execute bool

	cmd := &cobra.Command{
		Use:   "say <text>",
		Short: "Parse a natural-language command",
		Long: `Parses free text the same way the voice endpoint does.

Examples:
   pantry say "add 2 kg rice to shopping list"
   pantry say --execute "I used 1 liter milk"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			parsed := voice.Parse(text)

			fmt.Println("🎤 Parsed command")
			fmt.Printf("   Action:     %s\n", parsed.Action)
			fmt.Printf("   Item:       %s\n", orDash(parsed.Item))
			if parsed.Quantity > 0 {
				fmt.Printf("   Quantity:   %s %s\n", strconv.FormatFloat(parsed.Quantity, 'f', -1, 64), parsed.Unit)
			}
			fmt.Printf("   Confidence: %.2f (%s)\n", parsed.Confidence, voice.Level(parsed.Confidence))

			if !execute {
				return nil
			}

			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			engine := status.NewEngine(status.DefaultConfig())
			dispatcher := actions.NewDispatcher(
				storage.NewItemStore(db),
				storage.NewShoppingStore(db),
				storage.NewReminderStore(db),
				storage.NewUsageStore(db),
				engine, actions.DefaultConfig())

			result, err := dispatcher.Dispatch(cmd.Context(), parsed)
			if err != nil {
				return err
			}

			fmt.Println()
			if result.Executed {
				fmt.Printf("✅ %s\n", result.Message)
			} else {
				fmt.Printf("⚠️  %s\n", result.Message)
				for _, s := range result.Suggestions {
					fmt.Printf("   💡 %s\n", s)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&execute, "execute", false, "execute the parsed command")
	return cmd
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// shoppingCmd lists the pending shopping entries
func shoppingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shopping",
		Short: "Show the shopping list",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			pending, err := storage.NewShoppingStore(db).GetPending()
			if err != nil {
				return err
			}
			if len(pending) == 0 {
				fmt.Println("🛒 Shopping list is empty.")
				return nil
			}

			fmt.Println("🛒 Shopping List")
			fmt.Println()
			for _, entry := range pending {
				fmt.Printf("   • %-20s %6.1f %-6s (%s)\n", entry.Name, entry.Qty, entry.Unit, entry.Source)
			}
			return nil
		},
	}
}

// festivalsCmd shows upcoming festivals
func festivalsCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "festivals",
		Short: "Show upcoming festivals and their suggested items",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := festivals.NewService()
			upcoming := svc.UpcomingWithin(days)
			if len(upcoming) == 0 {
				fmt.Printf("📅 No festivals in the next %d days.\n", days)
				return nil
			}

			fmt.Println("📅 Upcoming Festivals")
			fmt.Println()
			for _, u := range upcoming {
				fmt.Printf("   %s %-12s %s (in %d days)\n",
					u.Festival.Emoji, u.Festival.Name, u.Date.Format("Jan 2"), u.DaysAway)
				if len(u.Festival.SuggestedItems) > 0 {
					fmt.Printf("      suggested: %s\n", strings.Join(u.Festival.SuggestedItems, ", "))
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 60, "lookahead window in days")
	return cmd
}

// versionCmd shows version info
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show PantryKit version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("PantryKit v%s\n", version)
		},
	}
}
