// Package actions executes parsed voice commands against the stores.
//
// Each recognized action type has a handler; commands below the
// configured confidence threshold are returned as suggestions instead
// of being executed.
package actions

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pantrykit/pantrykit/internal/core"
	"github.com/pantrykit/pantrykit/internal/status"
	"github.com/pantrykit/pantrykit/internal/storage"
	"github.com/pantrykit/pantrykit/internal/voice"
)

// Dispatcher routes voice commands to their handlers
type Dispatcher struct {
	items     *storage.ItemStore
	shopping  *storage.ShoppingStore
	reminders *storage.ReminderStore
	usage     *storage.UsageStore
	engine    *status.Engine
	config    Config
}

// Config for the dispatcher
type Config struct {
	// MinConfidence gates execution; lower-confidence commands come
	// back with Executed=false and suggestions attached
	MinConfidence float64

	// ReminderHour is the hour of day voice-created reminders fire
	ReminderHour int
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		MinConfidence: 0.6,
		ReminderHour:  9,
	}
}

// NewDispatcher creates a dispatcher over the given stores
func NewDispatcher(items *storage.ItemStore, shopping *storage.ShoppingStore,
	reminders *storage.ReminderStore, usage *storage.UsageStore,
	engine *status.Engine, cfg Config) *Dispatcher {
	return &Dispatcher{
		items:     items,
		shopping:  shopping,
		reminders: reminders,
		usage:     usage,
		engine:    engine,
		config:    cfg,
	}
}

// Result is the outcome of dispatching one command
type Result struct {
	Command     core.VoiceCommand      `json:"command"`
	Executed    bool                   `json:"executed"`
	Message     string                 `json:"message"`
	Data        map[string]interface{} `json:"data,omitempty"`
	Suggestions []string               `json:"suggestions,omitempty"`
}

// Dispatch executes a parsed command. Unknown actions and
// low-confidence commands are not errors; they come back unexecuted
// with suggestions.
func (d *Dispatcher) Dispatch(ctx context.Context, cmd core.VoiceCommand) (*Result, error) {
	result := &Result{Command: cmd}

	if cmd.Action == core.ActionUnknown || cmd.Confidence < d.config.MinConfidence {
		result.Message = "I didn't catch that"
		result.Suggestions = voice.Suggestions(cmd)
		return result, nil
	}

	var err error
	switch cmd.Action {
	case core.ActionAddToShopping:
		err = d.addToShopping(result, cmd)
	case core.ActionAddToInventory:
		err = d.addToInventory(result, cmd)
	case core.ActionLogUsage:
		err = d.logUsage(result, cmd)
	case core.ActionCreateReminder:
		err = d.createReminder(result, cmd)
	case core.ActionCheckStock:
		err = d.checkStock(result, cmd)
	default:
		result.Message = "I didn't catch that"
		result.Suggestions = voice.Suggestions(cmd)
		return result, nil
	}

	if err != nil {
		return nil, fmt.Errorf("dispatch %s: %w", cmd.Action, err)
	}
	return result, nil
}

func (d *Dispatcher) addToShopping(result *Result, cmd core.VoiceCommand) error {
	if cmd.Item == "" {
		result.Message = "Which item should I add to the list?"
		return nil
	}

	entry := &core.ShoppingEntry{
		ID:     uuid.NewString(),
		Name:   cmd.Item,
		Qty:    cmd.Quantity,
		Unit:   cmd.Unit,
		Source: "voice",
	}
	if err := d.shopping.Create(entry); err != nil {
		return err
	}

	result.Executed = true
	result.Message = fmt.Sprintf("Added %s to the shopping list", cmd.Item)
	result.Data = map[string]interface{}{"entry": entry}
	return nil
}

func (d *Dispatcher) addToInventory(result *Result, cmd core.VoiceCommand) error {
	if cmd.Item == "" {
		result.Message = "Which item should I add to the inventory?"
		return nil
	}

	qty := cmd.Quantity
	if qty == 0 {
		qty = 1
	}

	// Upsert: bump an existing item rather than duplicating it
	existing, err := d.items.GetByName(cmd.Item)
	switch err {
	case nil:
		updated, err := d.items.AdjustQty(existing.ID, qty)
		if err != nil {
			return err
		}
		result.Executed = true
		result.Message = fmt.Sprintf("%s is now at %g %s", updated.Name, updated.Qty, updated.Unit)
		result.Data = map[string]interface{}{"item": updated}
	case core.ErrItemNotFound:
		item := &core.Item{
			ID:   core.ItemID(uuid.NewString()),
			Name: cmd.Item,
			Qty:  qty,
			Unit: cmd.Unit,
		}
		if item.Unit == "" {
			item.Unit = "pcs"
		}
		item.Category = status.InferCategory(item.Name)
		item.Emoji = status.InferEmoji(item.Name)
		if err := d.items.Create(item); err != nil {
			return err
		}
		result.Executed = true
		result.Message = fmt.Sprintf("Added %s to the inventory", item.Name)
		result.Data = map[string]interface{}{"item": item}
	default:
		return err
	}
	return nil
}

func (d *Dispatcher) logUsage(result *Result, cmd core.VoiceCommand) error {
	if cmd.Item == "" {
		result.Message = "Which item did you use?"
		return nil
	}

	usageType := core.UsageConsumed
	if t, ok := cmd.Metadata["usageType"].(string); ok && t == string(core.UsageCooked) {
		usageType = core.UsageCooked
	}

	entry := &core.UsageEntry{
		ID:        uuid.NewString(),
		ItemName:  cmd.Item,
		Qty:       cmd.Quantity,
		Unit:      cmd.Unit,
		UsageType: usageType,
	}
	if err := d.usage.Append(entry); err != nil {
		return err
	}

	result.Executed = true
	result.Message = fmt.Sprintf("Logged usage of %s", cmd.Item)
	result.Data = map[string]interface{}{"usage": entry}

	// Decrement stock when the item is tracked; untracked names only log
	item, err := d.items.GetByName(cmd.Item)
	if err == core.ErrItemNotFound {
		return nil
	}
	if err != nil {
		return err
	}

	delta := cmd.Quantity
	if delta == 0 {
		delta = 1
	}
	updated, err := d.items.AdjustQty(item.ID, -delta)
	if err != nil {
		return err
	}
	result.Message = fmt.Sprintf("Logged usage of %s, %g %s left", updated.Name, updated.Qty, updated.Unit)
	result.Data["item"] = updated
	return nil
}

func (d *Dispatcher) createReminder(result *Result, cmd core.VoiceCommand) error {
	title := "Kitchen reminder"
	if cmd.Item != "" {
		title = fmt.Sprintf("Reminder: %s", cmd.Item)
	}

	// Fire tomorrow at the configured hour
	now := time.Now()
	due := time.Date(now.Year(), now.Month(), now.Day(), d.config.ReminderHour, 0, 0, 0, now.Location()).
		AddDate(0, 0, 1)

	reminder := &core.Reminder{
		ID:      uuid.NewString(),
		Title:   title,
		Message: cmd.RawText,
		DueAt:   due,
	}
	if err := d.reminders.Create(reminder); err != nil {
		return err
	}

	result.Executed = true
	result.Message = fmt.Sprintf("Reminder set for %s", due.Format("Mon 15:04"))
	result.Data = map[string]interface{}{"reminder": reminder}
	return nil
}

func (d *Dispatcher) checkStock(result *Result, cmd core.VoiceCommand) error {
	if cmd.Item == "" {
		result.Message = "Which item should I check?"
		return nil
	}

	item, err := d.items.GetByName(cmd.Item)
	if err == core.ErrItemNotFound {
		result.Executed = true
		result.Message = fmt.Sprintf("%s is not in the inventory", cmd.Item)
		return nil
	}
	if err != nil {
		return err
	}

	recalced := d.engine.Recalc([]core.Item{*item})[0]
	result.Executed = true
	result.Message = fmt.Sprintf("You have %g %s of %s (%s)",
		recalced.Qty, recalced.Unit, recalced.Name, recalced.Status)
	result.Data = map[string]interface{}{"item": recalced}
	return nil
}
