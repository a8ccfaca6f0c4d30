package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pantrykit/pantrykit/internal/actions"
	"github.com/pantrykit/pantrykit/internal/core"
	"github.com/pantrykit/pantrykit/internal/festivals"
	"github.com/pantrykit/pantrykit/internal/reminders"
	"github.com/pantrykit/pantrykit/internal/status"
	"github.com/pantrykit/pantrykit/internal/storage"
)

var apiNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

// testServer creates a fully wired server over an in-memory database
// with a fixed clock
func testServer(t *testing.T) (*Server, *storage.DB) {
	t.Helper()

	db, err := storage.Open(storage.Config{InMemory: true})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.Migrate(); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	engine := status.NewEngine(status.DefaultConfig())
	engine.SetNow(func() time.Time { return apiNow })

	dispatcher := actions.NewDispatcher(
		storage.NewItemStore(db),
		storage.NewShoppingStore(db),
		storage.NewReminderStore(db),
		storage.NewUsageStore(db),
		engine, actions.DefaultConfig())

	reminderService := reminders.NewService(
		storage.NewItemStore(db),
		storage.NewReminderStore(db),
		engine, reminders.DefaultServiceConfig())
	reminderService.SetNow(func() time.Time { return apiNow })

	festivalService := festivals.NewService()
	festivalService.SetNow(func() time.Time { return apiNow })

	srv := New(Config{
		Port:            0,
		DB:              db,
		Engine:          engine,
		Dispatcher:      dispatcher,
		ReminderService: reminderService,
		FestivalService: festivalService,
	})
	return srv, db
}

func doJSON(t *testing.T, srv *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewBuffer(data)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	srv.router.ServeHTTP(rr, req)
	return rr
}

// --- Items Tests ---

func TestAPI_CreateAndGetItem(t *testing.T) {
	srv, _ := testServer(t)

	rr := doJSON(t, srv, "POST", "/api/v1/items", map[string]interface{}{
		"name":   "Milk",
		"qty":    2,
		"unit":   "L",
		"expiry": "2026-03-16",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rr.Code, rr.Body.String())
	}

	var created core.Item
	json.Unmarshal(rr.Body.Bytes(), &created)

	if created.ID == "" {
		t.Fatal("created item should have an ID")
	}
	if created.Category != "dairy" {
		t.Errorf("Category = %q, want dairy", created.Category)
	}
	if created.Status != core.StatusExpiring {
		t.Errorf("Status = %q, want %q", created.Status, core.StatusExpiring)
	}
	if created.HeatScore == 0 {
		t.Error("heat score should be computed on create")
	}

	rr = doJSON(t, srv, "GET", "/api/v1/items/"+string(created.ID), nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
}

func TestAPI_CreateItem_Validation(t *testing.T) {
	srv, _ := testServer(t)

	// Missing name
	rr := doJSON(t, srv, "POST", "/api/v1/items", map[string]interface{}{"qty": 2})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("missing name: expected status 400, got %d", rr.Code)
	}

	// Malformed expiry is rejected, not silently dropped
	rr = doJSON(t, srv, "POST", "/api/v1/items", map[string]interface{}{
		"name":   "Milk",
		"expiry": "next tuesday",
	})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("bad expiry: expected status 400, got %d", rr.Code)
	}

	// No expiry at all is fine
	rr = doJSON(t, srv, "POST", "/api/v1/items", map[string]interface{}{
		"name": "Salt",
		"qty":  5,
	})
	if rr.Code != http.StatusCreated {
		t.Errorf("no expiry: expected status 201, got %d", rr.Code)
	}
}

func TestAPI_GetItems_Sorted(t *testing.T) {
	srv, db := testServer(t)
	items := storage.NewItemStore(db)

	fixtures := []*core.Item{
		{ID: "cool", Name: "Salt", Qty: 10},
		{ID: "hot", Name: "Milk", Qty: 0.5, Expiry: apiNow.Add(12 * time.Hour)},
	}
	for _, item := range fixtures {
		if err := items.Create(item); err != nil {
			t.Fatalf("Create(%s) error = %v", item.ID, err)
		}
	}

	rr := doJSON(t, srv, "GET", "/api/v1/items?sort=heat", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var resp struct {
		Items []core.Item `json:"items"`
		Count int         `json:"count"`
	}
	json.Unmarshal(rr.Body.Bytes(), &resp)

	if resp.Count != 2 {
		t.Fatalf("count = %d, want 2", resp.Count)
	}
	if resp.Items[0].ID != "hot" {
		t.Errorf("first item = %q, want hot (heat sort)", resp.Items[0].ID)
	}
}

func TestAPI_GetItem_NotFound(t *testing.T) {
	srv, _ := testServer(t)

	rr := doJSON(t, srv, "GET", "/api/v1/items/nonexistent", nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rr.Code)
	}
}

func TestAPI_UpdateItem(t *testing.T) {
	srv, db := testServer(t)

	err := storage.NewItemStore(db).Create(&core.Item{ID: "item-1", Name: "Rice", Qty: 5, Unit: "kg"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	rr := doJSON(t, srv, "PUT", "/api/v1/items/item-1", map[string]interface{}{
		"qty": 0.5,
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var updated core.Item
	json.Unmarshal(rr.Body.Bytes(), &updated)

	if updated.Qty != 0.5 {
		t.Errorf("Qty = %v, want 0.5", updated.Qty)
	}
	if updated.Status != core.StatusLow {
		t.Errorf("Status = %q, want %q (recalculated)", updated.Status, core.StatusLow)
	}
	// Untouched fields survive
	if updated.Name != "Rice" {
		t.Errorf("Name = %q, want Rice", updated.Name)
	}
}

func TestAPI_DeleteItem(t *testing.T) {
	srv, db := testServer(t)

	err := storage.NewItemStore(db).Create(&core.Item{ID: "item-1", Name: "Rice", Qty: 5})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	rr := doJSON(t, srv, "DELETE", "/api/v1/items/item-1", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	rr = doJSON(t, srv, "DELETE", "/api/v1/items/item-1", nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("second delete: expected status 404, got %d", rr.Code)
	}
}

func TestAPI_ConsumeItem(t *testing.T) {
	srv, db := testServer(t)

	err := storage.NewItemStore(db).Create(&core.Item{ID: "item-1", Name: "Milk", Qty: 3, Unit: "L"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	rr := doJSON(t, srv, "POST", "/api/v1/items/item-1/consume", map[string]interface{}{"qty": 1})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var item core.Item
	json.Unmarshal(rr.Body.Bytes(), &item)
	if item.Qty != 2 {
		t.Errorf("Qty = %v, want 2", item.Qty)
	}
}

// --- Voice Tests ---

func TestAPI_VoiceCommand_PreviewOnly(t *testing.T) {
	srv, db := testServer(t)

	rr := doJSON(t, srv, "POST", "/api/v1/voice/command", map[string]interface{}{
		"text": "add 2 kg rice to shopping list",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var resp struct {
		Command core.VoiceCommand `json:"command"`
		Level   string            `json:"level"`
	}
	json.Unmarshal(rr.Body.Bytes(), &resp)

	if resp.Command.Action != core.ActionAddToShopping {
		t.Errorf("Action = %q, want %q", resp.Command.Action, core.ActionAddToShopping)
	}
	if resp.Level != "high" {
		t.Errorf("Level = %q, want high", resp.Level)
	}

	// Preview must not touch the shopping list
	pending, _ := storage.NewShoppingStore(db).GetPending()
	if len(pending) != 0 {
		t.Errorf("preview created %d entries, want 0", len(pending))
	}
}

func TestAPI_VoiceCommand_Execute(t *testing.T) {
	srv, db := testServer(t)

	rr := doJSON(t, srv, "POST", "/api/v1/voice/command", map[string]interface{}{
		"text":    "add 2 kg rice to shopping list",
		"execute": true,
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	pending, _ := storage.NewShoppingStore(db).GetPending()
	if len(pending) != 1 {
		t.Fatalf("pending = %d, want 1", len(pending))
	}
	if pending[0].Name != "Rice" {
		t.Errorf("Name = %q, want Rice", pending[0].Name)
	}
}

func TestAPI_VoiceCommand_EmptyText(t *testing.T) {
	srv, _ := testServer(t)

	rr := doJSON(t, srv, "POST", "/api/v1/voice/command", map[string]interface{}{"text": ""})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rr.Code)
	}
}

// --- Shopping Tests ---

func TestAPI_ShoppingLifecycle(t *testing.T) {
	srv, _ := testServer(t)

	rr := doJSON(t, srv, "POST", "/api/v1/shopping", map[string]interface{}{
		"name": "Rice",
		"qty":  2,
		"unit": "kg",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rr.Code)
	}

	var entry core.ShoppingEntry
	json.Unmarshal(rr.Body.Bytes(), &entry)
	if entry.Source != "manual" {
		t.Errorf("Source = %q, want manual", entry.Source)
	}

	rr = doJSON(t, srv, "POST", "/api/v1/shopping/"+entry.ID+"/purchase", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("purchase: expected status 200, got %d", rr.Code)
	}

	rr = doJSON(t, srv, "GET", "/api/v1/shopping", nil)
	var resp struct {
		Count int `json:"count"`
	}
	json.Unmarshal(rr.Body.Bytes(), &resp)
	if resp.Count != 0 {
		t.Errorf("pending count = %d, want 0 after purchase", resp.Count)
	}
}

// --- Reminder Tests ---

func TestAPI_SweepAndListReminders(t *testing.T) {
	srv, db := testServer(t)

	err := storage.NewItemStore(db).Create(&core.Item{
		ID: "item-1", Name: "Milk", Qty: 2, Unit: "L",
		Expiry: apiNow.Add(12 * time.Hour),
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	rr := doJSON(t, srv, "POST", "/api/v1/reminders/sweep", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("sweep: expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var sweepResp struct {
		Created int `json:"created"`
	}
	json.Unmarshal(rr.Body.Bytes(), &sweepResp)
	if sweepResp.Created != 1 {
		t.Errorf("created = %d, want 1", sweepResp.Created)
	}

	rr = doJSON(t, srv, "GET", "/api/v1/reminders", nil)
	var listResp struct {
		Reminders []core.Reminder `json:"reminders"`
	}
	json.Unmarshal(rr.Body.Bytes(), &listResp)
	if len(listResp.Reminders) != 1 {
		t.Fatalf("reminders = %d, want 1", len(listResp.Reminders))
	}

	rr = doJSON(t, srv, "POST", fmt.Sprintf("/api/v1/reminders/%s/done", listResp.Reminders[0].ID), nil)
	if rr.Code != http.StatusOK {
		t.Errorf("done: expected status 200, got %d", rr.Code)
	}
}

// --- Festival Tests ---

func TestAPI_GetFestivals(t *testing.T) {
	srv, _ := testServer(t)

	rr := doJSON(t, srv, "GET", "/api/v1/festivals?days=30", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var resp struct {
		Upcoming []festivals.Upcoming `json:"upcoming"`
	}
	json.Unmarshal(rr.Body.Bytes(), &resp)

	// Mar 15 +30 days covers Eid on Mar 30
	if len(resp.Upcoming) != 1 || resp.Upcoming[0].ID != "eid" {
		t.Errorf("upcoming = %+v, want [eid]", resp.Upcoming)
	}
}

func TestAPI_FestivalShopping(t *testing.T) {
	srv, db := testServer(t)

	rr := doJSON(t, srv, "POST", "/api/v1/festivals/diwali/shopping", nil)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rr.Code, rr.Body.String())
	}

	pending, _ := storage.NewShoppingStore(db).GetPending()
	if len(pending) == 0 {
		t.Fatal("festival items should land on the shopping list")
	}
	for _, e := range pending {
		if e.Source != "festival" {
			t.Errorf("Source = %q, want festival", e.Source)
		}
	}

	rr = doJSON(t, srv, "POST", "/api/v1/festivals/bogus/shopping", nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("unknown festival: expected status 404, got %d", rr.Code)
	}
}

// --- Stats Tests ---

func TestAPI_GetStats(t *testing.T) {
	srv, db := testServer(t)
	items := storage.NewItemStore(db)

	fixtures := []*core.Item{
		{ID: "1", Name: "Milk", Qty: 2, Expiry: apiNow.Add(12 * time.Hour)},
		{ID: "2", Name: "Rice", Qty: 10},
	}
	for _, item := range fixtures {
		if err := items.Create(item); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	rr := doJSON(t, srv, "GET", "/api/v1/stats", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var resp struct {
		TotalItems    int            `json:"total_items"`
		ItemsByStatus map[string]int `json:"items_by_status"`
	}
	json.Unmarshal(rr.Body.Bytes(), &resp)

	if resp.TotalItems != 2 {
		t.Errorf("total_items = %d, want 2", resp.TotalItems)
	}
	if resp.ItemsByStatus[string(core.StatusExpiring)] != 1 {
		t.Errorf("expiring count = %d, want 1", resp.ItemsByStatus[string(core.StatusExpiring)])
	}
}
