package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/serenspace/serenspace/models"
)

func TestGenerateInsights_EmptyHistory(t *testing.T) {
	db := testDB(t)
	r := testRouter(t, db, testUID)

	w := doJSON(t, r, http.MethodPost, "/api/v1/insights/generate", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	data := dataOf(t, w)
	items, ok := data["items"].([]interface{})
	if !ok {
		t.Fatalf("items missing: %v", data)
	}
	if len(items) != 0 {
		t.Fatalf("items: got=%d want=0", len(items))
	}
}

func TestGenerateInsights_ProducesBatchOfThree(t *testing.T) {
	db := testDB(t)
	r := testRouter(t, db, testUID)

	checkIn(t, r, 8, "happy")
	checkIn(t, r, 4, "sad")

	w := doJSON(t, r, http.MethodPost, "/api/v1/insights/generate", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	data := dataOf(t, w)
	items, _ := data["items"].([]interface{})
	if len(items) != 3 {
		t.Fatalf("items: got=%d want=3", len(items))
	}

	// Regenerating replaces the batch instead of stacking a second one.
	w = doJSON(t, r, http.MethodPost, "/api/v1/insights/generate", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("regenerate: status=%d", w.Code)
	}
	var count int64
	if err := db.Model(&models.Insight{}).Where("user_id = ?", testUID).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 3 {
		t.Fatalf("stored insights: got=%d want=3", count)
	}
}

func TestMarkInsightRead(t *testing.T) {
	db := testDB(t)
	owner := testRouter(t, db, testUID)
	stranger := testRouter(t, db, "someone-else")

	checkIn(t, owner, 6, "calm")
	if w := doJSON(t, owner, http.MethodPost, "/api/v1/insights/generate", nil); w.Code != http.StatusOK {
		t.Fatalf("generate: status=%d", w.Code)
	}

	var insight models.Insight
	if err := db.First(&insight, "user_id = ?", testUID).Error; err != nil {
		t.Fatalf("load insight: %v", err)
	}
	path := fmt.Sprintf("/api/v1/insights/%d/read", insight.ID)

	if w := doJSON(t, stranger, http.MethodPut, path, nil); w.Code != http.StatusNotFound {
		t.Fatalf("foreign mark read: status=%d", w.Code)
	}
	if w := doJSON(t, owner, http.MethodPut, path, nil); w.Code != http.StatusOK {
		t.Fatalf("owner mark read: status=%d body=%s", w.Code, w.Body.String())
	}

	var reloaded models.Insight
	if err := db.First(&reloaded, insight.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !reloaded.IsRead {
		t.Fatal("insight not marked read")
	}
}

func TestProfileMe(t *testing.T) {
	db := testDB(t)
	r := testRouter(t, db, testUID)

	// Never checked in: zeroed counters, not a 404.
	w := doJSON(t, r, http.MethodGet, "/api/v1/profile", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	data := dataOf(t, w)
	if data["uid"] != testUID {
		t.Fatalf("uid: got=%v", data["uid"])
	}
	if data["streak_days"] != float64(0) || data["total_check_ins"] != float64(0) {
		t.Fatalf("fresh profile counters: %v", data)
	}
	if data["last_check_in"] != nil {
		t.Fatalf("fresh last_check_in: got=%v want=null", data["last_check_in"])
	}

	checkIn(t, r, 7, "happy")

	w = doJSON(t, r, http.MethodGet, "/api/v1/profile", nil)
	data = dataOf(t, w)
	if data["streak_days"] != float64(1) || data["total_check_ins"] != float64(1) {
		t.Fatalf("counters after check-in: %v", data)
	}
	if data["last_check_in"] == nil {
		t.Fatal("last_check_in still null after check-in")
	}
}
