package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/serenspace/serenspace/models"
)

func seedTools(t *testing.T, r *gin.Engine) {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/v1/tools/seed", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("seed: status=%d body=%s", w.Code, w.Body.String())
	}
}

func TestSeedTools_Idempotent(t *testing.T) {
	db := testDB(t)
	r := testRouter(t, db, testUID)

	seedTools(t, r)
	seedTools(t, r)

	var count int64
	if err := db.Model(&models.CopingTool{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if want := int64(len(DefaultTools())); count != want {
		t.Fatalf("tools: got=%d want=%d", count, want)
	}
}

func TestListTools_Filters(t *testing.T) {
	db := testDB(t)
	r := testRouter(t, db, testUID)
	seedTools(t, r)

	w := doJSON(t, r, http.MethodGet, "/api/v1/tools", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	items, _ := dataOf(t, w)["items"].([]interface{})
	if len(items) != len(DefaultTools()) {
		t.Fatalf("all tools: got=%d want=%d", len(items), len(DefaultTools()))
	}

	w = doJSON(t, r, http.MethodGet, "/api/v1/tools?category=breathing", nil)
	items, _ = dataOf(t, w)["items"].([]interface{})
	if len(items) != 2 {
		t.Fatalf("breathing tools: got=%d want=2", len(items))
	}

	w = doJSON(t, r, http.MethodGet, "/api/v1/tools?difficulty=medium", nil)
	items, _ = dataOf(t, w)["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("medium tools: got=%d want=1", len(items))
	}
}

func TestListTools_HidesPremium(t *testing.T) {
	db := testDB(t)
	r := testRouter(t, db, testUID)
	seedTools(t, r)

	if err := db.Model(&models.CopingTool{}).Where("title = ?", "Box Breathing").
		Update("is_premium", true).Error; err != nil {
		t.Fatalf("flag premium: %v", err)
	}

	w := doJSON(t, r, http.MethodGet, "/api/v1/tools", nil)
	items, _ := dataOf(t, w)["items"].([]interface{})
	if len(items) != len(DefaultTools())-1 {
		t.Fatalf("tools: got=%d want=%d", len(items), len(DefaultTools())-1)
	}
}

func TestGetTool(t *testing.T) {
	db := testDB(t)
	r := testRouter(t, db, testUID)
	seedTools(t, r)

	var tool models.CopingTool
	if err := db.First(&tool, "title = ?", "4-7-8 Breathing").Error; err != nil {
		t.Fatalf("load tool: %v", err)
	}

	w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/tools/%d", tool.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/api/v1/tools/9999", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("missing tool: status=%d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/v1/tools/abc", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad id: status=%d", w.Code)
	}
}

func TestListCategories(t *testing.T) {
	r := testRouter(t, testDB(t), testUID)

	w := doJSON(t, r, http.MethodGet, "/api/v1/tools/meta/categories", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	env := decodeEnvelope(t, w)
	items, _ := env["data"].([]interface{})
	if len(items) != len(models.ToolCategories) {
		t.Fatalf("categories: got=%d want=%d", len(items), len(models.ToolCategories))
	}
}
