package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/serenspace/serenspace/models"
)

func createPost(t *testing.T, r *gin.Engine, body gin.H) {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/v1/posts", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("create post: status=%d body=%s", w.Code, w.Body.String())
	}
}

func TestCreatePost_AnonymousByDefault(t *testing.T) {
	db := testDB(t)
	r := testRouter(t, db, testUID)

	createPost(t, r, gin.H{"content": "feeling better this week"})

	var post models.Post
	if err := db.First(&post, "author_id = ?", testUID).Error; err != nil {
		t.Fatalf("load post: %v", err)
	}
	if !post.IsAnonymous {
		t.Fatal("post should default to anonymous")
	}
	if post.DisplayName != "Anonymous" {
		t.Fatalf("display name: got=%q want=Anonymous", post.DisplayName)
	}
}

func TestCreatePost_NamedUsesTokenDisplayName(t *testing.T) {
	db := testDB(t)
	r := testRouter(t, db, testUID)

	anon := false
	createPost(t, r, gin.H{"content": "hello all", "is_anonymous": anon})

	var post models.Post
	if err := db.First(&post, "author_id = ?", testUID).Error; err != nil {
		t.Fatalf("load post: %v", err)
	}
	if post.IsAnonymous {
		t.Fatal("post should not be anonymous")
	}
	if post.DisplayName != "Tester" {
		t.Fatalf("display name: got=%q want=Tester", post.DisplayName)
	}
}

func TestCreatePost_RejectsEmptyContent(t *testing.T) {
	r := testRouter(t, testDB(t), testUID)

	w := doJSON(t, r, http.MethodPost, "/api/v1/posts", gin.H{"content": "   "})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("blank content: status=%d body=%s", w.Code, w.Body.String())
	}
	w = doJSON(t, r, http.MethodPost, "/api/v1/posts", gin.H{})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing content: status=%d body=%s", w.Code, w.Body.String())
	}
}

func TestListPosts_ExcludesDeletedAndModerated(t *testing.T) {
	db := testDB(t)
	r := testRouter(t, db, testUID)

	createPost(t, r, gin.H{"content": "visible post"})
	createPost(t, r, gin.H{"content": "will be hidden"})

	if err := db.Model(&models.Post{}).Where("content = ?", "will be hidden").
		Update("is_moderated", true).Error; err != nil {
		t.Fatalf("moderate: %v", err)
	}

	w := doJSON(t, r, http.MethodGet, "/api/v1/posts", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	data := dataOf(t, w)
	items, _ := data["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("feed items: got=%d want=1", len(items))
	}
}

func TestToggleLike_RoundTrip(t *testing.T) {
	db := testDB(t)
	author := testRouter(t, db, "author")
	liker := testRouter(t, db, "liker")

	createPost(t, author, gin.H{"content": "like me"})
	var post models.Post
	if err := db.First(&post).Error; err != nil {
		t.Fatalf("load post: %v", err)
	}
	path := fmt.Sprintf("/api/v1/posts/%d/like", post.ID)

	w := doJSON(t, liker, http.MethodPost, path, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("like: status=%d body=%s", w.Code, w.Body.String())
	}
	if data := dataOf(t, w); data["liked"] != true {
		t.Fatalf("first toggle: got=%v want=true", data["liked"])
	}

	if err := db.First(&post, post.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if post.Likes != 1 || len(post.LikedBy) != 1 || post.LikedBy[0] != "liker" {
		t.Fatalf("after like: likes=%d liked_by=%v", post.Likes, post.LikedBy)
	}

	w = doJSON(t, liker, http.MethodPost, path, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("unlike: status=%d body=%s", w.Code, w.Body.String())
	}
	if data := dataOf(t, w); data["liked"] != false {
		t.Fatalf("second toggle: got=%v want=false", data["liked"])
	}

	if err := db.First(&post, post.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if post.Likes != 0 || len(post.LikedBy) != 0 {
		t.Fatalf("after unlike: likes=%d liked_by=%v", post.Likes, post.LikedBy)
	}
}

func TestToggleLike_MissingPost(t *testing.T) {
	r := testRouter(t, testDB(t), testUID)
	w := doJSON(t, r, http.MethodPost, "/api/v1/posts/9999/like", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
}

func TestDeletePost_SoftDeleteOwnerOnly(t *testing.T) {
	db := testDB(t)
	author := testRouter(t, db, "author")
	stranger := testRouter(t, db, "stranger")

	createPost(t, author, gin.H{"content": "temporary"})
	var post models.Post
	if err := db.First(&post).Error; err != nil {
		t.Fatalf("load post: %v", err)
	}
	path := fmt.Sprintf("/api/v1/posts/%d", post.ID)

	if w := doJSON(t, stranger, http.MethodDelete, path, nil); w.Code != http.StatusNotFound {
		t.Fatalf("foreign delete: status=%d", w.Code)
	}
	if w := doJSON(t, author, http.MethodDelete, path, nil); w.Code != http.StatusOK {
		t.Fatalf("owner delete: status=%d body=%s", w.Code, w.Body.String())
	}

	// Soft delete: the row survives for moderation history.
	if err := db.First(&post, post.ID).Error; err != nil {
		t.Fatalf("row gone after soft delete: %v", err)
	}
	if !post.IsDeleted {
		t.Fatal("post not flagged deleted")
	}

	// And a second delete reads as not found.
	if w := doJSON(t, author, http.MethodDelete, path, nil); w.Code != http.StatusNotFound {
		t.Fatalf("double delete: status=%d", w.Code)
	}
}

func TestReportPost(t *testing.T) {
	db := testDB(t)
	author := testRouter(t, db, "author")
	reporter := testRouter(t, db, "reporter")

	createPost(t, author, gin.H{"content": "questionable"})
	var post models.Post
	if err := db.First(&post).Error; err != nil {
		t.Fatalf("load post: %v", err)
	}

	w := doJSON(t, reporter, http.MethodPost, fmt.Sprintf("/api/v1/posts/%d/report", post.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("report: status=%d body=%s", w.Code, w.Body.String())
	}

	var report models.Report
	if err := db.First(&report, "post_id = ?", post.ID).Error; err != nil {
		t.Fatalf("report row: %v", err)
	}
	if report.ReportedBy != "reporter" {
		t.Fatalf("reported_by: got=%q", report.ReportedBy)
	}

	w = doJSON(t, reporter, http.MethodPost, "/api/v1/posts/9999/report", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("missing post: status=%d", w.Code)
	}
}
