package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/serenspace/serenspace/models"
	"github.com/serenspace/serenspace/repos"
	"github.com/serenspace/serenspace/utils"
)

// feedLimit caps the community feed at the newest posts.
const feedLimit = 50

const feedCacheKey = "cache:posts:feed"

// PostController manages the anonymous community feed.
type PostController struct {
	db *gorm.DB
}

// NewPostController creates a new PostController instance.
func NewPostController(db *gorm.DB) *PostController {
	return &PostController{db: db}
}

// CreatePost publishes a post to the community feed. Posts are anonymous by
// default; the display name is frozen at creation time.
func (p *PostController) CreatePost(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		Content     string `json:"content" binding:"required"`
		IsAnonymous *bool  `json:"is_anonymous"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40040, "invalid request payload")
		return
	}

	content := utils.Sanitize(strings.TrimSpace(req.Content))
	if content == "" {
		utils.Error(ctx, http.StatusBadRequest, 40041, "content cannot be empty")
		return
	}

	isAnonymous := true
	if req.IsAnonymous != nil {
		isAnonymous = *req.IsAnonymous
	}

	displayName := "Anonymous"
	if !isAnonymous {
		if name := getDisplayName(ctx); name != "" {
			displayName = name
		} else {
			displayName = "User"
		}
	}

	post := models.Post{
		AuthorID:    userID,
		Content:     content,
		IsAnonymous: isAnonymous,
		DisplayName: displayName,
		LikedBy:     []string{},
	}

	if err := p.db.Create(&post).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50050, "failed to create post")
		return
	}

	utils.InvalidateByPrefix(feedCacheKey)

	utils.Respond(ctx, http.StatusCreated, 0, "post created", gin.H{"post": post})
}

// ListPosts returns the community feed: the newest posts that are neither
// soft-deleted nor moderated away.
func (p *PostController) ListPosts(ctx *gin.Context) {
	if b, ok := utils.CacheGetBytes(feedCacheKey); ok {
		ctx.Data(200, "application/json", b)
		return
	}

	var posts []models.Post
	if err := p.db.
		Where("is_deleted = ? AND is_moderated = ?", false, false).
		Order("created_at DESC").
		Limit(feedLimit).
		Find(&posts).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50051, "failed to fetch posts")
		return
	}

	payload := gin.H{"items": posts}
	wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: payload}
	utils.CacheSetJSON(feedCacheKey, wrapper, 5*time.Minute)
	utils.Success(ctx, payload)
}

// ListMyPosts returns the caller's posts, soft-deleted ones excluded.
func (p *PostController) ListMyPosts(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var posts []models.Post
	if err := p.db.
		Where("author_id = ? AND is_deleted = ?", userID, false).
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50052, "failed to fetch your posts")
		return
	}

	utils.Success(ctx, gin.H{"items": posts})
}

// ToggleLike likes the post when the caller has not liked it yet, and removes
// the like otherwise. The row lock keeps the counter and the liked_by list in
// step under concurrent taps.
func (p *PostController) ToggleLike(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	id, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40042, "invalid post id")
		return
	}

	var liked bool
	err := p.db.Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := repos.LockForUpdate(tx).
			Where("id = ? AND is_deleted = ?", id, false).
			First(&post).Error; err != nil {
			return err
		}

		delta := 1
		if utils.ContainsString(post.LikedBy, userID) {
			post.LikedBy = utils.RemoveString(post.LikedBy, userID)
			delta = -1
			liked = false
		} else {
			post.LikedBy = append(post.LikedBy, userID)
			liked = true
		}

		return tx.Model(&models.Post{}).Where("id = ?", id).Updates(map[string]interface{}{
			"likes":    gorm.Expr("likes + ?", delta),
			"liked_by": post.LikedBy,
		}).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40403, "post not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50053, "failed to toggle like")
		return
	}

	utils.InvalidateByPrefix(feedCacheKey)
	utils.Success(ctx, gin.H{"liked": liked})
}

// DeletePost soft-deletes a post the caller owns; the row stays for
// moderation history.
func (p *PostController) DeletePost(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	id, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40042, "invalid post id")
		return
	}

	res := p.db.Model(&models.Post{}).
		Where("id = ? AND author_id = ? AND is_deleted = ?", id, userID, false).
		Update("is_deleted", true)
	if res.Error != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50054, "failed to delete post")
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(ctx, http.StatusNotFound, 40403, "post not found")
		return
	}

	utils.InvalidateByPrefix(feedCacheKey)
	utils.Success(ctx, gin.H{"message": "post deleted"})
}

// ReportPost files a moderation report against a post.
func (p *PostController) ReportPost(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	id, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40042, "invalid post id")
		return
	}

	var post models.Post
	if err := p.db.Where("id = ? AND is_deleted = ?", id, false).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40403, "post not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50055, "failed to load post")
		return
	}

	report := models.Report{PostID: post.ID, ReportedBy: userID}
	if err := p.db.Create(&report).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50056, "failed to report post")
		return
	}

	utils.Success(ctx, gin.H{"message": "post reported"})
}
