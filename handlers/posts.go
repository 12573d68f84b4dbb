package handlers

import (
	"log"
	"net/http"
	"time"

	"miniblog/middleware"
	"miniblog/models"
	"miniblog/query"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type CreatePostRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type AddCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

func (h *Handler) CreatePost(c *gin.Context) {
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	author := c.GetString(middleware.CtxUsername)
	if author == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	post := models.Post{
		ID:        primitive.NewObjectID(),
		Title:     req.Title,
		Content:   req.Content,
		Author:    author,
		CreatedAt: time.Now(),
	}

	if _, err := h.Store.Posts.InsertOne(ctx, post); err != nil {
		log.Printf("CreatePost error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	c.JSON(http.StatusCreated, post)
}

func (h *Handler) AddComment(c *gin.Context) {
	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	commenter := c.GetString(middleware.CtxUsername)
	if commenter == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	// Posts are never deleted, so existence here is stable
	err = h.Store.Posts.FindOne(ctx, bson.M{"_id": postID}).Err()
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	if err != nil {
		log.Printf("AddComment lookup error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add comment"})
		return
	}

	comment := models.Comment{
		ID:        primitive.NewObjectID(),
		PostID:    postID,
		Text:      req.Text,
		Commenter: commenter,
		CreatedAt: time.Now(),
	}

	if _, err := h.Store.Comments.InsertOne(ctx, comment); err != nil {
		log.Printf("AddComment insert error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add comment"})
		return
	}

	c.JSON(http.StatusCreated, comment)
}

func (h *Handler) ListPosts(c *gin.Context) {
	var raw query.RawListQuery
	// All fields are plain strings; binding cannot fail, and bad values
	// are normalized by the builder rather than rejected.
	_ = c.ShouldBindQuery(&raw)
	q := query.Build(raw)

	ctx, cancel := requestContext()
	defer cancel()

	items, total, err := h.Engine.ListPosts(ctx, q)
	if err != nil {
		log.Printf("ListPosts error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"total": total,
		"page":  q.Page,
		"limit": q.Limit,
	})
}
