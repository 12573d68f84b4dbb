package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (h *Handler) TopAuthors(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	authors, err := h.Engine.TopAuthors(ctx)
	if err != nil {
		log.Printf("TopAuthors error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch analytics"})
		return
	}

	c.JSON(http.StatusOK, authors)
}

func (h *Handler) TopCommented(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	posts, err := h.Engine.TopCommented(ctx)
	if err != nil {
		log.Printf("TopCommented error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch analytics"})
		return
	}

	c.JSON(http.StatusOK, posts)
}

func (h *Handler) PostsPerDay(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	days, err := h.Engine.PostsPerDay(ctx, time.Now())
	if err != nil {
		log.Printf("PostsPerDay error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch analytics"})
		return
	}

	c.JSON(http.StatusOK, days)
}
