package handlers

import (
	"context"
	"time"

	"miniblog/analytics"
	"miniblog/config"
	"miniblog/database"
)

// Handler carries the dependencies every route needs. Construct once in
// main, wire through routes.SetupRouter.
type Handler struct {
	Cfg    *config.Config
	Store  *database.Store
	Engine *analytics.Engine
}

func New(cfg *config.Config, store *database.Store) *Handler {
	return &Handler{
		Cfg:    cfg,
		Store:  store,
		Engine: analytics.NewEngine(store.Posts, store.Comments),
	}
}

// requestContext bounds every store round-trip for a single request.
func requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}
