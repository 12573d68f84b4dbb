package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post is immutable after creation; there is no update or delete path.
// Author is the denormalized username of whoever published it, not a
// reference into the users collection.
type Post struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string             `bson:"title" json:"title"`
	Content   string             `bson:"content" json:"content"`
	Author    string             `bson:"author" json:"author"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// EnrichedPost is a Post plus its live comment count, produced by the
// paginated listing pipeline. Never persisted.
type EnrichedPost struct {
	ID           primitive.ObjectID `bson:"_id" json:"id"`
	Title        string             `bson:"title" json:"title"`
	Content      string             `bson:"content" json:"content"`
	Author       string             `bson:"author" json:"author"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	CommentCount int64              `bson:"commentCount" json:"commentCount"`
}
