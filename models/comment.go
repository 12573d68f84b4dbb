package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment references an existing Post by ID. Posts are never deleted, so
// there is no cascade to worry about.
type Comment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PostID    primitive.ObjectID `bson:"postId" json:"postId"`
	Text      string             `bson:"text" json:"text"`
	Commenter string             `bson:"commenter" json:"commenter"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
