package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Derived aggregate rows. All of these are computed per request from the
// live posts/comments collections and never persisted.

type AuthorPostCount struct {
	Author    string `bson:"_id" json:"author"`
	PostCount int64  `bson:"postCount" json:"postCount"`
}

type CommentedPost struct {
	ID           primitive.ObjectID `bson:"_id" json:"id"`
	Title        string             `bson:"title" json:"title"`
	Author       string             `bson:"author" json:"author"`
	CreatedAt    time.Time          `bson:"createdAt" json:"-"`
	CommentCount int64              `bson:"commentCount" json:"commentCount"`
}

// DayCount is one bucket of the posts-per-day histogram. Day is a local
// calendar date formatted YYYY-MM-DD.
type DayCount struct {
	Day   string `bson:"_id" json:"day"`
	Count int64  `bson:"count" json:"count"`
}
