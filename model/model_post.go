package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Post struct {
	ID            bson.ObjectID   `json:"id"            bson:"_id,omitempty"`
	Title         string          `json:"title"         bson:"title"`
	Content       string          `json:"content"       bson:"content"`
	FeaturedImage string          `json:"featuredImage" bson:"featured_image"`
	Tags          []string        `json:"tags"          bson:"tags"`
	AuthorID      bson.ObjectID   `json:"authorId"      bson:"author_id"`
	LikedBy       []bson.ObjectID `json:"likedBy"       bson:"liked_by"`
	CommentIDs    []bson.ObjectID `json:"commentIds"    bson:"comment_ids"`
	CreatedAt     time.Time       `json:"createdAt"     bson:"created_at"`
	UpdatedAt     time.Time       `json:"updatedAt"     bson:"updated_at"`
}

// LikeCount is always derived from liked_by. There is no stored counter
// field, so the count cannot drift from the set.
func (p *Post) LikeCount() int { return len(p.LikedBy) }

func (p *Post) CommentCount() int { return len(p.CommentIDs) }

// IsLikedBy reports whether userID is a member of liked_by.
func (p *Post) IsLikedBy(userID bson.ObjectID) bool {
	for _, id := range p.LikedBy {
		if id == userID {
			return true
		}
	}
	return false
}

// ListFilter is the query shape for the posts listing surface.
// Tag and Search combine with AND when both are set.
type ListFilter struct {
	Tag      string
	Search   string
	AuthorID bson.ObjectID
	Page     int64
	Limit    int64
}
