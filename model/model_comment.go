package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Comment back-references its post via post_id. The post keeps the forward
// reference in comment_ids; both sides are maintained by the comment service.
type Comment struct {
	ID        bson.ObjectID   `json:"id"        bson:"_id,omitempty"`
	Content   string          `json:"content"   bson:"content"`
	AuthorID  bson.ObjectID   `json:"authorId"  bson:"author_id"`
	PostID    bson.ObjectID   `json:"postId"    bson:"post_id"`
	LikedBy   []bson.ObjectID `json:"likedBy"   bson:"liked_by"`
	CreatedAt time.Time       `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time       `json:"updatedAt" bson:"updated_at"`
}

func (c *Comment) LikeCount() int { return len(c.LikedBy) }

func (c *Comment) IsLikedBy(userID bson.ObjectID) bool {
	for _, id := range c.LikedBy {
		if id == userID {
			return true
		}
	}
	return false
}
