package dto

type CreateCommentDTO struct {
	PostID  string `json:"postId" validate:"required"`
	Content string `json:"content" validate:"required,min=1,max=2000"`
}

type UpdateCommentDTO struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
}

type CommentResponse struct {
	ID        string     `json:"id"`
	Content   string     `json:"content"`
	Author    AuthorInfo `json:"author"`
	PostID    string     `json:"postId"`
	LikedBy   []string   `json:"likedBy"`
	LikeCount int        `json:"likeCount"`
	CreatedAt string     `json:"createdAt"`
	UpdatedAt string     `json:"updatedAt"`
}

type ListCommentsResp[T any] struct {
	Comments   []T     `json:"comments"`
	NextCursor *string `json:"next_cursor"`
	HasMore    bool    `json:"has_more"`
}
