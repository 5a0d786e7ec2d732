package dto

// ===== Request =====

type CreatePostDTO struct {
	Title         string   `json:"title" validate:"required,min=3,max=100"`
	Content       string   `json:"content" validate:"required,min=10"`
	FeaturedImage string   `json:"featuredImage"`
	Tags          []string `json:"tags"`
}

// UpdatePostDTO uses pointers so an absent field leaves the stored value
// untouched, while an explicit empty string clears it (featuredImage).
type UpdatePostDTO struct {
	Title         *string   `json:"title"`
	Content       *string   `json:"content"`
	FeaturedImage *string   `json:"featuredImage"`
	Tags          *[]string `json:"tags"`
}

// ===== Response =====

// AuthorInfo is the display projection of a user embedded in post and
// comment responses. Never the full user record.
type AuthorInfo struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	ProfilePicture string `json:"profilePicture"`
}

type PostResponse struct {
	ID            string            `json:"id"`
	Title         string            `json:"title"`
	Content       string            `json:"content"`
	FeaturedImage string            `json:"featuredImage"`
	Tags          []string          `json:"tags"`
	Author        AuthorInfo        `json:"author"`
	LikedBy       []string          `json:"likedBy"`
	LikeCount     int               `json:"likeCount"`
	Comments      []CommentResponse `json:"comments"`
	CommentCount  int               `json:"commentCount"`
	CreatedAt     string            `json:"createdAt" example:"2025-09-07T13:47:47Z"`
	UpdatedAt     string            `json:"updatedAt" example:"2025-09-07T13:47:47Z"`
}

type Pagination struct {
	Total int64 `json:"total"`
	Page  int64 `json:"page"`
	Pages int64 `json:"pages"`
}

type ListPostsResponse struct {
	Posts      []PostResponse `json:"posts"`
	Pagination Pagination     `json:"pagination"`
}
