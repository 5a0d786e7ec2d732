package dto

// LikeResponse reports the full set after a toggle; likeCount is always
// len(likedBy).
type LikeResponse struct {
	LikedBy   []string `json:"likedBy"`
	LikeCount int      `json:"likeCount"`
	IsLiked   bool     `json:"isLiked"`
}
