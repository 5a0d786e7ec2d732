package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"blog_platform/dto"
	"blog_platform/internal/repository"
	"blog_platform/model"
)

// Read-side join: author ids are expanded to the display projection at
// response time, never stored on the entity.

func toAuthorInfo(u *model.User) dto.AuthorInfo {
	return dto.AuthorInfo{
		ID:             u.ID.Hex(),
		Username:       u.Username,
		ProfilePicture: u.ProfilePicture,
	}
}

// loadAuthors fetches the users for a set of ids and keys them by id.
// Ids that no longer resolve simply stay absent from the map; callers
// fall back to an id-only projection for those.
func loadAuthors(ctx context.Context, users repository.UserRepository, ids []bson.ObjectID) (map[bson.ObjectID]dto.AuthorInfo, error) {
	seen := make(map[bson.ObjectID]struct{}, len(ids))
	uniq := make([]bson.ObjectID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		uniq = append(uniq, id)
	}

	list, err := users.ListByIDs(ctx, uniq)
	if err != nil {
		return nil, err
	}

	out := make(map[bson.ObjectID]dto.AuthorInfo, len(list))
	for i := range list {
		out[list[i].ID] = toAuthorInfo(&list[i])
	}
	return out, nil
}

func authorOrFallback(authors map[bson.ObjectID]dto.AuthorInfo, id bson.ObjectID) dto.AuthorInfo {
	if a, ok := authors[id]; ok {
		return a
	}
	return dto.AuthorInfo{ID: id.Hex()}
}

func hexIDs(ids []bson.ObjectID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.Hex())
	}
	return out
}

func toCommentResponse(c *model.Comment, author dto.AuthorInfo) dto.CommentResponse {
	return dto.CommentResponse{
		ID:        c.ID.Hex(),
		Content:   c.Content,
		Author:    author,
		PostID:    c.PostID.Hex(),
		LikedBy:   hexIDs(c.LikedBy),
		LikeCount: c.LikeCount(),
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
		UpdatedAt: c.UpdatedAt.Format(time.RFC3339),
	}
}

func toPostResponse(p *model.Post, author dto.AuthorInfo, comments []dto.CommentResponse) dto.PostResponse {
	if comments == nil {
		comments = []dto.CommentResponse{}
	}
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return dto.PostResponse{
		ID:            p.ID.Hex(),
		Title:         p.Title,
		Content:       p.Content,
		FeaturedImage: p.FeaturedImage,
		Tags:          tags,
		Author:        author,
		LikedBy:       hexIDs(p.LikedBy),
		LikeCount:     p.LikeCount(),
		Comments:      comments,
		CommentCount:  p.CommentCount(),
		CreatedAt:     p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     p.UpdatedAt.Format(time.RFC3339),
	}
}
