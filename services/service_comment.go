package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"blog_platform/dto"
	"blog_platform/internal/authz"
	"blog_platform/internal/cursor"
	"blog_platform/internal/repository"
	"blog_platform/model"
)

type CommentService struct {
	comments repository.CommentRepository
	posts    repository.PostRepository
	users    repository.UserRepository
}

func NewCommentService(comments repository.CommentRepository, posts repository.PostRepository, users repository.UserRepository) *CommentService {
	return &CommentService{comments: comments, posts: posts, users: users}
}

// Create inserts a comment and appends its id to the parent post's
// comment_ids. The parent must exist up front; when it doesn't, nothing
// is created. The append lands before Create returns, so a read of the
// post immediately after sees the new id.
func (s *CommentService) Create(ctx context.Context, authorID bson.ObjectID, body dto.CreateCommentDTO) (dto.CommentResponse, error) {
	postID, err := bson.ObjectIDFromHex(body.PostID)
	if err != nil {
		return dto.CommentResponse{}, ErrPostNotFound
	}

	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return dto.CommentResponse{}, ErrPostNotFound
		}
		return dto.CommentResponse{}, err
	}

	now := time.Now().UTC()
	com := model.Comment{
		Content:   body.Content,
		AuthorID:  authorID,
		PostID:    postID,
		LikedBy:   []bson.ObjectID{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.comments.Insert(ctx, &com); err != nil {
		return dto.CommentResponse{}, err
	}

	if err := s.posts.AppendCommentID(ctx, postID, com.ID); err != nil {
		// Back-reference write failed; drop the comment again so no
		// half-created pair survives (best-effort).
		_ = s.comments.Delete(ctx, com.ID)
		return dto.CommentResponse{}, err
	}

	authors, err := loadAuthors(ctx, s.users, []bson.ObjectID{authorID})
	if err != nil {
		return dto.CommentResponse{}, err
	}
	return toCommentResponse(&com, authorOrFallback(authors, authorID)), nil
}

func (s *CommentService) Update(ctx context.Context, id bson.ObjectID, requester authz.Requester, body dto.UpdateCommentDTO) (dto.CommentResponse, error) {
	com, err := s.comments.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return dto.CommentResponse{}, ErrCommentNotFound
		}
		return dto.CommentResponse{}, err
	}
	if !authz.CanModify(com.AuthorID, requester) {
		return dto.CommentResponse{}, ErrForbidden
	}

	// Content is the only mutable field; author and post never change.
	com.Content = body.Content
	com.UpdatedAt = time.Now().UTC()
	if err := s.comments.UpdateContent(ctx, id, com.Content, com.UpdatedAt); err != nil {
		return dto.CommentResponse{}, err
	}

	authors, err := loadAuthors(ctx, s.users, []bson.ObjectID{com.AuthorID})
	if err != nil {
		return dto.CommentResponse{}, err
	}
	return toCommentResponse(com, authorOrFallback(authors, com.AuthorID)), nil
}

// Delete removes the comment and pulls its id from the owning post's
// comment_ids, leaving the remaining ids in order. Deleting a comment
// never touches the post otherwise.
func (s *CommentService) Delete(ctx context.Context, id bson.ObjectID, requester authz.Requester) error {
	com, err := s.comments.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrCommentNotFound
		}
		return err
	}
	if !authz.CanModify(com.AuthorID, requester) {
		return ErrForbidden
	}

	if err := s.comments.Delete(ctx, id); err != nil {
		return err
	}
	return s.posts.PullCommentID(ctx, com.PostID, id)
}

func (s *CommentService) ToggleLike(ctx context.Context, id, userID bson.ObjectID) (dto.LikeResponse, error) {
	com, err := s.comments.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return dto.LikeResponse{}, ErrCommentNotFound
		}
		return dto.LikeResponse{}, err
	}

	liked := com.IsLikedBy(userID)
	if liked {
		err = s.comments.RemoveLike(ctx, id, userID)
	} else {
		err = s.comments.AddLike(ctx, id, userID)
	}
	if err != nil {
		return dto.LikeResponse{}, err
	}

	likedBy := make([]bson.ObjectID, 0, len(com.LikedBy)+1)
	for _, uid := range com.LikedBy {
		if uid != userID {
			likedBy = append(likedBy, uid)
		}
	}
	if !liked {
		likedBy = append(likedBy, userID)
	}

	return dto.LikeResponse{
		LikedBy:   hexIDs(likedBy),
		LikeCount: len(likedBy),
		IsLiked:   !liked,
	}, nil
}

// ListByPost pages a post's comments newest first with an opaque cursor.
func (s *CommentService) ListByPost(ctx context.Context, postID bson.ObjectID, cursorStr string, limit int64) (dto.ListCommentsResp[dto.CommentResponse], error) {
	var resp dto.ListCommentsResp[dto.CommentResponse]

	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return resp, ErrPostNotFound
		}
		return resp, err
	}

	var before time.Time
	var beforeID bson.ObjectID
	if cursorStr != "" {
		var err error
		before, beforeID, err = cursor.Decode(cursorStr)
		if err != nil {
			return resp, cursor.ErrInvalidCursor
		}
	}

	if limit <= 0 || limit > 100 {
		limit = 20
	}

	// limit+1 probe: one extra row tells us whether another page exists.
	comments, err := s.comments.ListByPostBefore(ctx, postID, before, beforeID, limit+1)
	if err != nil {
		return resp, err
	}

	var next *string
	if int64(len(comments)) == limit+1 {
		comments = comments[:limit]
		last := comments[len(comments)-1]
		c := cursor.Encode(last.CreatedAt, last.ID)
		next = &c
	}

	authorIDs := make([]bson.ObjectID, 0, len(comments))
	for i := range comments {
		authorIDs = append(authorIDs, comments[i].AuthorID)
	}
	authors, err := loadAuthors(ctx, s.users, authorIDs)
	if err != nil {
		return resp, err
	}

	items := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		c := &comments[i]
		items = append(items, toCommentResponse(c, authorOrFallback(authors, c.AuthorID)))
	}

	resp.Comments = items
	resp.NextCursor = next
	resp.HasMore = next != nil
	return resp, nil
}
