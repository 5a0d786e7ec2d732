package services

import (
	"context"
	"errors"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"blog_platform/dto"
	"blog_platform/internal/authz"
	"blog_platform/internal/repository"
	"blog_platform/internal/utils"
	"blog_platform/model"
)

type PostService struct {
	posts    repository.PostRepository
	comments repository.CommentRepository
	users    repository.UserRepository
}

func NewPostService(posts repository.PostRepository, comments repository.CommentRepository, users repository.UserRepository) *PostService {
	return &PostService{posts: posts, comments: comments, users: users}
}

func (s *PostService) Create(ctx context.Context, authorID bson.ObjectID, body dto.CreatePostDTO) (dto.PostResponse, error) {
	now := time.Now().UTC()
	post := model.Post{
		Title:         body.Title,
		Content:       body.Content,
		FeaturedImage: body.FeaturedImage,
		Tags:          utils.NormalizeTags(body.Tags),
		AuthorID:      authorID,
		LikedBy:       []bson.ObjectID{},
		CommentIDs:    []bson.ObjectID{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.posts.Insert(ctx, &post); err != nil {
		return dto.PostResponse{}, err
	}

	authors, err := loadAuthors(ctx, s.users, []bson.ObjectID{authorID})
	if err != nil {
		return dto.PostResponse{}, err
	}
	return toPostResponse(&post, authorOrFallback(authors, authorID), nil), nil
}

func (s *PostService) Get(ctx context.Context, id bson.ObjectID) (dto.PostResponse, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return dto.PostResponse{}, ErrPostNotFound
		}
		return dto.PostResponse{}, err
	}

	resps, err := s.populate(ctx, []model.Post{*post})
	if err != nil {
		return dto.PostResponse{}, err
	}
	return resps[0], nil
}

// List returns one page of posts, newest first, with authors and
// comments expanded. Tag and search filters combine with AND.
func (s *PostService) List(ctx context.Context, f model.ListFilter) (dto.ListPostsResponse, error) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 10
	}

	posts, total, err := s.posts.List(ctx, f)
	if err != nil {
		return dto.ListPostsResponse{}, err
	}

	resps, err := s.populate(ctx, posts)
	if err != nil {
		return dto.ListPostsResponse{}, err
	}

	return dto.ListPostsResponse{
		Posts: resps,
		Pagination: dto.Pagination{
			Total: total,
			Page:  f.Page,
			Pages: int64(math.Ceil(float64(total) / float64(f.Limit))),
		},
	}, nil
}

func (s *PostService) Update(ctx context.Context, id bson.ObjectID, requester authz.Requester, body dto.UpdatePostDTO) (dto.PostResponse, error) {
	// Existence first, authorization second. A nonexistent post is 404
	// even for an admin.
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return dto.PostResponse{}, ErrPostNotFound
		}
		return dto.PostResponse{}, err
	}
	if !authz.CanModify(post.AuthorID, requester) {
		return dto.PostResponse{}, ErrForbidden
	}

	// Absent fields keep their stored value.
	if body.Title != nil {
		post.Title = *body.Title
	}
	if body.Content != nil {
		post.Content = *body.Content
	}
	if body.FeaturedImage != nil {
		post.FeaturedImage = *body.FeaturedImage
	}
	if body.Tags != nil {
		post.Tags = utils.NormalizeTags(*body.Tags)
	}
	post.UpdatedAt = time.Now().UTC()

	if err := s.posts.Update(ctx, post); err != nil {
		return dto.PostResponse{}, err
	}

	resps, err := s.populate(ctx, []model.Post{*post})
	if err != nil {
		return dto.PostResponse{}, err
	}
	return resps[0], nil
}

// Delete removes the post and cascades to every comment referencing it.
// The cascade is a second write, not a transaction; once Delete returns
// nil no comment with this post_id is discoverable anymore.
func (s *PostService) Delete(ctx context.Context, id bson.ObjectID, requester authz.Requester) error {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrPostNotFound
		}
		return err
	}
	if !authz.CanModify(post.AuthorID, requester) {
		return ErrForbidden
	}

	if err := s.posts.Delete(ctx, id); err != nil {
		return err
	}
	if _, err := s.comments.DeleteByPost(ctx, id); err != nil {
		return err
	}
	return nil
}

// ToggleLike adds the user to liked_by if absent, removes it otherwise.
// Two consecutive calls by the same user restore the original set.
func (s *PostService) ToggleLike(ctx context.Context, id, userID bson.ObjectID) (dto.LikeResponse, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return dto.LikeResponse{}, ErrPostNotFound
		}
		return dto.LikeResponse{}, err
	}

	liked := post.IsLikedBy(userID)
	if liked {
		err = s.posts.RemoveLike(ctx, id, userID)
	} else {
		err = s.posts.AddLike(ctx, id, userID)
	}
	if err != nil {
		return dto.LikeResponse{}, err
	}

	likedBy := make([]bson.ObjectID, 0, len(post.LikedBy)+1)
	for _, uid := range post.LikedBy {
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

// populate expands author projections and attached comments for a page
// of posts with three reads total: comments by post ids, then every
// author referenced by either side in one batch.
func (s *PostService) populate(ctx context.Context, posts []model.Post) ([]dto.PostResponse, error) {
	postIDs := make([]bson.ObjectID, 0, len(posts))
	authorIDs := make([]bson.ObjectID, 0, len(posts))
	for i := range posts {
		postIDs = append(postIDs, posts[i].ID)
		authorIDs = append(authorIDs, posts[i].AuthorID)
	}

	comments, err := s.comments.ListByPostIDs(ctx, postIDs)
	if err != nil {
		return nil, err
	}
	for i := range comments {
		authorIDs = append(authorIDs, comments[i].AuthorID)
	}

	authors, err := loadAuthors(ctx, s.users, authorIDs)
	if err != nil {
		return nil, err
	}

	byPost := make(map[bson.ObjectID][]dto.CommentResponse, len(posts))
	for i := range comments {
		c := &comments[i]
		byPost[c.PostID] = append(byPost[c.PostID], toCommentResponse(c, authorOrFallback(authors, c.AuthorID)))
	}

	out := make([]dto.PostResponse, 0, len(posts))
	for i := range posts {
		p := &posts[i]
		out = append(out, toPostResponse(p, authorOrFallback(authors, p.AuthorID), byPost[p.ID]))
	}
	return out, nil
}
