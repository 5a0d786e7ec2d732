package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"blog_platform/model"
)

func mustOID(t *testing.T, hex string) bson.ObjectID {
	t.Helper()
	id, err := bson.ObjectIDFromHex(hex)
	if err != nil {
		t.Fatalf("bad object id %q: %v", hex, err)
	}
	return id
}

// In-memory repositories with the same contract as the Mongo ones:
// FindByID misses surface as mongo.ErrNoDocuments, and reads hand out
// copies so callers never alias stored state.

type fakePostRepo struct {
	mu    sync.Mutex
	posts map[bson.ObjectID]model.Post
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[bson.ObjectID]model.Post)}
}

func (r *fakePostRepo) Insert(_ context.Context, post *model.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	post.ID = bson.NewObjectID()
	r.posts[post.ID] = clonePost(*post)
	return nil
}

func (r *fakePostRepo) FindByID(_ context.Context, id bson.ObjectID) (*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := clonePost(p)
	return &cp, nil
}

func (r *fakePostRepo) Update(_ context.Context, post *model.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[post.ID]
	if !ok {
		return nil
	}
	p.Title = post.Title
	p.Content = post.Content
	p.FeaturedImage = post.FeaturedImage
	p.Tags = append([]string(nil), post.Tags...)
	p.UpdatedAt = post.UpdatedAt
	r.posts[post.ID] = p
	return nil
}

func (r *fakePostRepo) Delete(_ context.Context, id bson.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.posts, id)
	return nil
}

func (r *fakePostRepo) AppendCommentID(_ context.Context, postID, commentID bson.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[postID]
	if !ok {
		return nil
	}
	p.CommentIDs = append(p.CommentIDs, commentID)
	r.posts[postID] = p
	return nil
}

func (r *fakePostRepo) PullCommentID(_ context.Context, postID, commentID bson.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[postID]
	if !ok {
		return nil
	}
	ids := p.CommentIDs[:0]
	for _, id := range p.CommentIDs {
		if id != commentID {
			ids = append(ids, id)
		}
	}
	p.CommentIDs = ids
	r.posts[postID] = p
	return nil
}

func (r *fakePostRepo) AddLike(_ context.Context, postID, userID bson.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[postID]
	if !ok {
		return nil
	}
	for _, id := range p.LikedBy {
		if id == userID {
			return nil
		}
	}
	p.LikedBy = append(p.LikedBy, userID)
	r.posts[postID] = p
	return nil
}

func (r *fakePostRepo) RemoveLike(_ context.Context, postID, userID bson.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[postID]
	if !ok {
		return nil
	}
	ids := p.LikedBy[:0]
	for _, id := range p.LikedBy {
		if id != userID {
			ids = append(ids, id)
		}
	}
	p.LikedBy = ids
	r.posts[postID] = p
	return nil
}

func (r *fakePostRepo) List(_ context.Context, f model.ListFilter) ([]model.Post, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []model.Post
	for _, p := range r.posts {
		if f.Tag != "" && !hasTag(p.Tags, f.Tag) {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(p.Title), strings.ToLower(f.Search)) {
			continue
		}
		if !f.AuthorID.IsZero() && p.AuthorID != f.AuthorID {
			continue
		}
		matched = append(matched, clonePost(p))
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	start := (f.Page - 1) * f.Limit
	if start >= total {
		return nil, total, nil
	}
	end := start + f.Limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

func clonePost(p model.Post) model.Post {
	p.Tags = append([]string(nil), p.Tags...)
	p.LikedBy = append([]bson.ObjectID(nil), p.LikedBy...)
	p.CommentIDs = append([]bson.ObjectID(nil), p.CommentIDs...)
	return p
}

type fakeCommentRepo struct {
	mu       sync.Mutex
	comments map[bson.ObjectID]model.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[bson.ObjectID]model.Comment)}
}

func (r *fakeCommentRepo) Insert(_ context.Context, com *model.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	com.ID = bson.NewObjectID()
	r.comments[com.ID] = cloneComment(*com)
	return nil
}

func (r *fakeCommentRepo) FindByID(_ context.Context, id bson.ObjectID) (*model.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.comments[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := cloneComment(c)
	return &cp, nil
}

func (r *fakeCommentRepo) UpdateContent(_ context.Context, id bson.ObjectID, content string, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.comments[id]
	if !ok {
		return nil
	}
	c.Content = content
	c.UpdatedAt = updatedAt
	r.comments[id] = c
	return nil
}

func (r *fakeCommentRepo) Delete(_ context.Context, id bson.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.comments, id)
	return nil
}

func (r *fakeCommentRepo) DeleteByPost(_ context.Context, postID bson.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, c := range r.comments {
		if c.PostID == postID {
			delete(r.comments, id)
			n++
		}
	}
	return n, nil
}

func (r *fakeCommentRepo) ListByPostIDs(_ context.Context, postIDs []bson.ObjectID) ([]model.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	want := make(map[bson.ObjectID]struct{}, len(postIDs))
	for _, id := range postIDs {
		want[id] = struct{}{}
	}
	var out []model.Comment
	for _, c := range r.comments {
		if _, ok := want[c.PostID]; ok {
			out = append(out, cloneComment(c))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *fakeCommentRepo) ListByPostBefore(_ context.Context, postID bson.ObjectID, before time.Time, beforeID bson.ObjectID, limit int64) ([]model.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Comment
	for _, c := range r.comments {
		if c.PostID != postID {
			continue
		}
		// BSON datetimes carry millisecond precision; compare the way
		// the real store would.
		cAt := c.CreatedAt.Truncate(time.Millisecond)
		if !before.IsZero() {
			if cAt.After(before) {
				continue
			}
			if cAt.Equal(before) && c.ID.Hex() >= beforeID.Hex() {
				continue
			}
		}
		out = append(out, cloneComment(c))
	}
	sort.Slice(out, func(i, j int) bool {
		ti := out[i].CreatedAt.Truncate(time.Millisecond)
		tj := out[j].CreatedAt.Truncate(time.Millisecond)
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return out[i].ID.Hex() > out[j].ID.Hex()
	})
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeCommentRepo) AddLike(_ context.Context, commentID, userID bson.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.comments[commentID]
	if !ok {
		return nil
	}
	for _, id := range c.LikedBy {
		if id == userID {
			return nil
		}
	}
	c.LikedBy = append(c.LikedBy, userID)
	r.comments[commentID] = c
	return nil
}

func (r *fakeCommentRepo) RemoveLike(_ context.Context, commentID, userID bson.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.comments[commentID]
	if !ok {
		return nil
	}
	ids := c.LikedBy[:0]
	for _, id := range c.LikedBy {
		if id != userID {
			ids = append(ids, id)
		}
	}
	c.LikedBy = ids
	r.comments[commentID] = c
	return nil
}

func cloneComment(c model.Comment) model.Comment {
	c.LikedBy = append([]bson.ObjectID(nil), c.LikedBy...)
	return c
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[bson.ObjectID]model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[bson.ObjectID]model.User)}
}

func dupKeyErr() error {
	return mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
}

func (r *fakeUserRepo) Insert(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return dupKeyErr()
		}
	}
	user.ID = bson.NewObjectID()
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id bson.ObjectID) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &u, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			cp := u
			return &cp, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeUserRepo) ListByIDs(_ context.Context, ids []bson.ObjectID) ([]model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, u := range r.users {
		if id != user.ID && u.Username == user.Username {
			return dupKeyErr()
		}
	}
	u, ok := r.users[user.ID]
	if !ok {
		return nil
	}
	u.Username = user.Username
	u.Bio = user.Bio
	u.ProfilePicture = user.ProfilePicture
	u.UpdatedAt = user.UpdatedAt
	r.users[user.ID] = u
	return nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, id bson.ObjectID, hash string, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil
	}
	u.PasswordHash = hash
	u.UpdatedAt = updatedAt
	r.users[id] = u
	return nil
}

// seedUser creates a user directly in the fake store.
func seedUser(r *fakeUserRepo, username string, isAdmin bool) model.User {
	u := model.User{
		Username: username,
		Email:    username + "@example.com",
		IsAdmin:  isAdmin,
	}
	_ = r.Insert(context.Background(), &u)
	return u
}
