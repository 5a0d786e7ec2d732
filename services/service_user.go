package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"golang.org/x/crypto/bcrypt"

	"blog_platform/dto"
	"blog_platform/internal/repository"
	"blog_platform/model"
)

type UserService struct {
	users repository.UserRepository
	posts *PostService
}

func NewUserService(users repository.UserRepository, posts *PostService) *UserService {
	return &UserService{users: users, posts: posts}
}

// GetPublic returns the profile shown to other users: the display
// projection plus bio, never email or admin flag.
func (s *UserService) GetPublic(ctx context.Context, id bson.ObjectID) (dto.AuthorInfo, string, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return dto.AuthorInfo{}, "", ErrUserNotFound
		}
		return dto.AuthorInfo{}, "", err
	}
	return toAuthorInfo(user), user.Bio, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, id bson.ObjectID, body dto.UpdateProfileDTO) (dto.UserResponse, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return dto.UserResponse{}, ErrUserNotFound
		}
		return dto.UserResponse{}, err
	}

	if body.Username != nil {
		user.Username = *body.Username
	}
	if body.Bio != nil {
		user.Bio = *body.Bio
	}
	if body.ProfilePicture != nil {
		user.ProfilePicture = *body.ProfilePicture
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.UpdateProfile(ctx, user); err != nil {
		if repository.IsDuplicateKey(err) {
			return dto.UserResponse{}, ErrEmailTaken
		}
		return dto.UserResponse{}, err
	}
	return toUserResponse(user), nil
}

func (s *UserService) ChangePassword(ctx context.Context, id bson.ObjectID, body dto.ChangePasswordDTO) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrUserNotFound
		}
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.CurrentPassword)) != nil {
		return ErrBadCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, id, string(hash), time.Now().UTC())
}

// PostsByAuthor lists the caller's own posts through the regular
// listing surface, so pagination and population behave the same.
func (s *UserService) PostsByAuthor(ctx context.Context, authorID bson.ObjectID, page, limit int64) (dto.ListPostsResponse, error) {
	return s.posts.List(ctx, model.ListFilter{AuthorID: authorID, Page: page, Limit: limit})
}
