package services

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"golang.org/x/crypto/bcrypt"

	"blog_platform/dto"
	"blog_platform/internal/repository"
	"blog_platform/model"
)

type AuthService struct {
	users    repository.UserRepository
	secret   []byte
	tokenTTL time.Duration
}

func NewAuthService(users repository.UserRepository, secret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{users: users, secret: []byte(secret), tokenTTL: tokenTTL}
}

func toUserResponse(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:             u.ID.Hex(),
		Username:       u.Username,
		Email:          u.Email,
		ProfilePicture: u.ProfilePicture,
		Bio:            u.Bio,
		IsAdmin:        u.IsAdmin,
		CreatedAt:      u.CreatedAt.Format(time.RFC3339),
	}
}

func (s *AuthService) Register(ctx context.Context, body dto.RegisterDTO) (dto.AuthResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		return dto.AuthResponse{}, err
	}

	now := time.Now().UTC()
	user := model.User{
		Username:     body.Username,
		Email:        body.Email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Insert(ctx, &user); err != nil {
		// Unique indexes on username and email carry the uniqueness rule.
		if repository.IsDuplicateKey(err) {
			return dto.AuthResponse{}, ErrEmailTaken
		}
		return dto.AuthResponse{}, err
	}

	token, err := s.SignToken(user.ID)
	if err != nil {
		return dto.AuthResponse{}, err
	}
	return dto.AuthResponse{Token: token, User: toUserResponse(&user)}, nil
}

func (s *AuthService) Login(ctx context.Context, body dto.LoginDTO) (dto.AuthResponse, error) {
	user, err := s.users.FindByEmail(ctx, body.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return dto.AuthResponse{}, ErrBadCredentials
		}
		return dto.AuthResponse{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)) != nil {
		return dto.AuthResponse{}, ErrBadCredentials
	}

	token, err := s.SignToken(user.ID)
	if err != nil {
		return dto.AuthResponse{}, err
	}
	return dto.AuthResponse{Token: token, User: toUserResponse(user)}, nil
}

func (s *AuthService) Profile(ctx context.Context, id bson.ObjectID) (dto.UserResponse, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return dto.UserResponse{}, ErrUserNotFound
		}
		return dto.UserResponse{}, err
	}
	return toUserResponse(user), nil
}

// SignToken mints an HS256 bearer token with the user id as subject.
func (s *AuthService) SignToken(userID bson.ObjectID) (string, error) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   userID.Hex(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}
