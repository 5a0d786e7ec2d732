package middleware

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"blog_platform/model"
)

const testSecret = "test-secret"

type stubUserRepo struct {
	user model.User
}

func (r *stubUserRepo) Insert(context.Context, *model.User) error { return nil }
func (r *stubUserRepo) FindByID(_ context.Context, id bson.ObjectID) (*model.User, error) {
	if id != r.user.ID {
		return nil, mongo.ErrNoDocuments
	}
	u := r.user
	return &u, nil
}
func (r *stubUserRepo) FindByEmail(context.Context, string) (*model.User, error) {
	return nil, mongo.ErrNoDocuments
}
func (r *stubUserRepo) FindByUsername(context.Context, string) (*model.User, error) {
	return nil, mongo.ErrNoDocuments
}
func (r *stubUserRepo) ListByIDs(context.Context, []bson.ObjectID) ([]model.User, error) {
	return nil, nil
}
func (r *stubUserRepo) UpdateProfile(context.Context, *model.User) error { return nil }
func (r *stubUserRepo) UpdatePassword(context.Context, bson.ObjectID, string, time.Time) error {
	return nil
}

func signTestToken(t *testing.T, subject string) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func newTestApp(repo *stubUserRepo) *fiber.App {
	app := fiber.New()
	app.Use(JWTAuth(testSecret, repo))

	app.Get("/public", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": c.Locals("user_id")})
	})
	app.Get("/private", RequireAuth(), func(c *fiber.Ctx) error {
		req, err := RequesterFromLocals(c)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"id": req.ID.Hex(), "isAdmin": req.IsAdmin})
	})
	return app
}

func TestAnonymousPassesPublicRoute(t *testing.T) {
	app := newTestApp(&stubUserRepo{})

	resp, err := app.Test(httptest.NewRequest("GET", "/public", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAnonymousRejectedOnPrivateRoute(t *testing.T) {
	app := newTestApp(&stubUserRepo{})

	resp, err := app.Test(httptest.NewRequest("GET", "/private", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestValidTokenResolvesRequester(t *testing.T) {
	admin := model.User{ID: bson.NewObjectID(), Username: "root", IsAdmin: true}
	app := newTestApp(&stubUserRepo{user: admin})

	req := httptest.NewRequest("GET", "/private", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, admin.ID.Hex()))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestGarbageTokenRejected(t *testing.T) {
	app := newTestApp(&stubUserRepo{})

	req := httptest.NewRequest("GET", "/public", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestTokenForUnknownUserRejected(t *testing.T) {
	app := newTestApp(&stubUserRepo{user: model.User{ID: bson.NewObjectID()}})

	req := httptest.NewRequest("GET", "/private", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, bson.NewObjectID().Hex()))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequestIDMintedAndEchoed(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID())
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Request-Id", "abc-123")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "abc-123", resp.Header.Get("X-Request-Id"))
}
