package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/v2/bson"

	"blog_platform/internal/repository"
)

// JWTAuth resolves the requester from a bearer token and stashes
// user_id (hex) and is_admin in Locals. Requests without a token pass
// through anonymous; the public routes accept them and RequireAuth
// rejects them on the protected ones.
func JWTAuth(secret string, users repository.UserRepository) fiber.Handler {
	key := []byte(secret)

	return func(c *fiber.Ctx) error {
		auth := c.Get("Authorization")
		if auth == "" || !strings.HasPrefix(strings.ToLower(auth), "bearer ") {
			return c.Next()
		}

		tokenStr := strings.TrimSpace(auth[7:])
		var claims jwt.RegisteredClaims

		token, err := jwt.ParseWithClaims(
			tokenStr,
			&claims,
			func(t *jwt.Token) (any, error) {
				if t.Method != jwt.SigningMethodHS256 {
					return nil, fiber.ErrUnauthorized
				}
				return key, nil
			},
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		)
		if err != nil || !token.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		uid, err := bson.ObjectIDFromHex(claims.Subject)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token subject")
		}

		// Load the account so the admin flag reflects the store, not a
		// stale token claim.
		user, err := users.FindByID(c.Context(), uid)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "unknown user")
		}

		c.Locals("user_id", user.ID.Hex())
		c.Locals("is_admin", user.IsAdmin)
		return c.Next()
	}
}
