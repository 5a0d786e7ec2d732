package middleware

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"blog_platform/internal/authz"
)

// RequesterFromLocals rebuilds the authenticated identity the JWT
// middleware stored in Locals.
func RequesterFromLocals(c *fiber.Ctx) (authz.Requester, error) {
	uid, _ := c.Locals("user_id").(string)
	if uid == "" {
		return authz.Requester{}, fiber.ErrUnauthorized
	}
	oid, err := bson.ObjectIDFromHex(uid)
	if err != nil {
		return authz.Requester{}, fiber.ErrUnauthorized
	}
	isAdmin, _ := c.Locals("is_admin").(bool)
	return authz.Requester{ID: oid, IsAdmin: isAdmin}, nil
}
