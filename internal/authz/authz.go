// Package authz holds the single ownership rule for posts and comments.
// Handlers must resolve the entity first and answer 404 on a miss; this
// predicate is only consulted for entities that exist.
package authz

import "go.mongodb.org/mongo-driver/v2/bson"

// Requester is the authenticated identity attached to a request by the
// JWT middleware.
type Requester struct {
	ID      bson.ObjectID
	IsAdmin bool
}

// CanModify reports whether the requester may update or delete an entity
// authored by author. The rule is identical for posts and comments:
// the author may, and an admin may.
func CanModify(author bson.ObjectID, requester Requester) bool {
	return requester.ID == author || requester.IsAdmin
}
