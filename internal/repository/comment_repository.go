package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"blog_platform/model"
)

type CommentRepository interface {
	Insert(ctx context.Context, comment *model.Comment) error
	FindByID(ctx context.Context, id bson.ObjectID) (*model.Comment, error)
	UpdateContent(ctx context.Context, id bson.ObjectID, content string, updatedAt time.Time) error
	Delete(ctx context.Context, id bson.ObjectID) error
	DeleteByPost(ctx context.Context, postID bson.ObjectID) (int64, error)
	ListByPostIDs(ctx context.Context, postIDs []bson.ObjectID) ([]model.Comment, error)
	ListByPostBefore(ctx context.Context, postID bson.ObjectID, before time.Time, beforeID bson.ObjectID, limit int64) ([]model.Comment, error)
	AddLike(ctx context.Context, commentID, userID bson.ObjectID) error
	RemoveLike(ctx context.Context, commentID, userID bson.ObjectID) error
}

type mongoCommentRepo struct {
	col *mongo.Collection
}

func NewMongoCommentRepo(db *mongo.Database) CommentRepository {
	return &mongoCommentRepo{col: db.Collection("comments")}
}

func (r *mongoCommentRepo) Insert(ctx context.Context, comment *model.Comment) error {
	res, err := r.col.InsertOne(ctx, comment)
	if err != nil {
		return err
	}
	comment.ID = res.InsertedID.(bson.ObjectID)
	return nil
}

func (r *mongoCommentRepo) FindByID(ctx context.Context, id bson.ObjectID) (*model.Comment, error) {
	var com model.Comment
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&com); err != nil {
		return nil, err
	}
	return &com, nil
}

func (r *mongoCommentRepo) UpdateContent(ctx context.Context, id bson.ObjectID, content string, updatedAt time.Time) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"content":    content,
		"updated_at": updatedAt,
	}})
	return err
}

func (r *mongoCommentRepo) Delete(ctx context.Context, id bson.ObjectID) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// DeleteByPost removes every comment whose post_id matches. Used by the
// post delete cascade; after it returns no comment referencing the post
// is discoverable.
func (r *mongoCommentRepo) DeleteByPost(ctx context.Context, postID bson.ObjectID) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{"post_id": postID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *mongoCommentRepo) ListByPostIDs(ctx context.Context, postIDs []bson.ObjectID) ([]model.Comment, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}
	cur, err := r.col.Find(ctx, bson.M{"post_id": bson.M{"$in": postIDs}},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var comments []model.Comment
	if err := cur.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// ListByPostBefore pages comments newest first. A zero before time means
// start from the top; otherwise only comments strictly older than the
// cursor position are returned, with _id as tiebreaker.
func (r *mongoCommentRepo) ListByPostBefore(ctx context.Context, postID bson.ObjectID, before time.Time, beforeID bson.ObjectID, limit int64) ([]model.Comment, error) {
	filter := bson.M{"post_id": postID}
	if !before.IsZero() {
		filter["$or"] = []bson.M{
			{"created_at": bson.M{"$lt": before}},
			{"created_at": before, "_id": bson.M{"$lt": beforeID}},
		}
	}

	findOpt := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(limit)

	cur, err := r.col.Find(ctx, filter, findOpt)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var comments []model.Comment
	if err := cur.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *mongoCommentRepo) AddLike(ctx context.Context, commentID, userID bson.ObjectID) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": commentID},
		bson.M{"$addToSet": bson.M{"liked_by": userID}})
	return err
}

func (r *mongoCommentRepo) RemoveLike(ctx context.Context, commentID, userID bson.ObjectID) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": commentID},
		bson.M{"$pull": bson.M{"liked_by": userID}})
	return err
}
