package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"blog_platform/model"
)

// PostRepository is the storage port for posts. FindByID returns
// mongo.ErrNoDocuments when the id does not resolve to a live post.
type PostRepository interface {
	Insert(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, id bson.ObjectID) (*model.Post, error)
	Update(ctx context.Context, post *model.Post) error
	Delete(ctx context.Context, id bson.ObjectID) error
	AppendCommentID(ctx context.Context, postID, commentID bson.ObjectID) error
	PullCommentID(ctx context.Context, postID, commentID bson.ObjectID) error
	AddLike(ctx context.Context, postID, userID bson.ObjectID) error
	RemoveLike(ctx context.Context, postID, userID bson.ObjectID) error
	List(ctx context.Context, filter model.ListFilter) ([]model.Post, int64, error)
}

type mongoPostRepo struct {
	col *mongo.Collection
}

func NewMongoPostRepo(db *mongo.Database) PostRepository {
	return &mongoPostRepo{col: db.Collection("posts")}
}

func (r *mongoPostRepo) Insert(ctx context.Context, post *model.Post) error {
	res, err := r.col.InsertOne(ctx, post)
	if err != nil {
		return err
	}
	post.ID = res.InsertedID.(bson.ObjectID)
	return nil
}

func (r *mongoPostRepo) FindByID(ctx context.Context, id bson.ObjectID) (*model.Post, error) {
	var post model.Post
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&post); err != nil {
		return nil, err
	}
	return &post, nil
}

// Update persists the mutable fields only. author_id, liked_by and
// comment_ids are never written here.
func (r *mongoPostRepo) Update(ctx context.Context, post *model.Post) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": post.ID}, bson.M{"$set": bson.M{
		"title":          post.Title,
		"content":        post.Content,
		"featured_image": post.FeaturedImage,
		"tags":           post.Tags,
		"updated_at":     post.UpdatedAt,
	}})
	return err
}

func (r *mongoPostRepo) Delete(ctx context.Context, id bson.ObjectID) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *mongoPostRepo) AppendCommentID(ctx context.Context, postID, commentID bson.ObjectID) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": postID},
		bson.M{"$push": bson.M{"comment_ids": commentID}})
	return err
}

func (r *mongoPostRepo) PullCommentID(ctx context.Context, postID, commentID bson.ObjectID) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": postID},
		bson.M{"$pull": bson.M{"comment_ids": commentID}})
	return err
}

func (r *mongoPostRepo) AddLike(ctx context.Context, postID, userID bson.ObjectID) error {
	// $addToSet keeps liked_by duplicate-free even under racing toggles.
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": postID},
		bson.M{"$addToSet": bson.M{"liked_by": userID}})
	return err
}

func (r *mongoPostRepo) RemoveLike(ctx context.Context, postID, userID bson.ObjectID) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": postID},
		bson.M{"$pull": bson.M{"liked_by": userID}})
	return err
}

// buildListFilter translates the listing options into a Mongo filter.
// Tag matches membership in the tags array; Search goes through the
// text index over title+tags.
func buildListFilter(f model.ListFilter) bson.M {
	and := []bson.M{}
	if f.Tag != "" {
		and = append(and, bson.M{"tags": f.Tag})
	}
	if f.Search != "" {
		and = append(and, bson.M{"$text": bson.M{"$search": f.Search}})
	}
	if !f.AuthorID.IsZero() {
		and = append(and, bson.M{"author_id": f.AuthorID})
	}
	switch len(and) {
	case 0:
		return bson.M{}
	case 1:
		return and[0]
	default:
		return bson.M{"$and": and}
	}
}

func (r *mongoPostRepo) List(ctx context.Context, f model.ListFilter) ([]model.Post, int64, error) {
	filter := buildListFilter(f)

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	findOpt := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip((f.Page - 1) * f.Limit).
		SetLimit(f.Limit)

	cur, err := r.col.Find(ctx, filter, findOpt)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var posts []model.Post
	if err := cur.All(ctx, &posts); err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}
