package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/blogql/blog-api/internal/core/domain"
	"github.com/blogql/blog-api/internal/core/ports"
)

// setID adds key=ObjectID(hex) to m. An empty hex adds nothing; a malformed
// one reports false so the caller can short-circuit to "no match".
func setID(m bson.M, key, hex string) bool {
	if hex == "" {
		return true
	}
	oid, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return false
	}
	m[key] = oid
	return true
}

func userFilter(f ports.UserFilter) (bson.M, bool) {
	m := bson.M{}
	if !setID(m, "_id", f.ID) {
		return nil, false
	}
	if f.Email != "" {
		m["email"] = f.Email
	}
	return m, true
}

func postFilter(f ports.PostFilter) (bson.M, bool) {
	m := bson.M{}
	if !setID(m, "_id", f.ID) || !setID(m, "userId", f.UserID) {
		return nil, false
	}
	return m, true
}

func commentFilter(f ports.CommentFilter) (bson.M, bool) {
	m := bson.M{}
	if !setID(m, "_id", f.ID) || !setID(m, "userId", f.UserID) || !setID(m, "postId", f.PostID) {
		return nil, false
	}
	return m, true
}

// toObjectID converts a foreign key of a document being created.
func toObjectID(hex string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, domain.ErrInvalidID
	}
	return oid, nil
}

func findOptions(page ports.Page) *options.FindOptions {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	if page.Skip > 0 {
		opts.SetSkip(page.Skip)
	}
	if page.Limit > 0 {
		opts.SetLimit(page.Limit)
	}
	return opts
}

func findOne[D any](ctx context.Context, col *mongo.Collection, filter bson.M) (*D, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc D
	if err := col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find %s: %w", col.Name(), err)
	}
	return &doc, nil
}

func findMany[D any](ctx context.Context, col *mongo.Collection, filter bson.M, page ports.Page) ([]D, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := col.Find(ctx, filter, findOptions(page))
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", col.Name(), err)
	}
	docs := []D{}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", col.Name(), err)
	}
	return docs, nil
}

func count(ctx context.Context, col *mongo.Collection, filter bson.M) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := col.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", col.Name(), err)
	}
	return n, nil
}

func insert(ctx context.Context, col *mongo.Collection, doc any) (primitive.ObjectID, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := col.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert %s: %w", col.Name(), err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("insert %s: unexpected id type %T", col.Name(), res.InsertedID)
	}
	return oid, nil
}

func setContent(ctx context.Context, col *mongo.Collection, filter bson.M, content string) (int64, error) {
	if len(filter) == 0 {
		return 0, domain.ErrEmptyFilter
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := col.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"content": content}})
	if err != nil {
		return 0, fmt.Errorf("update %s: %w", col.Name(), err)
	}
	return res.MatchedCount, nil
}

func remove(ctx context.Context, col *mongo.Collection, filter bson.M, many bool) (int64, error) {
	if len(filter) == 0 {
		return 0, domain.ErrEmptyFilter
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var (
		res *mongo.DeleteResult
		err error
	)
	if many {
		res, err = col.DeleteMany(ctx, filter)
	} else {
		res, err = col.DeleteOne(ctx, filter)
	}
	if err != nil {
		return 0, fmt.Errorf("delete %s: %w", col.Name(), err)
	}
	return res.DeletedCount, nil
}
