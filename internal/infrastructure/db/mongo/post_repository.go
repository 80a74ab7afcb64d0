package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/blogql/blog-api/internal/core/domain"
	"github.com/blogql/blog-api/internal/core/ports"
)

// PostRepository implements ports.PostRepository on the posts collection.
type PostRepository struct {
	col *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{col: db.Collection(collectionPosts)}
}

type postDoc struct {
	ID      primitive.ObjectID `bson:"_id,omitempty"`
	Content string             `bson:"content"`
	UserID  primitive.ObjectID `bson:"userId"`
}

func (d *postDoc) toDomain() *domain.Post {
	return &domain.Post{ID: d.ID.Hex(), Content: d.Content, UserID: d.UserID.Hex()}
}

func (r *PostRepository) FindOne(ctx context.Context, f ports.PostFilter) (*domain.Post, error) {
	filter, ok := postFilter(f)
	if !ok {
		return nil, domain.ErrNotFound
	}
	doc, err := findOne[postDoc](ctx, r.col, filter)
	if err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *PostRepository) Find(ctx context.Context, f ports.PostFilter, page ports.Page) ([]*domain.Post, error) {
	filter, ok := postFilter(f)
	if !ok {
		return []*domain.Post{}, nil
	}
	docs, err := findMany[postDoc](ctx, r.col, filter, page)
	if err != nil {
		return nil, err
	}
	posts := make([]*domain.Post, len(docs))
	for i := range docs {
		posts[i] = docs[i].toDomain()
	}
	return posts, nil
}

func (r *PostRepository) Count(ctx context.Context, f ports.PostFilter) (int64, error) {
	filter, ok := postFilter(f)
	if !ok {
		return 0, nil
	}
	return count(ctx, r.col, filter)
}

func (r *PostRepository) Create(ctx context.Context, p *domain.Post) (*domain.Post, error) {
	owner, err := toObjectID(p.UserID)
	if err != nil {
		return nil, err
	}
	doc := postDoc{Content: p.Content, UserID: owner}
	oid, err := insert(ctx, r.col, doc)
	if err != nil {
		return nil, err
	}
	doc.ID = oid
	return doc.toDomain(), nil
}

func (r *PostRepository) UpdateContent(ctx context.Context, f ports.PostFilter, content string) (int64, error) {
	filter, ok := postFilter(f)
	if !ok {
		return 0, nil
	}
	return setContent(ctx, r.col, filter, content)
}

func (r *PostRepository) DeleteOne(ctx context.Context, f ports.PostFilter) (int64, error) {
	filter, ok := postFilter(f)
	if !ok {
		return 0, nil
	}
	return remove(ctx, r.col, filter, false)
}

func (r *PostRepository) DeleteMany(ctx context.Context, f ports.PostFilter) (int64, error) {
	filter, ok := postFilter(f)
	if !ok {
		return 0, nil
	}
	return remove(ctx, r.col, filter, true)
}
