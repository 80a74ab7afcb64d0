package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/blogql/blog-api/internal/core/domain"
	"github.com/blogql/blog-api/internal/core/ports"
)

// CommentRepository implements ports.CommentRepository on the comments collection.
type CommentRepository struct {
	col *mongo.Collection
}

func NewCommentRepository(db *mongo.Database) *CommentRepository {
	return &CommentRepository{col: db.Collection(collectionComments)}
}

type commentDoc struct {
	ID      primitive.ObjectID `bson:"_id,omitempty"`
	Content string             `bson:"content"`
	PostID  primitive.ObjectID `bson:"postId"`
	UserID  primitive.ObjectID `bson:"userId"`
}

func (d *commentDoc) toDomain() *domain.Comment {
	return &domain.Comment{
		ID:      d.ID.Hex(),
		Content: d.Content,
		PostID:  d.PostID.Hex(),
		UserID:  d.UserID.Hex(),
	}
}

func (r *CommentRepository) FindOne(ctx context.Context, f ports.CommentFilter) (*domain.Comment, error) {
	filter, ok := commentFilter(f)
	if !ok {
		return nil, domain.ErrNotFound
	}
	doc, err := findOne[commentDoc](ctx, r.col, filter)
	if err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *CommentRepository) Find(ctx context.Context, f ports.CommentFilter, page ports.Page) ([]*domain.Comment, error) {
	filter, ok := commentFilter(f)
	if !ok {
		return []*domain.Comment{}, nil
	}
	docs, err := findMany[commentDoc](ctx, r.col, filter, page)
	if err != nil {
		return nil, err
	}
	comments := make([]*domain.Comment, len(docs))
	for i := range docs {
		comments[i] = docs[i].toDomain()
	}
	return comments, nil
}

func (r *CommentRepository) Count(ctx context.Context, f ports.CommentFilter) (int64, error) {
	filter, ok := commentFilter(f)
	if !ok {
		return 0, nil
	}
	return count(ctx, r.col, filter)
}

func (r *CommentRepository) Create(ctx context.Context, c *domain.Comment) (*domain.Comment, error) {
	owner, err := toObjectID(c.UserID)
	if err != nil {
		return nil, err
	}
	post, err := toObjectID(c.PostID)
	if err != nil {
		return nil, err
	}
	doc := commentDoc{Content: c.Content, PostID: post, UserID: owner}
	oid, err := insert(ctx, r.col, doc)
	if err != nil {
		return nil, err
	}
	doc.ID = oid
	return doc.toDomain(), nil
}

func (r *CommentRepository) UpdateContent(ctx context.Context, f ports.CommentFilter, content string) (int64, error) {
	filter, ok := commentFilter(f)
	if !ok {
		return 0, nil
	}
	return setContent(ctx, r.col, filter, content)
}

func (r *CommentRepository) DeleteOne(ctx context.Context, f ports.CommentFilter) (int64, error) {
	filter, ok := commentFilter(f)
	if !ok {
		return 0, nil
	}
	return remove(ctx, r.col, filter, false)
}

func (r *CommentRepository) DeleteMany(ctx context.Context, f ports.CommentFilter) (int64, error) {
	filter, ok := commentFilter(f)
	if !ok {
		return 0, nil
	}
	return remove(ctx, r.col, filter, true)
}
