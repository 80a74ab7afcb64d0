package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/blogql/blog-api/internal/core/domain"
	"github.com/blogql/blog-api/internal/core/ports"
)

// UserRepository implements ports.UserRepository on the users collection.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

type userDoc struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Name     string             `bson:"name"`
	Email    string             `bson:"email"`
	Password string             `bson:"password"`
}

func (d *userDoc) toDomain() *domain.User {
	return &domain.User{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.Password,
	}
}

func (r *UserRepository) FindOne(ctx context.Context, f ports.UserFilter) (*domain.User, error) {
	filter, ok := userFilter(f)
	if !ok {
		return nil, domain.ErrNotFound
	}
	doc, err := findOne[userDoc](ctx, r.col, filter)
	if err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) Find(ctx context.Context, f ports.UserFilter, page ports.Page) ([]*domain.User, error) {
	filter, ok := userFilter(f)
	if !ok {
		return []*domain.User{}, nil
	}
	docs, err := findMany[userDoc](ctx, r.col, filter, page)
	if err != nil {
		return nil, err
	}
	users := make([]*domain.User, len(docs))
	for i := range docs {
		users[i] = docs[i].toDomain()
	}
	return users, nil
}

func (r *UserRepository) Count(ctx context.Context, f ports.UserFilter) (int64, error) {
	filter, ok := userFilter(f)
	if !ok {
		return 0, nil
	}
	return count(ctx, r.col, filter)
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	doc := userDoc{Name: u.Name, Email: u.Email, Password: u.PasswordHash}
	oid, err := insert(ctx, r.col, doc)
	if err != nil {
		return nil, err
	}
	doc.ID = oid
	return doc.toDomain(), nil
}

func (r *UserRepository) DeleteOne(ctx context.Context, f ports.UserFilter) (int64, error) {
	filter, ok := userFilter(f)
	if !ok {
		return 0, nil
	}
	return remove(ctx, r.col, filter, false)
}
