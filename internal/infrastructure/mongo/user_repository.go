package mongo

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	admindomain "github.com/sand-hq/campaign-api/internal/admin/domain"
	"github.com/sand-hq/campaign-api/internal/fault"
)

// UserRepository は users コレクションの Mongo 実装。
type UserRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(db *mongo.Database, collection string) *UserRepository {
	return &UserRepository{collection: db.Collection(collection)}
}

func (r *UserRepository) Create(ctx context.Context, user *admindomain.User) error {
	doc := UserDocument{
		ID:           primitive.NewObjectID(),
		Name:         user.Name,
		Email:        user.Email.String(),
		PasswordHash: user.PasswordHash,
		Role:         user.Role.String(),
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fault.Validationf("email %s is already registered", doc.Email)
		}
		return translate(err, "user", "")
	}
	user.ID = doc.ID.Hex()
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*admindomain.User, error) {
	objectID, err := objectIDFromHex("user", id)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": objectID}, id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*admindomain.User, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	return r.findOne(ctx, bson.M{"email": normalized}, normalized)
}

func (r *UserRepository) FindByRole(ctx context.Context, role admindomain.Role) ([]admindomain.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"role": role.String()}, opts)
	if err != nil {
		return nil, translate(err, "user", "")
	}
	return decodeAll(ctx, cursor, mapUser)
}

func (r *UserRepository) CountByRole(ctx context.Context, role admindomain.Role) (int64, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{"role": role.String()})
	if err != nil {
		return 0, fault.Internal("failed to count users", err)
	}
	return n, nil
}

func (r *UserRepository) findOne(ctx context.Context, filter any, label string) (*admindomain.User, error) {
	var doc UserDocument
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, translate(err, "user", label)
	}
	user := mapUser(doc)
	return &user, nil
}

func mapUser(doc UserDocument) admindomain.User {
	return admindomain.User{
		ID:           doc.ID.Hex(),
		Name:         doc.Name,
		Email:        admindomain.Email(doc.Email),
		PasswordHash: doc.PasswordHash,
		Role:         admindomain.Role(doc.Role),
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
	}
}
