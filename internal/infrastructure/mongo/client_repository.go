package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	admindomain "github.com/sand-hq/campaign-api/internal/admin/domain"
	"github.com/sand-hq/campaign-api/internal/fault"
)

// ClientRepository は clients コレクションの Mongo 実装。
type ClientRepository struct {
	collection *mongo.Collection
}

func NewClientRepository(db *mongo.Database, collection string) *ClientRepository {
	return &ClientRepository{collection: db.Collection(collection)}
}

func (r *ClientRepository) Create(ctx context.Context, client *admindomain.Client) error {
	doc := ClientDocument{
		ID:        primitive.NewObjectID(),
		Name:      client.Name,
		Location:  client.Location,
		Website:   client.Website.String(),
		PhotoURL:  client.PhotoURL.String(),
		CreatedAt: client.CreatedAt,
		UpdatedAt: client.UpdatedAt,
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return translate(err, "client", "")
	}
	client.ID = doc.ID.Hex()
	return nil
}

func (r *ClientRepository) FindByID(ctx context.Context, id string) (*admindomain.Client, error) {
	objectID, err := objectIDFromHex("client", id)
	if err != nil {
		return nil, err
	}
	var doc ClientDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc); err != nil {
		return nil, translate(err, "client", id)
	}
	client := mapClient(doc)
	return &client, nil
}

func (r *ClientRepository) FindByIDs(ctx context.Context, ids []string) ([]admindomain.Client, error) {
	objectIDs := objectIDsFromHex(ids)
	if len(objectIDs) == 0 {
		return []admindomain.Client{}, nil
	}
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": objectIDs}}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, translate(err, "client", "")
	}
	return decodeAll(ctx, cursor, mapClient)
}

// FindAll は作成日時の新しい順に全件返す。
func (r *ClientRepository) FindAll(ctx context.Context) ([]admindomain.Client, error) {
	cursor, err := r.collection.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, translate(err, "client", "")
	}
	return decodeAll(ctx, cursor, mapClient)
}

// Delete は削除したドキュメントを返す。紐づくキャンペーンはカスケード削除しない。
func (r *ClientRepository) Delete(ctx context.Context, id string) (*admindomain.Client, error) {
	objectID, err := objectIDFromHex("client", id)
	if err != nil {
		return nil, err
	}
	var doc ClientDocument
	if err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": objectID}).Decode(&doc); err != nil {
		return nil, translate(err, "client", id)
	}
	client := mapClient(doc)
	return &client, nil
}

func (r *ClientRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.collection.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fault.Internal("failed to count clients", err)
	}
	return n, nil
}

func mapClient(doc ClientDocument) admindomain.Client {
	return admindomain.Client{
		ID:        doc.ID.Hex(),
		Name:      doc.Name,
		Location:  doc.Location,
		Website:   admindomain.URL(doc.Website),
		PhotoURL:  admindomain.PhotoURL(doc.PhotoURL),
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}
