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

// CampaignRepository は campaigns コレクションの Mongo 実装。
type CampaignRepository struct {
	collection *mongo.Collection
}

func NewCampaignRepository(db *mongo.Database, collection string) *CampaignRepository {
	return &CampaignRepository{collection: db.Collection(collection)}
}

func (r *CampaignRepository) Create(ctx context.Context, campaign *admindomain.Campaign) error {
	doc := CampaignDocument{
		ID:        primitive.NewObjectID(),
		Title:     campaign.Title,
		ClientID:  campaign.ClientID,
		LogoURL:   campaign.LogoURL.String(),
		CreatedAt: campaign.CreatedAt,
		UpdatedAt: campaign.UpdatedAt,
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return translate(err, "campaign", "")
	}
	campaign.ID = doc.ID.Hex()
	return nil
}

func (r *CampaignRepository) FindByID(ctx context.Context, id string) (*admindomain.Campaign, error) {
	objectID, err := objectIDFromHex("campaign", id)
	if err != nil {
		return nil, err
	}
	var doc CampaignDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc); err != nil {
		return nil, translate(err, "campaign", id)
	}
	campaign := mapCampaign(doc)
	return &campaign, nil
}

func (r *CampaignRepository) FindByIDs(ctx context.Context, ids []string) ([]admindomain.Campaign, error) {
	objectIDs := objectIDsFromHex(ids)
	if len(objectIDs) == 0 {
		return []admindomain.Campaign{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": objectIDs}}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

// FindRecent は作成日時の新しい順に limit 件を返す。
func (r *CampaignRepository) FindRecent(ctx context.Context, limit int) ([]admindomain.Campaign, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(limit))
	return r.find(ctx, bson.D{}, opts)
}

func (r *CampaignRepository) FindByClient(ctx context.Context, clientID string) ([]admindomain.Campaign, error) {
	return r.find(ctx, bson.M{"clientId": strings.TrimSpace(clientID)}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

func (r *CampaignRepository) Delete(ctx context.Context, id string) (*admindomain.Campaign, error) {
	objectID, err := objectIDFromHex("campaign", id)
	if err != nil {
		return nil, err
	}
	var doc CampaignDocument
	if err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": objectID}).Decode(&doc); err != nil {
		return nil, translate(err, "campaign", id)
	}
	campaign := mapCampaign(doc)
	return &campaign, nil
}

func (r *CampaignRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.collection.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fault.Internal("failed to count campaigns", err)
	}
	return n, nil
}

func (r *CampaignRepository) find(ctx context.Context, filter any, opts *options.FindOptions) ([]admindomain.Campaign, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, translate(err, "campaign", "")
	}
	return decodeAll(ctx, cursor, mapCampaign)
}

func mapCampaign(doc CampaignDocument) admindomain.Campaign {
	return admindomain.Campaign{
		ID:        doc.ID.Hex(),
		Title:     doc.Title,
		ClientID:  doc.ClientID,
		LogoURL:   admindomain.PhotoURL(doc.LogoURL),
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}
