package mongo

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	admindomain "github.com/sand-hq/campaign-api/internal/admin/domain"
	"github.com/sand-hq/campaign-api/internal/fault"
)

// FormRepository は forms コレクションの Mongo 実装。
type FormRepository struct {
	collection *mongo.Collection
}

func NewFormRepository(db *mongo.Database, collection string) *FormRepository {
	return &FormRepository{collection: db.Collection(collection)}
}

// Create は ObjectID を採番し、そこから動的コレクション名を導出して保存する。
func (r *FormRepository) Create(ctx context.Context, form *admindomain.FormDefinition) error {
	id := primitive.NewObjectID()
	doc := FormDocument{
		ID:             id,
		CampaignID:     form.CampaignID,
		Title:          form.Title,
		Fields:         toFieldDocuments(form.Fields),
		CollectionName: admindomain.CollectionNameFor(id.Hex()),
		IsNested:       form.IsNested,
		MainFormID:     form.MainFormID,
		NestedForms:    append([]string{}, form.NestedForms...),
		CreatedAt:      form.CreatedAt,
		UpdatedAt:      form.UpdatedAt,
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return translate(err, "form", "")
	}
	form.ID = id.Hex()
	form.CollectionName = doc.CollectionName
	return nil
}

func (r *FormRepository) FindByID(ctx context.Context, id string) (*admindomain.FormDefinition, error) {
	objectID, err := objectIDFromHex("form", id)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": objectID}, id)
}

func (r *FormRepository) FindByIDs(ctx context.Context, ids []string) ([]admindomain.FormDefinition, error) {
	objectIDs := objectIDsFromHex(ids)
	if len(objectIDs) == 0 {
		return []admindomain.FormDefinition{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": objectIDs}})
}

// FindByCampaign は topLevelOnly のとき子フォームを除外する。
func (r *FormRepository) FindByCampaign(ctx context.Context, campaignID string, topLevelOnly bool) ([]admindomain.FormDefinition, error) {
	filter := bson.M{"campaignId": strings.TrimSpace(campaignID)}
	if topLevelOnly {
		filter["isNested"] = bson.M{"$ne": true}
	}
	return r.find(ctx, filter)
}

func (r *FormRepository) FindByCollectionName(ctx context.Context, name string) (*admindomain.FormDefinition, error) {
	return r.findOne(ctx, bson.M{"collectionName": strings.TrimSpace(name)}, name)
}

// AddNested は $addToSet で子フォーム id を集合として追加する。
func (r *FormRepository) AddNested(ctx context.Context, parentID, childID string) error {
	objectID, err := objectIDFromHex("form", parentID)
	if err != nil {
		return err
	}
	update := bson.M{
		"$addToSet": bson.M{"nestedForms": childID},
		"$set":      bson.M{"updatedAt": time.Now().UTC()},
	}
	result, err := r.collection.UpdateByID(ctx, objectID, update)
	if err != nil {
		return translate(err, "form", parentID)
	}
	if result.MatchedCount == 0 {
		return fault.NotFoundf("form %s not found", parentID)
	}
	return nil
}

func (r *FormRepository) Delete(ctx context.Context, id string) error {
	objectID, err := objectIDFromHex("form", id)
	if err != nil {
		return err
	}
	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID}); err != nil {
		return translate(err, "form", id)
	}
	return nil
}

func (r *FormRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.collection.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fault.Internal("failed to count forms", err)
	}
	return n, nil
}

func (r *FormRepository) findOne(ctx context.Context, filter any, label string) (*admindomain.FormDefinition, error) {
	var doc FormDocument
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, translate(err, "form", label)
	}
	form := mapForm(doc)
	return &form, nil
}

func (r *FormRepository) find(ctx context.Context, filter any) ([]admindomain.FormDefinition, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, translate(err, "form", "")
	}
	return decodeAll(ctx, cursor, mapForm)
}

func toFieldDocuments(fields []admindomain.FieldSpec) []FieldDocument {
	docs := make([]FieldDocument, 0, len(fields))
	for _, f := range fields {
		docs = append(docs, FieldDocument{
			Title:    f.Title,
			Type:     string(f.Type),
			Options:  f.Options,
			Required: f.Required,
			Rule:     f.Rule,
		})
	}
	return docs
}

func mapForm(doc FormDocument) admindomain.FormDefinition {
	fields := make([]admindomain.FieldSpec, 0, len(doc.Fields))
	for _, f := range doc.Fields {
		fields = append(fields, admindomain.FieldSpec{
			Title:    f.Title,
			Type:     admindomain.FieldType(f.Type),
			Options:  f.Options,
			Required: f.Required,
			Rule:     f.Rule,
		})
	}
	nested := doc.NestedForms
	if nested == nil {
		nested = []string{}
	}
	return admindomain.FormDefinition{
		ID:             doc.ID.Hex(),
		CampaignID:     doc.CampaignID,
		Title:          doc.Title,
		Fields:         fields,
		CollectionName: doc.CollectionName,
		IsNested:       doc.IsNested,
		MainFormID:     doc.MainFormID,
		NestedForms:    nested,
		CreatedAt:      doc.CreatedAt,
		UpdatedAt:      doc.UpdatedAt,
	}
}
