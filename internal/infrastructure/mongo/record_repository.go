package mongo

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	admindomain "github.com/sand-hq/campaign-api/internal/admin/domain"
	"github.com/sand-hq/campaign-api/internal/fault"
)

// codeNamespaceExists は createCollection が既存コレクションに対して返すサーバーエラーコード。
const codeNamespaceExists = 48

// DynamicStore はフォームごとの動的コレクションを扱う。コレクション名は必ず登録済みフォームから渡される。
type DynamicStore struct {
	db *mongo.Database
}

func NewDynamicStore(db *mongo.Database) *DynamicStore {
	return &DynamicStore{db: db}
}

// CreateCollection は動的コレクションを明示的に作成する。既に存在する場合は成功扱い。
func (s *DynamicStore) CreateCollection(ctx context.Context, name string) error {
	err := s.db.CreateCollection(ctx, name)
	if err == nil {
		return nil
	}
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && cmdErr.Code == codeNamespaceExists {
		return nil
	}
	return fault.Internal("failed to create collection "+name, err)
}

func (s *DynamicStore) DropCollection(ctx context.Context, name string) error {
	if err := s.db.Collection(name).Drop(ctx); err != nil {
		return fault.Internal("failed to drop collection "+name, err)
	}
	return nil
}

func (s *DynamicStore) Insert(ctx context.Context, collection string, record *admindomain.DynamicRecord) error {
	doc := RecordDocument{
		ID:           primitive.NewObjectID(),
		FormID:       record.FormID,
		Fields:       bson.M(record.Fields),
		AcceptedData: record.AcceptedData,
		SubmittedBy:  record.SubmittedBy,
		SubmittedAt:  record.SubmittedAt,
	}
	if _, err := s.db.Collection(collection).InsertOne(ctx, doc); err != nil {
		return translate(err, "record", "")
	}
	record.ID = doc.ID.Hex()
	return nil
}

// FindAll は投稿日時順に全件返す。
func (s *DynamicStore) FindAll(ctx context.Context, collection string) ([]admindomain.DynamicRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "submittedAt", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := s.db.Collection(collection).Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, translate(err, "record", "")
	}
	return decodeAll(ctx, cursor, mapRecord)
}

// SetAccepted は acceptedData と reviewedAt を更新し、更新後のドキュメントを返す。
func (s *DynamicStore) SetAccepted(ctx context.Context, collection, itemID string, accepted bool) (*admindomain.DynamicRecord, error) {
	objectID, err := objectIDFromHex("record", itemID)
	if err != nil {
		return nil, err
	}
	update := bson.M{"$set": bson.M{
		"acceptedData": accepted,
		"reviewedAt":   time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc RecordDocument
	if err := s.db.Collection(collection).FindOneAndUpdate(ctx, bson.M{"_id": objectID}, update, opts).Decode(&doc); err != nil {
		return nil, translate(err, "record", strings.TrimSpace(itemID))
	}
	record := mapRecord(doc)
	return &record, nil
}

func mapRecord(doc RecordDocument) admindomain.DynamicRecord {
	fields := make(map[string]any, len(doc.Fields))
	for k, v := range doc.Fields {
		fields[k] = plainValue(v)
	}
	return admindomain.DynamicRecord{
		ID:           doc.ID.Hex(),
		FormID:       doc.FormID,
		Fields:       fields,
		AcceptedData: doc.AcceptedData,
		SubmittedBy:  doc.SubmittedBy,
		SubmittedAt:  doc.SubmittedAt,
		ReviewedAt:   doc.ReviewedAt,
	}
}
