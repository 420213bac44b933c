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

// RightsRepository は rights コレクションの Mongo 実装。
// 更新は 4 項目キー、参照は (formId, employeeId) の 2 項目キーで行う。
type RightsRepository struct {
	collection *mongo.Collection
}

func NewRightsRepository(db *mongo.Database, collection string) *RightsRepository {
	return &RightsRepository{collection: db.Collection(collection)}
}

// Create は新しい権限レコードを作成する。同一キーの重複は一意インデックスで弾かれ Validation になる。
func (r *RightsRepository) Create(ctx context.Context, record *admindomain.RightsRecord) error {
	doc := RightsDocument{
		ID:             primitive.NewObjectID(),
		FormID:         record.Key.FormID,
		CampaignID:     record.Key.CampaignID,
		ClientID:       record.Key.ClientID,
		EmployeeID:     record.Key.EmployeeID,
		ViewData:       record.Flags.ViewData,
		DownloadData:   record.Flags.DownloadData,
		ManipulateData: record.Flags.ManipulateData,
		DownloadReport: record.Flags.DownloadReport,
		CreatedAt:      record.CreatedAt,
		UpdatedAt:      record.UpdatedAt,
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fault.Validation("rights already exist for this form, campaign, client and employee")
		}
		return translate(err, "rights", "")
	}
	record.ID = doc.ID.Hex()
	return nil
}

// Update は指定されたフラグだけを $set する。upsert はしない。
// 値が変わらない場合は updatedAt も据え置き、同じ更新の再適用で結果が変わらないようにする。
func (r *RightsRepository) Update(ctx context.Context, key admindomain.RightsKey, patch admindomain.RightsPatch) (*admindomain.RightsRecord, error) {
	set := bson.D{}
	unchanged := bson.A{}
	for _, flag := range []struct {
		name  string
		value *bool
	}{
		{"viewData", patch.ViewData},
		{"downloadData", patch.DownloadData},
		{"manipulateData", patch.ManipulateData},
		{"downloadReport", patch.DownloadReport},
	} {
		if flag.value == nil {
			continue
		}
		set = append(set, bson.E{Key: flag.name, Value: *flag.value})
		unchanged = append(unchanged, bson.D{{Key: "$eq", Value: bson.A{"$" + flag.name, *flag.value}}})
	}
	if len(set) == 0 {
		return nil, fault.Validation("no rights flags to update")
	}

	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: bson.D{{Key: "$cond", Value: bson.A{
			bson.D{{Key: "$and", Value: unchanged}},
			"$updatedAt",
			"$$NOW",
		}}}}}}},
		{{Key: "$set", Value: set}},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc RightsDocument
	err := r.collection.FindOneAndUpdate(ctx, rightsKeyFilter(key), pipeline, opts).Decode(&doc)
	if err != nil {
		return nil, translate(err, "rights", key.FormID+"/"+key.EmployeeID)
	}
	record := mapRights(doc)
	return &record, nil
}

func (r *RightsRepository) FindByFormAndEmployee(ctx context.Context, formID, employeeID string) ([]admindomain.RightsRecord, error) {
	filter := bson.D{{Key: "formId", Value: formID}, {Key: "employeeId", Value: employeeID}}
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, translate(err, "rights", "")
	}
	return decodeAll(ctx, cursor, mapRights)
}

func rightsKeyFilter(key admindomain.RightsKey) bson.D {
	return bson.D{
		{Key: "formId", Value: key.FormID},
		{Key: "campaignId", Value: key.CampaignID},
		{Key: "clientId", Value: key.ClientID},
		{Key: "employeeId", Value: key.EmployeeID},
	}
}

func mapRights(doc RightsDocument) admindomain.RightsRecord {
	return admindomain.RightsRecord{
		ID: doc.ID.Hex(),
		Key: admindomain.RightsKey{
			FormID:     doc.FormID,
			CampaignID: doc.CampaignID,
			ClientID:   doc.ClientID,
			EmployeeID: doc.EmployeeID,
		},
		Flags: admindomain.RightsFlags{
			ViewData:       doc.ViewData,
			DownloadData:   doc.DownloadData,
			ManipulateData: doc.ManipulateData,
			DownloadReport: doc.DownloadReport,
		},
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}
