package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	admindomain "github.com/sand-hq/campaign-api/internal/admin/domain"
)

// AssignmentRepository は担当関係 (kind, ownerId, relatedId) を一意な辺として保持する。
type AssignmentRepository struct {
	collection *mongo.Collection
}

func NewAssignmentRepository(db *mongo.Database, collectionName string) *AssignmentRepository {
	return &AssignmentRepository{collection: db.Collection(collectionName)}
}

// Add は $setOnInsert による upsert で辺を追加する。新規に作成した場合のみ true を返す。
func (r *AssignmentRepository) Add(ctx context.Context, kind admindomain.AssignmentKind, ownerID, relatedID string) (bool, error) {
	filter := edgeFilter(kind, ownerID, relatedID)
	update := bson.M{
		"$setOnInsert": bson.M{
			"createdAt": time.Now().UTC(),
		},
	}
	opts := options.Update().SetUpsert(true)
	result, err := r.collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// 同時 upsert の競合。辺は既に存在する。
			return false, nil
		}
		return false, translate(err, "assignment", ownerID)
	}
	return result.UpsertedCount > 0, nil
}

// Remove は辺を削除する。削除した場合のみ true を返す。
func (r *AssignmentRepository) Remove(ctx context.Context, kind admindomain.AssignmentKind, ownerID, relatedID string) (bool, error) {
	result, err := r.collection.DeleteOne(ctx, edgeFilter(kind, ownerID, relatedID))
	if err != nil {
		return false, translate(err, "assignment", ownerID)
	}
	return result.DeletedCount > 0, nil
}

func (r *AssignmentRepository) RelatedIDs(ctx context.Context, kind admindomain.AssignmentKind, ownerID string) ([]string, error) {
	byOwner, err := r.RelatedIDsByOwner(ctx, kind, []string{ownerID})
	if err != nil {
		return nil, err
	}
	ids := byOwner[ownerID]
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// RelatedIDsByOwner は複数オーナー分の辺を 1 クエリでまとめて取得する。
func (r *AssignmentRepository) RelatedIDsByOwner(ctx context.Context, kind admindomain.AssignmentKind, ownerIDs []string) (map[string][]string, error) {
	out := make(map[string][]string, len(ownerIDs))
	if len(ownerIDs) == 0 {
		return out, nil
	}
	filter := bson.M{"kind": string(kind), "ownerId": bson.M{"$in": ownerIDs}}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, translate(err, "assignment", "")
	}
	edges, err := decodeAll(ctx, cursor, func(doc AssignmentDocument) AssignmentDocument { return doc })
	if err != nil {
		return nil, err
	}
	for _, edge := range edges {
		out[edge.OwnerID] = append(out[edge.OwnerID], edge.RelatedID)
	}
	return out, nil
}

func edgeFilter(kind admindomain.AssignmentKind, ownerID, relatedID string) bson.M {
	return bson.M{"kind": string(kind), "ownerId": ownerID, "relatedId": relatedID}
}
