package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sand-hq/campaign-api/internal/fault"
)

// Collections は固定コレクション名の組。
type Collections struct {
	Clients     string
	Campaigns   string
	Forms       string
	Rights      string
	Users       string
	Assignments string
}

// DefaultCollections returns the collection names used when none are configured.
func DefaultCollections() Collections {
	return Collections{
		Clients:     "clients",
		Campaigns:   "campaigns",
		Forms:       "forms",
		Rights:      "rights",
		Users:       "users",
		Assignments: "assignments",
	}
}

// objectIDFromHex は 16 進 ObjectID を解釈する。形式不正は存在しない id と同じく NotFound とする。
func objectIDFromHex(entity, id string) (primitive.ObjectID, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return primitive.NilObjectID, fault.NotFoundf("%s %s not found", entity, id)
	}
	return objectID, nil
}

// objectIDsFromHex は不正な id を読み飛ばして変換する。一括取得用。
func objectIDsFromHex(ids []string) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id)); err == nil {
			out = append(out, objectID)
		}
	}
	return out
}

// translate は driver のエラーを fault の分類へ写像する。
func translate(err error, entity, id string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fault.NotFoundf("%s %s not found", entity, id)
	}
	if mongo.IsDuplicateKeyError(err) {
		return fault.Validationf("%s already exists", entity)
	}
	return fault.Internal(fmt.Sprintf("%s store failure", entity), err)
}

// decodeAll はカーソルを最後まで読み、各ドキュメントを mapper でドメイン型へ変換する。
func decodeAll[D any, T any](ctx context.Context, cursor *mongo.Cursor, mapper func(D) T) ([]T, error) {
	defer cursor.Close(ctx)

	items := make([]T, 0)
	for cursor.Next(ctx) {
		var doc D
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		items = append(items, mapper(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// plainValue は primitive.D / primitive.A を JSON 化しやすい map / slice へ戻す。
func plainValue(v any) any {
	switch value := v.(type) {
	case primitive.D:
		out := make(map[string]any, len(value))
		for _, e := range value {
			out[e.Key] = plainValue(e.Value)
		}
		return out
	case bson.M:
		out := make(map[string]any, len(value))
		for k, inner := range value {
			out[k] = plainValue(inner)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(value))
		for k, inner := range value {
			out[k] = plainValue(inner)
		}
		return out
	case primitive.A:
		out := make([]any, len(value))
		for i, inner := range value {
			out[i] = plainValue(inner)
		}
		return out
	case primitive.ObjectID:
		return value.Hex()
	case primitive.DateTime:
		return value.Time().UTC()
	default:
		return v
	}
}
