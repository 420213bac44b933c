package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes は一意制約と参照用インデックスを用意する。起動時と `indexes` サブコマンドから呼ばれる。
// CreateMany は既存の同一定義に対しては何もしないため、何度呼んでもよい。
func EnsureIndexes(ctx context.Context, db *mongo.Database, cols Collections) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	for collection, models := range indexModels(cols) {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", collection, err)
		}
	}
	return nil
}

func indexModels(cols Collections) map[string][]mongo.IndexModel {
	unique := func(name string) *options.IndexOptions {
		return options.Index().SetName(name).SetUnique(true)
	}
	named := func(name string) *options.IndexOptions {
		return options.Index().SetName(name)
	}

	return map[string][]mongo.IndexModel{
		cols.Campaigns: {
			{Keys: bson.D{{Key: "clientId", Value: 1}}, Options: named("campaigns_client")},
			{Keys: bson.D{{Key: "createdAt", Value: -1}}, Options: named("campaigns_recent")},
		},
		cols.Forms: {
			{Keys: bson.D{{Key: "collectionName", Value: 1}}, Options: unique("forms_collection_name")},
			{Keys: bson.D{{Key: "campaignId", Value: 1}, {Key: "isNested", Value: 1}}, Options: named("forms_campaign")},
		},
		cols.Rights: {
			{
				Keys: bson.D{
					{Key: "formId", Value: 1},
					{Key: "campaignId", Value: 1},
					{Key: "clientId", Value: 1},
					{Key: "employeeId", Value: 1},
				},
				Options: unique("rights_key"),
			},
			{Keys: bson.D{{Key: "formId", Value: 1}, {Key: "employeeId", Value: 1}}, Options: named("rights_form_employee")},
		},
		cols.Users: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique("users_email")},
			{Keys: bson.D{{Key: "role", Value: 1}}, Options: named("users_role")},
		},
		cols.Assignments: {
			{
				Keys:    bson.D{{Key: "kind", Value: 1}, {Key: "ownerId", Value: 1}, {Key: "relatedId", Value: 1}},
				Options: unique("assignments_edge"),
			},
		},
	}
}
