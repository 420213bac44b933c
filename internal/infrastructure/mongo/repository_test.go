package mongo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	admindomain "github.com/sand-hq/campaign-api/internal/admin/domain"
	"github.com/sand-hq/campaign-api/internal/fault"
)

const ns = "campaigns_test.items"

func newMock(t *testing.T) *mtest.T {
	return mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
}

func TestClientRepository(t *testing.T) {
	mt := newMock(t)

	mt.Run("create assigns id", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := NewClientRepository(mt.DB, mt.Coll.Name())

		client := &admindomain.Client{Name: "Acme", Location: "Pune", Website: "acme.com", PhotoURL: "https://img/a.png"}
		require.NoError(t, repo.Create(context.Background(), client))
		_, err := primitive.ObjectIDFromHex(client.ID)
		assert.NoError(t, err)
	})

	mt.Run("find by malformed id is not found", func(mt *mtest.T) {
		repo := NewClientRepository(mt.DB, mt.Coll.Name())

		_, err := repo.FindByID(context.Background(), "f1")
		assert.True(t, fault.IsNotFound(err))
	})

	mt.Run("find missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))
		repo := NewClientRepository(mt.DB, mt.Coll.Name())

		_, err := repo.FindByID(context.Background(), primitive.NewObjectID().Hex())
		assert.True(t, fault.IsNotFound(err))
	})

	mt.Run("find all", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "name", Value: "Acme"},
			{Key: "location", Value: "Pune"},
			{Key: "website", Value: "acme.com"},
			{Key: "photo", Value: "https://img/a.png"},
		}))
		repo := NewClientRepository(mt.DB, mt.Coll.Name())

		clients, err := repo.FindAll(context.Background())
		require.NoError(t, err)
		require.Len(t, clients, 1)
		assert.Equal(t, id.Hex(), clients[0].ID)
		assert.Equal(t, admindomain.PhotoURL("https://img/a.png"), clients[0].PhotoURL)
	})

	mt.Run("delete missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))
		repo := NewClientRepository(mt.DB, mt.Coll.Name())

		_, err := repo.Delete(context.Background(), primitive.NewObjectID().Hex())
		assert.True(t, fault.IsNotFound(err))
	})

	mt.Run("count", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{{Key: "n", Value: int64(3)}}))
		repo := NewClientRepository(mt.DB, mt.Coll.Name())

		n, err := repo.Count(context.Background())
		require.NoError(t, err)
		assert.EqualValues(t, 3, n)
	})
}

func TestFormRepository(t *testing.T) {
	mt := newMock(t)

	mt.Run("create derives collection name from id", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := NewFormRepository(mt.DB, mt.Coll.Name())

		form := &admindomain.FormDefinition{CampaignID: "c1", Title: "Name"}
		require.NoError(t, repo.Create(context.Background(), form))
		assert.Equal(t, "form_"+form.ID, form.CollectionName)
	})

	mt.Run("duplicate collection name", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "duplicate key error"}))
		repo := NewFormRepository(mt.DB, mt.Coll.Name())

		err := repo.Create(context.Background(), &admindomain.FormDefinition{CampaignID: "c1"})
		assert.True(t, fault.IsValidation(err))
	})

	mt.Run("add nested to missing parent", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))
		repo := NewFormRepository(mt.DB, mt.Coll.Name())

		err := repo.AddNested(context.Background(), primitive.NewObjectID().Hex(), "child")
		assert.True(t, fault.IsNotFound(err))
	})

	mt.Run("add nested", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 0}))
		repo := NewFormRepository(mt.DB, mt.Coll.Name())

		assert.NoError(t, repo.AddNested(context.Background(), primitive.NewObjectID().Hex(), "child"))
	})

	mt.Run("find by campaign decodes fields", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "campaignId", Value: "c1"},
			{Key: "title", Value: "Region"},
			{Key: "formFields", Value: bson.A{
				bson.D{{Key: "title", Value: "Region"}, {Key: "type", Value: "dropdown"}, {Key: "options", Value: bson.A{"North", "South"}}},
			}},
			{Key: "collectionName", Value: "form_" + id.Hex()},
			{Key: "isNested", Value: false},
		}))
		repo := NewFormRepository(mt.DB, mt.Coll.Name())

		forms, err := repo.FindByCampaign(context.Background(), "c1", true)
		require.NoError(t, err)
		require.Len(t, forms, 1)
		assert.Equal(t, admindomain.FieldDropdown, forms[0].Fields[0].Type)
		assert.Equal(t, []string{"North", "South"}, forms[0].Fields[0].Options)
		assert.NotNil(t, forms[0].NestedForms)
	})
}

func TestRightsRepository(t *testing.T) {
	mt := newMock(t)
	key := admindomain.RightsKey{FormID: "f1", CampaignID: "c1", ClientID: "k1", EmployeeID: "e1"}
	yes := true

	mt.Run("update without match is not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))
		repo := NewRightsRepository(mt.DB, mt.Coll.Name())

		_, err := repo.Update(context.Background(), key, admindomain.RightsPatch{ViewData: &yes})
		assert.True(t, fault.IsNotFound(err))
	})

	mt.Run("update returns merged record", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "formId", Value: "f1"},
			{Key: "campaignId", Value: "c1"},
			{Key: "clientId", Value: "k1"},
			{Key: "employeeId", Value: "e1"},
			{Key: "viewData", Value: true},
			{Key: "downloadReport", Value: true},
		}}))
		repo := NewRightsRepository(mt.DB, mt.Coll.Name())

		record, err := repo.Update(context.Background(), key, admindomain.RightsPatch{ViewData: &yes})
		require.NoError(t, err)
		assert.Equal(t, key, record.Key)
		assert.True(t, record.Flags.ViewData)
		assert.True(t, record.Flags.DownloadReport)
		assert.False(t, record.Flags.DownloadData)
	})

	mt.Run("duplicate grant", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "duplicate key error"}))
		repo := NewRightsRepository(mt.DB, mt.Coll.Name())

		err := repo.Create(context.Background(), &admindomain.RightsRecord{Key: key})
		assert.True(t, fault.IsValidation(err))
	})

	mt.Run("fetch with no records", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))
		repo := NewRightsRepository(mt.DB, mt.Coll.Name())

		records, err := repo.FindByFormAndEmployee(context.Background(), "f1", "e1")
		require.NoError(t, err)
		assert.NotNil(t, records)
		assert.Empty(t, records)
	})
}

func TestAssignmentRepository(t *testing.T) {
	mt := newMock(t)

	mt.Run("add reports new edge", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 0},
			bson.E{Key: "upserted", Value: bson.A{bson.D{{Key: "index", Value: 0}, {Key: "_id", Value: primitive.NewObjectID()}}}},
		))
		repo := NewAssignmentRepository(mt.DB, mt.Coll.Name())

		added, err := repo.Add(context.Background(), admindomain.AssignPromoterForm, "u1", "f1")
		require.NoError(t, err)
		assert.True(t, added)
	})

	mt.Run("add existing edge", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 0}))
		repo := NewAssignmentRepository(mt.DB, mt.Coll.Name())

		added, err := repo.Add(context.Background(), admindomain.AssignPromoterForm, "u1", "f1")
		require.NoError(t, err)
		assert.False(t, added)
	})

	mt.Run("remove missing edge", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))
		repo := NewAssignmentRepository(mt.DB, mt.Coll.Name())

		removed, err := repo.Remove(context.Background(), admindomain.AssignPromoterForm, "u1", "f1")
		require.NoError(t, err)
		assert.False(t, removed)
	})

	mt.Run("related ids grouped by owner", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "kind", Value: "mis_campaign"}, {Key: "ownerId", Value: "u1"}, {Key: "relatedId", Value: "c1"}},
			bson.D{{Key: "kind", Value: "mis_campaign"}, {Key: "ownerId", Value: "u2"}, {Key: "relatedId", Value: "c2"}},
			bson.D{{Key: "kind", Value: "mis_campaign"}, {Key: "ownerId", Value: "u1"}, {Key: "relatedId", Value: "c3"}},
		))
		repo := NewAssignmentRepository(mt.DB, mt.Coll.Name())

		byOwner, err := repo.RelatedIDsByOwner(context.Background(), admindomain.AssignMISCampaign, []string{"u1", "u2", "u3"})
		require.NoError(t, err)
		assert.Equal(t, map[string][]string{"u1": {"c1", "c3"}, "u2": {"c2"}}, byOwner)
	})
}

func TestDynamicStore(t *testing.T) {
	mt := newMock(t)

	mt.Run("create existing collection succeeds", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 48, Name: "NamespaceExists", Message: "collection already exists"}))
		store := NewDynamicStore(mt.DB)

		assert.NoError(t, store.CreateCollection(context.Background(), "form_abc"))
	})

	mt.Run("create collection failure is internal", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 13, Name: "Unauthorized", Message: "not allowed"}))
		store := NewDynamicStore(mt.DB)

		err := store.CreateCollection(context.Background(), "form_abc")
		assert.Equal(t, fault.KindInternal, fault.KindOf(err))
	})

	mt.Run("find all flattens nested documents", func(mt *mtest.T) {
		submitted := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "formId", Value: "f1"},
			{Key: "fields", Value: bson.D{
				{Key: "Name", Value: "Ada"},
				{Key: "Address", Value: bson.D{{Key: "city", Value: "Pune"}}},
				{Key: "Tags", Value: bson.A{"a", "b"}},
			}},
			{Key: "submittedAt", Value: submitted},
		}))
		store := NewDynamicStore(mt.DB)

		records, err := store.FindAll(context.Background(), "form_f1")
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, map[string]any{"city": "Pune"}, records[0].Fields["Address"])
		assert.Equal(t, []any{"a", "b"}, records[0].Fields["Tags"])
		assert.Nil(t, records[0].AcceptedData)
	})

	mt.Run("review malformed item id", func(mt *mtest.T) {
		store := NewDynamicStore(mt.DB)

		_, err := store.SetAccepted(context.Background(), "form_f1", "i1", true)
		assert.True(t, fault.IsNotFound(err))
	})
}

func TestUserRepositoryDuplicateEmail(t *testing.T) {
	mt := newMock(t)

	mt.Run("duplicate", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "duplicate key error"}))
		repo := NewUserRepository(mt.DB, mt.Coll.Name())

		err := repo.Create(context.Background(), &admindomain.User{Email: "a@b.co", Role: admindomain.RoleAdmin})
		assert.True(t, fault.IsValidation(err))
	})
}
