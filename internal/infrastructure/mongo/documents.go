package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ClientDocument は clients コレクションのスキーマを表す。
type ClientDocument struct {
	ID        primitive.ObjectID `bson:"_id"`
	Name      string             `bson:"name"`
	Location  string             `bson:"location"`
	Website   string             `bson:"website"`
	PhotoURL  string             `bson:"photo"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

// CampaignDocument は campaigns コレクションのスキーマ。clientId は外部キーだが制約は張らない。
type CampaignDocument struct {
	ID        primitive.ObjectID `bson:"_id"`
	Title     string             `bson:"title"`
	ClientID  string             `bson:"clientId"`
	LogoURL   string             `bson:"logo"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

// FieldDocument はフォーム定義に埋め込まれる入力項目。
type FieldDocument struct {
	Title    string   `bson:"title"`
	Type     string   `bson:"type"`
	Options  []string `bson:"options,omitempty"`
	Required bool     `bson:"required,omitempty"`
	Rule     string   `bson:"rule,omitempty"`
}

// FormDocument は forms コレクションのスキーマ。子フォームは独立ドキュメントとして保存し id で参照する。
type FormDocument struct {
	ID             primitive.ObjectID `bson:"_id"`
	CampaignID     string             `bson:"campaignId"`
	Title          string             `bson:"title"`
	Fields         []FieldDocument    `bson:"formFields"`
	CollectionName string             `bson:"collectionName"`
	IsNested       bool               `bson:"isNested"`
	MainFormID     string             `bson:"mainFormId,omitempty"`
	NestedForms    []string           `bson:"nestedForms"`
	CreatedAt      time.Time          `bson:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt"`
}

// RightsDocument は rights コレクションのスキーマ。キー項目は不透明な文字列として扱う。
type RightsDocument struct {
	ID             primitive.ObjectID `bson:"_id"`
	FormID         string             `bson:"formId"`
	CampaignID     string             `bson:"campaignId"`
	ClientID       string             `bson:"clientId"`
	EmployeeID     string             `bson:"employeeId"`
	ViewData       bool               `bson:"viewData"`
	DownloadData   bool               `bson:"downloadData"`
	ManipulateData bool               `bson:"manipulateData"`
	DownloadReport bool               `bson:"downloadReport"`
	CreatedAt      time.Time          `bson:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt"`
}

// RecordDocument は動的コレクションに保存される1件の回答。
type RecordDocument struct {
	ID           primitive.ObjectID `bson:"_id"`
	FormID       string             `bson:"formId"`
	Fields       bson.M             `bson:"fields"`
	AcceptedData *bool              `bson:"acceptedData,omitempty"`
	SubmittedBy  string             `bson:"submittedBy,omitempty"`
	SubmittedAt  time.Time          `bson:"submittedAt"`
	ReviewedAt   *time.Time         `bson:"reviewedAt,omitempty"`
}

// UserDocument は users コレクションのスキーマ。担当リストは assignments から組み立てるため持たない。
type UserDocument struct {
	ID           primitive.ObjectID `bson:"_id"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password"`
	Role         string             `bson:"role"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
}

// AssignmentDocument は (kind, ownerId, relatedId) の一意な辺を表す。
type AssignmentDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Kind      string             `bson:"kind"`
	OwnerID   string             `bson:"ownerId"`
	RelatedID string             `bson:"relatedId"`
	CreatedAt time.Time          `bson:"createdAt"`
}
