package domain

import "time"

// DynamicRecord is one submission stored in a form's dynamic collection.
// AcceptedData stays nil until a reviewer accepts or rejects it.
type DynamicRecord struct {
	ID           string
	FormID       string
	Fields       map[string]any
	AcceptedData *bool
	SubmittedBy  string
	SubmittedAt  time.Time
	ReviewedAt   *time.Time
}
