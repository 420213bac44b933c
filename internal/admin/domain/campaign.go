package domain

import "time"

// Campaign belongs to exactly one Client. The reference is not enforced:
// deleting a client leaves its campaigns in place.
type Campaign struct {
	ID        string
	Title     string
	ClientID  string
	LogoURL   PhotoURL
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewCampaign(title, clientID, logo string) (*Campaign, error) {
	t, err := RequiredText("campaign title", title)
	if err != nil {
		return nil, err
	}
	client, err := RequiredText("clientId", clientID)
	if err != nil {
		return nil, err
	}
	pic, err := NewPhotoURL("campaign logo", logo)
	if err != nil {
		return nil, err
	}
	return &Campaign{Title: t, ClientID: client, LogoURL: pic}, nil
}
