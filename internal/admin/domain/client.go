package domain

import "time"

// Client is a customer organisation that owns campaigns.
type Client struct {
	ID        string
	Name      string
	Location  string
	Website   URL
	PhotoURL  PhotoURL
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewClient(name, location, website, photo string) (*Client, error) {
	n, err := RequiredText("client name", name)
	if err != nil {
		return nil, err
	}
	loc, err := RequiredText("client location", location)
	if err != nil {
		return nil, err
	}
	site, err := NewURL("client website", website)
	if err != nil {
		return nil, err
	}
	pic, err := NewPhotoURL("client photo", photo)
	if err != nil {
		return nil, err
	}
	return &Client{
		Name:     n,
		Location: loc,
		Website:  site,
		PhotoURL: pic,
	}, nil
}
