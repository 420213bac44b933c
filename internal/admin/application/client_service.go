package application

import (
	"context"
	"strings"
	"time"

	admindomain "github.com/sand-hq/campaign-api/internal/admin/domain"
	"github.com/sand-hq/campaign-api/internal/fault"
)

// clientService implements ClientService.
type clientService struct {
	repo     ClientRepository
	uploader PhotoUploader
}

// NewClientService builds a ClientService. uploader may be nil, in which case
// only photo URLs are accepted.
func NewClientService(repo ClientRepository, uploader PhotoUploader) ClientService {
	return &clientService{repo: repo, uploader: uploader}
}

func (s *clientService) Create(ctx context.Context, cmd CreateClientCommand) (*admindomain.Client, error) {
	if _, err := admindomain.RequiredText("client name", cmd.Name); err != nil {
		return nil, err
	}
	photoURL, err := resolvePhoto(ctx, s.uploader, "clients", "client photo", cmd.PhotoURL, cmd.Photo)
	if err != nil {
		return nil, err
	}
	client, err := admindomain.NewClient(cmd.Name, cmd.Location, cmd.Website, photoURL)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	client.CreatedAt = now
	client.UpdatedAt = now
	if err := s.repo.Create(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *clientService) Detail(ctx context.Context, id string) (*admindomain.Client, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fault.Validation("clientId is required")
	}
	return s.repo.FindByID(ctx, id)
}

func (s *clientService) List(ctx context.Context) ([]admindomain.Client, error) {
	return s.repo.FindAll(ctx)
}

func (s *clientService) ListByIDs(ctx context.Context, ids []string) ([]admindomain.Client, error) {
	if len(ids) == 0 {
		return []admindomain.Client{}, nil
	}
	return s.repo.FindByIDs(ctx, ids)
}

func (s *clientService) Delete(ctx context.Context, id string) (*admindomain.Client, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fault.Validation("clientId is required")
	}
	return s.repo.Delete(ctx, id)
}

// resolvePhoto prefers an explicit URL and otherwise uploads the file.
func resolvePhoto(ctx context.Context, uploader PhotoUploader, folder, field, rawURL string, upload *PhotoUpload) (string, error) {
	if trimmed := strings.TrimSpace(rawURL); trimmed != "" {
		return trimmed, nil
	}
	if upload == nil || upload.Body == nil {
		return "", fault.Validationf("%s is required", field)
	}
	if uploader == nil {
		return "", fault.Validation("photo uploads are not configured; send a photo URL instead")
	}
	url, err := uploader.Upload(ctx, folder, upload.Filename, upload.ContentType, upload.Body)
	if err != nil {
		return "", fault.Internal("failed to upload "+field, err)
	}
	return url, nil
}
