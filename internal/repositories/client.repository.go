package repositories

import (
	"context"
	"errors"
	"strings"

	. "reefclean/internal/models"
	"reefclean/internal/types"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const CLIENT_RECENT_JOBS_PER_VESSEL = 5

type ClientFilter struct {
	Search string
	PageRequest
}

type ClientRepository interface {
	List(ctx context.Context, tx *gorm.DB, filter ClientFilter) (Page[*Client], error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*Client, error)
	// GetDetail loads vessels and each vessel's most recent jobs.
	GetDetail(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*Client, error)
	Create(ctx context.Context, tx *gorm.DB, client *Client) error
	Update(ctx context.Context, tx *gorm.DB, client *Client) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type clientRepository struct {
	log logger.Logger
}

func NewClientRepository() ClientRepository {
	return &clientRepository{log: logger.New("clientRepository")}
}

func likePattern(search string) string {
	return "%" + strings.ToLower(strings.TrimSpace(search)) + "%"
}

func (r *clientRepository) List(
	ctx context.Context,
	tx *gorm.DB,
	filter ClientFilter,
) (Page[*Client], error) {
	log := r.log.TraceFromContext(ctx).Function("List")

	query := tx.WithContext(ctx).Model(&Client{})

	if strings.TrimSpace(filter.Search) != "" {
		pattern := likePattern(filter.Search)
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(COALESCE(email, '')) LIKE ? OR LOWER(COALESCE(company_name, '')) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	if filter.Cursor != nil {
		var anchor Client
		if err := tx.WithContext(ctx).Select("id", "name").First(&anchor, "id = ?", *filter.Cursor).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return Page[*Client]{}, invalidCursor(*filter.Cursor)
			}
			return Page[*Client]{}, log.Err("failed to load cursor row", err, "cursor", *filter.Cursor)
		}
		query = query.Where("name > ? OR (name = ? AND id >= ?)", anchor.Name, anchor.Name, anchor.ID)
	}

	limit := filter.limit()

	var clients []*Client
	if err := query.
		Preload("Vessels", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "client_id", "name", "type").Order("name ASC")
		}).
		Order("name ASC, id ASC").
		Limit(limit + 1).
		Find(&clients).Error; err != nil {
		return Page[*Client]{}, log.Err("failed to list clients", err)
	}

	return newPage(clients, limit, func(c *Client) uuid.UUID { return c.ID }), nil
}

func (r *clientRepository) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*Client, error) {
	var client Client
	if err := tx.WithContext(ctx).First(&client, "id = ?", id).Error; err != nil {
		return nil, types.FromStoreError(err, "client", id)
	}
	return &client, nil
}

func (r *clientRepository) GetDetail(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*Client, error) {
	log := r.log.TraceFromContext(ctx).Function("GetDetail")

	var client Client
	if err := tx.WithContext(ctx).
		Preload("Vessels", func(db *gorm.DB) *gorm.DB {
			return db.Order("name ASC")
		}).
		First(&client, "id = ?", id).Error; err != nil {
		return nil, types.FromStoreError(err, "client", id)
	}

	for i := range client.Vessels {
		vessel := &client.Vessels[i]
		if err := tx.WithContext(ctx).
			Where("vessel_id = ?", vessel.ID).
			Order("created_at DESC, id DESC").
			Limit(CLIENT_RECENT_JOBS_PER_VESSEL).
			Find(&vessel.Jobs).Error; err != nil {
			return nil, log.Err("failed to load recent jobs", err, "vesselID", vessel.ID)
		}
	}

	return &client, nil
}

func (r *clientRepository) Create(ctx context.Context, tx *gorm.DB, client *Client) error {
	if err := tx.WithContext(ctx).Omit("Vessels").Create(client).Error; err != nil {
		if errors.Is(err, gorm.ErrInvalidValue) {
			return types.NewValidationError("name", "required", "is required")
		}
		return r.log.Function("Create").Err("failed to create client", types.FromStoreError(err, "client", client.Name))
	}
	return nil
}

func (r *clientRepository) Update(ctx context.Context, tx *gorm.DB, client *Client) error {
	if err := tx.WithContext(ctx).Omit("Vessels").Save(client).Error; err != nil {
		if errors.Is(err, gorm.ErrInvalidValue) {
			return types.NewValidationError("name", "required", "is required")
		}
		return r.log.Function("Update").Err("failed to update client", types.FromStoreError(err, "client", client.ID))
	}
	return nil
}

// Delete removes the client; vessels, sections, jobs, progress, and media go
// with it through ON DELETE CASCADE.
func (r *clientRepository) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	result := tx.WithContext(ctx).Delete(&Client{}, "id = ?", id)
	if result.Error != nil {
		return r.log.Function("Delete").Err("failed to delete client", result.Error, "clientID", id)
	}
	if result.RowsAffected == 0 {
		return types.NewNotFoundError("client", id)
	}
	return nil
}
