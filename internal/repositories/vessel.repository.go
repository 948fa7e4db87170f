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

const VESSEL_RECENT_JOBS = 10

type VesselFilter struct {
	ClientID *uuid.UUID
	Type     *VesselType
	Search   string
	PageRequest
}

type VesselRepository interface {
	List(ctx context.Context, tx *gorm.DB, filter VesselFilter) (Page[*Vessel], error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*Vessel, error)
	// GetDetail loads the client, ordered sections, and the most recent jobs
	// with their progress.
	GetDetail(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*Vessel, error)
	Create(ctx context.Context, tx *gorm.DB, vessel *Vessel) error
	Update(ctx context.Context, tx *gorm.DB, vessel *Vessel) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type vesselRepository struct {
	log logger.Logger
}

func NewVesselRepository() VesselRepository {
	return &vesselRepository{log: logger.New("vesselRepository")}
}

var activeJobStatuses = []JobStatus{JobStatusDraft, JobStatusInProgress}

func (r *vesselRepository) List(
	ctx context.Context,
	tx *gorm.DB,
	filter VesselFilter,
) (Page[*Vessel], error) {
	log := r.log.TraceFromContext(ctx).Function("List")

	query := tx.WithContext(ctx).Model(&Vessel{})

	if filter.ClientID != nil {
		query = query.Where("client_id = ?", *filter.ClientID)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if strings.TrimSpace(filter.Search) != "" {
		pattern := likePattern(filter.Search)
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(COALESCE(registration_no, '')) LIKE ?",
			pattern, pattern,
		)
	}

	if filter.Cursor != nil {
		var anchor Vessel
		if err := tx.WithContext(ctx).Select("id", "name").First(&anchor, "id = ?", *filter.Cursor).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return Page[*Vessel]{}, invalidCursor(*filter.Cursor)
			}
			return Page[*Vessel]{}, log.Err("failed to load cursor row", err, "cursor", *filter.Cursor)
		}
		query = query.Where("name > ? OR (name = ? AND id >= ?)", anchor.Name, anchor.Name, anchor.ID)
	}

	limit := filter.limit()

	var vessels []*Vessel
	if err := query.
		Preload("Client", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name")
		}).
		Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "vessel_id", "name", "sort_order").Order("sort_order ASC")
		}).
		Preload("Jobs", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "vessel_id", "status").Where("status IN ?", activeJobStatuses)
		}).
		Order("name ASC, id ASC").
		Limit(limit + 1).
		Find(&vessels).Error; err != nil {
		return Page[*Vessel]{}, log.Err("failed to list vessels", err)
	}

	return newPage(vessels, limit, func(v *Vessel) uuid.UUID { return v.ID }), nil
}

func (r *vesselRepository) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*Vessel, error) {
	var vessel Vessel
	if err := tx.WithContext(ctx).First(&vessel, "id = ?", id).Error; err != nil {
		return nil, types.FromStoreError(err, "vessel", id)
	}
	return &vessel, nil
}

func (r *vesselRepository) GetDetail(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*Vessel, error) {
	log := r.log.TraceFromContext(ctx).Function("GetDetail")

	var vessel Vessel
	if err := tx.WithContext(ctx).
		Preload("Client").
		Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, name ASC")
		}).
		First(&vessel, "id = ?", id).Error; err != nil {
		return nil, types.FromStoreError(err, "vessel", id)
	}

	if err := tx.WithContext(ctx).
		Preload("Assignee").
		Preload("Progress.VesselSection").
		Where("vessel_id = ?", vessel.ID).
		Order("created_at DESC, id DESC").
		Limit(VESSEL_RECENT_JOBS).
		Find(&vessel.Jobs).Error; err != nil {
		return nil, log.Err("failed to load recent jobs", err, "vesselID", vessel.ID)
	}

	return &vessel, nil
}

func vesselStoreError(err error, vessel *Vessel) error {
	switch {
	case errors.Is(err, gorm.ErrInvalidValue):
		return types.NewValidationError("vessel", "invalid", "requires clientId, name, and a known type")
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return types.NewValidationError("clientId", "exists", "does not match any client")
	}
	return types.FromStoreError(err, "vessel", vessel.ID)
}

func (r *vesselRepository) Create(ctx context.Context, tx *gorm.DB, vessel *Vessel) error {
	if err := tx.WithContext(ctx).Omit("Client", "Sections", "Jobs").Create(vessel).Error; err != nil {
		return r.log.Function("Create").Err("failed to create vessel", vesselStoreError(err, vessel))
	}
	return nil
}

func (r *vesselRepository) Update(ctx context.Context, tx *gorm.DB, vessel *Vessel) error {
	if err := tx.WithContext(ctx).Omit("Client", "Sections", "Jobs").Save(vessel).Error; err != nil {
		return r.log.Function("Update").Err("failed to update vessel", vesselStoreError(err, vessel))
	}
	return nil
}

func (r *vesselRepository) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	result := tx.WithContext(ctx).Delete(&Vessel{}, "id = ?", id)
	if result.Error != nil {
		return r.log.Function("Delete").Err("failed to delete vessel", result.Error, "vesselID", id)
	}
	if result.RowsAffected == 0 {
		return types.NewNotFoundError("vessel", id)
	}
	return nil
}
