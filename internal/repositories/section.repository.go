package repositories

import (
	"context"
	"errors"
	"time"

	"reefclean/internal/database"
	. "reefclean/internal/models"
	"reefclean/internal/types"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SECTION_TEMPLATES_CACHE_KEY    = "templates"
	SECTION_TEMPLATES_CACHE_PREFIX = "section"
	SECTION_TEMPLATES_CACHE_EXPIRY = 24 * time.Hour
)

type SectionRepository interface {
	ListTemplates(ctx context.Context, tx *gorm.DB) ([]*SectionTemplate, error)
	GetTemplatesByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*SectionTemplate, error)
	CreateTemplate(ctx context.Context, tx *gorm.DB, template *SectionTemplate) error

	ListByVessel(ctx context.Context, tx *gorm.DB, vesselID uuid.UUID) ([]*VesselSection, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*VesselSection, error)
	Create(ctx context.Context, tx *gorm.DB, section *VesselSection) error
	CreateMany(ctx context.Context, tx *gorm.DB, sections []*VesselSection) error
	Update(ctx context.Context, tx *gorm.DB, section *VesselSection) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error

	ClearTemplateCache(ctx context.Context) error
}

type sectionRepository struct {
	cache database.CacheClient
	log   logger.Logger
}

func NewSectionRepository(cache database.CacheClient) SectionRepository {
	return &sectionRepository{
		cache: cache,
		log:   logger.New("sectionRepository"),
	}
}

func (r *sectionRepository) templateCache(ctx context.Context) *database.CacheBuilder {
	return database.NewCacheBuilder(r.cache, SECTION_TEMPLATES_CACHE_KEY).
		WithHash(SECTION_TEMPLATES_CACHE_PREFIX).
		WithContext(ctx)
}

func (r *sectionRepository) ListTemplates(ctx context.Context, tx *gorm.DB) ([]*SectionTemplate, error) {
	log := r.log.TraceFromContext(ctx).Function("ListTemplates")

	var cached []*SectionTemplate
	found, err := r.templateCache(ctx).Get(&cached)
	if err != nil {
		log.Warn("failed to get section templates from cache", "error", err)
	}
	if found {
		return cached, nil
	}

	var templates []*SectionTemplate
	if err := tx.WithContext(ctx).Order("sort_order ASC, name ASC").Find(&templates).Error; err != nil {
		return nil, log.Err("failed to list section templates", err)
	}

	if len(templates) > 0 {
		if err := r.templateCache(ctx).
			WithStruct(templates).
			WithTTL(SECTION_TEMPLATES_CACHE_EXPIRY).
			Set(); err != nil {
			log.Warn("failed to cache section templates", "error", err)
		}
	}

	return templates, nil
}

func (r *sectionRepository) GetTemplatesByIDs(
	ctx context.Context,
	tx *gorm.DB,
	ids []uuid.UUID,
) ([]*SectionTemplate, error) {
	if len(ids) == 0 {
		return []*SectionTemplate{}, nil
	}

	var templates []*SectionTemplate
	if err := tx.WithContext(ctx).
		Where("id IN ?", ids).
		Order("sort_order ASC, name ASC").
		Find(&templates).Error; err != nil {
		return nil, r.log.Function("GetTemplatesByIDs").Err("failed to load section templates", err)
	}

	return templates, nil
}

func (r *sectionRepository) CreateTemplate(ctx context.Context, tx *gorm.DB, template *SectionTemplate) error {
	log := r.log.TraceFromContext(ctx).Function("CreateTemplate")

	if err := tx.WithContext(ctx).Create(template).Error; err != nil {
		if errors.Is(err, gorm.ErrInvalidValue) {
			return types.NewValidationError("name", "required", "is required")
		}
		return log.Err("failed to create section template", err)
	}

	if err := r.ClearTemplateCache(ctx); err != nil {
		log.Warn("failed to clear section template cache", "error", err)
	}

	return nil
}

func (r *sectionRepository) ListByVessel(
	ctx context.Context,
	tx *gorm.DB,
	vesselID uuid.UUID,
) ([]*VesselSection, error) {
	var sections []*VesselSection
	if err := tx.WithContext(ctx).
		Where("vessel_id = ?", vesselID).
		Order("sort_order ASC, name ASC").
		Find(&sections).Error; err != nil {
		return nil, r.log.Function("ListByVessel").Err("failed to list vessel sections", err, "vesselID", vesselID)
	}
	return sections, nil
}

func (r *sectionRepository) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*VesselSection, error) {
	var section VesselSection
	if err := tx.WithContext(ctx).First(&section, "id = ?", id).Error; err != nil {
		return nil, types.FromStoreError(err, "vessel section", id)
	}
	return &section, nil
}

func sectionStoreError(err error, id uuid.UUID) error {
	switch {
	case errors.Is(err, gorm.ErrInvalidValue):
		return types.NewValidationError("name", "required", "is required")
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return types.NewValidationError("vesselId", "exists", "does not match any vessel")
	}
	return types.FromStoreError(err, "vessel section", id)
}

func (r *sectionRepository) Create(ctx context.Context, tx *gorm.DB, section *VesselSection) error {
	if err := tx.WithContext(ctx).Omit("Vessel").Create(section).Error; err != nil {
		return r.log.Function("Create").Err("failed to create vessel section", sectionStoreError(err, section.ID))
	}
	return nil
}

func (r *sectionRepository) CreateMany(ctx context.Context, tx *gorm.DB, sections []*VesselSection) error {
	if len(sections) == 0 {
		return nil
	}

	if err := tx.WithContext(ctx).Omit("Vessel").CreateInBatches(sections, 100).Error; err != nil {
		return r.log.Function("CreateMany").Err("failed to create vessel sections", sectionStoreError(err, uuid.Nil))
	}
	return nil
}

func (r *sectionRepository) Update(ctx context.Context, tx *gorm.DB, section *VesselSection) error {
	if err := tx.WithContext(ctx).Omit("Vessel").Save(section).Error; err != nil {
		return r.log.Function("Update").Err("failed to update vessel section", sectionStoreError(err, section.ID))
	}
	return nil
}

// Delete removes the section and, by cascade, its progress rows on every job.
func (r *sectionRepository) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	result := tx.WithContext(ctx).Delete(&VesselSection{}, "id = ?", id)
	if result.Error != nil {
		return r.log.Function("Delete").Err("failed to delete vessel section", result.Error, "sectionID", id)
	}
	if result.RowsAffected == 0 {
		return types.NewNotFoundError("vessel section", id)
	}
	return nil
}

func (r *sectionRepository) ClearTemplateCache(ctx context.Context) error {
	return r.templateCache(ctx).Delete()
}
