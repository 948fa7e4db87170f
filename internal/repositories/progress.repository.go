package repositories

import (
	"context"
	"errors"

	. "reefclean/internal/models"
	"reefclean/internal/types"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository interface {
	// Upsert writes percent and note for (job, section) with a single
	// INSERT ... ON CONFLICT statement and returns the stored row.
	Upsert(ctx context.Context, tx *gorm.DB, row *SectionProgress) (*SectionProgress, error)
	GetByJobAndSection(ctx context.Context, tx *gorm.DB, jobID, sectionID uuid.UUID) (*SectionProgress, error)
	// GetByID loads the row with its job for ownership checks.
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*SectionProgress, error)
	CountByJob(ctx context.Context, tx *gorm.DB, jobID uuid.UUID) (int64, error)

	CreateMedia(ctx context.Context, tx *gorm.DB, media *Media) error
	// GetMedia loads the media with its progress row and job.
	GetMedia(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*Media, error)
	DeleteMedia(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type progressRepository struct {
	log logger.Logger
}

func NewProgressRepository() ProgressRepository {
	return &progressRepository{log: logger.New("progressRepository")}
}

func (r *progressRepository) Upsert(
	ctx context.Context,
	tx *gorm.DB,
	row *SectionProgress,
) (*SectionProgress, error) {
	log := r.log.TraceFromContext(ctx).Function("Upsert")

	if err := tx.WithContext(ctx).
		Omit("CleaningJob", "VesselSection", "Media").
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "cleaning_job_id"},
				{Name: "vessel_section_id"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"percent", "note", "updated_at"}),
		}).
		Create(row).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, types.NewValidationError("vesselSectionId", "exists", "does not match any section of this job")
		}
		return nil, log.Err(
			"failed to upsert section progress",
			err,
			"jobID", row.CleaningJobID,
			"sectionID", row.VesselSectionID,
		)
	}

	return r.GetByJobAndSection(ctx, tx, row.CleaningJobID, row.VesselSectionID)
}

func (r *progressRepository) GetByJobAndSection(
	ctx context.Context,
	tx *gorm.DB,
	jobID, sectionID uuid.UUID,
) (*SectionProgress, error) {
	var row SectionProgress
	if err := tx.WithContext(ctx).
		First(&row, "cleaning_job_id = ? AND vessel_section_id = ?", jobID, sectionID).Error; err != nil {
		return nil, types.FromStoreError(err, "section progress", sectionID)
	}
	return &row, nil
}

func (r *progressRepository) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*SectionProgress, error) {
	var row SectionProgress
	if err := tx.WithContext(ctx).
		Preload("CleaningJob").
		First(&row, "id = ?", id).Error; err != nil {
		return nil, types.FromStoreError(err, "section progress", id)
	}
	return &row, nil
}

func (r *progressRepository) CountByJob(ctx context.Context, tx *gorm.DB, jobID uuid.UUID) (int64, error) {
	var count int64
	if err := tx.WithContext(ctx).
		Model(&SectionProgress{}).
		Where("cleaning_job_id = ?", jobID).
		Count(&count).Error; err != nil {
		return 0, r.log.Function("CountByJob").Err("failed to count section progress", err, "jobID", jobID)
	}
	return count, nil
}

func (r *progressRepository) CreateMedia(ctx context.Context, tx *gorm.DB, media *Media) error {
	if err := tx.WithContext(ctx).Omit("SectionProgress").Create(media).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return types.NewNotFoundError("section progress", media.SectionProgressID)
		}
		return r.log.Function("CreateMedia").Err("failed to create media", err, "progressID", media.SectionProgressID)
	}
	return nil
}

func (r *progressRepository) GetMedia(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*Media, error) {
	var media Media
	if err := tx.WithContext(ctx).
		Preload("SectionProgress.CleaningJob").
		First(&media, "id = ?", id).Error; err != nil {
		return nil, types.FromStoreError(err, "media", id)
	}
	return &media, nil
}

func (r *progressRepository) DeleteMedia(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	result := tx.WithContext(ctx).Delete(&Media{}, "id = ?", id)
	if result.Error != nil {
		return r.log.Function("DeleteMedia").Err("failed to delete media", result.Error, "mediaID", id)
	}
	if result.RowsAffected == 0 {
		return types.NewNotFoundError("media", id)
	}
	return nil
}
