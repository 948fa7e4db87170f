package repositories

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"time"

	. "reefclean/internal/models"
	"reefclean/internal/types"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const PROGRESS_BATCH_SIZE = 100

type JobFilter struct {
	Status     *JobStatus
	AssignedTo *uuid.UUID
	VesselID   *uuid.UUID
	PageRequest
}

type JobRepository interface {
	Create(ctx context.Context, tx *gorm.DB, job *CleaningJob) error
	CreateProgress(ctx context.Context, tx *gorm.DB, rows []*SectionProgress) error
	// GetByID loads the bare job row, enough for ownership checks.
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*CleaningJob, error)
	// GetDetail loads vessel, client, ordered sections, assignee, and progress
	// with media, progress ordered by section order.
	GetDetail(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*CleaningJob, error)
	List(ctx context.Context, tx *gorm.DB, filter JobFilter) (Page[*CleaningJob], error)
	ListAssigned(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*CleaningJob, error)
	// UpdateStatus applies target only if the stored status allows it and
	// reports whether a row changed. Timestamps are kept if already set.
	// A non-nil assignee also requires the job to still be assigned to it.
	UpdateStatus(
		ctx context.Context,
		tx *gorm.DB,
		id uuid.UUID,
		target JobStatus,
		notes *string,
		now time.Time,
		assignee *uuid.UUID,
	) (bool, error)
	Assign(ctx context.Context, tx *gorm.DB, id uuid.UUID, userID uuid.UUID) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type jobRepository struct {
	log logger.Logger
}

func NewJobRepository() JobRepository {
	return &jobRepository{log: logger.New("jobRepository")}
}

func (r *jobRepository) Create(ctx context.Context, tx *gorm.DB, job *CleaningJob) error {
	log := r.log.TraceFromContext(ctx).Function("Create")

	if err := tx.WithContext(ctx).Omit("Vessel", "Assignee", "Progress").Create(job).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return types.NewValidationError("vesselId", "exists", "does not match any vessel")
		}
		return log.Err("failed to create cleaning job", err, "vesselID", job.VesselID)
	}
	return nil
}

func (r *jobRepository) CreateProgress(ctx context.Context, tx *gorm.DB, rows []*SectionProgress) error {
	if len(rows) == 0 {
		return nil
	}

	if err := tx.WithContext(ctx).
		Omit("CleaningJob", "VesselSection", "Media").
		CreateInBatches(rows, PROGRESS_BATCH_SIZE).Error; err != nil {
		return r.log.Function("CreateProgress").Err("failed to create section progress rows", err, "count", len(rows))
	}
	return nil
}

func (r *jobRepository) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*CleaningJob, error) {
	var job CleaningJob
	if err := tx.WithContext(ctx).First(&job, "id = ?", id).Error; err != nil {
		return nil, types.FromStoreError(err, "cleaning job", id)
	}
	return &job, nil
}

func sortProgressBySection(job *CleaningJob) {
	slices.SortStableFunc(job.Progress, func(a, b SectionProgress) int {
		if a.VesselSection == nil || b.VesselSection == nil {
			return 0
		}
		if c := cmp.Compare(a.VesselSection.Order, b.VesselSection.Order); c != 0 {
			return c
		}
		return cmp.Compare(a.VesselSection.Name, b.VesselSection.Name)
	})
}

func (r *jobRepository) GetDetail(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*CleaningJob, error) {
	var job CleaningJob
	if err := tx.WithContext(ctx).
		Preload("Vessel.Client").
		Preload("Vessel.Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, name ASC")
		}).
		Preload("Assignee").
		Preload("Progress.VesselSection").
		Preload("Progress.Media", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		First(&job, "id = ?", id).Error; err != nil {
		return nil, types.FromStoreError(err, "cleaning job", id)
	}

	sortProgressBySection(&job)
	return &job, nil
}

func (r *jobRepository) List(
	ctx context.Context,
	tx *gorm.DB,
	filter JobFilter,
) (Page[*CleaningJob], error) {
	log := r.log.TraceFromContext(ctx).Function("List")

	query := tx.WithContext(ctx).Model(&CleaningJob{})

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.AssignedTo != nil {
		query = query.Where("assigned_to = ?", *filter.AssignedTo)
	}
	if filter.VesselID != nil {
		query = query.Where("vessel_id = ?", *filter.VesselID)
	}

	if filter.Cursor != nil {
		var anchor CleaningJob
		if err := tx.WithContext(ctx).
			Select("id", "created_at").
			First(&anchor, "id = ?", *filter.Cursor).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return Page[*CleaningJob]{}, invalidCursor(*filter.Cursor)
			}
			return Page[*CleaningJob]{}, log.Err("failed to load cursor row", err, "cursor", *filter.Cursor)
		}
		query = query.Where(
			"created_at < ? OR (created_at = ? AND id <= ?)",
			anchor.CreatedAt, anchor.CreatedAt, anchor.ID,
		)
	}

	limit := filter.limit()

	var jobs []*CleaningJob
	if err := query.
		Preload("Vessel.Client").
		Preload("Assignee").
		Preload("Progress").
		Order("created_at DESC, id DESC").
		Limit(limit + 1).
		Find(&jobs).Error; err != nil {
		return Page[*CleaningJob]{}, log.Err("failed to list cleaning jobs", err)
	}

	return newPage(jobs, limit, func(j *CleaningJob) uuid.UUID { return j.ID }), nil
}

func (r *jobRepository) ListAssigned(
	ctx context.Context,
	tx *gorm.DB,
	userID uuid.UUID,
) ([]*CleaningJob, error) {
	var jobs []*CleaningJob
	if err := tx.WithContext(ctx).
		Preload("Vessel.Client").
		Preload("Progress").
		Where("assigned_to = ? AND status IN ?", userID, activeJobStatuses).
		Order("scheduled_at IS NULL, scheduled_at ASC, created_at ASC").
		Find(&jobs).Error; err != nil {
		return nil, r.log.Function("ListAssigned").Err("failed to list assigned jobs", err, "userID", userID)
	}
	return jobs, nil
}

func (r *jobRepository) UpdateStatus(
	ctx context.Context,
	tx *gorm.DB,
	id uuid.UUID,
	target JobStatus,
	notes *string,
	now time.Time,
	assignee *uuid.UUID,
) (bool, error) {
	log := r.log.TraceFromContext(ctx).Function("UpdateStatus")

	updates := map[string]any{
		"status":     target,
		"updated_at": now,
	}
	switch target {
	case JobStatusInProgress:
		updates["started_at"] = gorm.Expr("COALESCE(started_at, ?)", now)
	case JobStatusDone:
		updates["finished_at"] = gorm.Expr("COALESCE(finished_at, ?)", now)
	}
	if notes != nil {
		updates["notes"] = *notes
	}

	query := tx.WithContext(ctx).
		Model(&CleaningJob{}).
		Where("id = ? AND status IN ?", id, target.AllowedFrom())
	if assignee != nil {
		query = query.Where("assigned_to = ?", *assignee)
	}

	result := query.Updates(updates)
	if result.Error != nil {
		return false, log.Err("failed to update job status", result.Error, "jobID", id, "status", target)
	}

	return result.RowsAffected > 0, nil
}

func (r *jobRepository) Assign(ctx context.Context, tx *gorm.DB, id uuid.UUID, userID uuid.UUID) error {
	result := tx.WithContext(ctx).
		Model(&CleaningJob{}).
		Where("id = ?", id).
		Updates(map[string]any{"assigned_to": userID, "updated_at": time.Now().UTC()})
	if result.Error != nil {
		return r.log.Function("Assign").Err("failed to assign job", result.Error, "jobID", id, "userID", userID)
	}
	if result.RowsAffected == 0 {
		return types.NewNotFoundError("cleaning job", id)
	}
	return nil
}

// Delete removes media, then progress, then the job. Callers run it inside a
// transaction.
func (r *jobRepository) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	log := r.log.TraceFromContext(ctx).Function("Delete")
	db := tx.WithContext(ctx)

	progressIDs := db.Model(&SectionProgress{}).Select("id").Where("cleaning_job_id = ?", id)
	if err := db.Where("section_progress_id IN (?)", progressIDs).Delete(&Media{}).Error; err != nil {
		return log.Err("failed to delete job media", err, "jobID", id)
	}

	if err := db.Where("cleaning_job_id = ?", id).Delete(&SectionProgress{}).Error; err != nil {
		return log.Err("failed to delete job progress", err, "jobID", id)
	}

	result := db.Delete(&CleaningJob{}, "id = ?", id)
	if result.Error != nil {
		return log.Err("failed to delete job", result.Error, "jobID", id)
	}
	if result.RowsAffected == 0 {
		return types.NewNotFoundError("cleaning job", id)
	}

	return nil
}
