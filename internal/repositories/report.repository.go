package repositories

import (
	"context"
	"time"

	. "reefclean/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReportFilter struct {
	From     time.Time
	To       time.Time
	ClientID *uuid.UUID
	VesselID *uuid.UUID
}

type ReportRepository interface {
	// SummaryJobs returns jobs created within [From, To], newest first, with
	// vessel, client, and progress loaded. VesselID wins over ClientID.
	SummaryJobs(ctx context.Context, tx *gorm.DB, filter ReportFilter) ([]*CleaningJob, error)
}

type reportRepository struct {
	log logger.Logger
}

func NewReportRepository() ReportRepository {
	return &reportRepository{log: logger.New("reportRepository")}
}

func (r *reportRepository) SummaryJobs(
	ctx context.Context,
	tx *gorm.DB,
	filter ReportFilter,
) ([]*CleaningJob, error) {
	log := r.log.TraceFromContext(ctx).Function("SummaryJobs")

	query := tx.WithContext(ctx).
		Model(&CleaningJob{}).
		Where("cleaning_jobs.created_at >= ? AND cleaning_jobs.created_at <= ?", filter.From, filter.To)

	switch {
	case filter.VesselID != nil:
		query = query.Where("cleaning_jobs.vessel_id = ?", *filter.VesselID)
	case filter.ClientID != nil:
		query = query.Where(
			"cleaning_jobs.vessel_id IN (?)",
			tx.WithContext(ctx).Model(&Vessel{}).Select("id").Where("client_id = ?", *filter.ClientID),
		)
	}

	var jobs []*CleaningJob
	if err := query.
		Preload("Vessel.Client").
		Preload("Progress.VesselSection").
		Order("cleaning_jobs.created_at DESC, cleaning_jobs.id DESC").
		Find(&jobs).Error; err != nil {
		return nil, log.Err("failed to load report jobs", err)
	}

	for _, job := range jobs {
		sortProgressBySection(job)
	}

	return jobs, nil
}
