package reportController

import (
	"context"
	"time"

	"reefclean/internal/database"
	. "reefclean/internal/models"
	"reefclean/internal/policy"
	"reefclean/internal/repositories"
	"reefclean/internal/services"
	"reefclean/internal/types"
	"reefclean/internal/validation"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
)

// SummaryRequest selects jobs created within [From, To]. VesselID takes
// precedence over ClientID when both are set.
type SummaryRequest struct {
	From     time.Time  `json:"from"     validate:"required"`
	To       time.Time  `json:"to"       validate:"required"`
	ClientID *uuid.UUID `json:"clientId"`
	VesselID *uuid.UUID `json:"vesselId"`
}

type ReportController struct {
	reportRepo   repositories.ReportRepository
	jobRepo      repositories.JobRepository
	reportExport *services.ReportExportService
	db           database.DB
	log          logger.Logger
}

type ReportControllerInterface interface {
	Summary(ctx context.Context, actor *User, req SummaryRequest) (types.ReportSummary, error)
	Detail(ctx context.Context, actor *User, jobID uuid.UUID) (types.JobView, error)
	// Export renders the same rows as Summary into an xlsx workbook.
	Export(ctx context.Context, actor *User, req SummaryRequest) ([]byte, error)
}

func New(
	repos repositories.Repository,
	services services.Service,
	db database.DB,
) ReportControllerInterface {
	return &ReportController{
		reportRepo:   repos.Report,
		jobRepo:      repos.Job,
		reportExport: services.ReportExport,
		db:           db,
		log:          logger.New("reportController"),
	}
}

func (rc *ReportController) Summary(
	ctx context.Context,
	actor *User,
	req SummaryRequest,
) (types.ReportSummary, error) {
	if err := policy.Authorize(actor, policy.OpReportSummary, nil).Err(); err != nil {
		return types.ReportSummary{}, err
	}
	return rc.summary(ctx, req)
}

func (rc *ReportController) summary(ctx context.Context, req SummaryRequest) (types.ReportSummary, error) {
	if err := validation.Struct(req); err != nil {
		return types.ReportSummary{}, err
	}
	if req.To.Before(req.From) {
		return types.ReportSummary{}, types.NewValidationError("to", "gtefield", "must not be before from")
	}

	jobs, err := rc.reportRepo.SummaryJobs(ctx, rc.db.SQL, repositories.ReportFilter{
		From:     req.From.UTC(),
		To:       req.To.UTC(),
		ClientID: req.ClientID,
		VesselID: req.VesselID,
	})
	if err != nil {
		return types.ReportSummary{}, err
	}

	rows := make([]types.ReportSummaryRow, 0, len(jobs))
	for _, job := range jobs {
		row := types.ReportSummaryRow{
			JobID:             job.ID,
			Date:              job.CreatedAt,
			Status:            string(job.Status),
			TotalSections:     len(job.Progress),
			CompletedSections: job.CompletedSections(),
			AveragePercent:    job.OverallPercent(),
		}
		if job.Vessel != nil {
			row.VesselName = job.Vessel.Name
			if job.Vessel.Client != nil {
				row.ClientName = job.Vessel.Client.Name
			}
		}
		rows = append(rows, row)
	}

	return types.ReportSummary{From: req.From, To: req.To, Rows: rows}, nil
}

func (rc *ReportController) Detail(ctx context.Context, actor *User, jobID uuid.UUID) (types.JobView, error) {
	if err := policy.Authorize(actor, policy.OpReportDetail, nil).Err(); err != nil {
		return types.JobView{}, err
	}

	job, err := rc.jobRepo.GetDetail(ctx, rc.db.SQL, jobID)
	if err != nil {
		return types.JobView{}, err
	}

	return types.NewJobView(job), nil
}

func (rc *ReportController) Export(ctx context.Context, actor *User, req SummaryRequest) ([]byte, error) {
	log := rc.log.TraceFromContext(ctx).Function("Export")

	if err := policy.Authorize(actor, policy.OpReportExport, nil).Err(); err != nil {
		return nil, err
	}

	summary, err := rc.summary(ctx, req)
	if err != nil {
		return nil, err
	}

	data, err := rc.reportExport.SummaryWorkbook(summary)
	if err != nil {
		return nil, err
	}

	log.Info("Summary report exported", "rows", len(summary.Rows), "actorID", actor.ID)
	return data, nil
}
