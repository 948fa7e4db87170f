package progressController

import (
	"context"

	"reefclean/internal/database"
	. "reefclean/internal/models"
	"reefclean/internal/policy"
	"reefclean/internal/repositories"
	"reefclean/internal/services"
	"reefclean/internal/types"
	"reefclean/internal/utils"
	"reefclean/internal/validation"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UpsertProgressRequest carries Percent as a pointer so a missing value is
// rejected instead of read as zero.
type UpsertProgressRequest struct {
	CleaningJobID   uuid.UUID `json:"cleaningJobId"   validate:"required"`
	VesselSectionID uuid.UUID `json:"vesselSectionId" validate:"required"`
	Percent         *int      `json:"percent"         validate:"required,min=0,max=100"`
	Note            *string   `json:"note"            validate:"omitempty,max=2000"`
}

type AddMediaRequest struct {
	SectionProgressID uuid.UUID `json:"sectionProgressId" validate:"required"`
	Kind              MediaKind `json:"kind"              validate:"required,oneof=BEFORE AFTER"`
	URL               string    `json:"url"               validate:"required,url,max=2048"`
	Caption           *string   `json:"caption"           validate:"omitempty,max=500"`
}

type ProgressController struct {
	jobRepo      repositories.JobRepository
	sectionRepo  repositories.SectionRepository
	progressRepo repositories.ProgressRepository
	transaction  *services.TransactionService
	db           database.DB
	log          logger.Logger
}

type ProgressControllerInterface interface {
	// Upsert records percent and note for one section of a job. Repeating the
	// same call leaves exactly one row.
	Upsert(ctx context.Context, actor *User, req UpsertProgressRequest) (*SectionProgress, error)
	AddMedia(ctx context.Context, actor *User, req AddMediaRequest) (*Media, error)
	DeleteMedia(ctx context.Context, actor *User, id uuid.UUID) error
}

func New(
	repos repositories.Repository,
	services services.Service,
	db database.DB,
) ProgressControllerInterface {
	return &ProgressController{
		jobRepo:      repos.Job,
		sectionRepo:  repos.Section,
		progressRepo: repos.Progress,
		transaction:  services.Transaction,
		db:           db,
		log:          logger.New("progressController"),
	}
}

func (pc *ProgressController) Upsert(
	ctx context.Context,
	actor *User,
	req UpsertProgressRequest,
) (*SectionProgress, error) {
	log := pc.log.TraceFromContext(ctx).Function("Upsert")

	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, policy.OpUpsertProgress, nil).Err(); err != nil {
		return nil, err
	}

	var stored *SectionProgress
	err := pc.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		job, err := pc.jobRepo.GetByID(ctx, tx, req.CleaningJobID)
		if err != nil {
			return err
		}
		if err := policy.AuthorizeJob(actor, policy.OpUpsertProgress, job); err != nil {
			return err
		}

		section, err := pc.sectionRepo.GetByID(ctx, tx, req.VesselSectionID)
		if err != nil {
			return err
		}
		if section.VesselID != job.VesselID {
			return types.NewValidationError("vesselSectionId", "vessel", "belongs to a different vessel than the job")
		}

		stored, err = pc.progressRepo.Upsert(ctx, tx, &SectionProgress{
			CleaningJobID:   job.ID,
			VesselSectionID: section.ID,
			Percent:         *req.Percent,
			Note:            utils.CleanText(req.Note),
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Info(
		"Section progress recorded",
		"jobID", stored.CleaningJobID,
		"sectionID", stored.VesselSectionID,
		"percent", stored.Percent,
		"actorID", actor.ID,
	)
	return stored, nil
}

func (pc *ProgressController) AddMedia(ctx context.Context, actor *User, req AddMediaRequest) (*Media, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, policy.OpAddMedia, nil).Err(); err != nil {
		return nil, err
	}

	progress, err := pc.progressRepo.GetByID(ctx, pc.db.SQL, req.SectionProgressID)
	if err != nil {
		return nil, err
	}
	if progress.CleaningJob == nil {
		return nil, pc.log.Function("AddMedia").Error("section progress is missing its job", "progressID", progress.ID)
	}
	if err := policy.AuthorizeJob(actor, policy.OpAddMedia, progress.CleaningJob); err != nil {
		return nil, err
	}

	media := &Media{
		SectionProgressID: progress.ID,
		Kind:              req.Kind,
		URL:               req.URL,
		Caption:           utils.CleanText(req.Caption),
	}
	if err := pc.progressRepo.CreateMedia(ctx, pc.db.SQL, media); err != nil {
		return nil, err
	}

	return media, nil
}

func (pc *ProgressController) DeleteMedia(ctx context.Context, actor *User, id uuid.UUID) error {
	log := pc.log.TraceFromContext(ctx).Function("DeleteMedia")

	if err := policy.Authorize(actor, policy.OpDeleteMedia, nil).Err(); err != nil {
		return err
	}

	media, err := pc.progressRepo.GetMedia(ctx, pc.db.SQL, id)
	if err != nil {
		return err
	}

	var job *CleaningJob
	if media.SectionProgress != nil {
		job = media.SectionProgress.CleaningJob
	}
	if job == nil {
		return log.Error("media is missing its job", "mediaID", id)
	}
	if err := policy.AuthorizeJob(actor, policy.OpDeleteMedia, job); err != nil {
		return err
	}

	return pc.progressRepo.DeleteMedia(ctx, pc.db.SQL, id)
}
