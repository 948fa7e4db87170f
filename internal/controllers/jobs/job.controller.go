package jobController

import (
	"context"
	"fmt"
	"time"

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

type ListJobsRequest struct {
	Status     *JobStatus `json:"status"     validate:"omitempty,oneof=DRAFT IN_PROGRESS DONE"`
	AssignedTo *uuid.UUID `json:"assignedTo"`
	VesselID   *uuid.UUID `json:"vesselId"`
	Limit      int        `json:"limit"      validate:"omitempty,min=1,max=100"`
	Cursor     *uuid.UUID `json:"cursor"`
}

type CreateJobRequest struct {
	VesselID    uuid.UUID  `json:"vesselId"    validate:"required"`
	ScheduledAt *time.Time `json:"scheduledAt"`
	AssignedTo  *uuid.UUID `json:"assignedTo"`
	Notes       *string    `json:"notes"       validate:"omitempty,max=2000"`
}

type UpdateStatusRequest struct {
	Status JobStatus `json:"status" validate:"required,oneof=DRAFT IN_PROGRESS DONE"`
	Notes  *string   `json:"notes"  validate:"omitempty,max=2000"`
}

type AssignRequest struct {
	AssignedTo uuid.UUID `json:"assignedTo" validate:"required"`
}

type JobController struct {
	jobRepo     repositories.JobRepository
	vesselRepo  repositories.VesselRepository
	sectionRepo repositories.SectionRepository
	userRepo    repositories.UserRepository
	transaction *services.TransactionService
	db          database.DB
	log         logger.Logger
	now         func() time.Time
}

type JobControllerInterface interface {
	// List pages through jobs newest first. CREW actors only ever see their
	// own assignments, whatever assignedTo they ask for.
	List(ctx context.Context, actor *User, req ListJobsRequest) (repositories.Page[types.JobView], error)
	// Mine returns the actor's open assignments, soonest scheduled first.
	Mine(ctx context.Context, actor *User) ([]types.JobView, error)
	Get(ctx context.Context, actor *User, id uuid.UUID) (types.JobView, error)
	// Create inserts a DRAFT job and one zero-percent progress row per
	// section the vessel has right now, in a single transaction.
	Create(ctx context.Context, actor *User, req CreateJobRequest) (types.JobView, error)
	UpdateStatus(ctx context.Context, actor *User, id uuid.UUID, req UpdateStatusRequest) (types.JobView, error)
	Assign(ctx context.Context, actor *User, id uuid.UUID, req AssignRequest) (types.JobView, error)
	Delete(ctx context.Context, actor *User, id uuid.UUID) error
}

func New(
	repos repositories.Repository,
	services services.Service,
	db database.DB,
) JobControllerInterface {
	return &JobController{
		jobRepo:     repos.Job,
		vesselRepo:  repos.Vessel,
		sectionRepo: repos.Section,
		userRepo:    repos.User,
		transaction: services.Transaction,
		db:          db,
		log:         logger.New("jobController"),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (jc *JobController) List(
	ctx context.Context,
	actor *User,
	req ListJobsRequest,
) (repositories.Page[types.JobView], error) {
	if err := policy.Authorize(actor, policy.OpListJobs, nil).Err(); err != nil {
		return repositories.Page[types.JobView]{}, err
	}
	if err := validation.Struct(req); err != nil {
		return repositories.Page[types.JobView]{}, err
	}

	filter := repositories.JobFilter{
		Status:      req.Status,
		AssignedTo:  req.AssignedTo,
		VesselID:    req.VesselID,
		PageRequest: repositories.PageRequest{Limit: req.Limit, Cursor: req.Cursor},
	}
	if actor.IsCrew() {
		filter.AssignedTo = &actor.ID
	}

	page, err := jc.jobRepo.List(ctx, jc.db.SQL, filter)
	if err != nil {
		return repositories.Page[types.JobView]{}, err
	}

	return repositories.Page[types.JobView]{
		Items:      types.NewJobViews(page.Items),
		NextCursor: page.NextCursor,
	}, nil
}

func (jc *JobController) Mine(ctx context.Context, actor *User) ([]types.JobView, error) {
	if err := policy.Authorize(actor, policy.OpMyJobs, nil).Err(); err != nil {
		return nil, err
	}

	jobs, err := jc.jobRepo.ListAssigned(ctx, jc.db.SQL, actor.ID)
	if err != nil {
		return nil, err
	}

	return types.NewJobViews(jobs), nil
}

func (jc *JobController) Get(ctx context.Context, actor *User, id uuid.UUID) (types.JobView, error) {
	if err := policy.Authorize(actor, policy.OpGetJob, nil).Err(); err != nil {
		return types.JobView{}, err
	}

	job, err := jc.jobRepo.GetDetail(ctx, jc.db.SQL, id)
	if err != nil {
		return types.JobView{}, err
	}

	if err := policy.AuthorizeJob(actor, policy.OpGetJob, job); err != nil {
		jc.log.TraceFromContext(ctx).Function("Get").
			Info("Job read denied", "jobID", id, "actorID", actor.ID)
		return types.JobView{}, err
	}

	return types.NewJobView(job), nil
}

// verifyAssignee checks that userID names an active CREW or ADMIN user.
func (jc *JobController) verifyAssignee(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	user, err := jc.userRepo.Find(ctx, tx, userID)
	if err != nil {
		if types.KindOf(err) == types.KindNotFound {
			return types.NewValidationError("assignedTo", "exists", "does not match any user")
		}
		return err
	}

	if !user.IsActive || (user.Role != RoleCrew && user.Role != RoleAdmin) {
		return types.NewValidationError("assignedTo", "role", "must be an active crew member or admin")
	}

	return nil
}

func (jc *JobController) Create(ctx context.Context, actor *User, req CreateJobRequest) (types.JobView, error) {
	log := jc.log.TraceFromContext(ctx).Function("Create")

	if err := policy.Authorize(actor, policy.OpCreateJob, nil).Err(); err != nil {
		return types.JobView{}, err
	}
	if err := validation.Struct(req); err != nil {
		return types.JobView{}, err
	}

	job := &CleaningJob{
		VesselID:    req.VesselID,
		Status:      JobStatusDraft,
		ScheduledAt: req.ScheduledAt,
		AssignedTo:  req.AssignedTo,
		Notes:       utils.CleanText(req.Notes),
	}

	sectionCount := 0
	err := jc.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		if _, err := jc.vesselRepo.GetByID(ctx, tx, req.VesselID); err != nil {
			return err
		}

		if req.AssignedTo != nil {
			if err := jc.verifyAssignee(ctx, tx, *req.AssignedTo); err != nil {
				return err
			}
		}

		if err := jc.jobRepo.Create(ctx, tx, job); err != nil {
			return err
		}

		sections, err := jc.sectionRepo.ListByVessel(ctx, tx, req.VesselID)
		if err != nil {
			return err
		}

		rows := make([]*SectionProgress, 0, len(sections))
		for _, section := range sections {
			rows = append(rows, &SectionProgress{
				CleaningJobID:   job.ID,
				VesselSectionID: section.ID,
				Percent:         MinPercent,
			})
		}
		sectionCount = len(rows)

		return jc.jobRepo.CreateProgress(ctx, tx, rows)
	})
	if err != nil {
		return types.JobView{}, err
	}

	log.Info(
		"Cleaning job created",
		"jobID", job.ID,
		"vesselID", job.VesselID,
		"sections", sectionCount,
		"actorID", actor.ID,
	)

	return jc.detail(ctx, job.ID)
}

func (jc *JobController) UpdateStatus(
	ctx context.Context,
	actor *User,
	id uuid.UUID,
	req UpdateStatusRequest,
) (types.JobView, error) {
	log := jc.log.TraceFromContext(ctx).Function("UpdateStatus")

	if err := policy.Authorize(actor, policy.OpUpdateJobStatus, nil).Err(); err != nil {
		return types.JobView{}, err
	}
	if err := validation.Struct(req); err != nil {
		return types.JobView{}, err
	}

	// Crew updates are additionally pinned to the assignment they were
	// authorized against, so a reassignment in between wins.
	var assignee *uuid.UUID
	if actor.IsCrew() {
		assignee = &actor.ID
	}

	var from JobStatus
	err := jc.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		job, err := jc.jobRepo.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := policy.AuthorizeJob(actor, policy.OpUpdateJobStatus, job); err != nil {
			return err
		}
		from = job.Status

		changed, err := jc.jobRepo.UpdateStatus(
			ctx,
			tx,
			id,
			req.Status,
			utils.CleanText(req.Notes),
			jc.now(),
			assignee,
		)
		if err != nil || changed {
			return err
		}

		current, err := jc.jobRepo.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := policy.AuthorizeJob(actor, policy.OpUpdateJobStatus, current); err != nil {
			return err
		}
		return types.NewValidationError(
			"status",
			"transition",
			fmt.Sprintf("cannot move job from %s to %s", current.Status, req.Status),
		)
	})
	if err != nil {
		return types.JobView{}, err
	}

	log.Info("Job status updated", "jobID", id, "from", from, "to", req.Status, "actorID", actor.ID)
	return jc.detail(ctx, id)
}

func (jc *JobController) Assign(
	ctx context.Context,
	actor *User,
	id uuid.UUID,
	req AssignRequest,
) (types.JobView, error) {
	log := jc.log.TraceFromContext(ctx).Function("Assign")

	if err := policy.Authorize(actor, policy.OpAssignJob, nil).Err(); err != nil {
		return types.JobView{}, err
	}
	if err := validation.Struct(req); err != nil {
		return types.JobView{}, err
	}

	err := jc.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		if err := jc.verifyAssignee(ctx, tx, req.AssignedTo); err != nil {
			return err
		}
		return jc.jobRepo.Assign(ctx, tx, id, req.AssignedTo)
	})
	if err != nil {
		return types.JobView{}, err
	}

	log.Info("Job assigned", "jobID", id, "assignedTo", req.AssignedTo, "actorID", actor.ID)
	return jc.detail(ctx, id)
}

func (jc *JobController) Delete(ctx context.Context, actor *User, id uuid.UUID) error {
	log := jc.log.TraceFromContext(ctx).Function("Delete")

	if err := policy.Authorize(actor, policy.OpDeleteJob, nil).Err(); err != nil {
		return err
	}

	if err := jc.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		return jc.jobRepo.Delete(ctx, tx, id)
	}); err != nil {
		return err
	}

	log.Info("Job deleted", "jobID", id, "actorID", actor.ID)
	return nil
}

func (jc *JobController) detail(ctx context.Context, id uuid.UUID) (types.JobView, error) {
	job, err := jc.jobRepo.GetDetail(ctx, jc.db.SQL, id)
	if err != nil {
		return types.JobView{}, err
	}
	return types.NewJobView(job), nil
}
