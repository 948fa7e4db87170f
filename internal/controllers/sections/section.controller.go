package sectionController

import (
	"context"

	"reefclean/internal/database"
	. "reefclean/internal/models"
	"reefclean/internal/policy"
	"reefclean/internal/repositories"
	"reefclean/internal/services"
	"reefclean/internal/types"
	"reefclean/internal/validation"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateTemplateRequest struct {
	Name        string  `json:"name"        validate:"required,max=200"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	Order       int     `json:"order"       validate:"gte=0"`
}

type CreateSectionRequest struct {
	VesselID    uuid.UUID `json:"vesselId"    validate:"required"`
	Name        string    `json:"name"        validate:"required,max=200"`
	Description *string   `json:"description" validate:"omitempty,max=1000"`
	Order       int       `json:"order"       validate:"gte=0"`
}

type UpdateSectionRequest struct {
	Name        *string `json:"name"        validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	Order       *int    `json:"order"       validate:"omitempty,gte=0"`
}

type SectionController struct {
	sectionRepo repositories.SectionRepository
	vesselRepo  repositories.VesselRepository
	transaction *services.TransactionService
	db          database.DB
	log         logger.Logger
}

type SectionControllerInterface interface {
	ListTemplates(ctx context.Context, actor *User) ([]*SectionTemplate, error)
	CreateTemplate(ctx context.Context, actor *User, req CreateTemplateRequest) (*SectionTemplate, error)
	// CreateSection adds a section to a vessel. Jobs created before it keep
	// their existing progress rows.
	CreateSection(ctx context.Context, actor *User, req CreateSectionRequest) (*VesselSection, error)
	UpdateSection(ctx context.Context, actor *User, id uuid.UUID, req UpdateSectionRequest) (*VesselSection, error)
	DeleteSection(ctx context.Context, actor *User, id uuid.UUID) error
}

func New(
	repos repositories.Repository,
	services services.Service,
	db database.DB,
) SectionControllerInterface {
	return &SectionController{
		sectionRepo: repos.Section,
		vesselRepo:  repos.Vessel,
		transaction: services.Transaction,
		db:          db,
		log:         logger.New("sectionController"),
	}
}

func (sc *SectionController) ListTemplates(ctx context.Context, actor *User) ([]*SectionTemplate, error) {
	if err := policy.Authorize(actor, policy.OpListTemplates, nil).Err(); err != nil {
		return nil, err
	}
	return sc.sectionRepo.ListTemplates(ctx, sc.db.SQL)
}

func (sc *SectionController) CreateTemplate(
	ctx context.Context,
	actor *User,
	req CreateTemplateRequest,
) (*SectionTemplate, error) {
	log := sc.log.TraceFromContext(ctx).Function("CreateTemplate")

	if err := policy.Authorize(actor, policy.OpCreateTemplate, nil).Err(); err != nil {
		return nil, err
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	template := &SectionTemplate{
		Name:        req.Name,
		Description: req.Description,
		Order:       req.Order,
	}
	if err := sc.sectionRepo.CreateTemplate(ctx, sc.db.SQL, template); err != nil {
		return nil, err
	}

	log.Info("Section template created", "templateID", template.ID, "name", template.Name)
	return template, nil
}

func (sc *SectionController) CreateSection(
	ctx context.Context,
	actor *User,
	req CreateSectionRequest,
) (*VesselSection, error) {
	if err := policy.Authorize(actor, policy.OpCreateVesselSection, nil).Err(); err != nil {
		return nil, err
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	section := &VesselSection{
		VesselID:    req.VesselID,
		Name:        req.Name,
		Description: req.Description,
		Order:       req.Order,
	}

	err := sc.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		if _, err := sc.vesselRepo.GetByID(ctx, tx, req.VesselID); err != nil {
			if types.KindOf(err) == types.KindNotFound {
				return types.NewValidationError("vesselId", "exists", "does not match any vessel")
			}
			return err
		}
		return sc.sectionRepo.Create(ctx, tx, section)
	})
	if err != nil {
		return nil, err
	}

	return section, nil
}

func (sc *SectionController) UpdateSection(
	ctx context.Context,
	actor *User,
	id uuid.UUID,
	req UpdateSectionRequest,
) (*VesselSection, error) {
	if err := policy.Authorize(actor, policy.OpUpdateVesselSection, nil).Err(); err != nil {
		return nil, err
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	var section *VesselSection
	err := sc.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		var err error
		section, err = sc.sectionRepo.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}

		if req.Name != nil {
			section.Name = *req.Name
		}
		if req.Description != nil {
			section.Description = req.Description
		}
		if req.Order != nil {
			section.Order = *req.Order
		}

		return sc.sectionRepo.Update(ctx, tx, section)
	})
	if err != nil {
		return nil, err
	}

	return section, nil
}

// DeleteSection removes the section and its progress rows on every job.
func (sc *SectionController) DeleteSection(ctx context.Context, actor *User, id uuid.UUID) error {
	log := sc.log.TraceFromContext(ctx).Function("DeleteSection")

	if err := policy.Authorize(actor, policy.OpDeleteVesselSection, nil).Err(); err != nil {
		return err
	}

	if err := sc.sectionRepo.Delete(ctx, sc.db.SQL, id); err != nil {
		return err
	}

	log.Info("Vessel section deleted", "sectionID", id, "actorID", actor.ID)
	return nil
}
