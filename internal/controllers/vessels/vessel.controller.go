package vesselController

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
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ListVesselsRequest struct {
	ClientID *uuid.UUID  `json:"clientId"`
	Type     *VesselType `json:"type"     validate:"omitempty,oneof=YACHT BOAT MOTORBOAT SAILBOAT CATAMARAN OTHER"`
	Search   string      `json:"search"   validate:"max=200"`
	Limit    int         `json:"limit"    validate:"omitempty,min=1,max=100"`
	Cursor   *uuid.UUID  `json:"cursor"`
}

type CreateVesselRequest struct {
	ClientID       uuid.UUID        `json:"clientId"       validate:"required"`
	Name           string           `json:"name"           validate:"required,max=200"`
	Type           VesselType       `json:"type"           validate:"required,oneof=YACHT BOAT MOTORBOAT SAILBOAT CATAMARAN OTHER"`
	Length         *decimal.Decimal `json:"length"`
	Width          *decimal.Decimal `json:"width"`
	RegistrationNo *string          `json:"registrationNo" validate:"omitempty,max=100"`
	Notes          *string          `json:"notes"          validate:"omitempty,max=2000"`
}

type UpdateVesselRequest struct {
	Name           *string          `json:"name"           validate:"omitempty,min=1,max=200"`
	Type           *VesselType      `json:"type"           validate:"omitempty,oneof=YACHT BOAT MOTORBOAT SAILBOAT CATAMARAN OTHER"`
	Length         *decimal.Decimal `json:"length"`
	Width          *decimal.Decimal `json:"width"`
	RegistrationNo *string          `json:"registrationNo" validate:"omitempty,max=100"`
	Notes          *string          `json:"notes"          validate:"omitempty,max=2000"`
}

type CreateSectionsFromTemplatesRequest struct {
	TemplateIDs []uuid.UUID `json:"templateIds" validate:"required,min=1,max=100"`
}

type VesselController struct {
	clientRepo  repositories.ClientRepository
	vesselRepo  repositories.VesselRepository
	sectionRepo repositories.SectionRepository
	transaction *services.TransactionService
	db          database.DB
	log         logger.Logger
}

type VesselControllerInterface interface {
	List(ctx context.Context, actor *User, req ListVesselsRequest) (repositories.Page[*Vessel], error)
	Get(ctx context.Context, actor *User, id uuid.UUID) (types.VesselDetail, error)
	Create(ctx context.Context, actor *User, req CreateVesselRequest) (*Vessel, error)
	Update(ctx context.Context, actor *User, id uuid.UUID, req UpdateVesselRequest) (*Vessel, error)
	Delete(ctx context.Context, actor *User, id uuid.UUID) error
	// CreateSectionsFromTemplates copies the chosen templates onto the vessel
	// in template order. Later template edits do not reach the copies.
	CreateSectionsFromTemplates(
		ctx context.Context,
		actor *User,
		vesselID uuid.UUID,
		req CreateSectionsFromTemplatesRequest,
	) ([]*VesselSection, error)
}

func New(
	repos repositories.Repository,
	services services.Service,
	db database.DB,
) VesselControllerInterface {
	return &VesselController{
		clientRepo:  repos.Client,
		vesselRepo:  repos.Vessel,
		sectionRepo: repos.Section,
		transaction: services.Transaction,
		db:          db,
		log:         logger.New("vesselController"),
	}
}

func validateDimensions(length, width *decimal.Decimal) error {
	if length != nil && !length.IsPositive() {
		return types.NewValidationError("length", "gt", "must be greater than 0")
	}
	if width != nil && !width.IsPositive() {
		return types.NewValidationError("width", "gt", "must be greater than 0")
	}
	return nil
}

func (vc *VesselController) List(
	ctx context.Context,
	actor *User,
	req ListVesselsRequest,
) (repositories.Page[*Vessel], error) {
	if err := policy.Authorize(actor, policy.OpListVessels, nil).Err(); err != nil {
		return repositories.Page[*Vessel]{}, err
	}
	if err := validation.Struct(req); err != nil {
		return repositories.Page[*Vessel]{}, err
	}

	return vc.vesselRepo.List(ctx, vc.db.SQL, repositories.VesselFilter{
		ClientID:    req.ClientID,
		Type:        req.Type,
		Search:      req.Search,
		PageRequest: repositories.PageRequest{Limit: req.Limit, Cursor: req.Cursor},
	})
}

func (vc *VesselController) Get(ctx context.Context, actor *User, id uuid.UUID) (types.VesselDetail, error) {
	if err := policy.Authorize(actor, policy.OpGetVessel, nil).Err(); err != nil {
		return types.VesselDetail{}, err
	}

	vessel, err := vc.vesselRepo.GetDetail(ctx, vc.db.SQL, id)
	if err != nil {
		return types.VesselDetail{}, err
	}

	return types.NewVesselDetail(vessel), nil
}

func (vc *VesselController) Create(ctx context.Context, actor *User, req CreateVesselRequest) (*Vessel, error) {
	log := vc.log.TraceFromContext(ctx).Function("Create")

	if err := policy.Authorize(actor, policy.OpCreateVessel, nil).Err(); err != nil {
		return nil, err
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if err := validateDimensions(req.Length, req.Width); err != nil {
		return nil, err
	}

	vessel := &Vessel{
		ClientID:       req.ClientID,
		Name:           req.Name,
		Type:           req.Type,
		Length:         req.Length,
		Width:          req.Width,
		RegistrationNo: req.RegistrationNo,
		Notes:          utils.CleanText(req.Notes),
	}

	err := vc.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		if _, err := vc.clientRepo.GetByID(ctx, tx, req.ClientID); err != nil {
			if types.KindOf(err) == types.KindNotFound {
				return types.NewValidationError("clientId", "exists", "does not match any client")
			}
			return err
		}
		return vc.vesselRepo.Create(ctx, tx, vessel)
	})
	if err != nil {
		return nil, err
	}

	log.Info("Vessel created", "vesselID", vessel.ID, "clientID", vessel.ClientID, "actorID", actor.ID)
	return vessel, nil
}

func (vc *VesselController) Update(
	ctx context.Context,
	actor *User,
	id uuid.UUID,
	req UpdateVesselRequest,
) (*Vessel, error) {
	if err := policy.Authorize(actor, policy.OpUpdateVessel, nil).Err(); err != nil {
		return nil, err
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if err := validateDimensions(req.Length, req.Width); err != nil {
		return nil, err
	}

	var vessel *Vessel
	err := vc.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		var err error
		vessel, err = vc.vesselRepo.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}

		if req.Name != nil {
			vessel.Name = *req.Name
		}
		if req.Type != nil {
			vessel.Type = *req.Type
		}
		if req.Length != nil {
			vessel.Length = req.Length
		}
		if req.Width != nil {
			vessel.Width = req.Width
		}
		if req.RegistrationNo != nil {
			vessel.RegistrationNo = req.RegistrationNo
		}
		if req.Notes != nil {
			vessel.Notes = utils.CleanText(req.Notes)
		}

		return vc.vesselRepo.Update(ctx, tx, vessel)
	})
	if err != nil {
		return nil, err
	}

	return vessel, nil
}

func (vc *VesselController) Delete(ctx context.Context, actor *User, id uuid.UUID) error {
	log := vc.log.TraceFromContext(ctx).Function("Delete")

	if err := policy.Authorize(actor, policy.OpDeleteVessel, nil).Err(); err != nil {
		return err
	}

	if err := vc.vesselRepo.Delete(ctx, vc.db.SQL, id); err != nil {
		return err
	}

	log.Info("Vessel deleted", "vesselID", id, "actorID", actor.ID)
	return nil
}

func (vc *VesselController) CreateSectionsFromTemplates(
	ctx context.Context,
	actor *User,
	vesselID uuid.UUID,
	req CreateSectionsFromTemplatesRequest,
) ([]*VesselSection, error) {
	log := vc.log.TraceFromContext(ctx).Function("CreateSectionsFromTemplates")

	if err := policy.Authorize(actor, policy.OpCreateSectionsFromTemplates, nil).Err(); err != nil {
		return nil, err
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]struct{}, len(req.TemplateIDs))
	ids := make([]uuid.UUID, 0, len(req.TemplateIDs))
	for _, id := range req.TemplateIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	var sections []*VesselSection
	err := vc.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		if _, err := vc.vesselRepo.GetByID(ctx, tx, vesselID); err != nil {
			return err
		}

		templates, err := vc.sectionRepo.GetTemplatesByIDs(ctx, tx, ids)
		if err != nil {
			return err
		}
		if len(templates) != len(ids) {
			return types.NewValidationError("templateIds", "exists", "contains unknown templates")
		}

		sections = make([]*VesselSection, 0, len(templates))
		for _, template := range templates {
			sections = append(sections, template.ToVesselSection(vesselID))
		}

		return vc.sectionRepo.CreateMany(ctx, tx, sections)
	})
	if err != nil {
		return nil, err
	}

	log.Info("Sections created from templates", "vesselID", vesselID, "count", len(sections))
	return sections, nil
}
