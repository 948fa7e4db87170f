package clientController

import (
	"context"

	"reefclean/internal/database"
	. "reefclean/internal/models"
	"reefclean/internal/policy"
	"reefclean/internal/repositories"
	"reefclean/internal/services"
	"reefclean/internal/utils"
	"reefclean/internal/validation"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListClientsRequest struct {
	Search string     `json:"search" validate:"max=200"`
	Limit  int        `json:"limit"  validate:"omitempty,min=1,max=100"`
	Cursor *uuid.UUID `json:"cursor"`
}

type CreateClientRequest struct {
	Name        string  `json:"name"        validate:"required,max=200"`
	Email       *string `json:"email"       validate:"omitempty,email,max=320"`
	Phone       *string `json:"phone"       validate:"omitempty,max=50"`
	CompanyName *string `json:"companyName" validate:"omitempty,max=200"`
	Address     *string `json:"address"     validate:"omitempty,max=500"`
	BillingNote *string `json:"billingNote" validate:"omitempty,max=2000"`
}

// UpdateClientRequest replaces only the fields that are present.
type UpdateClientRequest struct {
	Name        *string `json:"name"        validate:"omitempty,min=1,max=200"`
	Email       *string `json:"email"       validate:"omitempty,email,max=320"`
	Phone       *string `json:"phone"       validate:"omitempty,max=50"`
	CompanyName *string `json:"companyName" validate:"omitempty,max=200"`
	Address     *string `json:"address"     validate:"omitempty,max=500"`
	BillingNote *string `json:"billingNote" validate:"omitempty,max=2000"`
}

type ClientController struct {
	clientRepo  repositories.ClientRepository
	transaction *services.TransactionService
	db          database.DB
	log         logger.Logger
}

type ClientControllerInterface interface {
	List(ctx context.Context, actor *User, req ListClientsRequest) (repositories.Page[*Client], error)
	Get(ctx context.Context, actor *User, id uuid.UUID) (*Client, error)
	Create(ctx context.Context, actor *User, req CreateClientRequest) (*Client, error)
	Update(ctx context.Context, actor *User, id uuid.UUID, req UpdateClientRequest) (*Client, error)
	Delete(ctx context.Context, actor *User, id uuid.UUID) error
}

func New(
	repos repositories.Repository,
	services services.Service,
	db database.DB,
) ClientControllerInterface {
	return &ClientController{
		clientRepo:  repos.Client,
		transaction: services.Transaction,
		db:          db,
		log:         logger.New("clientController"),
	}
}

func (cc *ClientController) List(
	ctx context.Context,
	actor *User,
	req ListClientsRequest,
) (repositories.Page[*Client], error) {
	if err := policy.Authorize(actor, policy.OpListClients, nil).Err(); err != nil {
		return repositories.Page[*Client]{}, err
	}
	if err := validation.Struct(req); err != nil {
		return repositories.Page[*Client]{}, err
	}

	return cc.clientRepo.List(ctx, cc.db.SQL, repositories.ClientFilter{
		Search:      req.Search,
		PageRequest: repositories.PageRequest{Limit: req.Limit, Cursor: req.Cursor},
	})
}

func (cc *ClientController) Get(ctx context.Context, actor *User, id uuid.UUID) (*Client, error) {
	if err := policy.Authorize(actor, policy.OpGetClient, nil).Err(); err != nil {
		return nil, err
	}
	return cc.clientRepo.GetDetail(ctx, cc.db.SQL, id)
}

func (cc *ClientController) Create(ctx context.Context, actor *User, req CreateClientRequest) (*Client, error) {
	log := cc.log.TraceFromContext(ctx).Function("Create")

	if err := policy.Authorize(actor, policy.OpCreateClient, nil).Err(); err != nil {
		return nil, err
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	client := &Client{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		CompanyName: req.CompanyName,
		Address:     req.Address,
		BillingNote: utils.CleanText(req.BillingNote),
	}
	if err := cc.clientRepo.Create(ctx, cc.db.SQL, client); err != nil {
		return nil, err
	}

	log.Info("Client created", "clientID", client.ID, "actorID", actor.ID)
	return client, nil
}

func (cc *ClientController) Update(
	ctx context.Context,
	actor *User,
	id uuid.UUID,
	req UpdateClientRequest,
) (*Client, error) {
	if err := policy.Authorize(actor, policy.OpUpdateClient, nil).Err(); err != nil {
		return nil, err
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	var client *Client
	err := cc.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		var err error
		client, err = cc.clientRepo.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}

		if req.Name != nil {
			client.Name = *req.Name
		}
		if req.Email != nil {
			client.Email = req.Email
		}
		if req.Phone != nil {
			client.Phone = req.Phone
		}
		if req.CompanyName != nil {
			client.CompanyName = req.CompanyName
		}
		if req.Address != nil {
			client.Address = req.Address
		}
		if req.BillingNote != nil {
			client.BillingNote = utils.CleanText(req.BillingNote)
		}

		return cc.clientRepo.Update(ctx, tx, client)
	})
	if err != nil {
		return nil, err
	}

	return client, nil
}

// Delete removes the client together with its vessels and everything below
// them.
func (cc *ClientController) Delete(ctx context.Context, actor *User, id uuid.UUID) error {
	log := cc.log.TraceFromContext(ctx).Function("Delete")

	if err := policy.Authorize(actor, policy.OpDeleteClient, nil).Err(); err != nil {
		return err
	}

	if err := cc.clientRepo.Delete(ctx, cc.db.SQL, id); err != nil {
		return err
	}

	log.Info("Client deleted", "clientID", id, "actorID", actor.ID)
	return nil
}
