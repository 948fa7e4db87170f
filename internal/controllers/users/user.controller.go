package userController

import (
	"context"

	"reefclean/internal/database"
	. "reefclean/internal/models"
	"reefclean/internal/policy"
	"reefclean/internal/repositories"
	"reefclean/internal/types"

	logger "github.com/Bparsons0904/goLogger"
)

type UserController struct {
	userRepo repositories.UserRepository
	db       database.DB
	log      logger.Logger
}

type UserControllerInterface interface {
	GetMe(ctx context.Context, actor *User) (UserProfile, error)
	// ListUsers returns active users, optionally narrowed to one role. Used
	// by the assignment picker.
	ListUsers(ctx context.Context, actor *User, role *Role) ([]UserProfile, error)
}

func New(repos repositories.Repository, db database.DB) UserControllerInterface {
	return &UserController{
		userRepo: repos.User,
		db:       db,
		log:      logger.New("userController"),
	}
}

func (uc *UserController) GetMe(ctx context.Context, actor *User) (UserProfile, error) {
	if err := policy.Authorize(actor, policy.OpGetMe, nil).Err(); err != nil {
		return UserProfile{}, err
	}
	return actor.ToProfile(), nil
}

func (uc *UserController) ListUsers(ctx context.Context, actor *User, role *Role) ([]UserProfile, error) {
	log := uc.log.TraceFromContext(ctx).Function("ListUsers")

	if err := policy.Authorize(actor, policy.OpListUsers, nil).Err(); err != nil {
		return nil, err
	}

	if role != nil && !role.IsValid() {
		return nil, types.NewValidationError("role", "oneof", "must be one of [ADMIN CREW CLIENT]")
	}

	users, err := uc.userRepo.List(ctx, uc.db.SQL, role)
	if err != nil {
		return nil, log.Err("failed to list users", err)
	}

	profiles := make([]UserProfile, 0, len(users))
	for _, user := range users {
		profiles = append(profiles, user.ToProfile())
	}
	return profiles, nil
}
