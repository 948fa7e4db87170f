package repositories

import (
	"context"
	"time"

	"reefclean/internal/database"
	. "reefclean/internal/models"
	"reefclean/internal/types"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	USER_CACHE_EXPIRY = 15 * time.Minute
	USER_CACHE_PREFIX = "user"
)

type UserRepository interface {
	// GetByID resolves an actor through the user cache. Used on every
	// authenticated request.
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	Find(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*User, error)
	List(ctx context.Context, tx *gorm.DB, role *Role) ([]*User, error)
	Create(ctx context.Context, tx *gorm.DB, user *User) error
	Update(ctx context.Context, tx *gorm.DB, user *User) error
	ClearUserCache(ctx context.Context, id uuid.UUID) error
}

type userRepository struct {
	db  database.DB
	log logger.Logger
}

func NewUserRepository(db database.DB) UserRepository {
	return &userRepository{
		db:  db,
		log: logger.New("userRepository"),
	}
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	log := r.log.Function("GetByID")

	var user User
	found, err := database.NewCacheBuilder(r.db.Cache.User, id).
		WithHash(USER_CACHE_PREFIX).
		WithContext(ctx).
		Get(&user)
	if err != nil {
		log.Warn("failed to get user from cache", "userID", id, "error", err)
	}
	if found {
		return &user, nil
	}

	cached, err := r.Find(ctx, r.db.SQL, id)
	if err != nil {
		return nil, err
	}

	if err := database.NewCacheBuilder(r.db.Cache.User, id).
		WithHash(USER_CACHE_PREFIX).
		WithStruct(cached).
		WithTTL(USER_CACHE_EXPIRY).
		WithContext(ctx).
		Set(); err != nil {
		log.Warn("failed to add user to cache", "userID", id, "error", err)
	}

	return cached, nil
}

func (r *userRepository) Find(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*User, error) {
	var user User
	if err := tx.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, types.FromStoreError(err, "user", id)
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context, tx *gorm.DB, role *Role) ([]*User, error) {
	log := r.log.TraceFromContext(ctx).Function("List")

	query := tx.WithContext(ctx).Where("is_active = ?", true)
	if role != nil {
		query = query.Where("role = ?", *role)
	}

	var users []*User
	if err := query.Order("name ASC, id ASC").Find(&users).Error; err != nil {
		return nil, log.Err("failed to list users", err)
	}

	return users, nil
}

func (r *userRepository) Create(ctx context.Context, tx *gorm.DB, user *User) error {
	if err := tx.WithContext(ctx).Create(user).Error; err != nil {
		return types.FromStoreError(err, "user", user.Email)
	}
	return nil
}

func (r *userRepository) Update(ctx context.Context, tx *gorm.DB, user *User) error {
	log := r.log.TraceFromContext(ctx).Function("Update")

	if err := tx.WithContext(ctx).Save(user).Error; err != nil {
		return types.FromStoreError(err, "user", user.ID)
	}

	if err := r.ClearUserCache(ctx, user.ID); err != nil {
		log.Warn("failed to clear user cache after update", "userID", user.ID, "error", err)
	}

	return nil
}

func (r *userRepository) ClearUserCache(ctx context.Context, id uuid.UUID) error {
	return database.NewCacheBuilder(r.db.Cache.User, id).
		WithHash(USER_CACHE_PREFIX).
		WithContext(ctx).
		Delete()
}
