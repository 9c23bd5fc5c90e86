package repositories

import (
	"context"
	"time"

	"sanitrack/internal/database"
	. "sanitrack/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
)

const (
	USER_CACHE_EXPIRY = 24 * time.Hour
	USER_CACHE_PREFIX = "user"
)

type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetAll(ctx context.Context) ([]User, error)
	GetCleaners(ctx context.Context) ([]User, error)
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, user *User) error
	CountCleaners(ctx context.Context, activeOnly bool) (int64, error)
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
		WithContext(ctx).
		WithHash(USER_CACHE_PREFIX).
		Get(&user)
	if err != nil {
		log.Warn("failed to get user from cache", "userID", id, "error", err)
	}
	if found {
		return &user, nil
	}

	if err := r.db.SQLWithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}

	if err := r.addToCache(ctx, &user); err != nil {
		log.Warn("failed to add user to cache", "userID", id, "error", err)
	}

	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*User, error) {
	var user User
	if err := r.db.SQLWithContext(ctx).
		Where("username = ?", username).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetAll(ctx context.Context) ([]User, error) {
	var users []User
	if err := r.db.SQLWithContext(ctx).
		Order("created_at ASC").
		Find(&users).Error; err != nil {
		return nil, r.log.Function("GetAll").Err("failed to get users", err)
	}
	return users, nil
}

func (r *userRepository) GetCleaners(ctx context.Context) ([]User, error) {
	var users []User
	if err := r.db.SQLWithContext(ctx).
		Where("role = ?", RoleCleaner).
		Order("created_at ASC").
		Find(&users).Error; err != nil {
		return nil, r.log.Function("GetCleaners").Err("failed to get cleaners", err)
	}
	return users, nil
}

func (r *userRepository) Create(ctx context.Context, user *User) error {
	if err := r.db.SQLWithContext(ctx).Create(user).Error; err != nil {
		return err
	}
	return nil
}

func (r *userRepository) Update(ctx context.Context, user *User) error {
	log := r.log.Function("Update")

	if err := r.db.SQLWithContext(ctx).Save(user).Error; err != nil {
		return err
	}

	if err := r.clearCache(ctx, user.ID); err != nil {
		log.Warn("failed to clear user cache after update", "userID", user.ID, "error", err)
	}

	return nil
}

func (r *userRepository) Delete(ctx context.Context, user *User) error {
	log := r.log.Function("Delete")

	if err := r.db.SQLWithContext(ctx).Delete(user).Error; err != nil {
		return log.Err("failed to delete user", err, "userID", user.ID)
	}

	if err := r.clearCache(ctx, user.ID); err != nil {
		log.Warn("failed to clear user cache after delete", "userID", user.ID, "error", err)
	}

	return nil
}

func (r *userRepository) CountCleaners(ctx context.Context, activeOnly bool) (int64, error) {
	query := r.db.SQLWithContext(ctx).Model(&User{}).Where("role = ?", RoleCleaner)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, r.log.Function("CountCleaners").Err("failed to count cleaners", err)
	}
	return count, nil
}

func (r *userRepository) addToCache(ctx context.Context, user *User) error {
	return database.NewCacheBuilder(r.db.Cache.User, user.ID).
		WithContext(ctx).
		WithHash(USER_CACHE_PREFIX).
		WithStruct(user).
		WithTTL(USER_CACHE_EXPIRY).
		Set()
}

func (r *userRepository) clearCache(ctx context.Context, userID uuid.UUID) error {
	return database.NewCacheBuilder(r.db.Cache.User, userID).
		WithContext(ctx).
		WithHash(USER_CACHE_PREFIX).
		Delete()
}
