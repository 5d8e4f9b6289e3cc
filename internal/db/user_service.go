package db

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/balkashynov/punch/internal/models"
)

// CreateUserRequest holds a new account. PasswordHash is already hashed.
type CreateUserRequest struct {
	Username     string
	Email        string
	PasswordHash string
}

// UserSummary is a user with their clock record counts.
type UserSummary struct {
	models.User
	TotalRecords     int64
	CompletedRecords int64
}

// CreateUser inserts a user. The first user ever created claims the admin
// slot in the same transaction; later users never do.
func (s *Store) CreateUser(ctx context.Context, req CreateUserRequest) (*models.User, error) {
	user := models.User{
		Username:     strings.TrimSpace(req.Username),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: req.PasswordHash,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).
			Where("username = ? OR email = ?", user.Username, user.Email).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrUserExists
		}

		if err := tx.Create(&user).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrUserExists
			}
			return err
		}

		claim := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.AdminClaim{Slot: models.AdminSlot, UserID: user.ID})
		if claim.Error != nil {
			return claim.Error
		}
		if claim.RowsAffected == 1 {
			user.IsAdmin = true
			return tx.Model(&user).Update("is_admin", true).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUser returns the user with the given id.
func (s *Store) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Take(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindUserByLogin looks a user up by username or email.
func (s *Store) FindUserByLogin(ctx context.Context, login string) (*models.User, error) {
	login = strings.TrimSpace(login)
	if login == "" {
		return nil, ErrUserNotFound
	}
	var user models.User
	err := s.db.WithContext(ctx).
		Where("username = ? OR email = ?", login, strings.ToLower(login)).
		Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers returns every user, newest first, with their record counts.
func (s *Store) ListUsers(ctx context.Context) ([]UserSummary, error) {
	var users []UserSummary
	err := s.db.WithContext(ctx).
		Model(&models.User{}).
		Select(`users.*,
			(SELECT COUNT(*) FROM clock_records cr WHERE cr.user_id = users.id) AS total_records,
			(SELECT COUNT(*) FROM clock_records cr WHERE cr.user_id = users.id AND cr.clock_out IS NOT NULL) AS completed_records`).
		Order("users.created_at DESC, users.id DESC").
		Scan(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
