package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/clinic-crm/internal/domain/account"
	"github.com/BruksfildServices01/clinic-crm/internal/models"
)

type AccountGormRepository struct {
	db *gorm.DB
}

func NewAccountGormRepository(db *gorm.DB) *AccountGormRepository {
	return &AccountGormRepository{db: db}
}

func (r *AccountGormRepository) FindByEmail(
	ctx context.Context,
	email string,
) (*models.User, error) {

	var u models.User
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *AccountGormRepository) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*models.User, error) {

	var u models.User
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *AccountGormRepository) CreateWithRole(
	ctx context.Context,
	u *models.User,
	role domain.Role,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(u).Error; err != nil {
			return err
		}
		return tx.Create(&models.UserRole{
			UserID: u.ID,
			Role:   string(role),
		}).Error
	})
}

func (r *AccountGormRepository) PrimaryRole(
	ctx context.Context,
	userID uuid.UUID,
) (domain.Role, error) {

	var roles []string
	if err := r.db.WithContext(ctx).
		Model(&models.UserRole{}).
		Where("user_id = ?", userID).
		Pluck("role", &roles).Error; err != nil {
		return "", err
	}

	if len(roles) == 0 {
		return domain.RoleReception, nil
	}
	for _, role := range roles {
		if domain.Role(role) == domain.RoleAdmin {
			return domain.RoleAdmin, nil
		}
	}
	return domain.Role(roles[0]), nil
}

var _ domain.Repository = (*AccountGormRepository)(nil)
