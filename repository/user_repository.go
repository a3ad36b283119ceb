package repository

import (
	"gorm.io/gorm"

	"stat-reports-api/models"
)

type UserRepository interface {
	Create(user *models.User) error
	FindByID(id uint) (*models.User, error)
	FindByUserName(userName string) (*models.User, error)
	FindByBranch(branchID uint) ([]models.User, error)
	// FindByRole returns every user holding the named system role.
	FindByRole(roleName string) ([]models.User, error)
	FindAll() ([]models.User, error)
	Update(user *models.User) error
}

type userRepository struct {
	db *gorm.DB
}

func (r *userRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) FindByID(id uint) (*models.User, error) {
	var user models.User
	err := r.db.Preload("Role").Preload("Branch").
		Where("user_id = ?", id).First(&user).Error
	if missing, err := notFound(err); missing || err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByUserName(userName string) (*models.User, error) {
	var user models.User
	err := r.db.Preload("Role").Preload("Branch").
		Where("user_name = ?", userName).First(&user).Error
	if missing, err := notFound(err); missing || err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByBranch(branchID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.Where("branch_id = ?", branchID).Find(&users).Error
	return users, err
}

func (r *userRepository) FindByRole(roleName string) ([]models.User, error) {
	var users []models.User
	err := r.db.
		Joins("JOIN roles ON roles.role_id = users.role_id").
		Where("roles.role_name = ?", roleName).
		Find(&users).Error
	return users, err
}

func (r *userRepository) FindAll() ([]models.User, error) {
	var users []models.User
	err := r.db.Preload("Role").Preload("Branch").Order("full_name").Find(&users).Error
	return users, err
}

func (r *userRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}
