package repository

import (
	"timeclock-backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *model.User) error
	Update(user *model.User) error
	GetByID(id uint) (*model.User, error)
	GetByEmployeeID(employeeID string) (*model.User, error)
	List(filter UserFilter) ([]model.User, error)
	MaxEmployeeID() (string, error)
	AllEmployeeIDs() ([]string, error)
	GetByBirthday(month, day int) ([]model.User, error)
	GetByDateHiredAnniversary(month, day int) ([]model.User, error)
}

// UserFilter narrows List results; zero values mean "no filter".
type UserFilter struct {
	Company  string
	Position string
	Search   string
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db}
}

func (r *userRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) Update(user *model.User) error {
	return r.db.Save(user).Error
}

func (r *userRepository) GetByID(id uint) (*model.User, error) {
	var user model.User
	err := r.db.Preload("Company").Preload("Position").First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmployeeID(employeeID string) (*model.User, error) {
	var user model.User
	err := r.db.Preload("Company").Preload("Position").
		Where("employee_id = ?", employeeID).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(filter UserFilter) ([]model.User, error) {
	var users []model.User
	query := r.db.Preload("Company").Preload("Position").Order("employee_id asc")

	if filter.Company != "" {
		query = query.Joins("JOIN companies ON companies.id = users.company_id").
			Where("LOWER(companies.name) = LOWER(?)", filter.Company)
	}
	if filter.Position != "" {
		query = query.Joins("JOIN positions ON positions.id = users.position_id").
			Where("positions.name = ?", filter.Position)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("users.first_name LIKE ? OR users.surname LIKE ?", pattern, pattern)
	}

	err := query.Find(&users).Error
	return users, err
}

func (r *userRepository) MaxEmployeeID() (string, error) {
	var max string
	err := r.db.Model(&model.User{}).Select("COALESCE(MAX(employee_id), '')").Scan(&max).Error
	return max, err
}

func (r *userRepository) AllEmployeeIDs() ([]string, error) {
	var ids []string
	err := r.db.Model(&model.User{}).Pluck("employee_id", &ids).Error
	return ids, err
}

func (r *userRepository) GetByBirthday(month, day int) ([]model.User, error) {
	var users []model.User
	// BirthDate is stored as "YYYY-MM-DD"; MySQL casts it for MONTH/DAY
	err := r.db.Where("birth_date IS NOT NULL AND MONTH(birth_date) = ? AND DAY(birth_date) = ?", month, day).
		Find(&users).Error
	return users, err
}

func (r *userRepository) GetByDateHiredAnniversary(month, day int) ([]model.User, error) {
	var users []model.User
	err := r.db.Where("date_hired IS NOT NULL AND MONTH(date_hired) = ? AND DAY(date_hired) = ?", month, day).
		Find(&users).Error
	return users, err
}
