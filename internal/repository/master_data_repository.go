package repository

import (
	"timeclock-backend/internal/model"

	"gorm.io/gorm"
)

type MasterDataRepository interface {
	ListCompanies() ([]model.Company, error)
	FirstOrCreateCompany(name string) (*model.Company, error)
	ListPositions() ([]model.Position, error)
	FirstOrCreatePosition(name string) (*model.Position, error)
}

type masterDataRepository struct {
	db *gorm.DB
}

func NewMasterDataRepository(db *gorm.DB) MasterDataRepository {
	return &masterDataRepository{db}
}

func (r *masterDataRepository) ListCompanies() ([]model.Company, error) {
	var companies []model.Company
	err := r.db.Order("name asc").Find(&companies).Error
	return companies, err
}

func (r *masterDataRepository) FirstOrCreateCompany(name string) (*model.Company, error) {
	company := model.Company{Name: name}
	err := r.db.FirstOrCreate(&company, model.Company{Name: name}).Error
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *masterDataRepository) ListPositions() ([]model.Position, error) {
	var positions []model.Position
	err := r.db.Order("name asc").Find(&positions).Error
	return positions, err
}

func (r *masterDataRepository) FirstOrCreatePosition(name string) (*model.Position, error) {
	position := model.Position{Name: name}
	err := r.db.FirstOrCreate(&position, model.Position{Name: name}).Error
	if err != nil {
		return nil, err
	}
	return &position, nil
}
