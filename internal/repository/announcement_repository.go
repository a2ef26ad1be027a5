package repository

import (
	"timeclock-backend/internal/model"

	"gorm.io/gorm"
)

type AnnouncementRepository interface {
	Create(announcement *model.Announcement) error
	Update(announcement *model.Announcement) error
	Delete(id uint) error
	GetByID(id uint) (*model.Announcement, error)
	GetAll() ([]model.Announcement, error)
	GetPosted() ([]model.Announcement, error)
}

type announcementRepository struct {
	db *gorm.DB
}

func NewAnnouncementRepository(db *gorm.DB) AnnouncementRepository {
	return &announcementRepository{db}
}

func (r *announcementRepository) Create(announcement *model.Announcement) error {
	return r.db.Create(announcement).Error
}

func (r *announcementRepository) Update(announcement *model.Announcement) error {
	return r.db.Save(announcement).Error
}

func (r *announcementRepository) Delete(id uint) error {
	return r.db.Delete(&model.Announcement{}, id).Error
}

func (r *announcementRepository) GetByID(id uint) (*model.Announcement, error) {
	var announcement model.Announcement
	err := r.db.First(&announcement, id).Error
	if err != nil {
		return nil, err
	}
	return &announcement, nil
}

func (r *announcementRepository) GetAll() ([]model.Announcement, error) {
	var announcements []model.Announcement
	err := r.db.Order("created_at desc").Find(&announcements).Error
	return announcements, err
}

func (r *announcementRepository) GetPosted() ([]model.Announcement, error) {
	var announcements []model.Announcement
	err := r.db.Where("is_posted = ?", true).Order("created_at desc").Find(&announcements).Error
	return announcements, err
}
