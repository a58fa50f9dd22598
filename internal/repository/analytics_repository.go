package repository

import (
	"oriental_miniapp_backend/internal/model"

	"gorm.io/gorm"
)

type AnalyticsRepository struct {
	DB *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) *AnalyticsRepository {
	return &AnalyticsRepository{DB: db}
}

// Log 只追加，核心不读取
func (r *AnalyticsRepository) Log(event *model.AnalyticsEvent) error {
	return r.DB.Create(event).Error
}
