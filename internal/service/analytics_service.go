package service

import (
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"oriental_miniapp_backend/internal/model"
	"oriental_miniapp_backend/internal/repository"
	"oriental_miniapp_backend/pkg/logger"
)

// AnalyticsService 行为埋点与管理端汇总
type AnalyticsService struct {
	AnalyticsRepo *repository.AnalyticsRepository
	UserRepo      *repository.UserRepository
	MaterialRepo  *repository.MaterialRepository
	ProgressRepo  *repository.ProgressRepository
}

func NewAnalyticsService(
	analyticsRepo *repository.AnalyticsRepository,
	userRepo *repository.UserRepository,
	materialRepo *repository.MaterialRepository,
	progressRepo *repository.ProgressRepository,
) *AnalyticsService {
	return &AnalyticsService{
		AnalyticsRepo: analyticsRepo,
		UserRepo:      userRepo,
		MaterialRepo:  materialRepo,
		ProgressRepo:  progressRepo,
	}
}

// Track 记录一条事件。埋点失败只打日志，永远不影响主流程。
func (s *AnalyticsService) Track(userID uint, eventType string, data map[string]interface{}) {
	event := &model.AnalyticsEvent{
		EventType: eventType,
		CreatedAt: time.Now(),
	}
	if userID != 0 {
		event.UserID = &userID
	}
	if data != nil {
		encoded, err := json.Marshal(data)
		if err != nil {
			logger.Log.Warn("事件数据序列化失败", zap.String("event", eventType), zap.Error(err))
		} else {
			event.EventData = string(encoded)
		}
	}

	if err := s.AnalyticsRepo.Log(event); err != nil {
		logger.Log.Warn("事件写入失败", zap.String("event", eventType), zap.Error(err))
	}
}

// AdminStats 管理端概览
type AdminStats struct {
	TotalUsers       int64                              `json:"totalUsers"`
	ActiveUsers7d    int64                              `json:"activeUsers7d"`
	TotalMaterials   int64                              `json:"totalMaterials"`
	TotalCompletions int64                              `json:"totalCompletions"`
	TopMaterials     []repository.MaterialCompletionCount `json:"topMaterials"`
}

func (s *AnalyticsService) GetAdminStats() (*AdminStats, error) {
	stats := &AdminStats{}
	var err error

	if stats.TotalUsers, err = s.UserRepo.Count(); err != nil {
		return nil, err
	}
	since := time.Now().AddDate(0, 0, -7)
	if stats.ActiveUsers7d, err = s.UserRepo.CountActiveSince(since); err != nil {
		return nil, err
	}
	if stats.TotalMaterials, err = s.MaterialRepo.Count(); err != nil {
		return nil, err
	}
	if stats.TotalCompletions, err = s.ProgressRepo.CountAllCompletions(); err != nil {
		return nil, err
	}
	if stats.TopMaterials, err = s.ProgressRepo.TopCompletedMaterials(5); err != nil {
		return nil, err
	}
	if stats.TopMaterials == nil {
		stats.TopMaterials = []repository.MaterialCompletionCount{}
	}
	return stats, nil
}
