package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"oriental_miniapp_backend/internal/model"
	"oriental_miniapp_backend/internal/repository"
	"oriental_miniapp_backend/internal/util"
	"oriental_miniapp_backend/pkg/logger"
	"oriental_miniapp_backend/pkg/monitoring"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const leaderboardCacheTTL = time.Minute

type AchievementService struct {
	AchievementRepo *repository.AchievementRepository
	ProgressRepo    *repository.ProgressRepository
	UserRepo        *repository.UserRepository
	DB              *gorm.DB
	Redis           *redis.Client // 可为 nil，此时排行榜不走缓存
}

func NewAchievementService(
	achievementRepo *repository.AchievementRepository,
	progressRepo *repository.ProgressRepository,
	userRepo *repository.UserRepository,
	db *gorm.DB,
	rdb *redis.Client,
) *AchievementService {
	return &AchievementService{
		AchievementRepo: achievementRepo,
		ProgressRepo:    progressRepo,
		UserRepo:        userRepo,
		DB:              db,
		Redis:           rdb,
	}
}

// EvaluateAndAward 扫描该用户尚未解锁的成就定义，对满足条件的逐个解锁
// 并发放奖励经验，返回本次新解锁的成就。
// 解锁是条件插入：并发的重复评估不会重复插入也不会重复发奖。
func (s *AchievementService) EvaluateAndAward(userID uint) ([]model.Achievement, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	completedCount, err := s.ProgressRepo.CountCompletedByUser(nil, userID)
	if err != nil {
		return nil, err
	}

	locked, err := s.AchievementRepo.FindLockedByUser(nil, userID)
	if err != nil {
		return nil, err
	}

	var unlocked []model.Achievement
	for _, ach := range locked {
		if !s.satisfied(ach, completedCount, user.StreakDays) {
			continue
		}

		// 插入与发奖在同一事务里：发奖失败则解锁回滚
		err := s.DB.Transaction(func(tx *gorm.DB) error {
			inserted, err := s.AchievementRepo.Unlock(tx, userID, ach.ID)
			if err != nil {
				return err
			}
			if !inserted {
				// 并发评估已经解锁过了
				return nil
			}
			if _, err := s.UserRepo.AddXP(tx, userID, ach.XPReward); err != nil {
				return err
			}
			unlocked = append(unlocked, ach)
			monitoring.AchievementsUnlocked.Inc()
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return unlocked, nil
}

// satisfied 未知条件类型永远不满足，向前兼容
func (s *AchievementService) satisfied(ach model.Achievement, completedCount int64, streakDays int) bool {
	switch ach.ConditionType {
	case model.ConditionCompleteFirst:
		return completedCount >= 1
	case model.ConditionCompleteLessons:
		return completedCount >= int64(ach.ConditionValue)
	case model.ConditionStreak:
		return streakDays >= ach.ConditionValue
	default:
		return false
	}
}

func (s *AchievementService) GetUserAchievements(userID uint) ([]repository.UnlockedAchievement, error) {
	if _, err := s.UserRepo.FindByID(userID); err != nil {
		if repository.IsNotFound(err) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return s.AchievementRepo.FindByUserID(userID)
}

type LeaderboardEntry struct {
	Rank       int    `json:"rank"`
	TelegramID int64  `json:"telegramId"`
	Username   string `json:"username"`
	FullName   string `json:"fullName"`
	XP         int    `json:"xp"`
	Level      int    `json:"level"`
	StreakDays int    `json:"streakDays"`
}

// GetLeaderboard 排行榜按经验降序，零经验用户不参与。
// 结果在 Redis 缓存一分钟，缓存失败只记日志不影响主流程。
func (s *AchievementService) GetLeaderboard(limit int) ([]LeaderboardEntry, error) {
	ctx := context.Background()
	cacheKey := fmt.Sprintf("leaderboard:%d", limit)

	if s.Redis != nil {
		cached, err := s.Redis.Get(ctx, cacheKey).Result()
		if err == nil {
			var entries []LeaderboardEntry
			if json.Unmarshal([]byte(cached), &entries) == nil {
				return entries, nil
			}
		} else if err != redis.Nil {
			logger.Log.Warn("排行榜缓存读取失败", zap.Error(err))
		}
	}

	users, err := s.UserRepo.FindTopByXP(limit)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, len(users))
	for i, user := range users {
		entries[i] = LeaderboardEntry{
			Rank:       i + 1,
			TelegramID: user.TelegramID,
			Username:   user.Username,
			FullName:   user.FullName,
			XP:         user.XP,
			Level:      user.Level,
			StreakDays: user.StreakDays,
		}
	}

	if s.Redis != nil {
		if data, err := json.Marshal(entries); err == nil {
			if err := s.Redis.Set(ctx, cacheKey, data, leaderboardCacheTTL).Err(); err != nil {
				logger.Log.Warn("排行榜缓存写入失败", zap.Error(err))
			}
		}
	}

	return entries, nil
}
