package service

import (
	"time"

	"oriental_miniapp_backend/internal/model"
	"oriental_miniapp_backend/internal/repository"
	"oriental_miniapp_backend/internal/util"
)

// UserService 处理用户资料、统计与连续活跃天数
type UserService struct {
	UserRepo        *repository.UserRepository
	DirectionRepo   *repository.DirectionRepository
	ProgressRepo    *repository.ProgressRepository
	AchievementRepo *repository.AchievementRepository
}

func NewUserService(
	userRepo *repository.UserRepository,
	directionRepo *repository.DirectionRepository,
	progressRepo *repository.ProgressRepository,
	achievementRepo *repository.AchievementRepository,
) *UserService {
	return &UserService{
		UserRepo:        userRepo,
		DirectionRepo:   directionRepo,
		ProgressRepo:    progressRepo,
		AchievementRepo: achievementRepo,
	}
}

func (s *UserService) GetByID(userID uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if repository.IsNotFound(err) {
		return nil, util.ErrUserNotFound
	}
	return user, err
}

// UserStats 个人主页的汇总统计
type UserStats struct {
	User                 *model.User `json:"user"`
	CompletedMaterials   int64       `json:"completedMaterials"`
	TotalTimeMinutes     int64       `json:"totalTimeMinutes"`
	AchievementsUnlocked int64       `json:"achievementsUnlocked"`
	NextLevelXP          int         `json:"nextLevelXp"`
}

func (s *UserService) GetStats(userID uint) (*UserStats, error) {
	user, err := s.GetByID(userID)
	if err != nil {
		return nil, err
	}

	completed, err := s.ProgressRepo.CountCompletedByUser(nil, userID)
	if err != nil {
		return nil, err
	}

	totalSeconds, err := s.ProgressRepo.SumTimeSpentByUser(userID)
	if err != nil {
		return nil, err
	}

	achievements, err := s.AchievementRepo.CountByUser(userID)
	if err != nil {
		return nil, err
	}

	return &UserStats{
		User:                 user,
		CompletedMaterials:   completed,
		TotalTimeMinutes:     totalSeconds / 60,
		AchievementsUnlocked: achievements,
		NextLevelXP:          user.Level * 100,
	}, nil
}

// TouchStreak 按日历日更新连续活跃天数：
// 隔一天 -> +1，隔多天 -> 重置为 1，同一天 -> 不写库。
// 每个用户每个日历日最多产生一次写入。
func (s *UserService) TouchStreak(userID uint) (int, error) {
	user, err := s.GetByID(userID)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	gapDays := streakGapDays(user.LastActive, now)

	switch {
	case user.StreakDays == 0:
		// 首次活跃
		return 1, s.UserRepo.SetStreak(userID, 1, now)
	case gapDays == 0:
		return user.StreakDays, nil
	case gapDays == 1:
		return user.StreakDays + 1, s.UserRepo.SetStreak(userID, user.StreakDays+1, now)
	default:
		return 1, s.UserRepo.SetStreak(userID, 1, now)
	}
}

func (s *UserService) SetDirection(userID, directionID uint) error {
	if _, err := s.GetByID(userID); err != nil {
		return err
	}

	if _, err := s.DirectionRepo.FindByID(directionID); err != nil {
		if repository.IsNotFound(err) {
			return util.ErrDirectionNotFound
		}
		return err
	}

	return s.UserRepo.UpdateDirection(userID, directionID)
}

// streakGapDays 两次活跃之间隔了几个日历日。
// 日历日取 now 所在时区，锚定到 UTC 零点再相减，
// 夏令时导致的 23/25 小时天不会影响计数。
func streakGapDays(lastActive, now time.Time) int {
	return int(civilDate(now).Sub(civilDate(lastActive.In(now.Location()))) / (24 * time.Hour))
}

func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
