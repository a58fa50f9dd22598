package service

import (
	"time"

	"oriental_miniapp_backend/internal/model"
	"oriental_miniapp_backend/internal/repository"
	"oriental_miniapp_backend/internal/util"
	"oriental_miniapp_backend/pkg/monitoring"

	"gorm.io/gorm"
)

type ProgressService struct {
	ProgressRepo   *repository.ProgressRepository
	MaterialRepo   *repository.MaterialRepository
	UserRepo       *repository.UserRepository
	AchievementSvc *AchievementService
	ChallengeSvc   *ChallengeService
	DB             *gorm.DB
}

func NewProgressService(
	progressRepo *repository.ProgressRepository,
	materialRepo *repository.MaterialRepository,
	userRepo *repository.UserRepository,
	achievementSvc *AchievementService,
	challengeSvc *ChallengeService,
	db *gorm.DB,
) *ProgressService {
	return &ProgressService{
		ProgressRepo:   progressRepo,
		MaterialRepo:   materialRepo,
		UserRepo:       userRepo,
		AchievementSvc: achievementSvc,
		ChallengeSvc:   challengeSvc,
		DB:             db,
	}
}

// ProgressUpdate 单次进度上报。TimeSpentDelta 是增量秒数，不是绝对值。
type ProgressUpdate struct {
	ProgressPercent int  `json:"progressPercent" binding:"min=0,max=100"`
	Completed       bool `json:"completed"`
	LastPosition    int  `json:"lastPosition"`
	TimeSpentDelta  int  `json:"timeSpent"`
}

type ProgressResult struct {
	Progress        *model.Progress     `json:"progress"`
	XPAwarded       int                 `json:"xpAwarded"`
	NewAchievements []model.Achievement `json:"newAchievements"`
}

// RecordProgress 写入或更新 (user, material) 的进度记录。
//
// time_spent 以存储层表达式累加，并发上报不会丢增量。
// completed_at 只在 未完成->完成 的迁移上打一次时间戳；重复提交
// completed=true 不会重新打点，也不会重复发放素材的经验奖励。
// 进度写入、完成打点和经验发放在同一事务内，全部成功或全部回滚。
func (s *ProgressService) RecordProgress(userID, materialID uint, update ProgressUpdate) (*ProgressResult, error) {
	// 校验策略：越界拒绝，不做静默截断
	if update.ProgressPercent < 0 || update.ProgressPercent > 100 {
		return nil, util.ErrInvalidPercent
	}
	if update.TimeSpentDelta < 0 {
		return nil, util.ErrNegativeTimeSpent
	}

	exists, err := s.UserRepo.Exists(userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, util.ErrUserNotFound
	}

	result := &ProgressResult{}
	completedNow := false

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		material, err := s.MaterialRepo.FindByIDTx(tx, materialID)
		if err != nil {
			if repository.IsNotFound(err) {
				return util.ErrMaterialNotFound
			}
			return err
		}

		now := time.Now()

		p := &model.Progress{
			UserID:          userID,
			MaterialID:      materialID,
			ProgressPercent: update.ProgressPercent,
			Completed:       update.Completed,
			LastPosition:    update.LastPosition,
			TimeSpent:       update.TimeSpentDelta,
		}
		if update.Completed {
			p.CompletedAt = &now
		}

		inserted, err := s.ProgressRepo.Create(tx, p)
		if err != nil {
			return err
		}
		if inserted {
			if update.Completed {
				completedNow = true
				if err := s.awardMaterialXP(tx, userID, material, result); err != nil {
					return err
				}
			}
			result.Progress = p
			return nil
		}

		// 记录已存在（可能是并发请求刚建的），走更新路径。
		// completed 标志可以被后续上报翻回 false，completed_at 不动
		assignments := map[string]interface{}{
			"progress_percent": update.ProgressPercent,
			"completed":        update.Completed,
			"last_position":    update.LastPosition,
			"time_spent":       gorm.Expr("time_spent + ?", update.TimeSpentDelta),
		}
		if err := s.ProgressRepo.UpdateAssignments(tx, userID, materialID, assignments); err != nil {
			return err
		}

		if update.Completed {
			// 首次完成以条件打点的写入结果判定，不看事务内的快照读，
			// 并发重复提交只有打上时间戳的那一次发奖
			stamped, err := s.ProgressRepo.StampCompleted(tx, userID, materialID, now)
			if err != nil {
				return err
			}
			if stamped {
				completedNow = true
				if err := s.awardMaterialXP(tx, userID, material, result); err != nil {
					return err
				}
			}
		}

		updated, err := s.ProgressRepo.FindByUserAndMaterial(tx, userID, materialID)
		if err != nil {
			return err
		}
		result.Progress = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	monitoring.ProgressUpdates.Inc()

	if completedNow && s.ChallengeSvc != nil {
		s.ChallengeSvc.OnMaterialCompleted(userID)
	}

	// 进度落库后评估成就，独立于上面的事务
	unlocked, err := s.AchievementSvc.EvaluateAndAward(userID)
	if err != nil {
		return nil, err
	}
	result.NewAchievements = unlocked

	return result, nil
}

func (s *ProgressService) awardMaterialXP(tx *gorm.DB, userID uint, material *model.Material, result *ProgressResult) error {
	if material.XPReward <= 0 {
		return nil
	}
	if _, err := s.UserRepo.AddXP(tx, userID, material.XPReward); err != nil {
		return err
	}
	result.XPAwarded = material.XPReward
	return nil
}

func (s *ProgressService) ListByUser(userID uint) ([]repository.ProgressWithMaterial, error) {
	exists, err := s.UserRepo.Exists(userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, util.ErrUserNotFound
	}
	return s.ProgressRepo.ListByUser(userID)
}

func (s *ProgressService) ListByUserAndCourse(userID, courseID uint) ([]repository.ProgressWithMaterial, error) {
	exists, err := s.UserRepo.Exists(userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, util.ErrUserNotFound
	}
	return s.ProgressRepo.ListByUserAndCourse(userID, courseID)
}
