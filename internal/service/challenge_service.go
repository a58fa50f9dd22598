package service

import (
	"time"

	"go.uber.org/zap"

	"oriental_miniapp_backend/internal/model"
	"oriental_miniapp_backend/internal/repository"
	"oriental_miniapp_backend/pkg/logger"
)

// 挑战类型
const (
	ChallengeCompleteMaterials = "complete_materials"
	ChallengeSpendTime         = "spend_time"
)

// ChallengeService 每日挑战。当天没有挑战时自动生成一条默认的。
type ChallengeService struct {
	ChallengeRepo *repository.ChallengeRepository
	UserRepo      *repository.UserRepository
}

func NewChallengeService(challengeRepo *repository.ChallengeRepository, userRepo *repository.UserRepository) *ChallengeService {
	return &ChallengeService{ChallengeRepo: challengeRepo, UserRepo: userRepo}
}

// ChallengeStatus 挑战及当前用户的进度
type ChallengeStatus struct {
	Challenge model.DailyChallenge `json:"challenge"`
	Progress  int                  `json:"progress"`
	Completed bool                 `json:"completed"`
}

func (s *ChallengeService) todayChallenge() (*model.DailyChallenge, error) {
	now := time.Now()
	challenge, err := s.ChallengeRepo.FindByDate(now)
	if err == nil {
		return challenge, nil
	}
	if !repository.IsNotFound(err) {
		return nil, err
	}

	fresh := &model.DailyChallenge{
		Date:          now,
		ChallengeType: ChallengeCompleteMaterials,
		TargetValue:   3,
		XPReward:      50,
		Description:   "Bugun 3 ta darsni yakunlang",
	}
	if err := s.ChallengeRepo.Create(fresh); err != nil {
		return nil, err
	}
	// 并发生成时冲突插入不落库，统一重读
	return s.ChallengeRepo.FindByDate(now)
}

func (s *ChallengeService) GetToday(userID uint) (*ChallengeStatus, error) {
	challenge, err := s.todayChallenge()
	if err != nil {
		return nil, err
	}
	uc, err := s.ChallengeRepo.GetOrCreateUserChallenge(userID, challenge.ID)
	if err != nil {
		return nil, err
	}
	return &ChallengeStatus{
		Challenge: *challenge,
		Progress:  uc.Progress,
		Completed: uc.Completed,
	}, nil
}

// OnMaterialCompleted 素材首次完成后的挑战推进。失败只打日志，
// 不能把进度上报本身拖垮。
func (s *ChallengeService) OnMaterialCompleted(userID uint) {
	challenge, err := s.todayChallenge()
	if err != nil {
		logger.Log.Warn("读取当日挑战失败", zap.Uint("user_id", userID), zap.Error(err))
		return
	}
	if challenge.ChallengeType != ChallengeCompleteMaterials {
		return
	}

	if _, err := s.ChallengeRepo.GetOrCreateUserChallenge(userID, challenge.ID); err != nil {
		logger.Log.Warn("初始化挑战进度失败", zap.Uint("user_id", userID), zap.Error(err))
		return
	}
	uc, err := s.ChallengeRepo.AddProgress(userID, challenge.ID, 1)
	if err != nil {
		logger.Log.Warn("挑战进度累加失败", zap.Uint("user_id", userID), zap.Error(err))
		return
	}
	if uc.Progress < challenge.TargetValue || uc.Completed {
		return
	}

	justCompleted, err := s.ChallengeRepo.MarkCompleted(userID, challenge.ID, time.Now())
	if err != nil {
		logger.Log.Warn("挑战完成标记失败", zap.Uint("user_id", userID), zap.Error(err))
		return
	}
	if justCompleted && challenge.XPReward > 0 {
		if _, err := s.UserRepo.AddXP(nil, userID, challenge.XPReward); err != nil {
			logger.Log.Error("挑战奖励发放失败",
				zap.Uint("user_id", userID),
				zap.Int("xp", challenge.XPReward),
				zap.Error(err))
		}
	}
}
