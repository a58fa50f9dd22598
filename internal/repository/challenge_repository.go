package repository

import (
	"time"

	"oriental_miniapp_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ChallengeRepository struct {
	DB *gorm.DB
}

func NewChallengeRepository(db *gorm.DB) *ChallengeRepository {
	return &ChallengeRepository{DB: db}
}

func (r *ChallengeRepository) FindByDate(date time.Time) (*model.DailyChallenge, error) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	var challenge model.DailyChallenge
	err := r.DB.Where("date = ?", day).First(&challenge).Error
	if err != nil {
		return nil, err
	}
	return &challenge, nil
}

func (r *ChallengeRepository) Create(challenge *model.DailyChallenge) error {
	challenge.Date = time.Date(
		challenge.Date.Year(), challenge.Date.Month(), challenge.Date.Day(),
		0, 0, 0, 0, challenge.Date.Location(),
	)
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}},
		DoNothing: true,
	}).Create(challenge).Error
}

// GetOrCreateUserChallenge 取用户在挑战上的进度记录，没有则建一条零进度
func (r *ChallengeRepository) GetOrCreateUserChallenge(userID, challengeID uint) (*model.UserChallenge, error) {
	uc := model.UserChallenge{UserID: userID, ChallengeID: challengeID}
	err := r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "challenge_id"}},
		DoNothing: true,
	}).Create(&uc).Error
	if err != nil {
		return nil, err
	}

	var out model.UserChallenge
	err = r.DB.Where("user_id = ? AND challenge_id = ?", userID, challengeID).First(&out).Error
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// AddProgress 进度原子累加，返回累加后的记录
func (r *ChallengeRepository) AddProgress(userID, challengeID uint, delta int) (*model.UserChallenge, error) {
	err := r.DB.Model(&model.UserChallenge{}).
		Where("user_id = ? AND challenge_id = ?", userID, challengeID).
		Update("progress", gorm.Expr("progress + ?", delta)).Error
	if err != nil {
		return nil, err
	}

	var out model.UserChallenge
	err = r.DB.Where("user_id = ? AND challenge_id = ?", userID, challengeID).First(&out).Error
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// MarkCompleted 只在未完成时打完成标记，返回是否是本次完成的
func (r *ChallengeRepository) MarkCompleted(userID, challengeID uint, now time.Time) (bool, error) {
	res := r.DB.Model(&model.UserChallenge{}).
		Where("user_id = ? AND challenge_id = ? AND completed = ?", userID, challengeID, false).
		Updates(map[string]interface{}{
			"completed":    true,
			"completed_at": now,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
