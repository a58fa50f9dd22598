package repository

import (
	"time"

	"oriental_miniapp_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AchievementRepository struct {
	DB *gorm.DB
}

func NewAchievementRepository(db *gorm.DB) *AchievementRepository {
	return &AchievementRepository{DB: db}
}

// FindLockedByUser 返回该用户尚未解锁的成就定义
func (r *AchievementRepository) FindLockedByUser(tx *gorm.DB, userID uint) ([]model.Achievement, error) {
	if tx == nil {
		tx = r.DB
	}
	var achievements []model.Achievement
	err := tx.Where("NOT EXISTS (SELECT 1 FROM user_achievements ua WHERE ua.user_id = ? AND ua.achievement_id = achievements.id)", userID).
		Find(&achievements).Error
	return achievements, err
}

// Unlock 条件插入解锁记录。返回是否真正插入：并发重复解锁时
// 唯一索引让第二次插入落空，不报错也不重复发奖。
func (r *AchievementRepository) Unlock(tx *gorm.DB, userID, achievementID uint) (bool, error) {
	if tx == nil {
		tx = r.DB
	}
	ua := model.UserAchievement{
		UserID:        userID,
		AchievementID: achievementID,
		UnlockedAt:    time.Now(),
	}
	res := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "achievement_id"}},
		DoNothing: true,
	}).Create(&ua)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// UnlockedAchievement 带解锁时间的成就视图
type UnlockedAchievement struct {
	model.Achievement
	UnlockedAt time.Time `json:"unlockedAt"`
}

func (r *AchievementRepository) FindByUserID(userID uint) ([]UnlockedAchievement, error) {
	var rows []UnlockedAchievement
	err := r.DB.Model(&model.Achievement{}).
		Select("achievements.*, user_achievements.unlocked_at").
		Joins("JOIN user_achievements ON user_achievements.achievement_id = achievements.id").
		Where("user_achievements.user_id = ?", userID).
		Order("user_achievements.unlocked_at DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *AchievementRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.UserAchievement{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
