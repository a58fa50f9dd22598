package model

import (
	"time"
)

type ConditionType string

const (
	ConditionCompleteFirst   ConditionType = "complete_first"
	ConditionCompleteLessons ConditionType = "complete_lessons"
	ConditionStreak          ConditionType = "streak"
)

// Achievement 成就定义（静态规则）
// swagger:model Achievement
type Achievement struct {
	BaseModel
	Name           string        `gorm:"size:200;not null" json:"name"`
	Description    string        `gorm:"type:text" json:"description"`
	IconURL        string        `gorm:"size:500" json:"iconUrl"`
	XPReward       int           `gorm:"default:0" json:"xpReward"`
	ConditionType  ConditionType `gorm:"size:50;not null" json:"conditionType"`
	ConditionValue int           `gorm:"default:1" json:"conditionValue"`
}

func (Achievement) TableName() string {
	return "achievements"
}

// UserAchievement 解锁记录，(user_id, achievement_id) 唯一且不可变
// swagger:model UserAchievement
type UserAchievement struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        uint      `gorm:"uniqueIndex:idx_user_achievement;not null" json:"userId"`
	AchievementID uint      `gorm:"uniqueIndex:idx_user_achievement;not null" json:"achievementId"`
	UnlockedAt    time.Time `json:"unlockedAt"`
}

func (UserAchievement) TableName() string {
	return "user_achievements"
}
