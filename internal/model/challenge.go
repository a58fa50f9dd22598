package model

import (
	"time"
)

// DailyChallenge 每日挑战（每天一条）
// swagger:model DailyChallenge
type DailyChallenge struct {
	BaseModel
	Date          time.Time `gorm:"uniqueIndex;not null" json:"date"`
	ChallengeType string    `gorm:"size:50;not null" json:"challengeType"`
	TargetValue   int       `gorm:"default:1" json:"targetValue"`
	XPReward      int       `gorm:"default:50" json:"xpReward"`
	Description   string    `gorm:"type:text" json:"description"`
}

func (DailyChallenge) TableName() string {
	return "daily_challenges"
}

// UserChallenge 用户挑战进度，(user_id, challenge_id) 唯一
// swagger:model UserChallenge
type UserChallenge struct {
	BaseModel
	UserID      uint       `gorm:"uniqueIndex:idx_user_challenge;not null" json:"userId"`
	ChallengeID uint       `gorm:"uniqueIndex:idx_user_challenge;not null" json:"challengeId"`
	Progress    int        `gorm:"default:0" json:"progress"`
	Completed   bool       `gorm:"default:false" json:"completed"`
	CompletedAt *time.Time `json:"completedAt"`
}

func (UserChallenge) TableName() string {
	return "user_challenges"
}
