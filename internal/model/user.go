package model

import (
	"time"
)

// swagger:model User
type User struct {
	BaseModel
	TelegramID  int64     `gorm:"uniqueIndex;not null" json:"telegramId"`
	Username    string    `gorm:"size:100" json:"username"`
	FullName    string    `gorm:"size:200" json:"fullName"`
	DirectionID *uint     `gorm:"index" json:"directionId"`
	XP          int       `gorm:"default:0" json:"xp"` // 总经验值，只增不减
	Level       int       `gorm:"default:1" json:"level"`
	StreakDays  int       `gorm:"default:0" json:"streakDays"` // 连续活跃天数
	LastActive  time.Time `json:"lastActive"`
	IsAdmin     bool      `gorm:"default:false" json:"isAdmin"`
}

func (User) TableName() string {
	return "users"
}

// LevelForXP 等级由总经验唯一确定
func LevelForXP(xp int) int {
	return xp/100 + 1
}
