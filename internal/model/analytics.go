package model

import (
	"time"
)

// AnalyticsEvent 只追加的行为日志
// swagger:model AnalyticsEvent
type AnalyticsEvent struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    *uint     `gorm:"index" json:"userId"`
	EventType string    `gorm:"size:100;index;not null" json:"eventType"`
	EventData string    `gorm:"type:text" json:"eventData"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}

func (AnalyticsEvent) TableName() string {
	return "analytics_events"
}
