package model

import (
	"time"
)

// Progress 用户在单个素材上的学习进度，(user_id, material_id) 唯一
// swagger:model Progress
type Progress struct {
	BaseModel
	UserID          uint       `gorm:"uniqueIndex:idx_progress_user_material;not null" json:"userId"`
	MaterialID      uint       `gorm:"uniqueIndex:idx_progress_user_material;not null" json:"materialId"`
	Completed       bool       `gorm:"default:false" json:"completed"`
	ProgressPercent int        `gorm:"default:0" json:"progressPercent"`
	LastPosition    int        `gorm:"default:0" json:"lastPosition"`
	TimeSpent       int        `gorm:"default:0" json:"timeSpent"` // 累计秒数，只累加
	CompletedAt     *time.Time `json:"completedAt"`
}

func (Progress) TableName() string {
	return "user_progress"
}
