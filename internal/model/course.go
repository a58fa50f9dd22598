package model

// swagger:model Course
type Course struct {
	BaseModel
	DirectionID   uint   `gorm:"index;not null" json:"directionId"`
	Title         string `gorm:"size:300;not null" json:"title"`
	Description   string `gorm:"type:text" json:"description"`
	Level         string `gorm:"size:50;default:'beginner'" json:"level"`
	Language      string `gorm:"size:50;not null" json:"language"`
	DurationHours int    `gorm:"default:0" json:"durationHours"`
	ThumbnailURL  string `gorm:"size:500" json:"thumbnailUrl"`
	OrderIndex    int    `gorm:"default:0" json:"orderIndex"`
	IsActive      bool   `gorm:"default:true" json:"isActive"`

	Materials []Material `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (Course) TableName() string {
	return "courses"
}
