package model

// Direction 学习方向（顶层分类）
// swagger:model Direction
type Direction struct {
	BaseModel
	Name        string `gorm:"size:200;uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	IconURL     string `gorm:"size:500" json:"iconUrl"`
	OrderIndex  int    `gorm:"default:0" json:"orderIndex"`
	IsActive    bool   `gorm:"default:true" json:"isActive"`

	Courses []Course `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (Direction) TableName() string {
	return "directions"
}
