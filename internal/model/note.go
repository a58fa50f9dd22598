package model

// Note 用户在素材上的笔记
// swagger:model Note
type Note struct {
	BaseModel
	UserID     uint   `gorm:"index;not null" json:"userId"`
	MaterialID uint   `gorm:"index;not null" json:"materialId"`
	Content    string `gorm:"type:text;not null" json:"content"`
	Timestamp  int    `gorm:"default:0" json:"timestamp"` // 素材内的秒数位置
}

func (Note) TableName() string {
	return "notes"
}
