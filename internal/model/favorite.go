package model

// swagger:model Favorite
type Favorite struct {
	BaseModel
	UserID     uint `gorm:"uniqueIndex:idx_favorite_user_material;not null" json:"userId"`
	MaterialID uint `gorm:"uniqueIndex:idx_favorite_user_material;not null" json:"materialId"`
}

func (Favorite) TableName() string {
	return "favorites"
}
