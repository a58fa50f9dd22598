package repository

import (
	"time"

	"oriental_miniapp_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FavoriteRepository struct {
	DB *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{DB: db}
}

// Add 重复收藏直接吸收为无操作
func (r *FavoriteRepository) Add(userID, materialID uint) error {
	fav := model.Favorite{UserID: userID, MaterialID: materialID}
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "material_id"}},
		DoNothing: true,
	}).Create(&fav).Error
}

func (r *FavoriteRepository) Remove(userID, materialID uint) error {
	return r.DB.Where("user_id = ? AND material_id = ?", userID, materialID).
		Delete(&model.Favorite{}).Error
}

// FavoriteMaterial 收藏列表里的素材视图
type FavoriteMaterial struct {
	model.Material
	FavoritedAt time.Time `json:"favoritedAt"`
}

func (r *FavoriteRepository) ListByUser(userID uint) ([]FavoriteMaterial, error) {
	var rows []FavoriteMaterial
	err := r.DB.Model(&model.Material{}).
		Select("materials.*, favorites.created_at AS favorited_at").
		Joins("JOIN favorites ON favorites.material_id = materials.id").
		Where("favorites.user_id = ?", userID).
		Order("favorites.created_at DESC").
		Scan(&rows).Error
	return rows, err
}
