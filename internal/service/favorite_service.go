package service

import (
	"oriental_miniapp_backend/internal/repository"
	"oriental_miniapp_backend/internal/util"
)

// FavoriteService 素材收藏
type FavoriteService struct {
	FavoriteRepo *repository.FavoriteRepository
	MaterialRepo *repository.MaterialRepository
}

func NewFavoriteService(favoriteRepo *repository.FavoriteRepository, materialRepo *repository.MaterialRepository) *FavoriteService {
	return &FavoriteService{FavoriteRepo: favoriteRepo, MaterialRepo: materialRepo}
}

// Add 重复收藏同一素材不报错
func (s *FavoriteService) Add(userID, materialID uint) error {
	if _, err := s.MaterialRepo.FindByID(materialID); err != nil {
		if repository.IsNotFound(err) {
			return util.ErrMaterialNotFound
		}
		return err
	}
	return s.FavoriteRepo.Add(userID, materialID)
}

// Remove 取消不存在的收藏同样视为成功
func (s *FavoriteService) Remove(userID, materialID uint) error {
	return s.FavoriteRepo.Remove(userID, materialID)
}

func (s *FavoriteService) List(userID uint) ([]repository.FavoriteMaterial, error) {
	return s.FavoriteRepo.ListByUser(userID)
}
