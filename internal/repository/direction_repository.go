package repository

import (
	"oriental_miniapp_backend/internal/model"

	"gorm.io/gorm"
)

type DirectionRepository struct {
	DB *gorm.DB
}

func NewDirectionRepository(db *gorm.DB) *DirectionRepository {
	return &DirectionRepository{DB: db}
}

func (r *DirectionRepository) List(activeOnly bool) ([]model.Direction, error) {
	var directions []model.Direction
	q := r.DB.Order("order_index, id")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	err := q.Find(&directions).Error
	return directions, err
}

func (r *DirectionRepository) FindByID(id uint) (*model.Direction, error) {
	var direction model.Direction
	err := r.DB.First(&direction, id).Error
	if err != nil {
		return nil, err
	}
	return &direction, nil
}

func (r *DirectionRepository) Create(direction *model.Direction) error {
	return r.DB.Create(direction).Error
}

func (r *DirectionRepository) Save(direction *model.Direction) error {
	return r.DB.Save(direction).Error
}

// Delete 级联删除方向下的课程与素材（以及它们的进度/收藏/笔记）
func (r *DirectionRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var courseIDs []uint
		if err := tx.Model(&model.Course{}).
			Where("direction_id = ?", id).
			Pluck("id", &courseIDs).Error; err != nil {
			return err
		}

		if len(courseIDs) > 0 {
			if err := deleteCourseCascade(tx, courseIDs); err != nil {
				return err
			}
		}

		return tx.Delete(&model.Direction{}, id).Error
	})
}

func (r *DirectionRepository) CountMaterials(directionID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Material{}).
		Joins("JOIN courses ON courses.id = materials.course_id").
		Where("courses.direction_id = ?", directionID).
		Count(&count).Error
	return count, err
}

// deleteCourseCascade 删除课程及其素材和素材的从属记录
func deleteCourseCascade(tx *gorm.DB, courseIDs []uint) error {
	var materialIDs []uint
	if err := tx.Model(&model.Material{}).
		Where("course_id IN ?", courseIDs).
		Pluck("id", &materialIDs).Error; err != nil {
		return err
	}

	if len(materialIDs) > 0 {
		for _, m := range []interface{}{&model.Progress{}, &model.Favorite{}, &model.Note{}} {
			if err := tx.Where("material_id IN ?", materialIDs).Delete(m).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("course_id IN ?", courseIDs).Delete(&model.Material{}).Error; err != nil {
			return err
		}
	}

	return tx.Where("id IN ?", courseIDs).Delete(&model.Course{}).Error
}
