package repository

import (
	"oriental_miniapp_backend/internal/model"

	"gorm.io/gorm"
)

type MaterialRepository struct {
	DB *gorm.DB
}

func NewMaterialRepository(db *gorm.DB) *MaterialRepository {
	return &MaterialRepository{DB: db}
}

func (r *MaterialRepository) ListByCourse(courseID uint) ([]model.Material, error) {
	var materials []model.Material
	err := r.DB.Where("course_id = ?", courseID).
		Order("order_index, id").
		Find(&materials).Error
	return materials, err
}

func (r *MaterialRepository) FindByID(id uint) (*model.Material, error) {
	var material model.Material
	err := r.DB.First(&material, id).Error
	if err != nil {
		return nil, err
	}
	return &material, nil
}

func (r *MaterialRepository) FindByIDTx(tx *gorm.DB, id uint) (*model.Material, error) {
	var material model.Material
	err := tx.First(&material, id).Error
	if err != nil {
		return nil, err
	}
	return &material, nil
}

func (r *MaterialRepository) Create(material *model.Material) error {
	return r.DB.Create(material).Error
}

func (r *MaterialRepository) Save(material *model.Material) error {
	return r.DB.Save(material).Error
}

func (r *MaterialRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		for _, m := range []interface{}{&model.Progress{}, &model.Favorite{}, &model.Note{}} {
			if err := tx.Where("material_id = ?", id).Delete(m).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&model.Material{}, id).Error
	})
}

func (r *MaterialRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Material{}).Count(&count).Error
	return count, err
}
