package repository

import (
	"oriental_miniapp_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) ListByDirection(directionID uint, activeOnly bool) ([]model.Course, error) {
	var courses []model.Course
	q := r.DB.Where("direction_id = ?", directionID).Order("order_index, id")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	err := q.Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.First(&course, id).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) Save(course *model.Course) error {
	return r.DB.Save(course).Error
}

func (r *CourseRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return deleteCourseCascade(tx, []uint{id})
	})
}

func (r *CourseRepository) CountMaterials(courseID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Material{}).
		Where("course_id = ?", courseID).
		Count(&count).Error
	return count, err
}
