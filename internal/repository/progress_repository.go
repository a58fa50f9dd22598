package repository

import (
	"time"

	"oriental_miniapp_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

func (r *ProgressRepository) FindByUserAndMaterial(tx *gorm.DB, userID, materialID uint) (*model.Progress, error) {
	if tx == nil {
		tx = r.DB
	}
	var p model.Progress
	err := tx.Where("user_id = ? AND material_id = ?", userID, materialID).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create 依赖 (user_id, material_id) 唯一索引吸收并发重复创建，
// 返回是否真正插入了新行。
func (r *ProgressRepository) Create(tx *gorm.DB, p *model.Progress) (bool, error) {
	if tx == nil {
		tx = r.DB
	}
	res := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "material_id"}},
		DoNothing: true,
	}).Create(p)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// UpdateAssignments 更新进度字段。time_spent 必须由调用方以
// gorm.Expr("time_spent + ?") 形式传入，累加发生在存储层。
func (r *ProgressRepository) UpdateAssignments(tx *gorm.DB, userID, materialID uint, assignments map[string]interface{}) error {
	if tx == nil {
		tx = r.DB
	}
	return tx.Model(&model.Progress{}).
		Where("user_id = ? AND material_id = ?", userID, materialID).
		Updates(assignments).Error
}

// StampCompleted 只在 completed_at 还为空时打完成时间戳，
// 返回是否由本次打上。同一 (user, material) 并发提交完成时
// 只有一个请求能改到行，首次完成的判定以此为准。
func (r *ProgressRepository) StampCompleted(tx *gorm.DB, userID, materialID uint, now time.Time) (bool, error) {
	if tx == nil {
		tx = r.DB
	}
	res := tx.Model(&model.Progress{}).
		Where("user_id = ? AND material_id = ? AND completed_at IS NULL", userID, materialID).
		Update("completed_at", now)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *ProgressRepository) CountCompletedByUser(tx *gorm.DB, userID uint) (int64, error) {
	if tx == nil {
		tx = r.DB
	}
	var count int64
	err := tx.Model(&model.Progress{}).
		Where("user_id = ? AND completed = ?", userID, true).
		Count(&count).Error
	return count, err
}

func (r *ProgressRepository) SumTimeSpentByUser(userID uint) (int64, error) {
	var total *int64
	err := r.DB.Model(&model.Progress{}).
		Select("SUM(time_spent)").
		Where("user_id = ?", userID).
		Scan(&total).Error
	if err != nil || total == nil {
		return 0, err
	}
	return *total, nil
}

// ProgressWithMaterial 进度连带素材信息的读取视图
type ProgressWithMaterial struct {
	model.Progress
	Title    string             `json:"title"`
	Type     model.MaterialType `json:"type"`
	CourseID uint               `json:"courseId"`
}

func (r *ProgressRepository) ListByUser(userID uint) ([]ProgressWithMaterial, error) {
	var rows []ProgressWithMaterial
	err := r.DB.Model(&model.Progress{}).
		Select("user_progress.*, materials.title, materials.type, materials.course_id").
		Joins("JOIN materials ON materials.id = user_progress.material_id").
		Where("user_progress.user_id = ?", userID).
		Order("user_progress.updated_at DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *ProgressRepository) ListByUserAndCourse(userID, courseID uint) ([]ProgressWithMaterial, error) {
	var rows []ProgressWithMaterial
	err := r.DB.Model(&model.Progress{}).
		Select("user_progress.*, materials.title, materials.type, materials.course_id").
		Joins("JOIN materials ON materials.id = user_progress.material_id").
		Where("user_progress.user_id = ? AND materials.course_id = ?", userID, courseID).
		Order("materials.order_index").
		Scan(&rows).Error
	return rows, err
}

func (r *ProgressRepository) CountCompletedInCourse(userID, courseID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Progress{}).
		Joins("JOIN materials ON materials.id = user_progress.material_id").
		Where("user_progress.user_id = ? AND user_progress.completed = ? AND materials.course_id = ?", userID, true, courseID).
		Count(&count).Error
	return count, err
}

func (r *ProgressRepository) CountCompletedInDirection(userID, directionID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Progress{}).
		Joins("JOIN materials ON materials.id = user_progress.material_id").
		Joins("JOIN courses ON courses.id = materials.course_id").
		Where("user_progress.user_id = ? AND user_progress.completed = ? AND courses.direction_id = ?", userID, true, directionID).
		Count(&count).Error
	return count, err
}

func (r *ProgressRepository) CountAllCompletions() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Progress{}).
		Where("completed = ?", true).
		Count(&count).Error
	return count, err
}

// MaterialCompletionCount 按完成次数排序的素材统计
type MaterialCompletionCount struct {
	MaterialID  uint   `json:"materialId"`
	Title       string `json:"title"`
	Completions int64  `json:"completions"`
}

func (r *ProgressRepository) TopCompletedMaterials(limit int) ([]MaterialCompletionCount, error) {
	var rows []MaterialCompletionCount
	err := r.DB.Model(&model.Progress{}).
		Select("materials.id AS material_id, materials.title, COUNT(*) AS completions").
		Joins("JOIN materials ON materials.id = user_progress.material_id").
		Where("user_progress.completed = ?", true).
		Group("materials.id, materials.title").
		Order("completions DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
