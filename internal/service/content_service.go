package service

import (
	"oriental_miniapp_backend/internal/model"
	"oriental_miniapp_backend/internal/repository"
	"oriental_miniapp_backend/internal/util"
)

// ContentService 方向/课程/素材的读取与管理端维护
type ContentService struct {
	DirectionRepo *repository.DirectionRepository
	CourseRepo    *repository.CourseRepository
	MaterialRepo  *repository.MaterialRepository
	ProgressRepo  *repository.ProgressRepository
	AnalyticsSvc  *AnalyticsService
}

func NewContentService(
	directionRepo *repository.DirectionRepository,
	courseRepo *repository.CourseRepository,
	materialRepo *repository.MaterialRepository,
	progressRepo *repository.ProgressRepository,
	analyticsSvc *AnalyticsService,
) *ContentService {
	return &ContentService{
		DirectionRepo: directionRepo,
		CourseRepo:    courseRepo,
		MaterialRepo:  materialRepo,
		ProgressRepo:  progressRepo,
		AnalyticsSvc:  analyticsSvc,
	}
}

// DirectionWithProgress 方向及当前用户在其下的完成度
type DirectionWithProgress struct {
	model.Direction
	TotalMaterials     int64   `json:"totalMaterials"`
	CompletedMaterials int64   `json:"completedMaterials"`
	ProgressPercent    float64 `json:"progressPercent"`
}

// ListDirections 方向列表带完成百分比。没有素材的方向完成度为 0，不报错。
func (s *ContentService) ListDirections(userID uint) ([]DirectionWithProgress, error) {
	directions, err := s.DirectionRepo.List(true)
	if err != nil {
		return nil, err
	}

	out := make([]DirectionWithProgress, 0, len(directions))
	for _, d := range directions {
		total, err := s.DirectionRepo.CountMaterials(d.ID)
		if err != nil {
			return nil, err
		}
		completed, err := s.ProgressRepo.CountCompletedInDirection(userID, d.ID)
		if err != nil {
			return nil, err
		}

		out = append(out, DirectionWithProgress{
			Direction:          d,
			TotalMaterials:     total,
			CompletedMaterials: completed,
			ProgressPercent:    percent(completed, total),
		})
	}
	return out, nil
}

func (s *ContentService) GetDirection(id uint) (*model.Direction, error) {
	direction, err := s.DirectionRepo.FindByID(id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, util.ErrDirectionNotFound
		}
		return nil, err
	}
	return direction, nil
}

// CourseWithProgress 课程及当前用户完成度
type CourseWithProgress struct {
	model.Course
	TotalMaterials     int64   `json:"totalMaterials"`
	CompletedMaterials int64   `json:"completedMaterials"`
	ProgressPercent    float64 `json:"progressPercent"`
}

func (s *ContentService) ListCourses(userID, directionID uint) ([]CourseWithProgress, error) {
	if _, err := s.GetDirection(directionID); err != nil {
		return nil, err
	}

	courses, err := s.CourseRepo.ListByDirection(directionID, true)
	if err != nil {
		return nil, err
	}

	out := make([]CourseWithProgress, 0, len(courses))
	for _, course := range courses {
		withProgress, err := s.courseProgress(userID, course)
		if err != nil {
			return nil, err
		}
		out = append(out, *withProgress)
	}
	return out, nil
}

func (s *ContentService) courseProgress(userID uint, course model.Course) (*CourseWithProgress, error) {
	total, err := s.CourseRepo.CountMaterials(course.ID)
	if err != nil {
		return nil, err
	}
	completed, err := s.ProgressRepo.CountCompletedInCourse(userID, course.ID)
	if err != nil {
		return nil, err
	}
	return &CourseWithProgress{
		Course:             course,
		TotalMaterials:     total,
		CompletedMaterials: completed,
		ProgressPercent:    percent(completed, total),
	}, nil
}

// MaterialWithProgress 素材及当前用户在其上的进度
type MaterialWithProgress struct {
	model.Material
	Progress *model.Progress `json:"progress"`
}

// CourseDetail 课程详情，素材按顺序排列并带各自进度
type CourseDetail struct {
	CourseWithProgress
	Materials []MaterialWithProgress `json:"materials"`
}

func (s *ContentService) GetCourseDetail(userID, courseID uint) (*CourseDetail, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	withProgress, err := s.courseProgress(userID, *course)
	if err != nil {
		return nil, err
	}

	materials, err := s.MaterialRepo.ListByCourse(courseID)
	if err != nil {
		return nil, err
	}

	progressRows, err := s.ProgressRepo.ListByUserAndCourse(userID, courseID)
	if err != nil {
		return nil, err
	}
	progressByMaterial := make(map[uint]model.Progress, len(progressRows))
	for _, row := range progressRows {
		progressByMaterial[row.MaterialID] = row.Progress
	}

	detail := &CourseDetail{
		CourseWithProgress: *withProgress,
		Materials:          make([]MaterialWithProgress, 0, len(materials)),
	}
	for _, material := range materials {
		item := MaterialWithProgress{Material: material}
		if p, ok := progressByMaterial[material.ID]; ok {
			progress := p
			item.Progress = &progress
		}
		detail.Materials = append(detail.Materials, item)
	}
	return detail, nil
}

func (s *ContentService) GetMaterial(userID, materialID uint) (*MaterialWithProgress, error) {
	material, err := s.MaterialRepo.FindByID(materialID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, util.ErrMaterialNotFound
		}
		return nil, err
	}

	out := &MaterialWithProgress{Material: *material}
	progress, err := s.ProgressRepo.FindByUserAndMaterial(nil, userID, materialID)
	if err != nil && !repository.IsNotFound(err) {
		return nil, err
	}
	out.Progress = progress

	s.AnalyticsSvc.Track(userID, "material_view", map[string]interface{}{"material_id": materialID})

	return out, nil
}

// ---- 管理端维护：显式更新结构体，每个可变字段都列出来 ----

type DirectionCreate struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	IconURL     string `json:"iconUrl"`
	OrderIndex  int    `json:"orderIndex"`
}

type DirectionUpdate struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IconURL     *string `json:"iconUrl"`
	OrderIndex  *int    `json:"orderIndex"`
	IsActive    *bool   `json:"isActive"`
}

func (s *ContentService) CreateDirection(req DirectionCreate) (*model.Direction, error) {
	direction := &model.Direction{
		Name:        req.Name,
		Description: req.Description,
		IconURL:     req.IconURL,
		OrderIndex:  req.OrderIndex,
		IsActive:    true,
	}
	if err := s.DirectionRepo.Create(direction); err != nil {
		return nil, err
	}
	return direction, nil
}

func (s *ContentService) UpdateDirection(id uint, req DirectionUpdate) (*model.Direction, error) {
	direction, err := s.GetDirection(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		direction.Name = *req.Name
	}
	if req.Description != nil {
		direction.Description = *req.Description
	}
	if req.IconURL != nil {
		direction.IconURL = *req.IconURL
	}
	if req.OrderIndex != nil {
		direction.OrderIndex = *req.OrderIndex
	}
	if req.IsActive != nil {
		direction.IsActive = *req.IsActive
	}

	if err := s.DirectionRepo.Save(direction); err != nil {
		return nil, err
	}
	return direction, nil
}

func (s *ContentService) DeleteDirection(id uint) error {
	if _, err := s.GetDirection(id); err != nil {
		return err
	}
	return s.DirectionRepo.Delete(id)
}

type CourseCreate struct {
	DirectionID   uint   `json:"directionId" binding:"required"`
	Title         string `json:"title" binding:"required"`
	Language      string `json:"language" binding:"required"`
	Description   string `json:"description"`
	Level         string `json:"level"`
	DurationHours int    `json:"durationHours"`
	ThumbnailURL  string `json:"thumbnailUrl"`
	OrderIndex    int    `json:"orderIndex"`
}

type CourseUpdate struct {
	Title         *string `json:"title"`
	Description   *string `json:"description"`
	Level         *string `json:"level"`
	Language      *string `json:"language"`
	DurationHours *int    `json:"durationHours"`
	ThumbnailURL  *string `json:"thumbnailUrl"`
	OrderIndex    *int    `json:"orderIndex"`
	IsActive      *bool   `json:"isActive"`
}

func (s *ContentService) CreateCourse(req CourseCreate) (*model.Course, error) {
	if _, err := s.GetDirection(req.DirectionID); err != nil {
		return nil, err
	}

	level := req.Level
	if level == "" {
		level = "beginner"
	}

	course := &model.Course{
		DirectionID:   req.DirectionID,
		Title:         req.Title,
		Language:      req.Language,
		Description:   req.Description,
		Level:         level,
		DurationHours: req.DurationHours,
		ThumbnailURL:  req.ThumbnailURL,
		OrderIndex:    req.OrderIndex,
		IsActive:      true,
	}
	if err := s.CourseRepo.Create(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *ContentService) UpdateCourse(id uint, req CourseUpdate) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.Level != nil {
		course.Level = *req.Level
	}
	if req.Language != nil {
		course.Language = *req.Language
	}
	if req.DurationHours != nil {
		course.DurationHours = *req.DurationHours
	}
	if req.ThumbnailURL != nil {
		course.ThumbnailURL = *req.ThumbnailURL
	}
	if req.OrderIndex != nil {
		course.OrderIndex = *req.OrderIndex
	}
	if req.IsActive != nil {
		course.IsActive = *req.IsActive
	}

	if err := s.CourseRepo.Save(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *ContentService) DeleteCourse(id uint) error {
	if _, err := s.CourseRepo.FindByID(id); err != nil {
		if repository.IsNotFound(err) {
			return util.ErrCourseNotFound
		}
		return err
	}
	return s.CourseRepo.Delete(id)
}

type MaterialCreate struct {
	CourseID    uint               `json:"courseId" binding:"required"`
	Title       string             `json:"title" binding:"required"`
	Type        model.MaterialType `json:"type" binding:"required"`
	Description string             `json:"description"`
	FileID      string             `json:"fileId"`
	FileURL     string             `json:"fileUrl"`
	FileSize    int64              `json:"fileSize"`
	Duration    int                `json:"duration"`
	OrderIndex  int                `json:"orderIndex"`
	IsFree      *bool              `json:"isFree"`
	XPReward    *int               `json:"xpReward"`
}

type MaterialUpdate struct {
	Title       *string             `json:"title"`
	Description *string             `json:"description"`
	Type        *model.MaterialType `json:"type"`
	FileID      *string             `json:"fileId"`
	FileURL     *string             `json:"fileUrl"`
	FileSize    *int64              `json:"fileSize"`
	Duration    *int                `json:"duration"`
	OrderIndex  *int                `json:"orderIndex"`
	IsFree      *bool               `json:"isFree"`
	XPReward    *int                `json:"xpReward"`
}

func (s *ContentService) CreateMaterial(req MaterialCreate) (*model.Material, error) {
	if _, err := s.CourseRepo.FindByID(req.CourseID); err != nil {
		if repository.IsNotFound(err) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	material := &model.Material{
		CourseID:    req.CourseID,
		Title:       req.Title,
		Type:        req.Type,
		Description: req.Description,
		FileID:      req.FileID,
		FileURL:     req.FileURL,
		FileSize:    req.FileSize,
		Duration:    req.Duration,
		OrderIndex:  req.OrderIndex,
		IsFree:      true,
		XPReward:    10,
	}
	if req.IsFree != nil {
		material.IsFree = *req.IsFree
	}
	if req.XPReward != nil {
		material.XPReward = *req.XPReward
	}

	if err := s.MaterialRepo.Create(material); err != nil {
		return nil, err
	}
	return material, nil
}

func (s *ContentService) UpdateMaterial(id uint, req MaterialUpdate) (*model.Material, error) {
	material, err := s.MaterialRepo.FindByID(id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, util.ErrMaterialNotFound
		}
		return nil, err
	}

	if req.Title != nil {
		material.Title = *req.Title
	}
	if req.Description != nil {
		material.Description = *req.Description
	}
	if req.Type != nil {
		material.Type = *req.Type
	}
	if req.FileID != nil {
		material.FileID = *req.FileID
	}
	if req.FileURL != nil {
		material.FileURL = *req.FileURL
	}
	if req.FileSize != nil {
		material.FileSize = *req.FileSize
	}
	if req.Duration != nil {
		material.Duration = *req.Duration
	}
	if req.OrderIndex != nil {
		material.OrderIndex = *req.OrderIndex
	}
	if req.IsFree != nil {
		material.IsFree = *req.IsFree
	}
	if req.XPReward != nil {
		material.XPReward = *req.XPReward
	}

	if err := s.MaterialRepo.Save(material); err != nil {
		return nil, err
	}
	return material, nil
}

func (s *ContentService) DeleteMaterial(id uint) error {
	if _, err := s.MaterialRepo.FindByID(id); err != nil {
		if repository.IsNotFound(err) {
			return util.ErrMaterialNotFound
		}
		return err
	}
	return s.MaterialRepo.Delete(id)
}

// percent 零分母约定为 0，不是错误
func percent(completed, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(completed) / float64(total) * 100
}
