package controller

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"oriental_miniapp_backend/internal/service"
	"oriental_miniapp_backend/internal/util"
)

type ContentController struct {
	ContentService *service.ContentService
	StorageService *service.StorageService
}

func NewContentController(contentService *service.ContentService, storageService *service.StorageService) *ContentController {
	return &ContentController{ContentService: contentService, StorageService: storageService}
}

func pathID(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

func queryID(ctx *gin.Context, raw, name string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// @Summary 学习方向列表
// @Description 返回所有启用的方向及当前用户完成度
// @Tags 内容
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/directions [get]
func (c *ContentController) ListDirections(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	directions, err := c.ContentService.ListDirections(user.UserID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, directions)
}

// @Summary 方向下的课程列表
// @Tags 内容
// @Produce json
// @Security BearerAuth
// @Param id path int true "方向ID"
// @Success 200 {object} util.Response
// @Router /api/directions/{id}/courses [get]
func (c *ContentController) ListCourses(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	directionID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	courses, err := c.ContentService.ListCourses(user.UserID, directionID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// @Summary 课程详情
// @Description 课程信息、素材列表和当前用户各素材进度
// @Tags 内容
// @Produce json
// @Security BearerAuth
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response
// @Router /api/courses/{id} [get]
func (c *ContentController) GetCourse(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	courseID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	detail, err := c.ContentService.GetCourseDetail(user.UserID, courseID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, detail)
}

// @Summary 素材详情
// @Tags 内容
// @Produce json
// @Security BearerAuth
// @Param id path int true "素材ID"
// @Success 200 {object} util.Response
// @Router /api/materials/{id} [get]
func (c *ContentController) GetMaterial(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	materialID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	material, err := c.ContentService.GetMaterial(user.UserID, materialID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, material)
}

// ---- 管理端 ----

// @Summary 创建方向
// @Tags 管理端
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.DirectionCreate true "方向信息"
// @Success 201 {object} util.Response
// @Router /api/admin/directions [post]
func (c *ContentController) CreateDirection(ctx *gin.Context) {
	var req service.DirectionCreate
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	direction, err := c.ContentService.CreateDirection(req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, direction)
}

// @Summary 更新方向
// @Tags 管理端
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "方向ID"
// @Param body body service.DirectionUpdate true "要改的字段"
// @Success 200 {object} util.Response
// @Router /api/admin/directions/{id} [put]
func (c *ContentController) UpdateDirection(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req service.DirectionUpdate
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	direction, err := c.ContentService.UpdateDirection(id, req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, direction)
}

// @Summary 删除方向
// @Description 级联删除其下课程、素材和相关用户数据
// @Tags 管理端
// @Produce json
// @Security BearerAuth
// @Param id path int true "方向ID"
// @Success 200 {object} util.Response
// @Router /api/admin/directions/{id} [delete]
func (c *ContentController) DeleteDirection(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.ContentService.DeleteDirection(id); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary 创建课程
// @Tags 管理端
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CourseCreate true "课程信息"
// @Success 201 {object} util.Response
// @Router /api/admin/courses [post]
func (c *ContentController) CreateCourse(ctx *gin.Context) {
	var req service.CourseCreate
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.ContentService.CreateCourse(req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

// @Summary 更新课程
// @Tags 管理端
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "课程ID"
// @Param body body service.CourseUpdate true "要改的字段"
// @Success 200 {object} util.Response
// @Router /api/admin/courses/{id} [put]
func (c *ContentController) UpdateCourse(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req service.CourseUpdate
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.ContentService.UpdateCourse(id, req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// @Summary 删除课程
// @Tags 管理端
// @Produce json
// @Security BearerAuth
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response
// @Router /api/admin/courses/{id} [delete]
func (c *ContentController) DeleteCourse(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.ContentService.DeleteCourse(id); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary 创建素材
// @Tags 管理端
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.MaterialCreate true "素材信息"
// @Success 201 {object} util.Response
// @Router /api/admin/materials [post]
func (c *ContentController) CreateMaterial(ctx *gin.Context) {
	var req service.MaterialCreate
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	material, err := c.ContentService.CreateMaterial(req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, material)
}

// @Summary 更新素材
// @Tags 管理端
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "素材ID"
// @Param body body service.MaterialUpdate true "要改的字段"
// @Success 200 {object} util.Response
// @Router /api/admin/materials/{id} [put]
func (c *ContentController) UpdateMaterial(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req service.MaterialUpdate
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	material, err := c.ContentService.UpdateMaterial(id, req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, material)
}

// @Summary 删除素材
// @Tags 管理端
// @Produce json
// @Security BearerAuth
// @Param id path int true "素材ID"
// @Success 200 {object} util.Response
// @Router /api/admin/materials/{id} [delete]
func (c *ContentController) DeleteMaterial(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.ContentService.DeleteMaterial(id); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary 上传素材文件
// @Tags 管理端
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "文件"
// @Success 200 {object} util.Response
// @Router /api/admin/upload [post]
func (c *ContentController) UploadFile(ctx *gin.Context) {
	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	src, err := file.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer src.Close()

	filename := fmt.Sprintf("%s/%s%s",
		time.Now().Format("2006/01"),
		uuid.New().String(),
		filepath.Ext(file.Filename))

	url, err := c.StorageService.Upload(ctx.Request.Context(), filename, src, file.Size, file.Header.Get("Content-Type"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"fileUrl":  url,
		"fileName": filename,
		"fileSize": file.Size,
	})
}
