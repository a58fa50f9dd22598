package controller

import (
	"github.com/gin-gonic/gin"

	"oriental_miniapp_backend/internal/service"
	"oriental_miniapp_backend/internal/util"
)

type UserController struct {
	UserService     *service.UserService
	FavoriteService *service.FavoriteService
	NoteService     *service.NoteService
}

func NewUserController(
	userService *service.UserService,
	favoriteService *service.FavoriteService,
	noteService *service.NoteService,
) *UserController {
	return &UserController{
		UserService:     userService,
		FavoriteService: favoriteService,
		NoteService:     noteService,
	}
}

// @Summary 当前用户
// @Tags 用户
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/users/me [get]
func (c *UserController) Me(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	user, err := c.UserService.GetByID(claims.UserID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// @Summary 我的学习统计
// @Description 经验、等级、完成数、学习时长和成就数
// @Tags 用户
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/users/me/stats [get]
func (c *UserController) MyStats(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	stats, err := c.UserService.GetStats(claims.UserID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

type setDirectionRequest struct {
	DirectionID uint `json:"directionId" binding:"required"`
}

// @Summary 选择学习方向
// @Tags 用户
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body setDirectionRequest true "方向"
// @Success 200 {object} util.Response
// @Router /api/users/me/direction [put]
func (c *UserController) SetDirection(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req setDirectionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.UserService.SetDirection(claims.UserID, req.DirectionID); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary 我的收藏
// @Tags 用户
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/favorites [get]
func (c *UserController) ListFavorites(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	favorites, err := c.FavoriteService.List(claims.UserID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, favorites)
}

// @Summary 收藏素材
// @Description 重复收藏不报错
// @Tags 用户
// @Produce json
// @Security BearerAuth
// @Param id path int true "素材ID"
// @Success 200 {object} util.Response
// @Router /api/materials/{id}/favorite [post]
func (c *UserController) AddFavorite(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	materialID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.FavoriteService.Add(claims.UserID, materialID); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary 取消收藏
// @Tags 用户
// @Produce json
// @Security BearerAuth
// @Param id path int true "素材ID"
// @Success 200 {object} util.Response
// @Router /api/materials/{id}/favorite [delete]
func (c *UserController) RemoveFavorite(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	materialID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.FavoriteService.Remove(claims.UserID, materialID); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary 我的笔记
// @Description 可按素材过滤
// @Tags 用户
// @Produce json
// @Security BearerAuth
// @Param materialId query int false "素材ID"
// @Success 200 {object} util.Response
// @Router /api/notes [get]
func (c *UserController) ListNotes(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if raw := ctx.Query("materialId"); raw != "" {
		materialID, ok := queryID(ctx, raw, "materialId")
		if !ok {
			return
		}
		notes, err := c.NoteService.ListForMaterial(claims.UserID, materialID)
		if err != nil {
			util.HandleServiceError(ctx, err)
			return
		}
		util.Success(ctx, notes)
		return
	}

	notes, err := c.NoteService.ListAll(claims.UserID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, notes)
}

// @Summary 创建笔记
// @Tags 用户
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.NoteCreate true "笔记"
// @Success 201 {object} util.Response
// @Router /api/notes [post]
func (c *UserController) CreateNote(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.NoteCreate
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	note, err := c.NoteService.Create(claims.UserID, req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, note)
}

// @Summary 更新笔记
// @Tags 用户
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "笔记ID"
// @Param body body service.NoteUpdate true "要改的字段"
// @Success 200 {object} util.Response
// @Router /api/notes/{id} [put]
func (c *UserController) UpdateNote(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	noteID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req service.NoteUpdate
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	note, err := c.NoteService.Update(claims.UserID, noteID, req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, note)
}

// @Summary 删除笔记
// @Tags 用户
// @Produce json
// @Security BearerAuth
// @Param id path int true "笔记ID"
// @Success 200 {object} util.Response
// @Router /api/notes/{id} [delete]
func (c *UserController) DeleteNote(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	noteID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.NoteService.Delete(claims.UserID, noteID); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
