package controller

import (
	"vocab_edu_backend/internal/service"
	"vocab_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// SettingsController 用户偏好设置
type SettingsController struct {
	SettingsService *service.SettingsService
}

func NewSettingsController(settingsService *service.SettingsService) *SettingsController {
	return &SettingsController{
		SettingsService: settingsService,
	}
}

// GetSettings godoc
// @Summary 获取用户设置
// @Description 返回用户偏好设置，首次访问时按默认值创建
// @Tags 设置
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.UserSettings} "成功"
// @Router /api/settings [get]
func (c *SettingsController) GetSettings(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	settings, err := c.SettingsService.GetSettings(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, settings)
}

// UpdateSettingsRequest 设置更新请求，省略的字段保持原值
// swagger:model UpdateSettingsRequest
type UpdateSettingsRequest struct {
	DailyGoal         *int  `json:"dailyGoal" binding:"omitempty,min=5,max=100"`
	ShowPronunciation *bool `json:"showPronunciation"`
	ShowExamples      *bool `json:"showExamples"`
}

// UpdateSettings godoc
// @Summary 更新用户设置
// @Description 部分更新用户偏好，省略的字段保持原值
// @Tags 设置
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body UpdateSettingsRequest true "设置更新内容"
// @Success 200 {object} util.Response{data=model.UserSettings} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/settings [put]
func (c *SettingsController) UpdateSettings(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req UpdateSettingsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	settings, err := c.SettingsService.UpdateSettings(claims.UserID, service.UpdateSettingsInput{
		DailyGoal:         req.DailyGoal,
		ShowPronunciation: req.ShowPronunciation,
		ShowExamples:      req.ShowExamples,
	})
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, settings)
}
