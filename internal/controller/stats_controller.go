package controller

import (
	"errors"
	"vocab_edu_backend/internal/service"
	"vocab_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// StatsController 会话记录与统计查询
type StatsController struct {
	StatsService *service.StatsService
}

func NewStatsController(statsService *service.StatsService) *StatsController {
	return &StatsController{
		StatsService: statsService,
	}
}

// RecordSessionRequest 学习会话上报，答错数在服务端由学习数与答对数推导
// swagger:model RecordSessionRequest
type RecordSessionRequest struct {
	WordsStudied int `json:"wordsStudied" binding:"required,min=1"`
	WordsCorrect int `json:"wordsCorrect" binding:"min=0,ltefield=WordsStudied"`
	StudyTime    int `json:"studyTime" binding:"min=0"`
}

// RecordSession godoc
// @Summary 记录学习会话
// @Description 上报一次完成的学习会话，更新累计统计、连续天数与当日进度
// @Tags 统计
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body RecordSessionRequest true "会话汇总"
// @Success 201 {object} util.Response{data=model.StudySession} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/stats/sessions [post]
func (c *StatsController) RecordSession(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req RecordSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, err := c.StatsService.RecordSession(claims.UserID, service.RecordSessionInput{
		WordsStudied: req.WordsStudied,
		WordsCorrect: req.WordsCorrect,
		StudyTime:    req.StudyTime,
	})
	if err != nil {
		if errors.Is(err, util.ErrEmptySession) || errors.Is(err, util.ErrBadSessionCount) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, session)
}

// GetSessions godoc
// @Summary 获取会话历史
// @Description 返回最近的学习会话，最新的在前
// @Tags 统计
// @Produce  json
// @Security ApiKeyAuth
// @Param   limit query int false "返回数量" default(20)
// @Success 200 {object} util.Response{data=[]model.StudySession} "成功"
// @Router /api/stats/sessions [get]
func (c *StatsController) GetSessions(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	sessions, err := c.StatsService.GetRecentSessions(claims.UserID, util.ParseLimit(ctx.Query("limit"), 20))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, sessions)
}

// GetStats godoc
// @Summary 获取累计统计
// @Description 返回用户累计学习统计，首次访问时创建零值记录
// @Tags 统计
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.UserStats} "成功"
// @Router /api/stats [get]
func (c *StatsController) GetStats(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	stats, err := c.StatsService.GetUserStats(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

// GetTodayProgress godoc
// @Summary 获取今日进度
// @Description 返回今日学习量与每日目标达成情况
// @Tags 统计
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.TodayProgress} "成功"
// @Router /api/stats/today [get]
func (c *StatsController) GetTodayProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	progress, err := c.StatsService.GetTodayProgress(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

// GetWeeklyData godoc
// @Summary 获取最近一周学习量
// @Description 返回含今天在内最近7天的学习数据，无记录的日期补零
// @Tags 统计
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.WeeklyDay} "成功"
// @Router /api/stats/weekly [get]
func (c *StatsController) GetWeeklyData(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	week, err := c.StatsService.GetWeeklyData(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, week)
}

// RecomputeStats godoc
// @Summary 重算累计统计
// @Description 从会话日志重算各项总量，连续天数保留现值
// @Tags 统计
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.UserStats} "成功"
// @Router /api/stats/recompute [post]
func (c *StatsController) RecomputeStats(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	stats, err := c.StatsService.RecomputeStats(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}
