package controller

import (
	"errors"
	"vocab_edu_backend/internal/service"
	"vocab_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// StudyController 学词与复习流程的HTTP入口
type StudyController struct {
	StudyService *service.StudyService
}

func NewStudyController(studyService *service.StudyService) *StudyController {
	return &StudyController{
		StudyService: studyService,
	}
}

// GetNewWords godoc
// @Summary 获取新词
// @Description 返回当前词书中尚未学过的单词，未选书时返回空列表
// @Tags 学习
// @Produce  json
// @Security ApiKeyAuth
// @Param   limit query int false "返回数量" default(20)
// @Success 200 {object} util.Response{data=[]model.VocabularyWord} "成功"
// @Router /api/study/new-words [get]
func (c *StudyController) GetNewWords(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	words, err := c.StudyService.GetNewWords(claims.UserID, util.ParseLimit(ctx.Query("limit"), 0))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, words)
}

// GetDueWords godoc
// @Summary 获取到期复习词
// @Description 返回当前词书中到期待复习的单词，最过期的在前
// @Tags 学习
// @Produce  json
// @Security ApiKeyAuth
// @Param   limit query int false "返回数量" default(20)
// @Success 200 {object} util.Response{data=[]model.VocabularyWord} "成功"
// @Router /api/study/due-words [get]
func (c *StudyController) GetDueWords(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	words, err := c.StudyService.GetDueWords(claims.UserID, util.ParseLimit(ctx.Query("limit"), 0))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, words)
}

// AnswerRequest 单词作答请求
// masteryLevel 省略时按统一规则推进：答对升一级，答错归零
// swagger:model AnswerRequest
type AnswerRequest struct {
	WordID       string `json:"wordId" binding:"required"`
	Correct      *bool  `json:"correct" binding:"required"`
	MasteryLevel *int   `json:"masteryLevel"`
}

// AnswerWord godoc
// @Summary 记录单词作答
// @Description 更新单词掌握等级并重排下次复习时间
// @Tags 学习
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body AnswerRequest true "作答结果"
// @Success 200 {object} util.Response{data=model.UserWordProgress} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 404 {object} util.Response "单词不存在"
// @Router /api/study/answer [post]
func (c *StudyController) AnswerWord(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req AnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	var (
		progress interface{}
		err      error
	)
	if req.MasteryLevel != nil {
		progress, err = c.StudyService.RecordAnswer(claims.UserID, req.WordID, *req.MasteryLevel, *req.Correct)
	} else {
		progress, err = c.StudyService.AnswerWord(claims.UserID, req.WordID, *req.Correct)
	}
	if err != nil {
		switch {
		case errors.Is(err, util.ErrWordNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrBadMasteryLevel):
			util.BadRequest(ctx, "掌握等级超出范围")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, progress)
}

// GetWordProgress godoc
// @Summary 查询单词学习进度
// @Tags 学习
// @Produce  json
// @Security ApiKeyAuth
// @Param   wordId path string true "单词ID"
// @Success 200 {object} util.Response{data=model.UserWordProgress} "成功"
// @Failure 404 {object} util.Response "尚未学习该单词"
// @Router /api/study/progress/{wordId} [get]
func (c *StudyController) GetWordProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	progress, err := c.StudyService.GetWordProgress(claims.UserID, ctx.Param("wordId"))
	if err != nil {
		if errors.Is(err, util.ErrWordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, progress)
}
