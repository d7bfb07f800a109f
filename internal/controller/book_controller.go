package controller

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"vocab_edu_backend/internal/model"
	"vocab_edu_backend/internal/service"
	"vocab_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// BookController 词汇书目录、选书与管理端维护
type BookController struct {
	BookService    *service.BookService
	StorageService *service.StorageService
}

func NewBookController(bookService *service.BookService, storageService *service.StorageService) *BookController {
	return &BookController{
		BookService:    bookService,
		StorageService: storageService,
	}
}

// ListBooks godoc
// @Summary 获取词汇书列表
// @Description 返回所有上架的词汇书
// @Tags 词汇书
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.VocabularyBook} "成功"
// @Router /api/books [get]
func (c *BookController) ListBooks(ctx *gin.Context) {
	books, err := c.BookService.ListBooks()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, books)
}

// GetBook godoc
// @Summary 获取词汇书详情
// @Tags 词汇书
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "词汇书ID"
// @Success 200 {object} util.Response{data=model.VocabularyBook} "成功"
// @Failure 404 {object} util.Response "词汇书不存在"
// @Router /api/books/{id} [get]
func (c *BookController) GetBook(ctx *gin.Context) {
	book, err := c.BookService.GetBook(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrBookNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, book)
}

// ListWords godoc
// @Summary 获取词汇书单词列表
// @Description 按书内顺序分页返回单词
// @Tags 词汇书
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "词汇书ID"
// @Param   limit query int false "返回数量" default(50)
// @Param   offset query int false "偏移量" default(0)
// @Success 200 {object} util.Response{data=[]model.VocabularyWord} "成功"
// @Failure 404 {object} util.Response "词汇书不存在"
// @Router /api/books/{id}/words [get]
func (c *BookController) ListWords(ctx *gin.Context) {
	limit := util.ParseLimit(ctx.Query("limit"), 50)
	offset := util.ParseLimit(ctx.Query("offset"), 0)

	words, err := c.BookService.ListWords(ctx.Param("id"), limit, offset)
	if err != nil {
		if errors.Is(err, util.ErrBookNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, words)
}

// GetCurrentBook godoc
// @Summary 获取当前选中的词汇书
// @Description 未选书时 data 为空
// @Tags 词汇书
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.UserVocabularyBook} "成功"
// @Router /api/books/current [get]
func (c *BookController) GetCurrentBook(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	selection, err := c.BookService.GetCurrentBook(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, selection)
}

// ListUserBooks godoc
// @Summary 获取选书历史
// @Description 返回用户选过的全部词汇书，含已停用的
// @Tags 词汇书
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.UserVocabularyBook} "成功"
// @Router /api/books/mine [get]
func (c *BookController) ListUserBooks(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	selections, err := c.BookService.ListUserBooks(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, selections)
}

// SelectBookRequest 选书请求
// swagger:model SelectBookRequest
type SelectBookRequest struct {
	BookID string `json:"bookId" binding:"required"`
}

// SelectBook godoc
// @Summary 选择词汇书
// @Description 切换当前学习的词汇书，旧书进度保留
// @Tags 词汇书
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body SelectBookRequest true "词汇书ID"
// @Success 200 {object} util.Response{data=model.UserVocabularyBook} "成功"
// @Failure 404 {object} util.Response "词汇书不存在"
// @Router /api/books/select [post]
func (c *BookController) SelectBook(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SelectBookRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	selection, err := c.BookService.SelectBook(claims.UserID, req.BookID)
	if err != nil {
		if errors.Is(err, util.ErrBookNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, selection)
}

// DeselectBook godoc
// @Summary 取消选书
// @Description 停用指定选书关系，学习进度保留
// @Tags 词汇书
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "词汇书ID"
// @Success 200 {object} util.Response "成功"
// @Router /api/books/{id}/select [delete]
func (c *BookController) DeselectBook(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.BookService.DeselectBook(claims.UserID, ctx.Param("id")); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// GetBookProgress godoc
// @Summary 获取词汇书学习进度
// @Tags 词汇书
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "词汇书ID"
// @Success 200 {object} util.Response{data=service.BookProgress} "成功"
// @Failure 404 {object} util.Response "词汇书不存在"
// @Router /api/books/{id}/progress [get]
func (c *BookController) GetBookProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	progress, err := c.BookService.GetBookProgress(claims.UserID, ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrBookNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, progress)
}

// ----- 管理端 -----

// BookRequest 词汇书创建/更新请求
// swagger:model BookRequest
type BookRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Difficulty  string   `json:"difficulty" binding:"omitempty,oneof=beginner intermediate advanced"`
	Tags        []string `json:"tags"`
}

// CreateBook godoc
// @Summary 创建词汇书
// @Tags 词汇书管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body BookRequest true "词汇书信息"
// @Success 201 {object} util.Response{data=model.VocabularyBook} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 403 {object} util.Response "无权限"
// @Router /api/admin/books [post]
func (c *BookController) CreateBook(ctx *gin.Context) {
	var req BookRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	book := &model.VocabularyBook{
		Name:        req.Name,
		Description: req.Description,
		Difficulty:  req.Difficulty,
		Tags:        req.Tags,
	}
	if err := c.BookService.CreateBook(book); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, book)
}

// UpdateBook godoc
// @Summary 更新词汇书
// @Tags 词汇书管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "词汇书ID"
// @Param   body body BookRequest true "词汇书信息"
// @Success 200 {object} util.Response{data=model.VocabularyBook} "成功"
// @Failure 404 {object} util.Response "词汇书不存在"
// @Router /api/admin/books/{id} [put]
func (c *BookController) UpdateBook(ctx *gin.Context) {
	var req BookRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	book, err := c.BookService.GetBook(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrBookNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	book.Name = req.Name
	book.Description = req.Description
	book.Difficulty = req.Difficulty
	book.Tags = req.Tags

	if err := c.BookService.UpdateBook(book); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, book)
}

// DeleteBook godoc
// @Summary 删除词汇书
// @Description 软删除，用户学习进度保留
// @Tags 词汇书管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "词汇书ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "词汇书不存在"
// @Router /api/admin/books/{id} [delete]
func (c *BookController) DeleteBook(ctx *gin.Context) {
	if err := c.BookService.DeleteBook(ctx.Param("id")); err != nil {
		if errors.Is(err, util.ErrBookNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// WordRequest 单词创建/更新请求
// swagger:model WordRequest
type WordRequest struct {
	Word      string            `json:"word" binding:"required"`
	Content   model.WordContent `json:"content"`
	WordOrder int               `json:"wordOrder"`
}

// AddWord godoc
// @Summary 添加单词
// @Description 向词汇书追加单词，书的词数自动同步
// @Tags 词汇书管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "词汇书ID"
// @Param   body body WordRequest true "单词信息"
// @Success 201 {object} util.Response{data=model.VocabularyWord} "创建成功"
// @Failure 404 {object} util.Response "词汇书不存在"
// @Router /api/admin/books/{id}/words [post]
func (c *BookController) AddWord(ctx *gin.Context) {
	var req WordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	word := &model.VocabularyWord{
		BookID:    ctx.Param("id"),
		Word:      req.Word,
		Content:   req.Content,
		WordOrder: req.WordOrder,
	}
	if err := c.BookService.AddWord(word); err != nil {
		if errors.Is(err, util.ErrBookNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, word)
}

// UpdateWord godoc
// @Summary 更新单词
// @Tags 词汇书管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   wordId path string true "单词ID"
// @Param   body body WordRequest true "单词信息"
// @Success 200 {object} util.Response{data=model.VocabularyWord} "成功"
// @Failure 404 {object} util.Response "单词不存在"
// @Router /api/admin/words/{wordId} [put]
func (c *BookController) UpdateWord(ctx *gin.Context) {
	var req WordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	word, err := c.BookService.GetWord(ctx.Param("wordId"))
	if err != nil {
		if errors.Is(err, util.ErrWordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	word.Word = req.Word
	word.Content = req.Content
	word.WordOrder = req.WordOrder

	if err := c.BookService.UpdateWord(word); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, word)
}

// DeleteWord godoc
// @Summary 删除单词
// @Tags 词汇书管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   wordId path string true "单词ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "单词不存在"
// @Router /api/admin/words/{wordId} [delete]
func (c *BookController) DeleteWord(ctx *gin.Context) {
	if err := c.BookService.DeleteWord(ctx.Param("wordId")); err != nil {
		if errors.Is(err, util.ErrWordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// UploadWordAudio godoc
// @Summary 上传单词发音音频
// @Description 接收音频文件，统一转码为单声道MP3后存储并挂到单词上
// @Tags 词汇书管理
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   wordId path string true "单词ID"
// @Param   file formData file true "发音音频"
// @Success 200 {object} util.Response{data=model.VocabularyWord} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 404 {object} util.Response "单词不存在"
// @Router /api/admin/words/{wordId}/audio [post]
func (c *BookController) UploadWordAudio(ctx *gin.Context) {
	wordID := ctx.Param("wordId")
	if _, err := c.BookService.GetWord(wordID); err != nil {
		if errors.Is(err, util.ErrWordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "缺少音频文件")
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedExtension(ext, util.AllowedAudioExtensions) {
		util.BadRequest(ctx, "不支持的音频格式")
		return
	}

	// 先落临时文件，转码后再入存储
	tmpDir, err := os.MkdirTemp("", "word-audio-*")
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer os.RemoveAll(tmpDir)

	srcPath := filepath.Join(tmpDir, "src"+ext)
	if err := ctx.SaveUploadedFile(fileHeader, srcPath); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	mp3Path := filepath.Join(tmpDir, "out.mp3")
	if err := util.TranscodeAudioToMP3(srcPath, mp3Path); err != nil {
		util.BadRequest(ctx, "音频转码失败")
		return
	}

	filename := fmt.Sprintf("audio/words/%s/%s.mp3", wordID, model.GenerateUUID())
	url, err := c.StorageService.UploadFile(ctx.Request.Context(), filename, mp3Path, util.MimeMP3)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	word, err := c.BookService.AttachAudio(wordID, url)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, word)
}
