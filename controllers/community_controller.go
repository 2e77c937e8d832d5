package controllers

import (
	"strconv"

	"scrooge/config"
	"scrooge/models"
	"scrooge/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CommunityController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewCommunityController(db *gorm.DB, cfg *config.Config) *CommunityController {
	return &CommunityController{DB: db, Cfg: cfg}
}

func articleResponse(a *models.Article) fiber.Map {
	resp := fiber.Map{
		"id":          a.ID,
		"member_id":   a.MemberID,
		"content":     a.Content,
		"img_address": a.ImgAddress,
		"created_at":  a.CreatedAt,
	}
	if a.Member.ID != 0 {
		resp["nickname"] = a.Member.Nickname
		if a.Member.MainAvatar != nil {
			resp["main_avatar"] = a.Member.MainAvatar.ImgAddress
		}
	}
	return resp
}

// CreateArticle godoc
// @Summary Post a community article
// @Description Stores the attached image before the article row is written
// @Tags community
// @Accept multipart/form-data
// @Produce json
// @Success 201 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/community [post]
func (cc *CommunityController) CreateArticle(c *fiber.Ctx) error {
	claims, err := utils.AuthenticateRequest(c, cc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Invalid or expired token")
	}

	content := c.FormValue("content")
	if content == "" {
		return utils.BadRequest(c, "Content is required")
	}

	img, err := c.FormFile("img")
	if err != nil {
		return utils.BadRequest(c, "Image file is required")
	}

	filePath, err := utils.SaveUploadedFile(c, img, cc.Cfg.UploadLocation)
	if err != nil {
		return utils.InternalServerError(c, "Could not store image")
	}

	article := models.Article{
		MemberID:   claims.MemberID,
		Content:    content,
		ImgAddress: filePath,
	}
	if err := cc.DB.Create(&article).Error; err != nil {
		utils.RemoveUploadedFile(filePath)
		return utils.InternalServerError(c, "Could not save article")
	}

	return utils.Created(c, articleResponse(&article))
}

// GetAllArticles godoc
// @Summary List community articles, newest first
// @Tags community
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Security ApiKeyAuth
// @Router /api/community [get]
func (cc *CommunityController) GetAllArticles(c *fiber.Ctx) error {
	var articles []models.Article
	if err := cc.DB.Preload("Member").Preload("Member.MainAvatar").
		Order("created_at DESC").
		Find(&articles).Error; err != nil {
		return utils.InternalServerError(c, "Could not query articles")
	}

	result := make([]fiber.Map, 0, len(articles))
	for i := range articles {
		result = append(result, articleResponse(&articles[i]))
	}
	return utils.Success(c, fiber.StatusOK, result)
}

// GetArticle godoc
// @Summary Get one community article
// @Tags community
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/community/{articleId} [get]
func (cc *CommunityController) GetArticle(c *fiber.Ctx) error {
	articleID, err := strconv.Atoi(c.Params("articleId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid article id")
	}

	var article models.Article
	if err := cc.DB.Preload("Member").Preload("Member.MainAvatar").
		First(&article, articleID).Error; err != nil {
		return utils.NotFound(c, "Article not found")
	}

	return utils.Success(c, fiber.StatusOK, articleResponse(&article))
}

// UpdateArticle godoc
// @Summary Edit a community article's content
// @Description Owner-only: non-authors receive 403
// @Tags community
// @Accept json
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/community/{articleId} [put]
func (cc *CommunityController) UpdateArticle(c *fiber.Ctx) error {
	claims, err := utils.AuthenticateRequest(c, cc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Invalid or expired token")
	}

	articleID, err := strconv.Atoi(c.Params("articleId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid article id")
	}

	var input struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Content == "" {
		return utils.BadRequest(c, "Content is required")
	}

	var article models.Article
	if err := cc.DB.First(&article, articleID).Error; err != nil {
		return utils.NotFound(c, "Article not found")
	}

	if article.MemberID != claims.MemberID {
		return utils.Forbidden(c, "Only the author can edit this article")
	}

	article.Content = input.Content
	if err := cc.DB.Save(&article).Error; err != nil {
		return utils.InternalServerError(c, "Could not update article")
	}

	return utils.Success(c, fiber.StatusOK, articleResponse(&article))
}

// DeleteArticle godoc
// @Summary Delete a community article
// @Description Owner-only: non-authors receive 403
// @Tags community
// @Produce json
// @Success 204
// @Failure 401 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/community/{articleId} [delete]
func (cc *CommunityController) DeleteArticle(c *fiber.Ctx) error {
	claims, err := utils.AuthenticateRequest(c, cc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Invalid or expired token")
	}

	articleID, err := strconv.Atoi(c.Params("articleId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid article id")
	}

	var article models.Article
	if err := cc.DB.First(&article, articleID).Error; err != nil {
		return utils.NotFound(c, "Article not found")
	}

	if article.MemberID != claims.MemberID {
		return utils.Forbidden(c, "Only the author can delete this article")
	}

	if err := cc.DB.Delete(&article).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete article")
	}

	return utils.NoContent(c)
}
