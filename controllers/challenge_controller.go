package controllers

import (
	"strconv"

	"scrooge/config"
	"scrooge/models"
	"scrooge/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ChallengeController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewChallengeController(db *gorm.DB, cfg *config.Config) *ChallengeController {
	return &ChallengeController{DB: db, Cfg: cfg}
}

func challengeAuthResponse(a *models.ChallengeAuth) fiber.Map {
	return fiber.Map{
		"id":           a.ID,
		"challenge_id": a.ChallengeID,
		"member_id":    a.MemberID,
		"img_address":  a.ImgAddress,
		"status":       a.Status,
		"created_at":   a.CreatedAt,
	}
}

// GetStartedChallenge godoc
// @Summary Detail of a started challenge
// @Description Fails with 400 unless the challenge status is started
// @Tags challenge
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/challenge/{challengeId}/started [get]
func (cc *ChallengeController) GetStartedChallenge(c *fiber.Ctx) error {
	challengeID, err := strconv.Atoi(c.Params("challengeId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid challenge id")
	}

	var challenge models.Challenge
	if err := cc.DB.First(&challenge, challengeID).Error; err != nil {
		return utils.NotFound(c, "Challenge not found")
	}
	if challenge.Status != models.ChallengeStarted {
		return utils.BadRequest(c, "Challenge has not started")
	}

	var participantCount int64
	cc.DB.Model(&models.ChallengeParticipant{}).
		Where("challenge_id = ?", challenge.ID).
		Count(&participantCount)

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"id":           challenge.ID,
		"title":        challenge.Title,
		"category":     challenge.Category,
		"status":       challenge.Status,
		"start_date":   challenge.StartDate,
		"end_date":     challenge.EndDate,
		"participants": participantCount,
	})
}

// CreateChallengeAuth godoc
// @Summary Submit photo proof for a challenge
// @Description Stores the image first; the submission row is only written
// @Description after the file write succeeds
// @Tags challenge
// @Accept multipart/form-data
// @Produce json
// @Success 201 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/challenge/{challengeId}/auth [post]
func (cc *ChallengeController) CreateChallengeAuth(c *fiber.Ctx) error {
	claims, err := utils.AuthenticateRequest(c, cc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Invalid or expired token")
	}

	challengeID, err := strconv.Atoi(c.Params("challengeId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid challenge id")
	}

	var challenge models.Challenge
	if err := cc.DB.First(&challenge, challengeID).Error; err != nil {
		return utils.NotFound(c, "Challenge not found")
	}
	if challenge.Status != models.ChallengeStarted {
		return utils.BadRequest(c, "Challenge has not started")
	}

	img, err := c.FormFile("img")
	if err != nil {
		return utils.BadRequest(c, "Image file is required")
	}

	filePath, err := utils.SaveUploadedFile(c, img, cc.Cfg.UploadLocation)
	if err != nil {
		return utils.InternalServerError(c, "Could not store image")
	}

	auth := models.ChallengeAuth{
		ChallengeID: challenge.ID,
		MemberID:    claims.MemberID,
		ImgAddress:  filePath,
		Status:      "pending",
	}
	if err := cc.DB.Create(&auth).Error; err != nil {
		utils.RemoveUploadedFile(filePath)
		return utils.InternalServerError(c, "Could not save challenge auth")
	}

	return utils.Created(c, challengeAuthResponse(&auth))
}

// GetMyChallengeAuths godoc
// @Summary The caller's own proof submissions for a challenge
// @Tags challenge
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/challenge/{challengeId}/my-challenge/my-auth [get]
func (cc *ChallengeController) GetMyChallengeAuths(c *fiber.Ctx) error {
	claims, err := utils.AuthenticateRequest(c, cc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Invalid or expired token")
	}

	challengeID, err := strconv.Atoi(c.Params("challengeId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid challenge id")
	}

	var auths []models.ChallengeAuth
	if err := cc.DB.Where("challenge_id = ? AND member_id = ?", challengeID, claims.MemberID).
		Order("created_at DESC").
		Find(&auths).Error; err != nil {
		return utils.InternalServerError(c, "Could not query challenge auths")
	}

	result := make([]fiber.Map, 0, len(auths))
	for i := range auths {
		result = append(result, challengeAuthResponse(&auths[i]))
	}
	return utils.Success(c, fiber.StatusOK, result)
}

// GetTeamAuths godoc
// @Summary Proof submissions of the caller's teammates
// @Tags challenge
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/challenge/{challengeId}/team-auth [get]
func (cc *ChallengeController) GetTeamAuths(c *fiber.Ctx) error {
	claims, err := utils.AuthenticateRequest(c, cc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Invalid or expired token")
	}

	challengeID, err := strconv.Atoi(c.Params("challengeId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid challenge id")
	}

	var me models.ChallengeParticipant
	if err := cc.DB.Where("challenge_id = ? AND member_id = ?", challengeID, claims.MemberID).
		First(&me).Error; err != nil {
		return utils.NotFound(c, "Not a participant of this challenge")
	}

	var teammates []models.ChallengeParticipant
	if err := cc.DB.Where("challenge_id = ? AND team_no = ?", challengeID, me.TeamNo).
		Find(&teammates).Error; err != nil {
		return utils.InternalServerError(c, "Could not query participants")
	}

	memberIDs := make([]uint, 0, len(teammates))
	for _, p := range teammates {
		memberIDs = append(memberIDs, p.MemberID)
	}

	var auths []models.ChallengeAuth
	if err := cc.DB.Where("challenge_id = ? AND member_id IN ?", challengeID, memberIDs).
		Order("created_at DESC").
		Find(&auths).Error; err != nil {
		return utils.InternalServerError(c, "Could not query challenge auths")
	}

	result := make([]fiber.Map, 0, len(auths))
	for i := range auths {
		result = append(result, challengeAuthResponse(&auths[i]))
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"team_no": me.TeamNo,
		"auths":   result,
	})
}

// GetMyEndChallenges godoc
// @Summary Ended challenges the caller participated in
// @Tags challenge
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/challenge/end-challenge [get]
func (cc *ChallengeController) GetMyEndChallenges(c *fiber.Ctx) error {
	claims, err := utils.AuthenticateRequest(c, cc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Invalid or expired token")
	}

	var challenges []models.Challenge
	if err := cc.DB.
		Joins("JOIN challenge_participants ON challenge_participants.challenge_id = challenges.id").
		Where("challenge_participants.member_id = ? AND challenges.status = ?",
			claims.MemberID, models.ChallengeEnded).
		Find(&challenges).Error; err != nil {
		return utils.InternalServerError(c, "Could not query challenges")
	}

	result := make([]fiber.Map, 0, len(challenges))
	for _, ch := range challenges {
		result = append(result, fiber.Map{
			"id":         ch.ID,
			"title":      ch.Title,
			"category":   ch.Category,
			"start_date": ch.StartDate,
			"end_date":   ch.EndDate,
		})
	}
	return utils.Success(c, fiber.StatusOK, result)
}
