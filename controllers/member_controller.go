package controllers

import (
	"errors"

	"scrooge/config"
	"scrooge/models"
	"scrooge/utils"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type MemberController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewMemberController(db *gorm.DB, cfg *config.Config) *MemberController {
	return &MemberController{DB: db, Cfg: cfg}
}

func memberResponse(m *models.Member) fiber.Map {
	resp := fiber.Map{
		"id":            m.ID,
		"nickname":      m.Nickname,
		"email":         m.Email,
		"exp":           m.Exp,
		"streak":        m.Streak,
		"weekly_goal":   m.WeeklyGoal,
		"weekly_consum": m.WeeklyConsum,
		"joined_at":     m.CreatedAt,
	}
	if m.Level != nil {
		resp["level"] = m.Level.Number
	}
	if m.MainAvatar != nil {
		resp["main_avatar"] = m.MainAvatar.ImgAddress
	}
	if m.MainBadge != nil {
		resp["main_badge"] = m.MainBadge.ImgAddress
	}
	return resp
}

// applyLevelUp promotes the member while a level with a satisfied exp
// threshold exists above the current one.
func applyLevelUp(db *gorm.DB, member *models.Member) {
	currentNumber := 0
	if member.Level != nil {
		currentNumber = member.Level.Number
	}

	var levels []models.Level
	db.Where("number > ? AND required_exp <= ?", currentNumber, member.Exp).
		Order("number ASC").
		Find(&levels)

	for i := range levels {
		member.LevelID = &levels[i].ID
		member.Level = &levels[i]
	}
}

// SignUp godoc
// @Summary Register a new member
// @Description Creates a new member account
// @Tags member
// @Accept json
// @Produce json
// @Success 201 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /member/signup [post]
func (mc *MemberController) SignUp(c *fiber.Ctx) error {
	var input struct {
		Nickname string `json:"nickname"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Nickname == "" || input.Email == "" || input.Password == "" {
		return utils.BadRequest(c, "Nickname, email and password are required")
	}

	var existing models.Member
	if err := mc.DB.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		return utils.BadRequest(c, "Email already registered")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return utils.InternalServerError(c, "Could not hash password")
	}

	member := models.Member{
		Nickname: input.Nickname,
		Email:    input.Email,
		Password: string(hashedPassword),
	}
	if err := mc.DB.Create(&member).Error; err != nil {
		return utils.InternalServerError(c, "Could not create member")
	}

	return utils.Created(c, fiber.Map{
		"id":       member.ID,
		"nickname": member.Nickname,
		"email":    member.Email,
	})
}

// Login godoc
// @Summary Member login
// @Description Authenticates a member and returns a JWT token
// @Tags member
// @Accept json
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /member/login [post]
func (mc *MemberController) Login(c *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var member models.Member
	if err := mc.DB.Where("email = ?", input.Email).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Unauthorized(c, "Invalid credentials")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(member.Password), []byte(input.Password)); err != nil {
		return utils.Unauthorized(c, "Invalid credentials")
	}

	token, err := utils.GenerateToken(member.Email, member.ID, mc.Cfg)
	if err != nil {
		return utils.InternalServerError(c, "Could not generate token")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"token": token,
		"member": fiber.Map{
			"id":       member.ID,
			"nickname": member.Nickname,
			"email":    member.Email,
		},
	})
}

// GetInfo godoc
// @Summary Get member info
// @Description Returns the authenticated member's profile
// @Tags member
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /member/info [get]
func (mc *MemberController) GetInfo(c *fiber.Ctx) error {
	claims, err := utils.AuthenticateRequest(c, mc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Invalid or expired token")
	}

	var member models.Member
	if err := mc.DB.Preload("Level").Preload("MainAvatar").Preload("MainBadge").
		Where("email = ?", claims.Email).First(&member).Error; err != nil {
		return utils.NotFound(c, "Member not found")
	}

	return utils.Success(c, fiber.StatusOK, memberResponse(&member))
}

// UpdateWeeklyGoal godoc
// @Summary Set the weekly spending goal
// @Tags member
// @Accept json
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /member/weekly-goal [put]
func (mc *MemberController) UpdateWeeklyGoal(c *fiber.Ctx) error {
	claims, err := utils.AuthenticateRequest(c, mc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Invalid or expired token")
	}

	var input struct {
		WeeklyGoal int `json:"weekly_goal"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.WeeklyGoal < 0 {
		return utils.BadRequest(c, "Weekly goal must not be negative")
	}

	var member models.Member
	if err := mc.DB.Preload("Level").Preload("MainAvatar").Preload("MainBadge").
		First(&member, claims.MemberID).Error; err != nil {
		return utils.NotFound(c, "Member not found")
	}

	member.WeeklyGoal = input.WeeklyGoal
	if err := mc.DB.Save(&member).Error; err != nil {
		return utils.InternalServerError(c, "Could not update member")
	}

	return utils.Success(c, fiber.StatusOK, memberResponse(&member))
}

// UpdatePassword godoc
// @Summary Change the member password
// @Tags member
// @Accept json
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /member/change-password [put]
func (mc *MemberController) UpdatePassword(c *fiber.Ctx) error {
	claims, err := utils.AuthenticateRequest(c, mc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Invalid or expired token")
	}

	var input struct {
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Password == "" {
		return utils.BadRequest(c, "Password is required")
	}

	var member models.Member
	if err := mc.DB.Preload("Level").Preload("MainAvatar").Preload("MainBadge").
		First(&member, claims.MemberID).Error; err != nil {
		return utils.NotFound(c, "Member not found")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return utils.InternalServerError(c, "Could not hash password")
	}
	member.Password = string(hashedPassword)

	if err := mc.DB.Save(&member).Error; err != nil {
		return utils.InternalServerError(c, "Could not update member")
	}

	return utils.Success(c, fiber.StatusOK, memberResponse(&member))
}

// DeleteMember godoc
// @Summary Delete the member account
// @Description Removes the account and everything it owns
// @Tags member
// @Produce json
// @Success 204
// @Failure 401 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /member/delete [delete]
func (mc *MemberController) DeleteMember(c *fiber.Ctx) error {
	claims, err := utils.AuthenticateRequest(c, mc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Invalid or expired token")
	}

	var member models.Member
	if err := mc.DB.First(&member, claims.MemberID).Error; err != nil {
		return utils.NotFound(c, "Member not found")
	}

	// Cascade removal of everything the member owns.
	err = mc.DB.Transaction(func(tx *gorm.DB) error {
		memberID := member.ID
		if err := tx.Where("member_id = ?", memberID).Delete(&models.PaymentHistory{}).Error; err != nil {
			return err
		}
		if err := tx.Where("member_id = ?", memberID).Delete(&models.MemberOwningAvatar{}).Error; err != nil {
			return err
		}
		if err := tx.Where("member_id = ?", memberID).Delete(&models.MemberOwningBadge{}).Error; err != nil {
			return err
		}
		if err := tx.Where("member_id = ?", memberID).Delete(&models.MemberSelectedQuest{}).Error; err != nil {
			return err
		}
		if err := tx.Where("member_id = ?", memberID).Delete(&models.Article{}).Error; err != nil {
			return err
		}
		if err := tx.Where("member_id = ?", memberID).Delete(&models.DailySettlement{}).Error; err != nil {
			return err
		}
		if err := tx.Where("member_id = ?", memberID).Delete(&models.ChallengeParticipant{}).Error; err != nil {
			return err
		}
		if err := tx.Where("member_id = ?", memberID).Delete(&models.ChallengeAuth{}).Error; err != nil {
			return err
		}
		return tx.Delete(&member).Error
	})
	if err != nil {
		return utils.InternalServerError(c, "Could not delete member")
	}

	return utils.NoContent(c)
}
