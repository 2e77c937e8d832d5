package controllers

import (
	"errors"
	"strconv"
	"time"

	"scrooge/config"
	"scrooge/models"
	"scrooge/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Experience awarded by the once-a-day settlement.
const settlementRewardExp = 100

type PaymentHistoryController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewPaymentHistoryController(db *gorm.DB, cfg *config.Config) *PaymentHistoryController {
	return &PaymentHistoryController{DB: db, Cfg: cfg}
}

func paymentHistoryResponse(ph *models.PaymentHistory) fiber.Map {
	return fiber.Map{
		"id":        ph.ID,
		"member_id": ph.MemberID,
		"amount":    ph.Amount,
		"category":  ph.Category,
		"used_at":   ph.UsedAt,
	}
}

// todayRange returns the half-open interval covering the current calendar day.
func todayRange() (time.Time, time.Time) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 0, 1)
}

// AddPaymentHistory godoc
// @Summary Register a spending entry
// @Tags payment-history
// @Accept json
// @Produce json
// @Success 201 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /payment-history/{memberId} [post]
func (pc *PaymentHistoryController) AddPaymentHistory(c *fiber.Ctx) error {
	memberID, err := strconv.Atoi(c.Params("memberId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid member id")
	}

	var input struct {
		Amount   int       `json:"amount"`
		Category string    `json:"category"`
		UsedAt   time.Time `json:"used_at"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Amount < 0 {
		return utils.BadRequest(c, "Amount must not be negative")
	}

	var member models.Member
	if err := pc.DB.First(&member, memberID).Error; err != nil {
		return utils.NotFound(c, "Member not found")
	}

	if input.UsedAt.IsZero() {
		input.UsedAt = time.Now()
	}

	payment := models.PaymentHistory{
		MemberID: member.ID,
		Amount:   input.Amount,
		Category: input.Category,
		UsedAt:   input.UsedAt,
	}

	err = pc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}
		member.WeeklyConsum += payment.Amount
		return tx.Save(&member).Error
	})
	if err != nil {
		return utils.InternalServerError(c, "Could not create payment history")
	}

	return utils.Created(c, paymentHistoryResponse(&payment))
}

// GetPaymentHistories godoc
// @Summary List a member's spending entries
// @Tags payment-history
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /payment-history/{memberId} [get]
func (pc *PaymentHistoryController) GetPaymentHistories(c *fiber.Ctx) error {
	memberID, err := strconv.Atoi(c.Params("memberId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid member id")
	}

	var payments []models.PaymentHistory
	if err := pc.DB.Where("member_id = ?", memberID).
		Order("used_at DESC").
		Find(&payments).Error; err != nil {
		return utils.InternalServerError(c, "Could not query payment histories")
	}

	result := make([]fiber.Map, 0, len(payments))
	for i := range payments {
		result = append(result, paymentHistoryResponse(&payments[i]))
	}
	return utils.Success(c, fiber.StatusOK, result)
}

// GetPaymentHistoriesToday godoc
// @Summary List a member's spending entries for the current day
// @Tags payment-history
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /payment-history/{memberId}/today [get]
func (pc *PaymentHistoryController) GetPaymentHistoriesToday(c *fiber.Ctx) error {
	memberID, err := strconv.Atoi(c.Params("memberId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid member id")
	}

	start, end := todayRange()
	var payments []models.PaymentHistory
	if err := pc.DB.Where("member_id = ? AND used_at >= ? AND used_at < ?", memberID, start, end).
		Order("used_at DESC").
		Find(&payments).Error; err != nil {
		return utils.InternalServerError(c, "Could not query payment histories")
	}

	result := make([]fiber.Map, 0, len(payments))
	for i := range payments {
		result = append(result, paymentHistoryResponse(&payments[i]))
	}
	return utils.Success(c, fiber.StatusOK, result)
}

// GetPaymentHistory godoc
// @Summary Get a single spending entry
// @Tags payment-history
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /payment-history/{memberId}/{paymentHistoryId} [get]
func (pc *PaymentHistoryController) GetPaymentHistory(c *fiber.Ctx) error {
	memberID, err := strconv.Atoi(c.Params("memberId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid member id")
	}
	paymentID, err := strconv.Atoi(c.Params("paymentHistoryId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid payment history id")
	}

	var payment models.PaymentHistory
	if err := pc.DB.Where("id = ? AND member_id = ?", paymentID, memberID).
		First(&payment).Error; err != nil {
		return utils.NotFound(c, "Payment history not found")
	}

	return utils.Success(c, fiber.StatusOK, paymentHistoryResponse(&payment))
}

// UpdatePaymentHistory godoc
// @Summary Update a spending entry
// @Description Only the owning member may modify an entry
// @Tags payment-history
// @Accept json
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /payment-history/{memberId}/{paymentHistoryId} [put]
func (pc *PaymentHistoryController) UpdatePaymentHistory(c *fiber.Ctx) error {
	memberID, err := strconv.Atoi(c.Params("memberId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid member id")
	}
	paymentID, err := strconv.Atoi(c.Params("paymentHistoryId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid payment history id")
	}

	var input struct {
		Amount   int    `json:"amount"`
		Category string `json:"category"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Amount < 0 {
		return utils.BadRequest(c, "Amount must not be negative")
	}

	var payment models.PaymentHistory
	if err := pc.DB.First(&payment, paymentID).Error; err != nil {
		return utils.NotFound(c, "Payment history not found")
	}

	if payment.MemberID != uint(memberID) {
		return utils.Forbidden(c, "Payment history does not belong to this member")
	}

	diff := input.Amount - payment.Amount
	payment.Amount = input.Amount
	payment.Category = input.Category

	err = pc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&payment).Error; err != nil {
			return err
		}
		var member models.Member
		if err := tx.First(&member, payment.MemberID).Error; err != nil {
			return err
		}
		member.WeeklyConsum += diff
		if member.WeeklyConsum < 0 {
			member.WeeklyConsum = 0
		}
		return tx.Save(&member).Error
	})
	if err != nil {
		return utils.InternalServerError(c, "Could not update payment history")
	}

	return utils.Success(c, fiber.StatusOK, paymentHistoryResponse(&payment))
}

// UpdateExpAfterDailySettlement godoc
// @Summary Daily settlement experience reward
// @Description Awards experience once per member per calendar day
// @Tags payment-history
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /payment-history/settlement-exp [put]
func (pc *PaymentHistoryController) UpdateExpAfterDailySettlement(c *fiber.Ctx) error {
	claims, err := utils.AuthenticateRequest(c, pc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Invalid or expired token")
	}

	var member models.Member
	if err := pc.DB.Preload("Level").Preload("MainAvatar").Preload("MainBadge").
		First(&member, claims.MemberID).Error; err != nil {
		return utils.NotFound(c, "Member not found")
	}

	today := time.Now().Format("2006-01-02")

	var existing models.DailySettlement
	err = pc.DB.Where("member_id = ? AND settlement_date = ?", member.ID, today).
		First(&existing).Error
	if err == nil {
		return utils.BadRequest(c, "Settlement already done today")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.InternalServerError(c, "Could not query settlements")
	}

	err = pc.DB.Transaction(func(tx *gorm.DB) error {
		// The unique (member_id, settlement_date) index backstops
		// concurrent settles.
		settlement := models.DailySettlement{
			MemberID:       member.ID,
			SettlementDate: today,
		}
		if err := tx.Create(&settlement).Error; err != nil {
			return err
		}
		member.Exp += settlementRewardExp
		member.Streak++
		applyLevelUp(tx, &member)
		return tx.Save(&member).Error
	})
	if err != nil {
		return utils.BadRequest(c, "Settlement already done today")
	}

	return utils.Success(c, fiber.StatusOK, memberResponse(&member))
}

// GetTodayTotalConsumption godoc
// @Summary Total amount spent today by the authenticated member
// @Tags payment-history
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /payment-history/today-total [get]
func (pc *PaymentHistoryController) GetTodayTotalConsumption(c *fiber.Ctx) error {
	claims, err := utils.AuthenticateRequest(c, pc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Invalid or expired token")
	}

	start, end := todayRange()
	var total int64
	if err := pc.DB.Model(&models.PaymentHistory{}).
		Where("member_id = ? AND used_at >= ? AND used_at < ?", claims.MemberID, start, end).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error; err != nil {
		return utils.InternalServerError(c, "Could not query payment histories")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{"today_total": total})
}
