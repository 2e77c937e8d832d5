package controllers_test

import (
	"fmt"
	"testing"
	"time"

	"scrooge/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestAddPaymentHistory(t *testing.T) {
	member, bearer := createTestMember("spender", "spender@example.com")

	req := jsonRequest("POST", fmt.Sprintf("/payment-history/%d", member.ID), map[string]interface{}{
		"amount":   12000,
		"category": "food",
	}, bearer)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	data := dataOf(decodeBody(resp))
	assert.Equal(t, float64(12000), data["amount"])
	assert.Equal(t, "food", data["category"])

	var reloaded models.Member
	db.First(&reloaded, member.ID)
	assert.Equal(t, 12000, reloaded.WeeklyConsum)
}

func TestAddPaymentHistoryRequiresToken(t *testing.T) {
	member, _ := createTestMember("noauth", "noauth@example.com")

	req := jsonRequest("POST", fmt.Sprintf("/payment-history/%d", member.ID), map[string]interface{}{
		"amount": 100,
	}, "")
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestGetPaymentHistoriesToday(t *testing.T) {
	member, bearer := createTestMember("daily", "daily@example.com")

	db.Create(&models.PaymentHistory{MemberID: member.ID, Amount: 3000, Category: "coffee", UsedAt: time.Now()})
	db.Create(&models.PaymentHistory{MemberID: member.ID, Amount: 8000, Category: "lunch", UsedAt: time.Now()})
	db.Create(&models.PaymentHistory{MemberID: member.ID, Amount: 99999, Category: "old", UsedAt: time.Now().AddDate(0, 0, -2)})

	req := jsonRequest("GET", fmt.Sprintf("/payment-history/%d/today", member.ID), nil, bearer)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	result := decodeBody(resp)
	entries, _ := result["data"].([]interface{})
	assert.Len(t, entries, 2)
}

func TestGetPaymentHistoryNotFound(t *testing.T) {
	member, bearer := createTestMember("nopay", "nopay@example.com")

	req := jsonRequest("GET", fmt.Sprintf("/payment-history/%d/999999", member.ID), nil, bearer)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestUpdatePaymentHistoryOwnershipMismatch(t *testing.T) {
	owner, _ := createTestMember("owner", "owner@example.com")
	other, bearer := createTestMember("other", "other@example.com")

	payment := models.PaymentHistory{MemberID: owner.ID, Amount: 5000, Category: "books", UsedAt: time.Now()}
	db.Create(&payment)

	// The path member is not the entry's owner.
	req := jsonRequest("PUT", fmt.Sprintf("/payment-history/%d/%d", other.ID, payment.ID), map[string]interface{}{
		"amount":   1,
		"category": "tampered",
	}, bearer)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// Entry must be unchanged.
	var reloaded models.PaymentHistory
	db.First(&reloaded, payment.ID)
	assert.Equal(t, 5000, reloaded.Amount)
	assert.Equal(t, "books", reloaded.Category)
}

func TestUpdatePaymentHistoryByOwner(t *testing.T) {
	owner, bearer := createTestMember("editor", "editor@example.com")

	payment := models.PaymentHistory{MemberID: owner.ID, Amount: 5000, Category: "books", UsedAt: time.Now()}
	db.Create(&payment)

	req := jsonRequest("PUT", fmt.Sprintf("/payment-history/%d/%d", owner.ID, payment.ID), map[string]interface{}{
		"amount":   7000,
		"category": "magazines",
	}, bearer)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var reloaded models.PaymentHistory
	db.First(&reloaded, payment.ID)
	assert.Equal(t, 7000, reloaded.Amount)
	assert.Equal(t, "magazines", reloaded.Category)
}

func TestDailySettlementOncePerDay(t *testing.T) {
	member, bearer := createTestMember("settle", "settle@example.com")

	req := jsonRequest("PUT", "/payment-history/settlement-exp", nil, bearer)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var reloaded models.Member
	db.First(&reloaded, member.ID)
	assert.Equal(t, 100, reloaded.Exp)
	assert.Equal(t, 1, reloaded.Streak)

	// Second settlement on the same day must be rejected.
	req = jsonRequest("PUT", "/payment-history/settlement-exp", nil, bearer)
	resp, err = app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	db.First(&reloaded, member.ID)
	assert.Equal(t, 100, reloaded.Exp)
}

func TestDailySettlementIsPerMember(t *testing.T) {
	_, bearerA := createTestMember("settlea", "settlea@example.com")
	_, bearerB := createTestMember("settleb", "settleb@example.com")

	req := jsonRequest("PUT", "/payment-history/settlement-exp", nil, bearerA)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Another member settling the same day must not be blocked.
	req = jsonRequest("PUT", "/payment-history/settlement-exp", nil, bearerB)
	resp, err = app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestTodayTotalConsumption(t *testing.T) {
	member, bearer := createTestMember("total", "total@example.com")

	db.Create(&models.PaymentHistory{MemberID: member.ID, Amount: 1500, Category: "bus", UsedAt: time.Now()})
	db.Create(&models.PaymentHistory{MemberID: member.ID, Amount: 6500, Category: "dinner", UsedAt: time.Now()})
	db.Create(&models.PaymentHistory{MemberID: member.ID, Amount: 40000, Category: "yesterday", UsedAt: time.Now().AddDate(0, 0, -1)})

	req := jsonRequest("GET", "/payment-history/today-total", nil, bearer)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := dataOf(decodeBody(resp))
	assert.Equal(t, float64(8000), data["today_total"])
}
