package controllers_test

import (
	"fmt"
	"os"
	"testing"
	"time"

	"scrooge/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestCreateArticle(t *testing.T) {
	_, bearer := createTestMember("writer", "writer@example.com")

	req := multipartRequest("POST", "/api/community", bearer,
		map[string]string{"content": "saved 30% this week"},
		"img", "chart.png", []byte("fake-png-bytes"))
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	data := dataOf(decodeBody(resp))
	assert.Equal(t, "saved 30% this week", data["content"])

	imgAddress, _ := data["img_address"].(string)
	assert.NotEmpty(t, imgAddress)
	_, statErr := os.Stat(imgAddress)
	assert.NoError(t, statErr)
}

func TestCreateArticleRequiresImage(t *testing.T) {
	_, bearer := createTestMember("noimgwriter", "noimgwriter@example.com")

	req := multipartRequest("POST", "/api/community", bearer,
		map[string]string{"content": "text only"}, "", "", nil)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGetAllArticlesSortedByNewest(t *testing.T) {
	member, bearer := createTestMember("sorter", "sorter@example.com")

	// Explicit timestamps so the expected ordering is unambiguous.
	oldest := models.Article{MemberID: member.ID, Content: "oldest"}
	oldest.CreatedAt = time.Now().Add(-3 * time.Hour)
	db.Create(&oldest)
	middle := models.Article{MemberID: member.ID, Content: "middle"}
	middle.CreatedAt = time.Now().Add(-2 * time.Hour)
	db.Create(&middle)
	newest := models.Article{MemberID: member.ID, Content: "newest"}
	newest.CreatedAt = time.Now().Add(-1 * time.Hour)
	db.Create(&newest)

	req := jsonRequest("GET", "/api/community", nil, bearer)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	result := decodeBody(resp)
	articles, _ := result["data"].([]interface{})
	assert.GreaterOrEqual(t, len(articles), 3)

	// Listing must be non-increasing by creation time.
	var previous time.Time
	for i, raw := range articles {
		article, _ := raw.(map[string]interface{})
		createdAt, parseErr := time.Parse(time.RFC3339, article["created_at"].(string))
		assert.NoError(t, parseErr)
		if i > 0 {
			assert.False(t, createdAt.After(previous))
		}
		previous = createdAt
	}
}

func TestGetArticleJoinsAuthor(t *testing.T) {
	member, bearer := createTestMember("author", "author@example.com")

	avatar := models.Avatar{Name: "monocle", ImgAddress: "monocle.png"}
	db.Create(&avatar)
	member.MainAvatarID = &avatar.ID
	db.Save(&member)

	article := models.Article{MemberID: member.ID, Content: "with avatar"}
	db.Create(&article)

	req := jsonRequest("GET", fmt.Sprintf("/api/community/%d", article.ID), nil, bearer)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := dataOf(decodeBody(resp))
	assert.Equal(t, "author", data["nickname"])
	assert.Equal(t, "monocle.png", data["main_avatar"])
}

func TestGetArticleNotFound(t *testing.T) {
	_, bearer := createTestMember("reader404", "reader404@example.com")

	req := jsonRequest("GET", "/api/community/999999", nil, bearer)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestUpdateArticleOwnerOnly(t *testing.T) {
	owner, ownerBearer := createTestMember("artowner", "artowner@example.com")
	_, strangerBearer := createTestMember("stranger", "stranger@example.com")

	article := models.Article{MemberID: owner.ID, Content: "original"}
	db.Create(&article)

	req := jsonRequest("PUT", fmt.Sprintf("/api/community/%d", article.ID), map[string]string{
		"content": "defaced",
	}, strangerBearer)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	var reloaded models.Article
	db.First(&reloaded, article.ID)
	assert.Equal(t, "original", reloaded.Content)

	req = jsonRequest("PUT", fmt.Sprintf("/api/community/%d", article.ID), map[string]string{
		"content": "edited by author",
	}, ownerBearer)
	resp, err = app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	db.First(&reloaded, article.ID)
	assert.Equal(t, "edited by author", reloaded.Content)
}

func TestDeleteArticleOwnerOnly(t *testing.T) {
	owner, ownerBearer := createTestMember("delowner", "delowner@example.com")
	_, strangerBearer := createTestMember("delstranger", "delstranger@example.com")

	article := models.Article{MemberID: owner.ID, Content: "to be deleted"}
	db.Create(&article)

	req := jsonRequest("DELETE", fmt.Sprintf("/api/community/%d", article.ID), nil, strangerBearer)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	req = jsonRequest("DELETE", fmt.Sprintf("/api/community/%d", article.ID), nil, ownerBearer)
	resp, err = app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	req = jsonRequest("GET", fmt.Sprintf("/api/community/%d", article.ID), nil, ownerBearer)
	resp, err = app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestDeleteArticleNotFound(t *testing.T) {
	_, bearer := createTestMember("del404", "del404@example.com")

	req := jsonRequest("DELETE", "/api/community/999999", nil, bearer)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
