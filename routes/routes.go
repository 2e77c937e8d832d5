package routes

import (
	"scrooge/config"
	"scrooge/controllers"
	"scrooge/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	authMiddleware := middleware.AuthMiddleware(cfg)

	// Member routes
	memberController := controllers.NewMemberController(db, cfg)
	app.Post("/member/signup", memberController.SignUp)
	app.Post("/member/login", memberController.Login)
	app.Get("/member/info", authMiddleware, memberController.GetInfo)
	app.Put("/member/weekly-goal", authMiddleware, memberController.UpdateWeeklyGoal)
	app.Put("/member/change-password", authMiddleware, memberController.UpdatePassword)
	app.Delete("/member/delete", authMiddleware, memberController.DeleteMember)

	// Payment history routes. Static paths are registered before the
	// parameterized ones so /settlement-exp and /today-total never match
	// :memberId.
	paymentController := controllers.NewPaymentHistoryController(db, cfg)
	payments := app.Group("/payment-history", authMiddleware)
	payments.Put("/settlement-exp", paymentController.UpdateExpAfterDailySettlement)
	payments.Get("/today-total", paymentController.GetTodayTotalConsumption)
	payments.Post("/:memberId", paymentController.AddPaymentHistory)
	payments.Get("/:memberId", paymentController.GetPaymentHistories)
	payments.Get("/:memberId/today", paymentController.GetPaymentHistoriesToday)
	payments.Get("/:memberId/:paymentHistoryId", paymentController.GetPaymentHistory)
	payments.Put("/:memberId/:paymentHistoryId", paymentController.UpdatePaymentHistory)

	// Challenge routes
	challengeController := controllers.NewChallengeController(db, cfg)
	challenges := app.Group("/api/challenge", authMiddleware)
	challenges.Get("/end-challenge", challengeController.GetMyEndChallenges)
	challenges.Get("/:challengeId/started", challengeController.GetStartedChallenge)
	challenges.Post("/:challengeId/auth", challengeController.CreateChallengeAuth)
	challenges.Get("/:challengeId/my-challenge/my-auth", challengeController.GetMyChallengeAuths)
	challenges.Get("/:challengeId/team-auth", challengeController.GetTeamAuths)

	// Community routes
	communityController := controllers.NewCommunityController(db, cfg)
	community := app.Group("/api/community", authMiddleware)
	community.Post("/", communityController.CreateArticle)
	community.Get("/", communityController.GetAllArticles)
	community.Get("/:articleId", communityController.GetArticle)
	community.Put("/:articleId", communityController.UpdateArticle)
	community.Delete("/:articleId", communityController.DeleteArticle)
}
