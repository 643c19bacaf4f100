package routes

import (
	"lifelessons/backend/config"
	"lifelessons/backend/controllers"
	"lifelessons/backend/middleware"
	"lifelessons/backend/payments"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config, sessions payments.SessionCreator) {
	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)
	adminMiddleware := middleware.AdminMiddleware(db, cfg)

	// Liveness
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Digital Life Lessoning.........!")
	})

	// User routes
	userController := controllers.NewUserController(db, cfg)
	app.Post("/users", userController.Register)
	app.Get("/users", adminMiddleware, userController.ListUsers)
	app.Get("/users/email/:email", userController.GetUserByEmail)
	app.Patch("/users/make-premium/:email", userController.MakePremium)
	app.Patch("/users/make-admin/:id", adminMiddleware, userController.MakeAdmin)
	app.Patch("/users/remove-admin/:id", adminMiddleware, userController.RemoveAdmin)
	app.Delete("/users/:id", adminMiddleware, userController.DeleteUser)
	app.Get("/admin/users", adminMiddleware, userController.AdminUsers)

	// Lesson routes; the literal paths register before the :id ones
	lessonController := controllers.NewLessonController(db, cfg)
	app.Get("/lessons/top-creators", lessonController.TopCreators)
	app.Get("/lessons", lessonController.ListLessons)
	app.Post("/lessons", lessonController.CreateLesson)
	app.Patch("/lessons/like/:id", authMiddleware, lessonController.ToggleLike)
	app.Patch("/lessons/favorite/:id", authMiddleware, lessonController.ToggleFavorite)
	app.Patch("/lessons/comment/:id", lessonController.AddComment)
	app.Get("/lessons/:id", lessonController.GetLesson)
	app.Patch("/lessons/:id", lessonController.UpdateLesson)
	app.Delete("/lessons/:id", adminMiddleware, lessonController.DeleteLesson)
	app.Get("/like", authMiddleware, lessonController.LikedBy)
	app.Get("/favorites", authMiddleware, lessonController.FavoritedBy)

	// Report routes
	reportController := controllers.NewReportController(db, cfg)
	app.Post("/report", reportController.SubmitReport)
	app.Get("/reports", adminMiddleware, reportController.ListReports)
	app.Delete("/reports/lesson/:lessonId", adminMiddleware, reportController.DeleteReportsForLesson)
	app.Delete("/reports/:id", adminMiddleware, reportController.DeleteReport)

	// Payment routes
	paymentController := controllers.NewPaymentController(db, cfg, sessions)
	app.Post("/create-checkout-session", authMiddleware, paymentController.CreateCheckoutSession)
}
