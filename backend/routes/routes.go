package routes

import (
	"log"

	"learnhub/backend/config"
	"learnhub/backend/controllers"
	"learnhub/backend/middleware"
	"learnhub/backend/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config, leaderboard *services.LeaderboardService, recommender *services.Recommender, logger *log.Logger) {
	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)
	adminMiddleware := middleware.AdminMiddleware(cfg)

	// User routes
	usersController := controllers.NewUsersController(db, cfg)
	app.Get("/api/users/profile", authMiddleware, usersController.GetProfile)
	app.Put("/api/users/profile", authMiddleware, usersController.UpdateProfile)
	app.Post("/api/users/enroll/:courseId", authMiddleware, usersController.Enroll)

	// Course catalog
	coursesController := controllers.NewCoursesController(db, cfg)
	courses := app.Group("/api/courses", authMiddleware)
	courses.Get("/", coursesController.GetCourses)
	courses.Get("/:id", coursesController.GetCourseDetails)

	// Quizzes
	quizzesController := controllers.NewQuizzesController(db, cfg)
	quizzes := app.Group("/api/quizzes", authMiddleware)
	quizzes.Get("/", quizzesController.GetQuizzes)
	quizzes.Get("/:id", quizzesController.GetQuizDetails)

	// Progress engine
	progressController := controllers.NewProgressController(db, cfg, leaderboard, logger)
	progress := app.Group("/api/progress", authMiddleware)
	progress.Get("/stats", progressController.GetStats)
	progress.Post("/start-session", progressController.StartSession)
	progress.Post("/end-session", progressController.EndSession)
	progress.Post("/complete-lesson", progressController.CompleteLesson)
	progress.Post("/update-progress", progressController.UpdateProgress)
	progress.Get("/courses-in-progress", progressController.GetCoursesInProgress)
	progress.Post("/complete-quiz", progressController.CompleteQuiz)
	progress.Get("/leaderboard", progressController.GetLeaderboard)

	// Learning paths
	pathsController := controllers.NewPathsController(db, cfg)
	paths := app.Group("/api/paths", authMiddleware)
	paths.Get("/", pathsController.GetPaths)
	paths.Get("/:id", pathsController.GetPath)

	// Feedback queries
	queriesController := controllers.NewQueriesController(db, cfg)
	queries := app.Group("/api/queries", authMiddleware)
	queries.Post("/", queriesController.CreateQuery)
	queries.Get("/my", queriesController.GetMyQueries)
	queries.Get("/all", adminMiddleware, queriesController.GetAllQueries)
	queries.Put("/:id/reply", adminMiddleware, queriesController.ReplyToQuery)
	queries.Put("/:id/close", queriesController.CloseQuery)

	// AI recommendations
	aiController := controllers.NewAIController(cfg, recommender)
	app.Post("/api/ai/recommend", authMiddleware, aiController.Recommend)

	// Admin routes
	adminController := controllers.NewAdminController(db, cfg)
	admin := app.Group("/api/admin", authMiddleware, adminMiddleware)
	admin.Get("/stats", adminController.GetStats)
	admin.Get("/users", adminController.GetUsers)
	admin.Get("/enrollments", adminController.GetEnrollments)
	admin.Put("/make-admin/:userId", adminController.MakeAdmin)

	adminCourses := app.Group("/api/admin/courses", authMiddleware, adminMiddleware)
	adminCourses.Post("/", coursesController.CreateCourse)
	adminCourses.Put("/:id", coursesController.UpdateCourse)
	adminCourses.Post("/:id/lessons", coursesController.AddLesson)
	adminCourses.Delete("/:id", coursesController.DeleteCourse)

	adminQuizzes := app.Group("/api/admin/quizzes", authMiddleware, adminMiddleware)
	adminQuizzes.Post("/", quizzesController.CreateQuiz)
	adminQuizzes.Delete("/:id", quizzesController.DeleteQuiz)

	adminPaths := app.Group("/api/admin/paths", authMiddleware, adminMiddleware)
	adminPaths.Post("/", pathsController.CreatePath)
	adminPaths.Put("/:id", pathsController.UpdatePath)
	adminPaths.Delete("/:id", pathsController.DeletePath)
}
