package controllers

import (
	"errors"
	"log"

	"learnhub/backend/config"
	"learnhub/backend/models"
	"learnhub/backend/services"
	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ProgressController struct {
	DB          *gorm.DB
	Cfg         *config.Config
	Progress    *services.ProgressService
	Leaderboard *services.LeaderboardService
	Logger      *log.Logger
}

func NewProgressController(db *gorm.DB, cfg *config.Config, leaderboard *services.LeaderboardService, logger *log.Logger) *ProgressController {
	return &ProgressController{
		DB:          db,
		Cfg:         cfg,
		Progress:    services.NewProgressService(db),
		Leaderboard: leaderboard,
		Logger:      logger,
	}
}

// syncLeaderboard mirrors the new skill score into Redis. Leaderboard lag is
// acceptable, a failed sync never fails the request.
func (pc *ProgressController) syncLeaderboard(c *fiber.Ctx, userID uint, score int) {
	if err := pc.Leaderboard.RecordScore(c.Context(), userID, score); err != nil {
		pc.Logger.Printf("leaderboard sync failed for user %d: %v", userID, err)
	}
}

// GetStats godoc
// @Summary Get learning stats
// @Description Returns the user's stats snapshot, refreshing the daily streak
// @Tags progress
// @Produce json
// @Success 200 {object} models.LearningStats
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /progress/stats [get]
func (pc *ProgressController) GetStats(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	stats, err := pc.Progress.Stats(userID)
	if err != nil {
		return utils.InternalServerError(c, "Could not load stats")
	}

	return c.JSON(stats)
}

// StartSession godoc
// @Summary Start a learning session
// @Tags progress
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /progress/start-session [post]
func (pc *ProgressController) StartSession(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input struct {
		CourseID uint   `json:"courseId"`
		LessonID string `json:"lessonId"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	startedAt, err := pc.Progress.StartSession(userID, input.CourseID, input.LessonID)
	if err != nil {
		return utils.InternalServerError(c, "Could not start session")
	}

	return c.JSON(fiber.Map{
		"message":   "Session started",
		"sessionId": startedAt,
	})
}

// EndSession godoc
// @Summary End a learning session
// @Description Credits the elapsed minutes and streak-boosted skill score
// @Tags progress
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /progress/end-session [post]
func (pc *ProgressController) EndSession(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input struct {
		Duration float64 `json:"duration"` // minutes
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	stats, err := pc.Progress.EndSession(userID, input.Duration)
	if err != nil {
		if errors.Is(err, services.ErrNoProgress) {
			return utils.NotFound(c, "No progress found")
		}
		return utils.InternalServerError(c, "Could not end session")
	}

	pc.syncLeaderboard(c, userID, stats.SkillScore)

	return c.JSON(fiber.Map{
		"message": "Session ended",
		"stats":   stats,
	})
}

// CompleteLesson godoc
// @Summary Mark a lesson completed
// @Tags progress
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /progress/complete-lesson [post]
func (pc *ProgressController) CompleteLesson(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input struct {
		CourseID uint   `json:"courseId"`
		LessonID string `json:"lessonId"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	lessons, err := pc.Progress.CompleteLesson(userID, input.CourseID, input.LessonID)
	if err != nil {
		return utils.InternalServerError(c, "Could not complete lesson")
	}

	return c.JSON(fiber.Map{
		"message":          "Lesson completed",
		"completedLessons": lessons,
	})
}

// UpdateProgress godoc
// @Summary Update course completion percentage
// @Description At 100% the course moves from in-progress to completed
// @Tags progress
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /progress/update-progress [post]
func (pc *ProgressController) UpdateProgress(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input struct {
		CourseID uint `json:"courseId"`
		Progress int  `json:"progress"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if err := pc.Progress.UpdateCourseProgress(userID, input.CourseID, input.Progress); err != nil {
		if errors.Is(err, services.ErrNoProgress) {
			return utils.NotFound(c, "No progress found")
		}
		return utils.InternalServerError(c, "Could not update progress")
	}

	return c.JSON(fiber.Map{"message": "Progress updated"})
}

// GetCoursesInProgress godoc
// @Summary Get in-progress courses with resolved course data
// @Tags progress
// @Produce json
// @Success 200 {array} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /progress/courses-in-progress [get]
func (pc *ProgressController) GetCoursesInProgress(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	entries, err := pc.Progress.CoursesInProgress(userID)
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	result := make([]fiber.Map, 0, len(entries))
	for _, entry := range entries {
		var course models.Course
		if err := pc.DB.First(&course, entry.CourseID).Error; err != nil {
			continue
		}

		result = append(result, fiber.Map{
			"course":           course,
			"startedAt":        entry.StartedAt,
			"lastAccessedAt":   entry.LastAccessedAt,
			"completedLessons": entry.LessonIDs(),
			"timeSpent":        entry.TimeSpent,
			"progress":         entry.Progress,
		})
	}

	return c.JSON(result)
}

// CompleteQuiz godoc
// @Summary Record a quiz outcome
// @Description Persists a graded quiz result; retries keep the best score
// @Tags progress
// @Accept json
// @Produce json
// @Success 200 {object} services.ProgressSnapshot
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /progress/complete-quiz [post]
func (pc *ProgressController) CompleteQuiz(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input struct {
		QuizID uint `json:"quizId"`
		Score  int  `json:"score"`
		Passed bool `json:"passed"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	snapshot, err := pc.Progress.CompleteQuiz(userID, input.QuizID, input.Score, input.Passed)
	if err != nil {
		if errors.Is(err, services.ErrNoProgress) {
			return utils.NotFound(c, "Progress not found")
		}
		return utils.InternalServerError(c, "Could not complete quiz")
	}

	pc.syncLeaderboard(c, userID, snapshot.Progress.SkillScore)

	return c.JSON(snapshot)
}

// GetLeaderboard godoc
// @Summary Get the skill score leaderboard
// @Tags progress
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /progress/leaderboard [get]
func (pc *ProgressController) GetLeaderboard(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	entries, err := pc.Leaderboard.Top(c.Context(), 20)
	if err != nil {
		return utils.InternalServerError(c, "Could not load leaderboard")
	}

	for i := range entries {
		var user models.User
		if err := pc.DB.First(&user, entries[i].UserID).Error; err == nil {
			entries[i].Name = user.Name
		}
	}

	rank, err := pc.Leaderboard.Rank(c.Context(), userID)
	if err != nil {
		return utils.InternalServerError(c, "Could not load leaderboard")
	}

	return c.JSON(fiber.Map{
		"entries": entries,
		"myRank":  rank,
	})
}
