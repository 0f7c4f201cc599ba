package controllers

import (
	"errors"
	"strconv"

	"learnhub/backend/config"
	"learnhub/backend/models"
	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CoursesController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewCoursesController(db *gorm.DB, cfg *config.Config) *CoursesController {
	return &CoursesController{DB: db, Cfg: cfg}
}

// GetCourses lists the catalog with optional category, difficulty and
// free-text search filters.
func (cc *CoursesController) GetCourses(c *fiber.Ctx) error {
	category := c.Query("category")
	difficulty := c.Query("difficulty")
	search := c.Query("search")

	query := cc.DB.Model(&models.Course{})

	if category != "" {
		query = query.Where("category = ?", category)
	}
	if difficulty != "" {
		query = query.Where("difficulty = ?", difficulty)
	}
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	var courses []models.Course
	if err := query.Order("created_at DESC").Find(&courses).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return c.JSON(courses)
}

func (cc *CoursesController) GetCourseDetails(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	if err := cc.DB.Preload("Modules.Lessons").First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	return c.JSON(course)
}

func (cc *CoursesController) CreateCourse(c *fiber.Ctx) error {
	var course models.Course
	if err := c.BodyParser(&course); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	// Every lesson gets a stable external ID used by completion tracking.
	for i := range course.Modules {
		for j := range course.Modules[i].Lessons {
			if course.Modules[i].Lessons[j].LessonID == "" {
				course.Modules[i].Lessons[j].LessonID = uuid.New().String()
			}
		}
	}

	if err := cc.DB.Create(&course).Error; err != nil {
		return utils.InternalServerError(c, "Could not create course")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Course created",
		"course":  course,
	})
}

func (cc *CoursesController) UpdateCourse(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	if err := cc.DB.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var input struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Thumbnail   string   `json:"thumbnail"`
		Category    string   `json:"category"`
		Difficulty  string   `json:"difficulty"`
		Duration    string   `json:"duration"`
		Tags        string   `json:"tags"`
		Rating      *float64 `json:"rating"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.Title != "" {
		course.Title = input.Title
	}
	if input.Description != "" {
		course.Description = input.Description
	}
	if input.Thumbnail != "" {
		course.Thumbnail = input.Thumbnail
	}
	if input.Category != "" {
		course.Category = input.Category
	}
	if input.Difficulty != "" {
		course.Difficulty = input.Difficulty
	}
	if input.Duration != "" {
		course.Duration = input.Duration
	}
	if input.Tags != "" {
		course.Tags = input.Tags
	}
	if input.Rating != nil {
		course.Rating = *input.Rating
	}

	if err := cc.DB.Save(&course).Error; err != nil {
		return utils.InternalServerError(c, "Could not update course")
	}

	return c.JSON(fiber.Map{
		"message": "Course updated",
		"course":  course,
	})
}

func (cc *CoursesController) AddLesson(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var input struct {
		ModuleID   uint   `json:"moduleId"`
		Title      string `json:"title"`
		VideoURL   string `json:"videoUrl"`
		YoutubeURL string `json:"youtubeUrl"`
		Duration   string `json:"duration"`
		Content    string `json:"content"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var module models.CourseModule
	if err := cc.DB.Where("id = ? AND course_id = ?", input.ModuleID, courseID).First(&module).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Module not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var lessonCount int64
	cc.DB.Model(&models.Lesson{}).Where("module_id = ?", module.ID).Count(&lessonCount)

	lesson := models.Lesson{
		ModuleID:      module.ID,
		LessonID:      uuid.New().String(),
		Title:         input.Title,
		VideoURL:      input.VideoURL,
		YoutubeURL:    input.YoutubeURL,
		Duration:      input.Duration,
		Content:       input.Content,
		SequenceOrder: int(lessonCount) + 1,
	}

	if err := cc.DB.Create(&lesson).Error; err != nil {
		return utils.InternalServerError(c, "Could not create lesson")
	}

	return c.JSON(fiber.Map{
		"message": "Lesson added",
		"lesson":  lesson,
	})
}

func (cc *CoursesController) DeleteCourse(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	if err := cc.DB.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if err := cc.DB.Delete(&course).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete course")
	}

	return c.JSON(fiber.Map{"message": "Course deleted"})
}
