package controllers

import (
	"strconv"

	"learnhub/backend/config"
	"learnhub/backend/models"
	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AdminController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewAdminController(db *gorm.DB, cfg *config.Config) *AdminController {
	return &AdminController{DB: db, Cfg: cfg}
}

// GetStats returns the dashboard counters.
func (ac *AdminController) GetStats(c *fiber.Ctx) error {
	var totalUsers, totalCourses, totalQueries, pendingQueries int64

	if err := ac.DB.Model(&models.User{}).Count(&totalUsers).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	ac.DB.Model(&models.Course{}).Count(&totalCourses)
	ac.DB.Model(&models.Query{}).Count(&totalQueries)
	ac.DB.Model(&models.Query{}).Where("status = ?", models.QueryStatusPending).Count(&pendingQueries)

	return c.JSON(fiber.Map{
		"totalUsers":     totalUsers,
		"totalCourses":   totalCourses,
		"totalQueries":   totalQueries,
		"pendingQueries": pendingQueries,
	})
}

// GetUsers lists all users with their enrolled and completed course counts.
func (ac *AdminController) GetUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := ac.DB.Order("created_at DESC").Find(&users).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	result := make([]fiber.Map, 0, len(users))
	for _, user := range users {
		var enrolled, completed int64
		ac.DB.Model(&models.Enrollment{}).Where("user_id = ?", user.ID).Count(&enrolled)
		ac.DB.Model(&models.CourseCompletion{}).Where("user_id = ?", user.ID).Count(&completed)

		result = append(result, fiber.Map{
			"user":             user,
			"enrolledCourses":  enrolled,
			"completedCourses": completed,
		})
	}

	return c.JSON(result)
}

// GetEnrollments maps users to the titles of their enrolled courses.
func (ac *AdminController) GetEnrollments(c *fiber.Ctx) error {
	var courses []models.Course
	if err := ac.DB.Select("id", "title", "category", "enrolled_count").Find(&courses).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	courseTitles := make(map[uint]string, len(courses))
	for _, course := range courses {
		courseTitles[course.ID] = course.Title
	}

	var users []models.User
	if err := ac.DB.Find(&users).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	enrollments := make([]fiber.Map, 0, len(users))
	for _, user := range users {
		var userEnrollments []models.Enrollment
		ac.DB.Where("user_id = ?", user.ID).Find(&userEnrollments)
		if len(userEnrollments) == 0 {
			continue
		}

		titles := make([]string, 0, len(userEnrollments))
		for _, enrollment := range userEnrollments {
			if title, ok := courseTitles[enrollment.CourseID]; ok {
				titles = append(titles, title)
			}
		}

		enrollments = append(enrollments, fiber.Map{
			"userName":  user.Name,
			"userEmail": user.Email,
			"courses":   titles,
		})
	}

	return c.JSON(fiber.Map{
		"courses":     courses,
		"enrollments": enrollments,
	})
}

// MakeAdmin promotes a user to the admin role. The promoted user gets an
// admin token on their next login.
func (ac *AdminController) MakeAdmin(c *fiber.Ctx) error {
	userID, err := strconv.Atoi(c.Params("userId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid user ID")
	}

	var user models.User
	if err := ac.DB.First(&user, userID).Error; err != nil {
		return utils.NotFound(c, "User not found")
	}

	user.Role = "admin"
	if err := ac.DB.Save(&user).Error; err != nil {
		return utils.InternalServerError(c, "Could not update user")
	}

	return c.JSON(fiber.Map{
		"message": "User promoted to admin",
		"user":    user,
	})
}
