package controllers

import (
	"errors"
	"strconv"

	"learnhub/backend/config"
	"learnhub/backend/models"
	"learnhub/backend/services"
	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type PathsController struct {
	DB    *gorm.DB
	Cfg   *config.Config
	Paths *services.PathService
}

func NewPathsController(db *gorm.DB, cfg *config.Config) *PathsController {
	return &PathsController{DB: db, Cfg: cfg, Paths: services.NewPathService(db)}
}

// GetPaths lists all learning paths with the user's completed/total node
// counts.
func (pc *PathsController) GetPaths(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	summaries, err := pc.Paths.ListPaths(userID)
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return c.JSON(summaries)
}

// GetPath returns one path with every node annotated with the user's derived
// status (completed / active / locked).
func (pc *PathsController) GetPath(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	pathID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid path ID")
	}

	view, err := pc.Paths.ResolvePath(userID, uint(pathID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Learning path not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	return c.JSON(view)
}

func (pc *PathsController) CreatePath(c *fiber.Ctx) error {
	var path models.LearningPath
	if err := c.BodyParser(&path); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if err := pc.DB.Create(&path).Error; err != nil {
		return utils.InternalServerError(c, "Could not create path")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Path created",
		"path":    path,
	})
}

func (pc *PathsController) UpdatePath(c *fiber.Ctx) error {
	pathID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid path ID")
	}

	var path models.LearningPath
	if err := pc.DB.First(&path, pathID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Learning path not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var input struct {
		Title             string `json:"title"`
		Description       string `json:"description"`
		Thumbnail         string `json:"thumbnail"`
		Category          string `json:"category"`
		EstimatedDuration string `json:"estimatedDuration"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.Title != "" {
		path.Title = input.Title
	}
	if input.Description != "" {
		path.Description = input.Description
	}
	if input.Thumbnail != "" {
		path.Thumbnail = input.Thumbnail
	}
	if input.Category != "" {
		path.Category = input.Category
	}
	if input.EstimatedDuration != "" {
		path.EstimatedDuration = input.EstimatedDuration
	}

	if err := pc.DB.Save(&path).Error; err != nil {
		return utils.InternalServerError(c, "Could not update path")
	}

	return c.JSON(fiber.Map{
		"message": "Path updated",
		"path":    path,
	})
}

func (pc *PathsController) DeletePath(c *fiber.Ctx) error {
	pathID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid path ID")
	}

	var path models.LearningPath
	if err := pc.DB.First(&path, pathID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Learning path not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if err := pc.DB.Delete(&path).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete path")
	}

	return c.JSON(fiber.Map{"message": "Path deleted"})
}
