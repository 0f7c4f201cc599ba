package controllers

import (
	"errors"
	"strconv"
	"time"

	"learnhub/backend/config"
	"learnhub/backend/models"
	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type QueriesController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewQueriesController(db *gorm.DB, cfg *config.Config) *QueriesController {
	return &QueriesController{DB: db, Cfg: cfg}
}

// CreateQuery files a feedback query for the authenticated user.
func (qc *QueriesController) CreateQuery(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, qc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input struct {
		Subject  string `json:"subject"`
		Message  string `json:"message"`
		Category string `json:"category"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.Subject == "" || input.Message == "" {
		return utils.BadRequest(c, "Subject and message are required")
	}

	category := input.Category
	if category == "" {
		category = "general"
	}

	query := models.Query{
		UserID:   userID,
		Subject:  input.Subject,
		Message:  input.Message,
		Category: category,
		Status:   models.QueryStatusPending,
	}

	if err := qc.DB.Create(&query).Error; err != nil {
		return utils.InternalServerError(c, "Could not create query")
	}

	return c.Status(fiber.StatusCreated).JSON(query)
}

// GetMyQueries returns the user's own queries, newest first.
func (qc *QueriesController) GetMyQueries(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, qc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var queries []models.Query
	if err := qc.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&queries).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return c.JSON(queries)
}

// GetAllQueries returns every query with the author's name, for admins.
func (qc *QueriesController) GetAllQueries(c *fiber.Ctx) error {
	var queries []models.Query
	if err := qc.DB.Order("created_at DESC").Find(&queries).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	result := make([]fiber.Map, 0, len(queries))
	for _, query := range queries {
		var user models.User
		qc.DB.First(&user, query.UserID)

		result = append(result, fiber.Map{
			"query": query,
			"user": fiber.Map{
				"id":    user.ID,
				"name":  user.Name,
				"email": user.Email,
			},
		})
	}

	return c.JSON(result)
}

// ReplyToQuery attaches an admin reply and marks the query replied.
func (qc *QueriesController) ReplyToQuery(c *fiber.Ctx) error {
	adminID, err := utils.ExtractUserIDFromToken(c, qc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	queryID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid query ID")
	}

	var input struct {
		Message string `json:"message"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var query models.Query
	if err := qc.DB.First(&query, queryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Query not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	now := time.Now()
	query.Status = models.QueryStatusReplied
	query.ReplyMessage = input.Message
	query.RepliedAt = &now
	query.RepliedByID = &adminID

	if err := qc.DB.Save(&query).Error; err != nil {
		return utils.InternalServerError(c, "Could not save reply")
	}

	return c.JSON(query)
}

// CloseQuery marks a query closed.
func (qc *QueriesController) CloseQuery(c *fiber.Ctx) error {
	queryID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid query ID")
	}

	var query models.Query
	if err := qc.DB.First(&query, queryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Query not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	query.Status = models.QueryStatusClosed
	if err := qc.DB.Save(&query).Error; err != nil {
		return utils.InternalServerError(c, "Could not update query")
	}

	return c.JSON(query)
}
