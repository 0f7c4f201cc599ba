package controllers

import (
	"errors"
	"strconv"

	"learnhub/backend/config"
	"learnhub/backend/models"
	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type QuizzesController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewQuizzesController(db *gorm.DB, cfg *config.Config) *QuizzesController {
	return &QuizzesController{DB: db, Cfg: cfg}
}

func (qc *QuizzesController) GetQuizzes(c *fiber.Ctx) error {
	var quizzes []models.Quiz
	if err := qc.DB.Preload("Questions").Find(&quizzes).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return c.JSON(quizzes)
}

func (qc *QuizzesController) GetQuizDetails(c *fiber.Ctx) error {
	quizID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid quiz ID")
	}

	var quiz models.Quiz
	if err := qc.DB.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("sequence_order ASC")
	}).First(&quiz, quizID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Quiz not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	return c.JSON(quiz)
}

func (qc *QuizzesController) CreateQuiz(c *fiber.Ctx) error {
	var quiz models.Quiz
	if err := c.BodyParser(&quiz); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if quiz.PassingScore == 0 {
		quiz.PassingScore = 70
	}

	for i := range quiz.Questions {
		if quiz.Questions[i].SequenceOrder == 0 {
			quiz.Questions[i].SequenceOrder = i + 1
		}
	}

	if err := qc.DB.Create(&quiz).Error; err != nil {
		return utils.InternalServerError(c, "Could not create quiz")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Quiz created",
		"quiz":    quiz,
	})
}

func (qc *QuizzesController) DeleteQuiz(c *fiber.Ctx) error {
	quizID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid quiz ID")
	}

	var quiz models.Quiz
	if err := qc.DB.First(&quiz, quizID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Quiz not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if err := qc.DB.Delete(&quiz).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete quiz")
	}

	return c.JSON(fiber.Map{"message": "Quiz deleted"})
}
