package controllers

import (
	"learnhub/backend/config"
	"learnhub/backend/services"
	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type AIController struct {
	Cfg         *config.Config
	Recommender *services.Recommender
}

func NewAIController(cfg *config.Config, recommender *services.Recommender) *AIController {
	return &AIController{Cfg: cfg, Recommender: recommender}
}

// Recommend asks the language model for a personalized learning path. The
// model output is passed through as-is; the platform does not persist it.
func (ai *AIController) Recommend(c *fiber.Ctx) error {
	if ai.Recommender == nil {
		return utils.InternalServerError(c, "Gemini API key not configured")
	}

	var input struct {
		Goal      string   `json:"goal"`
		Level     int      `json:"level"`
		Interests []string `json:"interests"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.Goal == "" {
		return utils.BadRequest(c, "Goal is required")
	}

	recommendation, err := ai.Recommender.Recommend(c.Context(), input.Goal, input.Level, input.Interests)
	if err != nil {
		return utils.InternalServerError(c, "Failed to generate recommendations")
	}

	return c.JSON(recommendation)
}
