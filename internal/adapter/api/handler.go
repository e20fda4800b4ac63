package api

import (
	"errors"
	"fmt"

	"ai-service/internal/domain/entity"
	"ai-service/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type PromptHandler struct {
	generator   *usecase.Generator
	validator   *RequestValidator
	serviceName string
}

func NewPromptHandler(gen *usecase.Generator, serviceName string) *PromptHandler {
	return &PromptHandler{
		generator:   gen,
		validator:   NewRequestValidator(),
		serviceName: serviceName,
	}
}

func (h *PromptHandler) HandleInfo(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(entity.Info{
		Message: fmt.Sprintf("%s is up. See /health", h.serviceName),
	})
}

func (h *PromptHandler) HandleHealth(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(entity.HealthStatus{
		Status:  "healthy",
		Message: fmt.Sprintf("%s is running", h.serviceName),
	})
}

func (h *PromptHandler) HandleGenerate(c *fiber.Ctx) error {
	var req entity.GenerationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	fields, err := h.validator.Validate(req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if len(fields) > 0 {
		return validationFailed(c, fields)
	}

	// The Delivery layer maps the business error to HTTP status codes
	resp, err := h.generator.Generate(c.UserContext(), req)
	if err != nil {
		// Unreachable while the validator requires prompt; kept so the
		// generator's own check answers with the same shape.
		if errors.Is(err, entity.ErrInvalidRequest) {
			return validationFailed(c, []FieldError{{Field: "prompt", Rule: "required"}})
		}
		log.Errorw("generation failed",
			"request_id", c.GetRespHeader(fiber.HeaderXRequestID),
			"kind", usecase.ClassifyUpstream(err),
			"error", err,
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": entity.ErrUpstreamFailure.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

func validationFailed(c *fiber.Ctx, fields []FieldError) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
		"error":  "validation failed",
		"fields": fields,
	})
}
