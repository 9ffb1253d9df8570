package http

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jsalazarc/Ventas-api/internal/application/dto"
)

var validate = validator.New()

// parseAndValidate parsea el body JSON y aplica las reglas `validate` del DTO.
// Responde 400 y devuelve false si algo falla; el handler debe retornar de inmediato.
func parseAndValidate(c *fiber.Ctx, out any) (ok bool, respErr error) {
	if err := c.BodyParser(out); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(out); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	return true, nil
}
