package http

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/caja-diaria/internal/application/dto"
	"github.com/tu-usuario/caja-diaria/internal/domain"
)

var validate = validator.New()

// BindAndValidate parsea el cuerpo de la petición en dst y lo valida con las
// etiquetas `validate`. Devuelve un error HTTP ya respondido si algo falla.
func BindAndValidate(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(dst); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	return nil
}

// respondError mapea los errores de dominio a códigos HTTP.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	case errors.Is(err, domain.ErrAlreadyPaid):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_PAID", Message: err.Error()})
	case errors.Is(err, domain.ErrMalformedSnapshot):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MALFORMED_SNAPSHOT", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// respondMutation responde una mutación del store. Un fallo de guardado no
// revierte la mutación: la respuesta sale con el código de éxito y un campo
// warning para que el cliente sepa que el espejo en disco quedó desfasado.
func respondMutation(c *fiber.Ctx, status int, payload fiber.Map, err error) error {
	if err == nil {
		return c.Status(status).JSON(payload)
	}
	if errors.Is(err, domain.ErrSaveFailed) {
		payload["warning"] = "el cambio se aplicó pero no se pudo guardar en disco"
		return c.Status(status).JSON(payload)
	}
	return respondError(c, err)
}
