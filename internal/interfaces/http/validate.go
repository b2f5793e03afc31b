package http

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jhoicas/pipeline-crm/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// bindJSON decodifica el cuerpo y aplica las reglas `validate`. Devuelve domain.ErrInvalidInput envuelto.
func bindJSON(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return fmt.Errorf("%w: cuerpo inválido", domain.ErrInvalidInput)
	}
	return validateStruct(out)
}

// bindQuery igual que bindJSON pero desde la query string.
func bindQuery(c *fiber.Ctx, out any) error {
	if err := c.QueryParser(out); err != nil {
		return fmt.Errorf("%w: parámetros inválidos", domain.ErrInvalidInput)
	}
	return validateStruct(out)
}

func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		m := fe.Field() + ": " + fe.Tag()
		if fe.Param() != "" {
			m += "=" + fe.Param()
		}
		msgs = append(msgs, m)
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(msgs, "; "))
}

// validIDs rechaza con domain.ErrNotFound los parámetros de ruta que no son UUID.
// Se registra por ruta: c.Route() solo conoce los parámetros dentro de la ruta resuelta.
func validIDs(c *fiber.Ctx) error {
	for _, name := range c.Route().Params {
		if err := uuid.Validate(c.Params(name)); err != nil {
			return writeError(c, fmt.Errorf("%w: %s %q", domain.ErrNotFound, name, c.Params(name)))
		}
	}
	return c.Next()
}

func itoa(n int) string { return strconv.Itoa(n) }
