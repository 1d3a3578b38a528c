package http

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var (
	validate       = validator.New(validator.WithRequiredStructEnabled())
	errInvalidBody = errors.New("cuerpo inválido")
)

// validationError errores de validación por campo (nombre del campo JSON/query → regla incumplida).
type validationError struct {
	fields map[string]string
}

func (e *validationError) Error() string {
	parts := make([]string, 0, len(e.fields))
	for f, rule := range e.fields {
		parts = append(parts, f+": "+rule)
	}
	return "datos inválidos: " + strings.Join(parts, ", ")
}

func init() {
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
}

// parseBody decodifica el JSON y valida las etiquetas validate.
func parseBody(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return errInvalidBody
	}
	return validateStruct(dst)
}

// parseQuery decodifica la query string (etiquetas query) y valida.
func parseQuery(c *fiber.Ctx, dst any) error {
	if err := c.QueryParser(dst); err != nil {
		return &validationError{fields: map[string]string{"query": err.Error()}}
	}
	return validateStruct(dst)
}

func validateStruct(dst any) error {
	err := validate.Struct(dst)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validación: %w", err)
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		fields[fieldPath(fe.Namespace())] = rule
	}
	return &validationError{fields: fields}
}

// fieldPath quita el nombre del struct raíz: "TransferRequest.items[0].product_id" → "items[0].product_id".
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// dateRange lee from/to (YYYY-MM-DD o RFC3339). Un "to" sin hora incluye el día completo.
func dateRange(c *fiber.Ctx) (from, to *time.Time, err error) {
	if from, err = parseDate(c.Query("from"), false); err != nil {
		return nil, nil, &validationError{fields: map[string]string{"from": "datetime=2006-01-02"}}
	}
	if to, err = parseDate(c.Query("to"), true); err != nil {
		return nil, nil, &validationError{fields: map[string]string{"to": "datetime=2006-01-02"}}
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, nil, &validationError{fields: map[string]string{"to": "gtefield=from"}}
	}
	return from, to, nil
}

func parseDate(s string, endOfDay bool) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return &t, nil
}

// queryDecimal lee un decimal opcional de la query.
func queryDecimal(c *fiber.Ctx, key string) (*decimal.Decimal, error) {
	s := c.Query(key)
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, &validationError{fields: map[string]string{key: "decimal"}}
	}
	return &d, nil
}

// requireID valida el parámetro de ruta como UUID.
func requireID(c *fiber.Ctx, name string) (string, error) {
	id := c.Params(name)
	if err := validate.Var(id, "required,uuid"); err != nil {
		return "", &validationError{fields: map[string]string{name: "uuid"}}
	}
	return id, nil
}

// userCtx contexto de la petición con actor y logger.
func userCtx(c *fiber.Ctx) context.Context {
	return c.UserContext()
}

// RequestContext inyecta el logger en el contexto de la petición y registra cada respuesta.
func RequestContext(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		c.SetUserContext(log.WithContext(c.UserContext()))
		err := c.Next()
		if err != nil {
			// el ErrorHandler de Fiber todavía no escribió la respuesta
			return err
		}
		status := c.Response().StatusCode()
		ev := log.Debug()
		if status >= 500 {
			ev = log.Error()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("petición")
		return nil
	}
}
