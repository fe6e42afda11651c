package chi

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/kailas-cloud/cinedex/internal/domain"
)

// Raw query parameters, validated before they are parsed into domain requests.
type (
	// Q max matches request.MaxQueryLength.
	searchParams struct {
		Q string `query:"q" validate:"max=4096"`
	}

	genreParams struct {
		Genre string `query:"genre" validate:"required"`
	}

	trendingParams struct {
		Limit string `query:"limit" validate:"omitempty,numeric"`
	}

	similarParams struct {
		ID    string `query:"id" validate:"required,numeric"`
		Page  string `query:"page" validate:"omitempty,numeric"`
		Limit string `query:"limit" validate:"omitempty,numeric"`
	}
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("query"); name != "" {
			return name
		}
		return f.Name
	})
	return v
}

// validateParams reports the first failing field as a domain.InvalidParamError.
func (s *Server) validateParams(params any) error {
	err := s.validate.Struct(params)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("validate params: %w", err)
	}

	fe := verrs[0]
	return domain.NewInvalidParam(fe.Field(), reasonFor(fe))
}

func reasonFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "numeric":
		return "must be an integer"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	default:
		return "is invalid"
	}
}

// atoiParam parses an optional integer parameter, returning def when empty.
func atoiParam(name, raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewInvalidParam(name, "must be an integer")
	}
	return n, nil
}
