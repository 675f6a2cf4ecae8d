package handler

import (
	stderrors "errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"storefront/internal/auth"
	"storefront/internal/errors"
	"storefront/internal/logging"
	"storefront/internal/model"
	"storefront/internal/repository"
)

// Totals describes the pagination window of a list response.
type Totals struct {
	Count   int64 `json:"count"`
	Page    int   `json:"page"`
	PerPage int   `json:"perPage"`
}

// PageQuery is embedded by list queries.
type PageQuery struct {
	Page    int `query:"page" validate:"omitempty,min=1"`
	PerPage int `query:"perPage" validate:"omitempty,min=1,max=100"`
}

func (q PageQuery) page() repository.Page {
	return repository.Page{Page: q.Page, PerPage: q.PerPage}.Normalize()
}

func totals(count int64, p repository.Page) Totals {
	return Totals{Count: count, Page: p.Page, PerPage: p.PerPage}
}

// bind decodes the request into req and runs struct validation.
// Failures are reported against location.
func bind(c echo.Context, req interface{}, location string) error {
	if err := c.Bind(req); err != nil {
		return errors.Validation("invalid request " + location)
	}
	if err := c.Validate(req); err != nil {
		return validationError(err, location)
	}
	return nil
}

// validationError turns validator output into a Validation error listing each field.
func validationError(err error, location string) error {
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return errors.Validation(err.Error())
	}

	fields := make([]errors.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, errors.FieldError{
			Field:    fe.Field(),
			Location: location,
			Messages: []string{describe(fe)},
		})
	}
	return errors.Validation("Validation Error", fields...)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "uuid", "uuid4":
		return "must be a valid UUID"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "number":
		return "must be a number"
	case "oneof":
		return "must be one of [" + fe.Param() + "]"
	default:
		return "failed on " + fe.Tag()
	}
}

// pathID parses the path parameter name as a UUID.
func pathID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, errors.Validation("Validation Error", errors.FieldError{
			Field:    name,
			Location: errors.LocationPath,
			Messages: []string{"must be a valid UUID"},
		})
	}
	return id, nil
}

// parseOptionalID parses s as a UUID; an empty string yields nil.
func parseOptionalID(s, field, location string) (*uuid.UUID, error) {
	if s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, errors.Validation("Validation Error", errors.FieldError{
			Field:    field,
			Location: location,
			Messages: []string{"must be a valid UUID"},
		})
	}
	return &id, nil
}

// principal returns the authenticated caller.
func principal(c echo.Context) (*model.User, error) {
	p, ok := auth.PrincipalFrom(c.Request().Context())
	if !ok {
		return nil, errors.Unauthorized("unauthorized")
	}
	return p, nil
}

// ErrorHandler renders every error as the JSON error envelope.
// Errors outside the taxonomy are logged and reported as 500.
func ErrorHandler(log logging.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var resp errors.ErrorResponse
		var httpErr *echo.HTTPError
		switch {
		case errors.KindOf(err) != errors.KindInternal:
			resp = errors.MapErrorToHTTP(err)
		case stderrors.As(err, &httpErr) && httpErr.Code < http.StatusInternalServerError:
			resp = errors.ErrorResponse{Message: http.StatusText(httpErr.Code), Status: httpErr.Code}
			if msg, ok := httpErr.Message.(string); ok {
				resp.Message = msg
			}
		default:
			log.Error(c.Request().Context(), "request failed",
				"error", err,
				"method", c.Request().Method,
				"path", c.Path(),
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
			)
			resp = errors.MapErrorToHTTP(err)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(resp.Status)
		} else {
			err = c.JSON(resp.Status, resp)
		}
		if err != nil {
			log.Error(c.Request().Context(), "write error response", "error", err)
		}
	}
}
