package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	apierrors "github.com/mehedi-hridoy/creator-pulse/internal/errors"
	"github.com/mehedi-hridoy/creator-pulse/internal/exporter"
)

// AnalyzeParams are the query parameters accepted by the analyze endpoint.
// Zero values mean "use the configured default".
type AnalyzeParams struct {
	K      int
	Top    int
	Format exporter.Format
}

// QueryParamValidator validates query parameters
type QueryParamValidator struct {
	validator *validator.Validate
	logger    *slog.Logger
}

// NewQueryParamValidator creates a new query parameter validator
func NewQueryParamValidator(logger *slog.Logger) *QueryParamValidator {
	if logger == nil {
		logger = slog.Default()
	}
	v := validator.New()

	// Use JSON tag names in error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &QueryParamValidator{
		validator: v,
		logger:    logger.With(slog.String("component", "query_validator")),
	}
}

// analyzeQuery holds the raw integers so an explicit zero is validated
// rather than treated as absent
type analyzeQuery struct {
	K   *int `json:"k" validate:"omitempty,min=1,max=50"`
	Top *int `json:"top" validate:"omitempty,min=1,max=100"`
}

// AnalyzeParams parses and validates k, top and format. Formats other than
// json and xlsx are rejected as not acceptable since CSV needs a directory.
func (v *QueryParamValidator) AnalyzeParams(r *http.Request) (AnalyzeParams, error) {
	var query analyzeQuery
	var errs []apierrors.ValidationError

	q := r.URL.Query()
	for _, p := range []struct {
		name string
		dst  **int
	}{
		{"k", &query.K},
		{"top", &query.Top},
	} {
		raw := q.Get(p.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			errs = append(errs, apierrors.ValidationError{
				Field:   p.name,
				Message: fmt.Sprintf("%s must be a valid integer", p.name),
			})
			continue
		}
		*p.dst = &n
	}
	if len(errs) > 0 {
		return AnalyzeParams{}, apierrors.NewValidationErrors(errs)
	}

	if err := v.ValidateStruct(query); err != nil {
		return AnalyzeParams{}, err
	}

	format, err := exporter.ParseFormat(q.Get("format"))
	if err != nil || format == exporter.FormatCSV {
		v.logger.DebugContext(r.Context(), "rejected report format",
			slog.String("format", q.Get("format")),
		)
		return AnalyzeParams{}, apierrors.ErrUnsupportedFormat
	}

	params := AnalyzeParams{Format: format}
	if query.K != nil {
		params.K = *query.K
	}
	if query.Top != nil {
		params.Top = *query.Top
	}
	return params, nil
}

// ValidateStruct validates a struct and returns validation errors
func (v *QueryParamValidator) ValidateStruct(s interface{}) error {
	err := v.validator.Struct(s)
	if err == nil {
		return nil
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apierrors.InvalidRequestWithError(err)
	}

	validationErrors := make([]apierrors.ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		validationErrors = append(validationErrors, apierrors.ValidationError{
			Field:   fe.Field(),
			Message: formatValidationError(fe),
		})
	}
	return apierrors.NewValidationErrors(validationErrors)
}

// formatValidationError formats validation error messages
func formatValidationError(err validator.FieldError) string {
	field := err.Field()
	param := err.Param()

	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(param, " ", ", "))
	default:
		return fmt.Sprintf("%s failed %s validation", field, err.Tag())
	}
}

// ContentTypeValidator rejects request bodies whose Content-Type is set but
// not in the allowed list. A missing Content-Type is accepted.
func ContentTypeValidator(errorHandler *apierrors.ErrorHandler, contentTypes ...string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			contentType := r.Header.Get("Content-Type")
			if contentType == "" {
				next.ServeHTTP(w, r)
				return
			}

			for _, allowed := range contentTypes {
				if strings.HasPrefix(strings.ToLower(contentType), allowed) {
					next.ServeHTTP(w, r)
					return
				}
			}

			errorHandler.HandleError(w, r, apierrors.NewWithDetails(
				http.StatusUnsupportedMediaType,
				CodeUnsupportedMediaType,
				"Unsupported content type",
				map[string]interface{}{
					"content_type": contentType,
					"allowed":      contentTypes,
				},
			))
		})
	}
}

// CodeUnsupportedMediaType is the error_code for rejected Content-Type headers
const CodeUnsupportedMediaType = "UNSUPPORTED_MEDIA_TYPE"
