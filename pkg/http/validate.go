package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

var (
	validate = newValidator()

	messagesMu sync.RWMutex
	// %[1]s is the field name, %[2]s the tag parameter.
	messages = map[string]string{
		"required": "%[1]s is required",
		"datetime": "%[1]s must be a date formatted as %[2]s",
		"gt":       "%[1]s must be greater than %[2]s",
		"gte":      "%[1]s must be greater than or equal to %[2]s",
		"lt":       "%[1]s must be less than %[2]s",
		"lte":      "%[1]s must be less than or equal to %[2]s",
	}
)

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by the name the client sent.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"query", "param", "json"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
	return v
}

// RegisterValidation adds a string validation tag usable in request structs.
// message is formatted with the field name as its only argument.
func RegisterValidation(tag, message string, ok func(string) bool) error {
	err := validate.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return ok(fl.Field().String())
	})
	if err != nil {
		return fmt.Errorf("register validation %q: %w", tag, err)
	}
	messagesMu.Lock()
	messages[tag] = message
	messagesMu.Unlock()
	return nil
}

// ReadAndValidateRequest binds path and query parameters into req, fills
// unset fields from `default` tags and validates the result. Fields already
// set on req before the call are kept when the request omits them.
// It returns nil or a []ValidationError suitable for a 400 body.
func ReadAndValidateRequest(c echo.Context, req interface{}) interface{} {
	if err := c.Bind(req); err != nil {
		return toValidationErrors(err)
	}
	if err := defaults.Set(req); err != nil {
		return toValidationErrors(err)
	}
	if err := validate.StructCtx(c.Request().Context(), req); err != nil {
		return toValidationErrors(err)
	}
	return nil
}

func toValidationErrors(err error) []ValidationError {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		out := make([]ValidationError, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			out = append(out, ValidationError{
				Code:    "ERR_" + strings.ToUpper(fe.Tag()),
				Field:   fe.Field(),
				Message: fieldMessage(fe),
				Params:  fieldParams(fe),
			})
		}
		return out
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		return []ValidationError{{Code: "ERR_BIND", Message: fmt.Sprintf("%v", he.Message)}}
	}
	return []ValidationError{{Code: "ERR_UNKNOWN", Message: err.Error()}}
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "min", "max":
		bound := "at least"
		if fe.Tag() == "max" {
			bound = "at most"
		}
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be %s %s characters", field, bound, fe.Param())
		}
		return fmt.Sprintf("%s must be %s %s", field, bound, fe.Param())
	}

	messagesMu.RLock()
	tmpl, ok := messages[fe.Tag()]
	messagesMu.RUnlock()
	if !ok {
		return fmt.Sprintf("%s failed validation: %s", field, fe.Tag())
	}
	if strings.Contains(tmpl, "%[2]s") {
		return fmt.Sprintf(tmpl, field, fe.Param())
	}
	return fmt.Sprintf(tmpl, field)
}

func fieldParams(fe validator.FieldError) map[string]interface{} {
	switch fe.Tag() {
	case "min", "gte":
		return map[string]interface{}{"min": fe.Param()}
	case "max", "lte":
		return map[string]interface{}{"max": fe.Param()}
	case "gt", "lt":
		return map[string]interface{}{"value": fe.Param()}
	case "oneof":
		return map[string]interface{}{"options": strings.Fields(fe.Param())}
	case "datetime":
		return map[string]interface{}{"layout": fe.Param()}
	}
	if fe.Tag() != "" && fe.Value() != nil {
		if s, ok := fe.Value().(string); ok && s != "" {
			return map[string]interface{}{"value": s}
		}
	}
	return nil
}
