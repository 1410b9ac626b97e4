package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/policy"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

type errorResponse struct {
	Detail string `json:"detail"`
}

type validationResponse struct {
	Errors map[string][]string `json:"errors"`
}

// writeError maps service errors to status codes. Unknown errors are
// attached to the context for the logging middleware and hidden from the client.
func writeError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, validationResponse{Errors: verr.Fields})
	case errors.Is(err, domain.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, errorResponse{Detail: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, errorResponse{Detail: domain.ErrForbidden.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Detail: err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, errorResponse{Detail: "internal server error"})
	}
}

var registerTagNames sync.Once

// jsonFieldNames makes validator report fields by their json tag.
func jsonFieldNames() {
	registerTagNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return field.Name
			}
			return name
		})
	})
}

// bindJSON decodes the body into dst. On failure it writes a 400 in the
// same shape as service validation errors and returns false.
func bindJSON(c *gin.Context, dst any) bool {
	jsonFieldNames()
	if err := c.ShouldBindJSON(dst); err != nil {
		writeError(c, bindingError(err))
		return false
	}
	return true
}

func bindingError(err error) *domain.ValidationError {
	verr := &domain.ValidationError{}

	var fieldErrs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	switch {
	case errors.As(err, &fieldErrs):
		for _, fe := range fieldErrs {
			verr.Add(fieldPath(fe), fieldMessage(fe))
		}
	case errors.As(err, &typeErr):
		verr.Add(typeErr.Field, fmt.Sprintf("expected %s", typeErr.Type.String()))
	case errors.As(err, &syntaxErr):
		verr.Add("non_field_errors", "malformed JSON body")
	default:
		verr.Add("non_field_errors", err.Error())
	}
	return verr
}

// fieldPath drops the request struct name: "orderRequest.tickets[0].row" becomes "tickets[0].row".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "gt":
		return fmt.Sprintf("ensure this value is greater than %s", fe.Param())
	case "gte", "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("ensure this field has at least %s characters", fe.Param())
		}
		return fmt.Sprintf("ensure this value is greater than or equal to %s", fe.Param())
	case "max":
		return fmt.Sprintf("ensure this field has no more than %s characters", fe.Param())
	case "email":
		return "enter a valid email address"
	case "gtfield":
		return fmt.Sprintf("must be after %s", fe.Param())
	default:
		return fmt.Sprintf("failed on the %q rule", fe.Tag())
	}
}

// bindAuthorized is bindJSON for guarded writes: when the body is invalid
// and the caller could not perform the action anyway, the authorization
// error is reported instead of the validation error.
func bindAuthorized(c *gin.Context, dst any, kind policy.Kind, action policy.Action) bool {
	return bindGuarded(c, dst, kind, action, false)
}

// bindOptionalAuthorized is bindAuthorized for writes whose body may be
// absent. An empty body leaves dst at its zero value, whether it arrived
// with Content-Length 0 or chunked.
func bindOptionalAuthorized(c *gin.Context, dst any, kind policy.Kind, action policy.Action) bool {
	return bindGuarded(c, dst, kind, action, true)
}

func bindGuarded(c *gin.Context, dst any, kind policy.Kind, action policy.Action, optional bool) bool {
	jsonFieldNames()
	if optional && c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		if optional && errors.Is(err, io.EOF) {
			return true
		}
		if authErr := policy.Authorize(kind, identityFrom(c), action, nil); authErr != nil {
			writeError(c, authErr)
			return false
		}
		writeError(c, bindingError(err))
		return false
	}
	return true
}
