package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/artem13815/jobboard/api/http/presenter"
	"github.com/artem13815/jobboard/pkg/auth"
	"github.com/artem13815/jobboard/pkg/security/jwt"
)

var validate = newValidator()

// newValidator reports fields by their JSON names.
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

// errBadRequest carries a client-facing message for malformed input.
type errBadRequest string

func (e errBadRequest) Error() string { return string(e) }

// bind parses the JSON body into dst and runs struct validation.
func bind(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return errBadRequest("invalid JSON payload")
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return errBadRequest(strings.Join(lo.Map(verrs, func(fe validator.FieldError, _ int) string {
				return describe(fe)
			}), "; "))
		}
		return errBadRequest(err.Error())
	}
	return nil
}

func describe(fe validator.FieldError) string {
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "uuid":
		return field + " must be a valid id"
	case "url":
		return field + " must be a valid URL"
	default:
		return fmt.Sprintf("%s failed %q validation", field, fe.Tag())
	}
}

// paramID reads a UUID path parameter.
func paramID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, errBadRequest("invalid " + name)
	}
	return id, nil
}

// fail writes err as a JSON error response.
func fail(c *fiber.Ctx, err error) error {
	var bad errBadRequest
	if errors.As(err, &bad) {
		return presenter.Error(c, http.StatusBadRequest, bad.Error())
	}
	return presenter.FromError(c, err)
}

// identity returns the caller; an empty identity is rejected by the use cases.
func identity(c *fiber.Ctx) auth.Identity {
	who, _ := jwt.IdentityFrom(c)
	return who
}
