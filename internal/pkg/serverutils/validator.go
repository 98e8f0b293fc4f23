package serverutils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"mailreply-be/internal/pkg/apperror"
	"mailreply-be/pkg/catalog"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// Validator checks request DTOs. Field names in errors follow the json tags
// so they match what the client sent.
type Validator struct {
	validate *validator.Validate
}

func NewValidator(c *catalog.Catalog) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("notblank", validators.NotBlank)
	_ = v.RegisterValidation("blocktype", func(fl validator.FieldLevel) bool {
		return c.HasType(catalog.BlockType(fl.Field().String()))
	})

	return &Validator{validate: v}
}

// Struct validates req and converts failures into a validation *apperror.Error.
func (v *Validator) Struct(req any) error {
	err := v.validate.Struct(req)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return apperror.Internal("request validation failed", err)
	}

	details := make([]apperror.FieldError, 0, len(validationErrors))
	for _, fe := range validationErrors {
		details = append(details, apperror.FieldError{
			Field:   fieldPath(fe),
			Rule:    fe.Tag(),
			Message: messageFor(fe),
		})
	}
	return apperror.Validation("invalid request", details)
}

// fieldPath drops the top-level struct name: "GenerateRequest.infoBlocks[0].type"
// becomes "infoBlocks[0].type".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func messageFor(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "blocktype":
		return fmt.Sprintf("%s %q is not a known block type", field, fe.Value())
	default:
		return fmt.Sprintf("%s failed on the %s rule", field, fe.Tag())
	}
}
