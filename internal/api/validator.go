package api

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ougirez/billing-tracker/internal/pkg/constants"
)

type Validator struct {
	validator *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(fieldName)
	return &Validator{validator: v}
}

// fieldName reports fields by their wire name: the json tag, else the path param.
func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "param"} {
		name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
		if name != "" && name != "-" {
			return name
		}
	}
	return f.Name
}

func (v *Validator) Validate(i interface{}) error {
	err := v.validator.Struct(i)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return constants.Validationf("%s", err.Error())
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, "missing required field "+fieldPath(fe))
		default:
			msgs = append(msgs, fieldPath(fe)+" failed "+fe.Tag())
		}
	}
	return constants.Validationf("%s", strings.Join(msgs, "; "))
}

// fieldPath drops the struct name from the namespace: "customDates[0].date".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
