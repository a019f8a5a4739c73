// Package validation traduce los errores de go-playground/validator a domain.ValidationError.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mandu619/apa-depto-personal/internal/domain"
)

// DateLayout es el formato de las fechas de negocio (dateISO).
const DateLayout = "2006-01-02"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(DateLayout, fl.Field().String())
		return err == nil
	})
	// Los errores nombran el campo como lo ve el cliente (tag json).
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// Struct valida s y devuelve el primer campo inválido como *domain.ValidationError.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return domain.NewValidationError(fe.Field(), message(fe))
	}
	return domain.NewValidationError("", err.Error())
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "es obligatorio"
	case "required_if":
		return "es obligatorio cuando " + conditions(fe.Param())
	case "gt":
		return fmt.Sprintf("debe ser mayor que %s", fe.Param())
	case "lte":
		return fmt.Sprintf("debe ser menor o igual a %s", fe.Param())
	case "min":
		if isNumber(fe.Kind()) {
			return fmt.Sprintf("debe ser mayor o igual a %s", fe.Param())
		}
		return fmt.Sprintf("debe tener al menos %s caracteres", fe.Param())
	case "max":
		if isNumber(fe.Kind()) {
			return fmt.Sprintf("debe ser menor o igual a %s", fe.Param())
		}
		return fmt.Sprintf("debe tener como máximo %s caracteres", fe.Param())
	case "oneof":
		return fmt.Sprintf("debe ser uno de: %s", fe.Param())
	case "email":
		return "no es un email válido"
	case "isodate":
		return "debe tener formato AAAA-MM-DD"
	}
	return fmt.Sprintf("no cumple la regla %s", fe.Tag())
}

// conditions convierte "Kind scrap Reason Otro" en "Kind = scrap y Reason = Otro".
func conditions(param string) string {
	parts := strings.Fields(param)
	pairs := make([]string, 0, len(parts)/2)
	for i := 0; i+1 < len(parts); i += 2 {
		pairs = append(pairs, parts[i]+" = "+parts[i+1])
	}
	return strings.Join(pairs, " y ")
}

func isNumber(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Float64
}
