package validator

import (
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// GetValidator returns the validator instance from Gin binding
func GetValidator() (*validator.Validate, error) {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil, fmt.Errorf("validator 엔진을 가져올 수 없습니다")
	}
	return v, nil
}

// New creates a standalone validator reading `validate` tags.
// Field names in errors follow the json tag so they match the API payload.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := Register(v); err != nil {
		// rules are static; failing here is a programming error
		panic(err)
	}
	return v
}

// Register installs the common rules and json field naming on v
func Register(v *validator.Validate) error {
	v.RegisterTagNameFunc(jsonFieldName)

	if err := v.RegisterValidation(TagNoDigits, ValidateNoDigits); err != nil {
		return fmt.Errorf("%s validator 등록 실패: %w", TagNoDigits, err)
	}
	if err := v.RegisterValidation(TagDigitsOnly, ValidateDigitsOnly); err != nil {
		return fmt.Errorf("%s validator 등록 실패: %w", TagDigitsOnly, err)
	}
	return nil
}

// RegisterAll registers all common validators on the Gin binding engine
// Domain-specific validators should be registered separately by each domain
func RegisterAll() error {
	v, err := GetValidator()
	if err != nil {
		return fmt.Errorf("validator 엔진 가져오기 실패: %w", err)
	}

	if err := Register(v); err != nil {
		return err
	}

	slog.Info("공통 Validator 등록 완료", "validators", []string{TagNoDigits, TagDigitsOnly})
	return nil
}

func jsonFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	return name
}
