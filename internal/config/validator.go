package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
)

// messages covers every validation tag used by Config. {0} is the dotted
// config key and {1} the tag parameter.
var messages = map[string]string{
	"required": "{0} is required",
	"url":      "{0} must be a valid URL",
	"gte":      "{0} must be {1} or greater",
	"lte":      "{0} must be {1} or less",
	"oneof":    "{0} must be one of [{1}]",
	"file":     "{0} must be an existing and readable file",
}

func newValidator() (*validator.Validate, ut.Translator, error) {
	validate := validator.New()

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := validate.RegisterValidation("file", isFileReadable); err != nil {
		return nil, nil, fmt.Errorf("failed to register file validation: %w", err)
	}

	for tag, message := range messages {
		if err := validate.RegisterTranslation(tag, trans, func(ut ut.Translator) error {
			return ut.Add(tag, message, true)
		}, func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T(tag, configKey(fe), fe.Param())
			return t
		}); err != nil {
			return nil, nil, fmt.Errorf("failed to register %s translation: %w", tag, err)
		}
	}

	if err := validate.RegisterTranslation("required_if", trans, func(ut ut.Translator) error {
		return ut.Add("required_if", "{0} is required when {1}", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		condition := strings.Join(strings.Fields(fe.Param()), " is ")
		t, _ := ut.T("required_if", configKey(fe), strings.ToLower(condition))
		return t
	}); err != nil {
		return nil, nil, fmt.Errorf("failed to register required_if translation: %w", err)
	}

	return validate, trans, nil
}

func configKey(fe validator.FieldError) string {
	return strings.TrimPrefix(fe.Namespace(), "Config.")
}

func isFileReadable(fl validator.FieldLevel) bool {
	path := fl.Field().String()
	if path == "" {
		return false
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	// owner read bit
	return info.Mode().Perm()&0o400 != 0
}
