package validate

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
)

// PlaygroundV10 Validator implementation using go-playground
type PlaygroundV10 struct {
	core  *validator.Validate
	trans ut.Translator
}

var _ Validator = &PlaygroundV10{}

// NewValidator create a new Validator, locale selects the message language ("en" or "zh")
func NewValidator(locale ...string) *PlaygroundV10 {
	uni := ut.New(en.New(), en.New(), zh.New())

	name := "en"
	if len(locale) > 0 && locale[0] == "zh" {
		name = "zh"
	}
	trans, _ := uni.GetTranslator(name)

	validate := validator.New()
	if name == "zh" {
		zh_translations.RegisterDefaultTranslations(validate, trans)
	} else {
		en_translations.RegisterDefaultTranslations(validate, trans)
	}
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return ""
		}
		return name
	})
	return &PlaygroundV10{
		core:  validate,
		trans: trans,
	}
}

// Struct validate struct
func (v PlaygroundV10) Struct(s interface{}) []*FieldError {
	err := v.core.Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []*FieldError{NewFieldError("", err.Error())}
	}
	result := make([]*FieldError, 0, len(verrs))
	for _, item := range verrs {
		result = append(result, NewFieldError(item.Field(), item.Translate(v.trans)))
	}
	return result
}

// Empty check if value is empty
func (v PlaygroundV10) Empty(varName string, s interface{}) []*FieldError {
	if err := v.core.Var(s, "required"); err != nil {
		return []*FieldError{NewFieldError(varName, fmt.Sprintf("%s is required", varName))}
	}
	return nil
}

// Var validate a single variable against tag
func (v PlaygroundV10) Var(varName string, s interface{}, tag string) []*FieldError {
	err := v.core.Var(s, tag)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []*FieldError{NewFieldError(varName, err.Error())}
	}
	result := make([]*FieldError, 0, len(verrs))
	for _, item := range verrs {
		result = append(result, NewFieldError(varName, varName+item.Translate(v.trans)))
	}
	return result
}

// AllEmpty check if all fields are empty
//
// names and fields have one to one relationship respect to the order
func (v PlaygroundV10) AllEmpty(names []string, fields ...interface{}) *FieldError {
	if len(names) != len(fields) {
		panic(fmt.Errorf("number of name: %d, fields: %d", len(names), len(fields)))
	}

	for _, s := range fields {
		if err := v.core.Var(s, "required"); err == nil {
			return nil
		}
	}
	return NewFieldError(strings.Join(names, ","), "One of the fields should not be empty")
}
