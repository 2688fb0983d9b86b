package util

import (
	"fmt"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
)

// credit: https://github.com/go-playground/validator/issues/559#issuecomment-976459959

type ApiError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func msgForTag(fe validator.FieldError, customField *map[string]string) string {
	// convert to custom field if exist
	field := fe.Field()
	if _, ok := (*customField)[field]; ok {
		field = (*customField)[field]
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%v is required", field)
	case "min":
		return fmt.Sprintf("%v must be at least %v characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%v must be at most %v characters", field, fe.Param())
	}

	log.Printf("Unknown tag: %v with error: %v", fe.Tag(), fe.Error())
	return fe.Error() // default error
}

/*
GenerateErrorMessages extracts validation errors and returns them as an
array of ApiError. Optional params: a field name override for plain errors
and a map of custom field display names for validation errors.

Usage:

	GenerateErrorMessages(err)
	GenerateErrorMessages(err, "templateFile")
	GenerateErrorMessages(err, map[string]string{"name": "displayName"})
*/
func GenerateErrorMessages(err error, optionalParams ...interface{}) []ApiError {
	customField := map[string]string{}
	fieldName := ""

	for _, p := range optionalParams {
		switch v := p.(type) {
		case string:
			fieldName = v
		case map[string]string:
			customField = v
		}
	}

	if ve, ok := err.(validator.ValidationErrors); ok {
		out := make([]ApiError, len(ve))
		for i, fe := range ve {
			out[i] = ApiError{Field: strings.ToLower(fe.Field()), Message: msgForTag(fe, &customField)}
		}
		return out
	}

	if err != nil {
		return []ApiError{{Field: fieldName, Message: err.Error()}}
	}

	return []ApiError{}
}
