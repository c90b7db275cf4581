// StayGraph - Personalized Hotel Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staygraph

// Package validation validates decoded API requests with go-playground/validator.
//
// Field errors are reported by their JSON path, so a bad importance on the
// second preference reads "experience_preferences[1].importance":
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
//	    return
//	}
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// CodeValidationError is the API error code for rejected requests.
const CodeValidationError = "VALIDATION_ERROR"

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError is a single failed rule.
type FieldError struct {
	Path    string `json:"field"`
	Tag     string `json:"tag"`
	Param   string `json:"param,omitempty"`
	Value   any    `json:"value,omitempty"`
	Message string `json:"message"`
}

// RequestValidationError collects every failed rule of one request.
type RequestValidationError struct {
	fields []FieldError
}

// Fields returns the individual failures in struct order.
func (ve *RequestValidationError) Fields() []FieldError {
	return ve.fields
}

// Error joins the field messages.
func (ve *RequestValidationError) Error() string {
	if len(ve.fields) == 0 {
		return "validation failed"
	}
	messages := make([]string, len(ve.fields))
	for i, f := range ve.fields {
		messages[i] = f.Message
	}
	return strings.Join(messages, "; ")
}

// APIError is the shape handed to the HTTP error envelope.
type APIError struct {
	Code    string
	Message string
	Details map[string]any
}

// ToAPIError converts the failures into a VALIDATION_ERROR response body.
func (ve *RequestValidationError) ToAPIError() *APIError {
	switch len(ve.fields) {
	case 0:
		return &APIError{Code: CodeValidationError, Message: "Validation failed"}
	case 1:
		f := ve.fields[0]
		return &APIError{
			Code:    CodeValidationError,
			Message: f.Message,
			Details: map[string]any{"field": f.Path, "tag": f.Tag},
		}
	default:
		return &APIError{
			Code:    CodeValidationError,
			Message: ve.Error(),
			Details: map[string]any{"fields": ve.fields},
		}
	}
}

// GetValidator returns the shared validator. Struct metadata is cached, so
// one instance serves all requests.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(jsonFieldName)
	})
	return validate
}

// jsonFieldName names fields after their JSON key.
func jsonFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return field.Name
	default:
		return name
	}
}

// ValidateStruct validates s. It returns nil when every rule passes.
func ValidateStruct(s any) *RequestValidationError {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &RequestValidationError{fields: []FieldError{{
			Path:    "request",
			Tag:     "invalid",
			Message: err.Error(),
		}}}
	}

	fields := make([]FieldError, len(fieldErrs))
	for i, fe := range fieldErrs {
		path := fieldPath(fe)
		fields[i] = FieldError{
			Path:    path,
			Tag:     fe.Tag(),
			Param:   fe.Param(),
			Value:   fe.Value(),
			Message: translateError(fe, path),
		}
	}
	return &RequestValidationError{fields: fields}
}

// fieldPath drops the root struct name from the namespace:
// "Request.experience_preferences[0].importance" becomes
// "experience_preferences[0].importance".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

var messageTemplates = map[string]string{
	"required": "%s is required",
	"email":    "%s must be a valid email address",
}

var messageWithParam = map[string]string{
	"gte":   "%s must be greater than or equal to %s",
	"lte":   "%s must be less than or equal to %s",
	"oneof": "%s must be one of: %s",
}

func translateError(fe validator.FieldError, path string) string {
	if tmpl, ok := messageTemplates[fe.Tag()]; ok {
		return fmt.Sprintf(tmpl, path)
	}
	if tmpl, ok := messageWithParam[fe.Tag()]; ok {
		return fmt.Sprintf(tmpl, path, fe.Param())
	}

	isList := fe.Kind() == reflect.Slice || fe.Kind() == reflect.Array
	switch fe.Tag() {
	case "min":
		if isList {
			return fmt.Sprintf("%s must contain at least %s item(s)", path, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", path, fe.Param())
	case "max":
		if isList {
			return fmt.Sprintf("%s must contain at most %s item(s)", path, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", path, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", path, fe.Tag())
	}
}
