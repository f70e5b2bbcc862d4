package jsonschema2ast

import (
	"errors"
	"fmt"

	i18n "github.com/kaptinlin/go-i18n"
)

// Sentinel errors for the fatal conditions the translator can raise. Each
// has a matching constructor below returning a TranslationError that
// carries the offending node's location; errors.Is against these sentinels
// works through TranslationError's Unwrap.
var (
	// ErrUnresolvedReference is returned when classification reaches a node
	// still carrying an unresolved $ref (dereferencing happens upstream of
	// this module; a live $ref reaching the classifier is fatal).
	ErrUnresolvedReference = errors.New("unresolved reference")

	// ErrNameRequired is returned when a node classified NAMED_SCHEMA or
	// NAMED_ENUM cannot produce a standalone name from title, id or
	// definition key.
	ErrNameRequired = errors.New("name required but not derivable")

	// ErrInvalidPropertyNames is returned when an enum-valued propertyNames
	// co-occurs with `extends`, or does not translate to a named ENUM. A
	// propertyNames without an enum is not an error; it is left out of the
	// interface.
	ErrInvalidPropertyNames = errors.New("propertyNames is not representable")

	// ErrInvalidSuperType is returned when an `extends` or allOf-hoisted
	// entry does not translate to an INTERFACE or REFERENCE node.
	ErrInvalidSuperType = errors.New("extends target is not an interface")

	// ErrInvalidEnumValue is returned when a tsEnumRef target does not
	// translate to an ENUM, or an enum value is not a member of it.
	ErrInvalidEnumValue = errors.New("enum value is not representable")
)

// TranslationError is the common shape of every fatal error this module
// raises: a stable Code for localization, a human Message, the pointer-style
// Location of the offending schema node, and the sentinel it wraps.
type TranslationError struct {
	Code     string
	Message  string
	Location string
	Params   map[string]interface{}
	sentinel error
}

func (e *TranslationError) Error() string {
	if e.Location != "" {
		return fmt.Sprintf("%s: %s (at %s)", e.Code, e.Message, e.Location)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *TranslationError) Unwrap() error {
	return e.sentinel
}

// Localize renders the error through localizer when non-nil, falling back
// to Error() otherwise, matching the teacher's EvaluationError.Localize.
func (e *TranslationError) Localize(localizer *i18n.Localizer) string {
	if localizer == nil {
		return e.Error()
	}
	params := map[string]interface{}{"location": e.Location}
	for k, v := range e.Params {
		params[k] = v
	}
	return localizer.Get(e.Code, i18n.Vars(params))
}

func newTranslationError(sentinel error, code, message, location string, params map[string]interface{}) *TranslationError {
	return &TranslationError{
		Code:     code,
		Message:  message,
		Location: location,
		Params:   params,
		sentinel: sentinel,
	}
}

// NewUnresolvedReferenceError reports a $ref surviving to the classifier.
func NewUnresolvedReferenceError(location string) *TranslationError {
	return newTranslationError(ErrUnresolvedReference, "unresolved_reference",
		"schema node still carries an unresolved $ref", location, nil)
}

// NewNameRequiredError reports a NAMED_SCHEMA/NAMED_ENUM node with no
// derivable title, id or definition key.
func NewNameRequiredError(location, context string) *TranslationError {
	return newTranslationError(ErrNameRequired, "name_required",
		"node requires a standalone name but none could be derived", location,
		map[string]interface{}{"context": context})
}

// NewInvalidPropertyNamesError reports an enum-valued propertyNames that
// co-occurs with extends or does not translate to a named ENUM.
func NewInvalidPropertyNamesError(location string) *TranslationError {
	return newTranslationError(ErrInvalidPropertyNames, "invalid_property_names",
		"propertyNames schema is not a representable key constraint", location, nil)
}

// NewInvalidSuperTypeError reports an extends target that did not translate
// to an interface-shaped node.
func NewInvalidSuperTypeError(location string, got Kind) *TranslationError {
	return newTranslationError(ErrInvalidSuperType, "invalid_super_type",
		"extends target did not translate to an interface", location,
		map[string]interface{}{"kind": string(got)})
}

// NewInvalidEnumValueError reports an enum whose tsEnumRef target is not an
// ENUM (value nil) or whose value is missing from that ENUM.
func NewInvalidEnumValueError(location string, value interface{}) *TranslationError {
	return newTranslationError(ErrInvalidEnumValue, "invalid_enum_value",
		"enum value could not be reconciled with its labels", location,
		map[string]interface{}{"value": value})
}
