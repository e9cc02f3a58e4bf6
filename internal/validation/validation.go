package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError is returned when a payload does not match its schema.
// Message is the human-readable text of the first violated rule.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// maxBodyBytes bounds request payloads decoded by DecodeAndValidate.
const maxBodyBytes = 1 << 20

const msgInvalidBody = "Invalid request body"

// Validator checks decoded payloads against the rules declared in their
// struct tags. A field's `msg` tag overrides the message for any rule it fails.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// The stock "url" rule accepts values like "mailto:x"; sites need a host.
	if err := v.RegisterValidation("absurl", isAbsoluteURL); err != nil {
		panic(fmt.Sprintf("register absurl validation: %v", err))
	}

	return &Validator{validate: v}
}

func isAbsoluteURL(fl validator.FieldLevel) bool {
	u, err := url.Parse(fl.Field().String())
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}

// Struct validates s and returns a *ValidationError for the first violation.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	return &ValidationError{Field: fe.Field(), Message: messageFor(s, fe)}
}

// DecodeAndValidate reads a JSON body into dst and validates it.
func (v *Validator) DecodeAndValidate(r *http.Request, dst interface{}) error {
	if err := Decode(r, dst); err != nil {
		return err
	}
	return v.Struct(dst)
}

// Decode reads a JSON body into dst. Syntax and type errors become
// *ValidationError so callers can answer with 400.
func Decode(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return &ValidationError{
				Field:   typeErr.Field,
				Message: fmt.Sprintf("Expected %s for %s", typeErr.Type.Kind(), typeErr.Field),
			}
		}
		return &ValidationError{Message: msgInvalidBody}
	}
	// The body must hold exactly one JSON value.
	if err := dec.Decode(&json.RawMessage{}); err != io.EOF {
		return &ValidationError{Message: msgInvalidBody}
	}
	return nil
}

func messageFor(s interface{}, fe validator.FieldError) string {
	if msg := customMessage(s, fe.StructField()); msg != "" {
		return msg
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return "Invalid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "url", "absurl":
		return "Invalid URL format"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("Invalid %s", fe.Field())
	}
}

func customMessage(s interface{}, structField string) string {
	t := reflect.TypeOf(s)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return ""
	}
	f, ok := t.FieldByName(structField)
	if !ok {
		return ""
	}
	return f.Tag.Get("msg")
}
