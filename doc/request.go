package doc

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Request is one submission of source text for documentation. It is
// immutable once handed to the renderer.
type Request struct {
	ID       string   `validate:"required,uuid4"`
	Text     string   `validate:"required,notblank"`
	DocType  DocType  `validate:"doctype"`
	Language Language `validate:"language"`
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		_ = validate.RegisterValidation("doctype", func(fl validator.FieldLevel) bool {
			return DocType(fl.Field().Int()).Valid()
		})
		_ = validate.RegisterValidation("language", func(fl validator.FieldLevel) bool {
			return Language(fl.Field().Int()).Valid()
		})
	})
	return validate
}

// NewRequest builds a validated request with a fresh id.
func NewRequest(text string, docType DocType, language Language) (Request, error) {
	req := Request{
		ID:       uuid.NewString(),
		Text:     text,
		DocType:  docType,
		Language: language,
	}
	if err := req.Validate(); err != nil {
		return Request{}, err
	}
	return req, nil
}

// Validate checks the request invariants.
func (r Request) Validate() error {
	if err := getValidator().Struct(r); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			return fmt.Errorf("invalid request: %s failed %q", verrs[0].Field(), verrs[0].Tag())
		}
		return fmt.Errorf("invalid request: %w", err)
	}
	return nil
}
