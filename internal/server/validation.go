package server

import (
	"errors"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const maxImageIDLength = 64

var (
	validatorOnce sync.Once
	validate      *validator.Validate
)

func requestValidator() *validator.Validate {
	validatorOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("imageid", func(fl validator.FieldLevel) bool {
			_, err := validateImageID(fl.Field().String())
			return err == nil
		})
		_ = validate.RegisterValidation("dataurl", func(fl validator.FieldLevel) bool {
			return isImagePayload(fl.Field().String())
		})
	})
	return validate
}

type fieldMessages map[string]map[string]string

// validateRequest runs struct validation and maps the first failing
// field/tag to a user-facing message.
func validateRequest(req any, messages fieldMessages, fallback string) error {
	err := requestValidator().Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, verr := range verrs {
			if fieldMsgs, ok := messages[verr.Field()]; ok {
				if msg, ok := fieldMsgs[verr.Tag()]; ok {
					return errors.New(msg)
				}
			}
		}
	}
	if fallback != "" {
		return errors.New(fallback)
	}
	return errors.New("invalid request")
}

func validateImageID(id string) (string, error) {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return "", errors.New("image id is required")
	}
	if len(trimmed) > maxImageIDLength {
		return "", errors.New("image id is too long")
	}
	if _, err := uuid.Parse(trimmed); err != nil {
		return "", errors.New("image id must be a uuid")
	}
	return trimmed, nil
}

func isImagePayload(value string) bool {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return false
	}
	if strings.HasPrefix(trimmed, "data:") {
		return strings.HasPrefix(trimmed, "data:image/") && strings.Contains(trimmed, ";base64,")
	}
	return true
}

func newImageID() string {
	return uuid.NewString()
}
