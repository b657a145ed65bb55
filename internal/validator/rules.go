package validator

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/kunalaswar/HireFlow/internal/models"
)

var (
	nameRe  = regexp.MustCompile(`^[A-Za-z\s.]+$`)
	digitRe = regexp.MustCompile(`\D`)
)

// registerCustomRules adds the candidate-facing rules used by the
// application form.
func registerCustomRules(v *validator.Validate) error {
	if err := v.RegisterValidation("candidate_name", validCandidateName); err != nil {
		return err
	}
	if err := v.RegisterValidation("phone", validPhone); err != nil {
		return err
	}
	return v.RegisterValidation("app_status", validAppStatus)
}

// validCandidateName: at least 3 characters, letters/spaces/dots only.
func validCandidateName(fl validator.FieldLevel) bool {
	name := strings.TrimSpace(fl.Field().String())
	if len(name) < 3 {
		return false
	}
	return nameRe.MatchString(name)
}

// validPhone accepts an optional leading "+" and 7-15 digits after
// stripping separators.
func validPhone(fl validator.FieldLevel) bool {
	_, ok := NormalizePhone(fl.Field().String())
	return ok
}

func validAppStatus(fl validator.FieldLevel) bool {
	return models.ApplicationStatus(fl.Field().String()).Valid()
}

// NormalizePhone strips everything but digits, keeping a leading "+", and
// reports whether the digit count lands in the accepted 7-15 range.
func NormalizePhone(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)

	var cleaned string
	if strings.HasPrefix(raw, "+") {
		cleaned = "+" + digitRe.ReplaceAllString(raw[1:], "")
	} else {
		cleaned = digitRe.ReplaceAllString(raw, "")
	}

	digits := strings.TrimPrefix(cleaned, "+")
	if len(digits) < 7 || len(digits) > 15 {
		return "", false
	}
	return cleaned, true
}
