package validator

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/watchair/watchair/internal/store/model"
)

var (
	uploadNameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*\.(xlsx|xlsm)$`)
)

// domainNameValidator accepts printable names that are not only whitespace.
func domainNameValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	if strings.TrimSpace(val) == "" {
		return false
	}

	for _, r := range val {
		if !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}

// uploadNameValidator rejects anything that could escape the upload folder.
func uploadNameValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	if filepath.Base(val) != val {
		return false
	}

	return uploadNameRegex.MatchString(val)
}

func uuidValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(uuid.UUID)
	if !ok {
		return false
	}
	return val != uuid.UUID{}
}

func committeeRoleValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(model.Role)
	if !ok {
		return false
	}
	return val >= model.RolePCMember && val <= model.RoleChair
}
