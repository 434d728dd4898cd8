package validator

import "github.com/go-playground/validator/v10"

func registerFn(tag string, fn func(fl validator.FieldLevel) bool) func(v *validator.Validate) {
	return func(v *validator.Validate) {
		_ = v.RegisterValidation(tag, fn)
	}
}

func NewDomainValidationRules() []ValidationRule {
	return []ValidationRule{
		{
			Rule: registerFn("domain_name", domainNameValidator),
		},
	}
}

func NewJobValidationRules() []ValidationRule {
	return []ValidationRule{
		{
			Rule: registerFn("upload_name", uploadNameValidator),
		},
	}
}

// NewRecordValidationRules covers the records extracted from uploaded workbooks.
func NewRecordValidationRules() []ValidationRule {
	return []ValidationRule{
		{
			Rule: registerFn("nonnil_uuid", uuidValidator),
		},
		{
			Rule: registerFn("committee_role", committeeRoleValidator),
		},
	}
}
