package feedback

import (
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/hosteldesk/core"
)

var (
	typeTag  = "feedbacktype"
	typeText = "type must be one of: " + strings.Join(Types, ", ")

	relationshipTag  = "relationship"
	relationshipText = "relationship must be one of: " + strings.Join(Relationship, ", ")
)

// InitValidators registers this package's custom validators and translations.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(typeTag, core.OneOfValidation(Types, false))
	core.RegisterCustomTranslation(validate, translator, typeTag, typeText)

	_ = validate.RegisterValidation(relationshipTag, core.OneOfValidation(Relationship, false))
	core.RegisterCustomTranslation(validate, translator, relationshipTag, relationshipText)
}
