package complaint

import (
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/hosteldesk/core"
)

var (
	statusTag  = "complaintstatus"
	statusText = "status must be one of: " + strings.Join(Statuses, ", ")

	priorityTag  = "complaintpriority"
	priorityText = "priority must be one of: " + strings.Join(Priorities, ", ")

	categoryTag  = "complaintcategory"
	categoryText = "invalid category"
)

// InitValidators registers this package's custom validators and translations.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(statusTag, core.OneOfValidation(Statuses, false))
	core.RegisterCustomTranslation(validate, translator, statusTag, statusText)

	_ = validate.RegisterValidation(priorityTag, core.OneOfValidation(Priorities, true /* fold */))
	core.RegisterCustomTranslation(validate, translator, priorityTag, priorityText)

	_ = validate.RegisterValidation(categoryTag, core.OneOfValidation(Categories, false))
	core.RegisterCustomTranslation(validate, translator, categoryTag, categoryText)
}
