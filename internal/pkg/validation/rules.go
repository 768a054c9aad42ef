package validation

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/yigit/volunteerhub/internal/domain"
	"github.com/yigit/volunteerhub/internal/pkg/auth"
)

// GoalAmountPattern accepts free text goals such as "5.000 €" or "1,500.00"
var GoalAmountPattern = regexp.MustCompile(`^[0-9., €]*$`)

// Register installs the custom rules and reports field names by their json tag
func Register(v *validator.Validate) error {
	v.RegisterTagNameFunc(jsonFieldName)

	rules := map[string]validator.Func{
		"goalamount": func(fl validator.FieldLevel) bool {
			return GoalAmountPattern.MatchString(fl.Field().String())
		},
		"duration": func(fl validator.FieldLevel) bool {
			return domain.ParseDuration(fl.Field().String(), "") != ""
		},
		"password": func(fl validator.FieldLevel) bool {
			return auth.IsStrongPassword(fl.Field().String())
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

// RegisterWithGin installs the rules on gin's default binding validator
func RegisterWithGin() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return Register(v)
}

func jsonFieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}
