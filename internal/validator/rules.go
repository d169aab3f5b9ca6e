package validator

import (
	"log"
	"regexp"

	"rastaka_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// enumRules - тег -> допустимые значения (для сообщений об ошибках)
var enumRules = map[string][]string{
	"client-type":        toStrings(models.ClientTypes),
	"work-type":          toStrings(models.WorkTypes),
	"work-status":        toStrings(models.WorkStatuses),
	"section-type":       toStrings(models.SectionTypes),
	"portfolio-type":     toStrings(models.PortfolioTypes),
	"portfolio-category": toStrings(models.PortfolioCategories),
	"contact-status":     toStrings(models.ContactStatuses),
	"admin-role":         toStrings(models.AdminRoles),
}

var slugPattern = regexp.MustCompile(`^[\p{Ll}\p{Lo}\p{M}\p{N}_]+(-[\p{Ll}\p{Lo}\p{M}\p{N}_]+)*$`)

func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	for tag, allowed := range enumRules {
		mustRegister(tag, oneOfRule(allowed))
	}
	mustRegister("slug", validateSlug)
}

// oneOfRule - пустое значение пропускается, для этого есть 'required'
func oneOfRule(allowed []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "" {
			return true
		}
		for _, a := range allowed {
			if a == value {
				return true
			}
		}
		return false
	}
}

func validateSlug(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return slugPattern.MatchString(value)
}

func toStrings[T ~string](values []T) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, string(v))
	}
	return out
}
