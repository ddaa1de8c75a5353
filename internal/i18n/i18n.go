// Package i18n holds the english and turkish text shown to users and
// resolves which of the two a request should get.
package i18n

import (
	"errors"
	"regexp"
	"strings"

	"github.com/antonio-alexander/go-employee-store/internal/data"

	"golang.org/x/text/language"
)

const DefaultLanguage string = data.LanguageEnglish

var (
	supported = []string{data.LanguageEnglish, data.LanguageTurkish}
	matcher   = language.NewMatcher([]language.Tag{language.English, language.Turkish})
	reParam   = regexp.MustCompile(`\{\{(\w+)\}\}`)
)

func Supported() []string {
	return append([]string{}, supported...)
}

// Normalize reduces a language tag (e.g. "tr-TR") to one of the supported
// two letter languages
func Normalize(lang string) (string, error) {
	tag, err := language.Parse(lang)
	if err != nil {
		return "", data.ErrUnsupportedLanguage
	}
	base, _ := tag.Base()
	for _, s := range supported {
		if base.String() == s {
			return s, nil
		}
	}
	return "", data.ErrUnsupportedLanguage
}

// Match picks the supported language that best fits an Accept-Language
// header, ok is false if nothing fits
func Match(acceptLanguage string) (string, bool) {
	if acceptLanguage == "" {
		return "", false
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return "", false
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return "", false
	}
	return supported[index], true
}

// Translations returns a copy of every key for lang, english is used
// for unsupported languages
func Translations(lang string) map[string]string {
	table, ok := translations[lang]
	if !ok {
		table = translations[DefaultLanguage]
	}
	copied := make(map[string]string, len(table))
	for key, value := range table {
		copied[key] = value
	}
	return copied
}

// T looks up a dotted key, e.g. "employeeList.title"; the key itself is
// returned when there's no translation and {{name}} placeholders are
// replaced with params[name] when present
func T(lang, key string, params ...map[string]string) string {
	table, ok := translations[lang]
	if !ok {
		table = translations[DefaultLanguage]
	}
	result, ok := table[key]
	if !ok {
		return key
	}
	if len(params) == 0 {
		return result
	}
	return reParam.ReplaceAllStringFunc(result, func(match string) string {
		name := reParam.FindStringSubmatch(match)[1]
		for _, p := range params {
			if value := p[name]; value != "" {
				return value
			}
		}
		return match
	})
}

// ErrorMessage renders an error the way the employee form shows it:
// "<label> <required>" for missing fields and the rule's message otherwise
func ErrorMessage(lang string, err error) string {
	var validationErr *data.ValidationError

	switch data.KindOf(err) {
	default:
		return err.Error()
	case data.ErrorKindValidation:
		if !errors.As(err, &validationErr) || len(validationErr.Fields) == 0 {
			return T(lang, "errors.missingFields")
		}
		messages := make([]string, 0, len(validationErr.Fields))
		for _, f := range validationErr.Fields {
			switch f.Rule {
			case data.RuleRequired:
				messages = append(messages, T(lang, "employeeForm."+f.Field)+" "+T(lang, "validation.required"))
			default:
				messages = append(messages, T(lang, "validation."+f.Rule))
			}
		}
		return strings.Join(messages, "; ")
	case data.ErrorKindDuplicateEmail:
		return T(lang, "errors.emailInUse")
	case data.ErrorKindNotFound:
		return T(lang, "errors.notFound")
	case data.ErrorKindPersistence:
		return T(lang, "errors.persistence")
	case data.ErrorKindUnsupportedLanguage:
		return T(lang, "errors.unsupportedLanguage")
	case data.ErrorKindMutateDisabled:
		return T(lang, "errors.mutateDisabled")
	}
}
