package request

import (
	"errors"

	"github.com/dlclark/regexp2"
	validation "github.com/go-ozzo/ozzo-validation"
)

// A uni is a university ID (ab1234) or an email address, at most 50 characters, without "..".
const uniRegexPattern = `^(?=.{2,50}$)(?!.*\.\.)[A-Za-z0-9._%+-]+(@[A-Za-z0-9-]+(\.[A-Za-z0-9-]+)*\.[A-Za-z]{2,})?$`

var (
	uniExp = regexp2.MustCompile(uniRegexPattern, regexp2.None)

	errInvalidUni = errors.New("must be a university ID such as ab1234 or an email address")

	isUni = validation.By(func(value interface{}) error {
		s, _ := value.(string)
		if s == "" {
			return nil
		}

		ok, err := uniExp.MatchString(s)
		if err != nil || !ok {
			return errInvalidUni
		}

		return nil
	})
)

// ValidateUni checks a uni taken from a URL path.
func ValidateUni(uni string) error {
	return validation.Validate(uni, validation.Required, isUni)
}
