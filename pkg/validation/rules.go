package validation

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	mobileRegex  = regexp.MustCompile(`^(09|\+639)\d{9}$`)
	licenseRegex = regexp.MustCompile(`^[A-Z]\d{2}-\d{2}-\d{6}$`)
)

// IsValidMobile reports whether s is a Philippine mobile number
// (09XXXXXXXXX or +639XXXXXXXXX).
func IsValidMobile(s string) bool {
	return mobileRegex.MatchString(s)
}

// IsValidLicense reports whether s looks like C09-10-123456.
func IsValidLicense(s string) bool {
	return licenseRegex.MatchString(s)
}

// RegisterCustomRules adds the ph_mobile tag.
func RegisterCustomRules(v *validator.Validate) error {
	rules := map[string]func(string) bool{
		"ph_mobile": IsValidMobile,
	}

	for tag, fn := range rules {
		check := fn
		if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return check(fl.Field().String())
		}); err != nil {
			return err
		}
	}
	return nil
}

// RegisterWithGin installs the custom rules on gin's binding validator.
func RegisterWithGin() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return RegisterCustomRules(v)
}
