package signup

import (
	"regexp"

	"github.com/dmitrymomot/signupkit/pkg/form"
	"github.com/dmitrymomot/signupkit/pkg/sanitizer"
	"github.com/dmitrymomot/signupkit/pkg/validator"
	"github.com/dmitrymomot/signupkit/svc/registration"
)

// Field names, shared with the upstream API and the client signals.
const (
	FieldFullName    = registration.FieldFullName
	FieldEmail       = registration.FieldEmail
	FieldPhoneNumber = registration.FieldPhoneNumber
	FieldPassword    = registration.FieldPassword
)

const (
	maxTextLength  = 44
	phoneMaxDigits = 10
)

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]{3,}@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phonePattern = regexp.MustCompile(`^[0-9]{10}$`)
)

// SanitizeName keeps letters and spaces of the NFC-normalized input.
var SanitizeName = sanitizer.Compose(
	sanitizer.NormalizeNFC,
	sanitizer.KeepLettersAndSpaces,
	sanitizer.Limit(maxTextLength),
)

// SanitizeEmail drops all whitespace.
var SanitizeEmail = sanitizer.Compose(
	sanitizer.StripWhitespace,
	sanitizer.Limit(maxTextLength),
)

// SanitizePhone keeps ASCII digits only.
var SanitizePhone = sanitizer.Compose(
	sanitizer.KeepDigits,
	sanitizer.Limit(phoneMaxDigits),
)

// SanitizePassword only bounds the length.
var SanitizePassword = sanitizer.Limit(maxTextLength)

func fullNameRules(v string) []validator.Rule {
	return []validator.Rule{
		validator.Required(FieldFullName, v).WithMessage("Full Name is required"),
		validator.MinLen(FieldFullName, v, 2).WithMessage("Full Name must be at least 2 characters"),
	}
}

func emailRules(v string) []validator.Rule {
	return []validator.Rule{
		validator.Required(FieldEmail, v).WithMessage("Email is required"),
		validator.MinLen(FieldEmail, v, 3).WithMessage("Email must be at least 3 characters"),
		validator.Matches(FieldEmail, v, emailPattern, "email").WithMessage("Invalid email format."),
	}
}

func phoneRules(v string) []validator.Rule {
	return []validator.Rule{
		validator.Required(FieldPhoneNumber, v).WithMessage("Phone Number is required"),
		validator.Matches(FieldPhoneNumber, v, phonePattern, "phone").WithMessage("Phone Number must be exactly 10 digits"),
		validator.NotAllSameChar(FieldPhoneNumber, v).WithMessage("Phone number cannot have all identical digits."),
	}
}

func passwordRules(v string) []validator.Rule {
	return []validator.Rule{
		validator.Required(FieldPassword, v).WithMessage("Password is required"),
		validator.StrongPassword(FieldPassword, v, validator.DefaultPasswordStrength()).
			WithMessage("Password must contain at least eight characters, at least one number and both lower and uppercase letters and special characters"),
	}
}

// Fields returns the signup form descriptors in display order.
func Fields() []form.Field {
	return []form.Field{
		{
			Name:         FieldFullName,
			Label:        "Full Name",
			Placeholder:  "Jane Doe",
			InputType:    "text",
			AutoComplete: "name",
			MaxLength:    maxTextLength,
			Sanitize:     SanitizeName,
			Rules:        fullNameRules,
		},
		{
			Name:         FieldEmail,
			Label:        "Email",
			Placeholder:  "jane@example.com",
			InputType:    "email",
			InputMode:    "email",
			AutoComplete: "email",
			MaxLength:    maxTextLength,
			Sanitize:     SanitizeEmail,
			Rules:        emailRules,
		},
		{
			Name:         FieldPhoneNumber,
			Label:        "Phone Number",
			Placeholder:  "5551234567",
			InputType:    "tel",
			InputMode:    "numeric",
			AutoComplete: "tel-national",
			MaxLength:    phoneMaxDigits,
			Sanitize:     SanitizePhone,
			Rules:        phoneRules,
		},
		{
			Name:         FieldPassword,
			Label:        "Password",
			Placeholder:  "••••••••",
			InputType:    "password",
			AutoComplete: "new-password",
			MaxLength:    maxTextLength,
			Sanitize:     SanitizePassword,
			Rules:        passwordRules,
		},
	}
}

// NewForm returns an empty signup form.
func NewForm() *form.State {
	return form.New(Fields()...)
}
