package signup

//go:generate templ generate -f views.templ

import (
	"encoding/json"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/signupkit/handler"
	"github.com/dmitrymomot/signupkit/svc/registration"
)

// Element ids the views and handlers agree on.
const (
	FormID           = "signup-form"
	ToastContainerID = "toast-container"
	SubmitButtonID   = "signup-submit"
)

// Client signal names besides the field values.
const (
	SignalCanSubmit    = "canSubmit"
	SignalSubmitting   = "submitting"
	signalShowPassword = "_showPassword" // local, never sent to the server
)

const datastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.5/bundles/datastar.js"

// ErrorSlotID returns the id of the inline error element of a field.
func ErrorSlotID(field string) string {
	return field + "-error"
}

// FieldParams is one rendered input.
type FieldParams struct {
	Name         string
	Label        string
	Placeholder  string
	InputType    string
	InputMode    string
	AutoComplete string
	MaxLength    int
	Value        string
	Error        string
	ValidateURL  string
}

// FormParams contains data for rendering the signup form.
type FormParams struct {
	Action    string
	LoginURL  string
	Fields    []FieldParams
	CanSubmit bool
}

// PageParams contains data for rendering the signup page.
type PageParams struct {
	Title string
	Form  FormParams
	Toast *ToastParams
}

// FieldErrorParams contains data for rendering an inline field error.
type FieldErrorParams struct {
	Field   string
	Message string
}

// ToastParams contains data for rendering a toast.
type ToastParams struct {
	Level   registration.Level
	Message string
}

// Views renders the signup screens. Nil members fall back to DefaultViews.
type Views struct {
	Page       func(PageParams) templ.Component
	Form       func(FormParams) templ.Component
	FieldError func(FieldErrorParams) templ.Component
	Toast      func(ToastParams) templ.Component

	ErrorPage  func(handler.ErrorPageParams) templ.Component
	ErrorToast func(handler.ErrorToastParams) templ.Component
}

// DefaultViews returns the templ views wired for datastar.
func DefaultViews() *Views {
	v := &Views{
		FieldError: fieldErrorView,
		Toast:      toastView,
		ErrorPage:  errorPageView,
		ErrorToast: errorToastView,
	}
	v.Form = func(p FormParams) templ.Component { return formView(v, p) }
	v.Page = func(p PageParams) templ.Component { return pageView(v, p) }
	return v
}

func (v *Views) withDefaults() *Views {
	d := DefaultViews()
	if v == nil {
		return d
	}
	out := *v
	if out.FieldError == nil {
		out.FieldError = d.FieldError
	}
	if out.Toast == nil {
		out.Toast = d.Toast
	}
	if out.ErrorPage == nil {
		out.ErrorPage = d.ErrorPage
	}
	if out.ErrorToast == nil {
		out.ErrorToast = d.ErrorToast
	}
	// Form and Page render through the final set so overrides compose.
	if out.Form == nil {
		out.Form = func(p FormParams) templ.Component { return formView(&out, p) }
	}
	if out.Page == nil {
		out.Page = func(p PageParams) templ.Component { return pageView(&out, p) }
	}
	return &out
}

// ErrorHandlerConfig returns the error handler views for this module.
func (v *Views) ErrorHandlerConfig() handler.ErrorHandlerConfig {
	v = v.withDefaults()
	return handler.ErrorHandlerConfig{
		ErrorPage:   v.ErrorPage,
		ErrorToast:  v.ErrorToast,
		ToastTarget: "#" + ToastContainerID,
		ToastMode:   handler.PatchAppend,
	}
}

func (p PageParams) title() string {
	if p.Title == "" {
		return "Sign up"
	}
	return p.Title
}

func (f FieldParams) inputType() string {
	if f.InputType == "" {
		return "text"
	}
	return f.InputType
}

func (f FieldParams) isPassword() bool {
	return f.InputType == "password"
}

func (p ToastParams) level() string {
	if p.Level == "" {
		return string(registration.LevelError)
	}
	return string(p.Level)
}

// Datastar expressions bound in the form markup.
const (
	submitDisabled     = "!$" + SignalCanSubmit + " || $" + SignalSubmitting
	passwordInputType  = "$" + signalShowPassword + " ? 'text' : 'password'"
	togglePassword     = "$" + signalShowPassword + " = !$" + signalShowPassword
	passwordToggleText = "$" + signalShowPassword + " ? 'Hide' : 'Show'"
)

func postAction(url string) string {
	return "@post('" + url + "')"
}

// formSignals is the initial client state. Password is never echoed back.
func formSignals(p FormParams) string {
	signals := map[string]any{
		SignalCanSubmit:    p.CanSubmit,
		SignalSubmitting:   false,
		signalShowPassword: false,
	}
	for _, f := range p.Fields {
		if f.isPassword() {
			signals[f.Name] = ""
			continue
		}
		signals[f.Name] = f.Value
	}
	b, _ := json.Marshal(signals)
	return string(b)
}
