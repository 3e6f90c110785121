package registration

import "context"

// Level of a Notification.
type Level string

const (
	LevelError   Level = "error"
	LevelSuccess Level = "success"
)

// FailureMessage is the only text shown when a submission fails.
const FailureMessage = "Signup failed!"

// Notification is a transient message for the user.
type Notification struct {
	Level   Level
	Message string
}

// Notifier delivers notifications to whatever surface the view uses.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, n Notification)

func (f NotifierFunc) Notify(ctx context.Context, n Notification) {
	f(ctx, n)
}

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, Notification) {}
