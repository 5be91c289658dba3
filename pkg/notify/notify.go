// Package notify delivers best-effort local notifications.
package notify

import "fmt"

type Permission int

const (
	Denied Permission = iota
	Granted
)

func (p Permission) String() string {
	if p == Granted {
		return "granted"
	}
	return "denied"
}

// Dispatcher sends fire-and-forget notifications. Send must never block the
// caller on delivery and must be a silent no-op when permission is denied.
type Dispatcher interface {
	RequestPermission() Permission
	Send(title, body string)
}

// Error reports a failed delivery. It is only ever logged.
type Error struct {
	Title string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("notification %q failed: %v", e.Title, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Noop drops every notification.
type Noop struct{}

func (Noop) RequestPermission() Permission { return Denied }
func (Noop) Send(string, string)           {}
