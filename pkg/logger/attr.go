package logger

import "log/slog"

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// UserEmail records the acting user's email under the key "user_email".
func UserEmail(email string) slog.Attr {
	if email == "" {
		return slog.Attr{}
	}
	return slog.String("user_email", email)
}

// Action records an audit action tag under the key "action".
func Action(action string) slog.Attr {
	return slog.String("action", action)
}

// Role records a role name under the key "role".
// If role is nil, it returns an empty Attr.
func Role(role any) slog.Attr {
	if role == nil {
		return slog.Attr{}
	}
	return slog.Any("role", role)
}

// Component creates an attribute identifying the emitting component under
// the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}
