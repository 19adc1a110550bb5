package logger

import "log/slog"

// Error records a single error under the key "error". Nil errors produce
// an empty attribute.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records which subsystem emitted the log line.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// AccountID records the account's internal identifier.
func AccountID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("account_id", id)
}

// Kind records the principal kind (institute or student).
func Kind(kind any) slog.Attr {
	if kind == nil {
		return slog.Attr{}
	}
	return slog.Any("kind", kind)
}

// RequestID records the request correlation identifier.
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}
