package logger

import (
	"log/slog"
)

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// NotificationID records a scheduled-notification identifier under the key
// "notification_id". If id is empty, it returns an empty Attr.
func NotificationID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("notification_id", id)
}

// AlertID records an alert identifier under the key "alert_id".
// If id is empty, it returns an empty Attr.
func AlertID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("alert_id", id)
}

// ProductID records a product identifier under the key "product_id".
// If id is empty, it returns an empty Attr.
func ProductID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("product_id", id)
}
