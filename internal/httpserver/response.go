package httpserver

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/service"
)

const (
	msgDatabaseError = "Database error"
	msgInvalidBody   = "Invalid request body"
)

// Every answer is HTTP 200; success is carried in the body.
func ok(c echo.Context, message string, payload echo.Map) error {
	body := echo.Map{"success": true}
	if message != "" {
		body["message"] = message
	}
	for k, v := range payload {
		body[k] = v
	}
	return c.JSON(http.StatusOK, body)
}

func fail(c echo.Context, message string) error {
	return c.JSON(http.StatusOK, echo.Map{"success": false, "message": message})
}

type errMessage struct {
	err error
	msg string
}

// failWith answers with the message of the first matching error. Quota
// errors speak for themselves; anything unmatched is a store failure whose
// detail only goes to the log.
func failWith(c echo.Context, l *slog.Logger, event string, err error, known ...errMessage) error {
	for _, k := range known {
		if errors.Is(err, k.err) {
			l.Warn(event, "reason", k.msg, "error", err)
			return fail(c, k.msg)
		}
	}

	var quota *service.QuotaError
	if errors.As(err, &quota) {
		l.Warn(event, "reason", "category full", "category", quota.Category, "limit", quota.Limit)
		return fail(c, quota.Error())
	}

	l.Error(event, "reason", "store failure", "error", err)
	return fail(c, msgDatabaseError)
}

func bindFailed(c echo.Context, l *slog.Logger, event string, err error) error {
	l.Warn(event, "reason", "invalid body", "error", err)
	return fail(c, msgInvalidBody)
}
