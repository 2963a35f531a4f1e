// Package page holds one controller per page of the travel app. Controllers
// keep page state in the session store, read page data from a datasource
// and report user-facing messages as notices.
package page

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/neexbeast/travelviz/internal/activity"
	"github.com/neexbeast/travelviz/internal/datasource"
	"github.com/neexbeast/travelviz/internal/storage"
)

// Level is the severity of a notice.
type Level string

const (
	Success Level = "success"
	Info    Level = "info"
	Warning Level = "warning"
	Failed  Level = "error"
)

// Notice is a short message shown to the user.
type Notice struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

func notice(l Level, format string, args ...any) Notice {
	return Notice{Level: l, Message: fmt.Sprintf(format, args...)}
}

// Sessions defines the session operations needed by controllers.
type Sessions interface {
	Get(ctx context.Context, sid, field string, dst any) (bool, error)
	Set(ctx context.Context, sid, field string, v any) error
	Delete(ctx context.Context, sid string, fields ...string) error
}

// ActivityLog defines the page view and event log needed by controllers.
type ActivityLog interface {
	Append(ctx context.Context, cid string, k activity.Kind, e activity.Entry) error
	List(ctx context.Context, cid string, k activity.Kind) ([]activity.Entry, error)
	Clear(ctx context.Context, cid string) error
}

// PreferenceRepo defines the persistent per-client storage needed by controllers.
type PreferenceRepo interface {
	GetPreferences(ctx context.Context, clientID string) (*storage.Preferences, error)
	UpsertDisplay(ctx context.Context, clientID, theme, language string) error
	SaveLastUpload(ctx context.Context, clientID string, lu storage.LastUpload) error
}

// ValidationError is a request the user has to correct.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NotFoundError reports a missing item.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// Failure is a data source failure together with the message shown to the user.
type Failure struct {
	Message string
	Err     error
}

func (e *Failure) Error() string { return e.Message + ": " + e.Err.Error() }
func (e *Failure) Unwrap() error { return e.Err }

func fail(msg string, err error) error { return &Failure{Message: msg, Err: err} }

// modeNotices returns the demo mode warning when src serves fixed data.
func modeNotices(src datasource.Source) []Notice {
	if src.Mode() == datasource.ModeDemo {
		return []Notice{{Level: Warning, Message: datasource.DemoNotice}}
	}
	return nil
}

// cached reads key from the session, or loads and stores it when absent or
// when refresh is set. A failing session store degrades to loading.
func cached[T any](ctx context.Context, s Sessions, log *slog.Logger, sid, key string, refresh bool, load func(context.Context) (T, error)) (T, error) {
	var v T
	if !refresh {
		ok, err := s.Get(ctx, sid, key, &v)
		if err != nil {
			log.Warn("session read failed", "key", key, "err", err)
		}
		if ok {
			return v, nil
		}
	}

	v, err := load(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	if err := s.Set(ctx, sid, key, v); err != nil {
		log.Warn("session write failed", "key", key, "err", err)
	}
	return v, nil
}

// IsUserError reports whether err is a validation or lookup failure the
// user caused, as opposed to a failure of the service.
func IsUserError(err error) bool {
	var v *ValidationError
	var nf *NotFoundError
	return errors.As(err, &v) || errors.As(err, &nf)
}
