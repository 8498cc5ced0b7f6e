package startup_logrus

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"
)

// Middleware may rewrite a record before it is handled. Returning false drops the record.
type Middleware func(context.Context, slog.Record) (slog.Record, bool, error)

type middlewareHandler struct {
	next       slog.Handler
	middleware Middleware
}

// Wrap applies the middleware to every record handled by handler, including
// records of handlers derived through WithAttrs and WithGroup.
func Wrap(handler slog.Handler, middleware Middleware) slog.Handler {
	return middlewareHandler{next: handler, middleware: middleware}
}

func (h middlewareHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h middlewareHandler) Handle(ctx context.Context, record slog.Record) error {
	record, keep, err := h.middleware(ctx, record)
	if err != nil {
		return errors.WithMessage(err, "apply middleware")
	}

	if !keep {
		return nil
	}

	return h.next.Handle(ctx, record)
}

func (h middlewareHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return Wrap(h.next.WithAttrs(attrs), h.middleware)
}

func (h middlewareHandler) WithGroup(name string) slog.Handler {
	return Wrap(h.next.WithGroup(name), h.middleware)
}
