package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

// LoggingInterceptor returns a Connect interceptor that logs every RPC call
// with its procedure, session ID, duration and result code.
//
// Rejected ledger operations (bad input, unknown ids, wrong state) are part of
// normal use and log at INFO; auth failures log at WARN; anything else is an
// ERROR. Successful calls log at DEBUG. Install it after RequireSession so
// the session ID is in the context.
func LoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			resp, err := next(ctx, req)

			attrs := []slog.Attr{
				slog.String("procedure", req.Spec().Procedure),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()),
			}
			if sessionID := GetSessionID(ctx); sessionID != "" {
				attrs = append(attrs, slog.String("session_id", sessionID))
			}

			if err == nil {
				slog.LogAttrs(ctx, slog.LevelDebug, "RPC ok", attrs...)
				return resp, nil
			}

			code := connect.CodeOf(err)
			attrs = append(attrs,
				slog.String("code", code.String()),
				slog.String("error", errorMessage(err)),
			)
			slog.LogAttrs(ctx, levelForCode(code), "RPC error", attrs...)
			return resp, err
		}
	}
}

func levelForCode(code connect.Code) slog.Level {
	switch code {
	case connect.CodeInvalidArgument, connect.CodeNotFound, connect.CodeFailedPrecondition:
		return slog.LevelInfo
	case connect.CodeUnauthenticated, connect.CodeCanceled, connect.CodeDeadlineExceeded:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

func errorMessage(err error) string {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr.Message()
	}
	return err.Error()
}
