package resolve

import (
	"context"
	"fmt"

	apperrors "github.com/louisbranch/resolve-mcp/internal/platform/errors"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// forward runs one call into the application. It is the only place that
// turns raised errors and panics into StatusFailed; accessors never handle
// call errors themselves.
func forward[T any](ctx context.Context, c *Connector, op string, fn func(context.Context) (T, error)) (res Result[T]) {
	ctx, span := c.tracer.Start(ctx, "resolve."+op)
	defer span.End()
	if c.callTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.callTimeout)
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			res = failed[T](c, span, op, fmt.Errorf("panic: %v", r))
		}
		span.SetAttributes(attribute.String("resolve.status", res.Status.String()))
	}()

	v, err := fn(ctx)
	if err != nil {
		return failed[T](c, span, op, err)
	}
	return ok(v)
}

// forward0 is forward for calls that answer nothing.
func forward0(ctx context.Context, c *Connector, op string, fn func(context.Context) error) Result[bool] {
	return forward(ctx, c, op, func(ctx context.Context) (bool, error) {
		if err := fn(ctx); err != nil {
			return false, err
		}
		return true, nil
	})
}

func failed[T any](c *Connector, span trace.Span, op string, cause error) Result[T] {
	err := apperrors.WrapWithMetadata(apperrors.CodeCallFailed, op, map[string]string{"operation": op}, cause)
	span.RecordError(cause)
	span.SetStatus(otelcodes.Error, cause.Error())
	c.logger.Error().Err(cause).Str("operation", op).Msg("application call failed")
	return Result[T]{Status: StatusFailed, Err: err}
}
