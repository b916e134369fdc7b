package logging

import (
	"context"
	"fmt"
	"time"
)

type spanAttrsKey struct{}

// errTruncate bounds the err attribute on span end lines.
const errTruncate = 64

// Span implements the start/end log pattern shared by commands, handlers,
// use cases and remote calls.
//
// Usage:
//
//	ctx, end := logging.Span(ctx, "BORK", "DeployRegion", "fqdn", fqdn)
//	defer func() { end(err) }()
//
// Log message format:
//   - Start:   <prefix>:<operation>/S
//   - Success: <prefix>:<operation>/EOK   (err, elapsed)
//   - Failure: <prefix>:<operation>/EFAIL (err, elapsed), logged at WARN
//
// The returned context carries a logger with kv attached. Pairs an enclosing
// span already attached with the same value are not repeated.
func Span(ctx context.Context, prefix, operation string, kv ...any) (context.Context, func(err error)) {
	startAt := time.Now()
	logger := FromContext(ctx)
	if kv = newAttrs(ctx, kv); len(kv) > 0 {
		logger = logger.With(kv...)
		ctx = withAttrs(ctx, kv)
	}
	ctx = WithLogger(ctx, logger)
	name := prefix + ":" + operation

	logger.Info(ctx, name+"/S")

	return ctx, func(err error) {
		elapsed := time.Since(startAt).Seconds()
		if err == nil {
			logger.Info(ctx, name+"/EOK", "err", "", "elapsed", elapsed)
			return
		}
		msg := err.Error()
		if len(msg) > errTruncate {
			msg = msg[:errTruncate] + "..."
		}
		logger.Warn(ctx, name+"/EFAIL", "err", msg, "elapsed", elapsed)
	}
}

// newAttrs drops the key/value pairs of kv already attached by an enclosing span.
func newAttrs(ctx context.Context, kv []any) []any {
	seen, _ := ctx.Value(spanAttrsKey{}).(map[string]string)
	if len(seen) == 0 {
		return kv
	}
	out := make([]any, 0, len(kv))
	for i := 0; i < len(kv); i += 2 {
		if i+1 >= len(kv) {
			out = append(out, kv[i])
			break
		}
		if k, ok := kv[i].(string); ok {
			if v, dup := seen[k]; dup && v == fmt.Sprint(kv[i+1]) {
				continue
			}
		}
		out = append(out, kv[i], kv[i+1])
	}
	return out
}

func withAttrs(ctx context.Context, kv []any) context.Context {
	parent, _ := ctx.Value(spanAttrsKey{}).(map[string]string)
	attrs := make(map[string]string, len(parent)+len(kv)/2)
	for k, v := range parent {
		attrs[k] = v
	}
	for i := 0; i+1 < len(kv); i += 2 {
		if k, ok := kv[i].(string); ok {
			attrs[k] = fmt.Sprint(kv[i+1])
		}
	}
	return context.WithValue(ctx, spanAttrsKey{}, attrs)
}
