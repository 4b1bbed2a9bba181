package obs

import (
	"context"
	"log"
	"time"
)

type ctxKey struct{}

// WithRequestID attaches the id that Time prefixes to its log lines.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// Time starts a clock for op. Defer the result with the address of the
// caller's named error so failures are logged alongside the duration:
//
//	defer obs.Time(ctx, "boards.Get")(&err)
func Time(ctx context.Context, op string) func(errp *error) {
	began := time.Now()
	id := RequestID(ctx)

	return func(errp *error) {
		took := time.Since(began).Round(time.Microsecond)
		if errp == nil || *errp == nil {
			log.Printf("req_id=%s op=%s took=%s", id, op, took)
			return
		}
		log.Printf("req_id=%s op=%s took=%s err=%q", id, op, took, (*errp).Error())
	}
}
