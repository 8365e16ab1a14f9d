// Package ctxutil provides small context helpers shared by the dataset
// and scan pipelines.
package ctxutil

import "context"

// Canceled reports whether ctx is already done, returning its error
// (Canceled or DeadlineExceeded) so callers can bail out at entry
// before starting any network work. While the context is live ctx.Err()
// is nil, so the result can be returned as-is.
func Canceled(ctx context.Context) error {
	return ctx.Err()
}
