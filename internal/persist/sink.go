package persist

import (
	"context"

	"dourado/internal/game/match"
)

// Sink receives the summary of every finished match. Implementations
// must tolerate concurrent appends from matches finishing at the same
// time.
type Sink interface {
	Append(ctx context.Context, res match.Result) error
}

// Multi fans one result out to several sinks. The first error wins but
// every sink still gets the append.
type Multi []Sink

func (m Multi) Append(ctx context.Context, res match.Result) error {
	var first error
	for _, s := range m {
		if err := s.Append(ctx, res); err != nil && first == nil {
			first = err
		}
	}
	return first
}
