package ranking

import "context"

// Entry is one row of the cross-match win tally.
type Entry struct {
	Name string `json:"name"`
	Wins int64  `json:"wins"`
}

// Repo stores the process-wide win tally. Written only when a match
// ends, read on demand by any connected seat, so implementations guard
// themselves.
type Repo interface {
	// AddWin increments a player's win count.
	AddWin(ctx context.Context, name string) error
	// Wins returns one player's count (0 if unknown).
	Wins(ctx context.Context, name string) (int64, error)
	// Top returns up to n entries ordered by wins descending.
	Top(ctx context.Context, n int) ([]Entry, error)
}

// Ledger wraps a Repo with the match-end bookkeeping.
type Ledger struct {
	repo Repo
}

func NewLedger(repo Repo) *Ledger {
	return &Ledger{repo: repo}
}

// RecordWin tallies a finished match for every player on the winning
// team.
func (l *Ledger) RecordWin(ctx context.Context, winners []string) error {
	for _, name := range winners {
		if err := l.repo.AddWin(ctx, name); err != nil {
			return err
		}
	}
	return nil
}

func (l *Ledger) Top(ctx context.Context, n int) ([]Entry, error) {
	return l.repo.Top(ctx, n)
}

func (l *Ledger) Wins(ctx context.Context, name string) (int64, error) {
	return l.repo.Wins(ctx, name)
}
