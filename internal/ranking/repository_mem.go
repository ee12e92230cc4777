package ranking

import (
	"context"
	"sort"
	"sync"
)

type memRepo struct {
	mu   sync.Mutex
	wins map[string]int64
}

// NewMemoryRepo keeps the tally in process memory. Fine for tests and
// single-node runs; wins are lost on restart.
func NewMemoryRepo() Repo {
	return &memRepo{wins: make(map[string]int64)}
}

func (m *memRepo) AddWin(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.wins[name]++
	return nil
}

func (m *memRepo) Wins(ctx context.Context, name string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.wins[name], nil
}

func (m *memRepo) Top(ctx context.Context, n int) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Entry, 0, len(m.wins))
	for name, w := range m.wins {
		out = append(out, Entry{Name: name, Wins: w})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Wins != out[j].Wins {
			return out[i].Wins > out[j].Wins
		}
		return out[i].Name < out[j].Name
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out, nil
}
