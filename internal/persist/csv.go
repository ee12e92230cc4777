package persist

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"dourado/internal/game/match"
)

// CSVSink appends one row per finished match to a local file. The mutex
// keeps rows from different matches from interleaving.
type CSVSink struct {
	mu   sync.Mutex
	path string
}

func NewCSVSink(path string) *CSVSink {
	return &CSVSink{path: path}
}

var csvHeader = []string{
	"variant", "players", "history", "winner_team",
	"score_team1", "score_team2", "trump_suit", "trump_card",
	"started_at", "ended_at",
}

func (s *CSVSink) Append(ctx context.Context, res match.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(csvHeader); err != nil {
			return err
		}
	}

	row := []string{
		string(res.Variant),
		strings.Join(res.Players, ";"),
		strings.Join(res.History, " | "),
		fmt.Sprint(res.WinnerTeam),
		fmt.Sprint(res.Scores[0]),
		fmt.Sprint(res.Scores[1]),
		res.TrumpSuit.String(),
		res.TrumpCard.String(),
		res.StartedAt.Format(time.RFC3339),
		res.EndedAt.Format(time.RFC3339),
	}
	if err := w.Write(row); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
