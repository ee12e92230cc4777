package persist

import (
	"context"
	"database/sql"
	"strings"

	"dourado/internal/game/match"
)

// PostgresSink writes finished matches into the matches table.
type PostgresSink struct {
	db *sql.DB
}

func NewPostgresSink(db *sql.DB) *PostgresSink {
	return &PostgresSink{db: db}
}

// EnsureSchema creates the matches table if it does not exist yet.
func (s *PostgresSink) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS matches (
			id          BIGSERIAL PRIMARY KEY,
			variant     TEXT NOT NULL,
			players     TEXT NOT NULL,
			history     TEXT NOT NULL,
			winner_team INT  NOT NULL,
			score_team1 INT  NOT NULL,
			score_team2 INT  NOT NULL,
			trump_suit  TEXT NOT NULL,
			trump_card  TEXT NOT NULL,
			started_at  TIMESTAMPTZ NOT NULL,
			ended_at    TIMESTAMPTZ NOT NULL
		)`)
	return err
}

func (s *PostgresSink) Append(ctx context.Context, res match.Result) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO matches
			(variant, players, history, winner_team, score_team1, score_team2,
			 trump_suit, trump_card, started_at, ended_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		string(res.Variant),
		strings.Join(res.Players, ";"),
		strings.Join(res.History, "\n"),
		res.WinnerTeam,
		res.Scores[0],
		res.Scores[1],
		res.TrumpSuit.String(),
		res.TrumpCard.String(),
		res.StartedAt,
		res.EndedAt,
	)
	return err
}
