package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/iamasit07/connect4-engine/internal/domain"
	"github.com/iamasit07/connect4-engine/pkg/uid"
)

const (
	ErrStrategyRejected domain.Error = "strategy kept choosing rejected columns"
	ErrMoveTimeout      domain.Error = "strategy ran out of time"
)

const (
	DefaultMaxRejections = 3
	DefaultHintTimeout   = 3 * time.Second
)

// Renderer displays the board after every accepted move.
type Renderer interface {
	Render(view domain.BoardView) error
}

// Player is one side of a match. Interactive players are never timed out
// and may retry rejected columns without limit.
type Player struct {
	Name        string
	Strategy    domain.MoveStrategy
	Interactive bool
}

// Result summarises a finished match.
type Result struct {
	MatchID    string
	Status     domain.GameStatus
	Winner     domain.PlayerID
	WinnerName string
	Reason     string
	Moves      int
	Duration   time.Duration
}

// Match owns the canonical game and drives it to completion, asking each
// player for a column in turn.
type Match struct {
	ID            string
	Players       [2]Player
	Hints         domain.MoveStrategy // suggests a column before interactive turns
	HintTimeout   time.Duration       // 0 lets hints take as long as they need
	MoveTimeout   time.Duration       // 0 lets automated players think forever
	MaxRejections int

	// Fallback answers for an automated player that ran out of time.
	// Without one the match ends with ErrMoveTimeout.
	Fallback domain.MoveStrategy

	game      *domain.Game
	renderer  Renderer
	out       io.Writer
	createdAt time.Time
}

func NewMatch(player1, player2 Player, renderer Renderer, out io.Writer) *Match {
	if out == nil {
		out = io.Discard
	}
	return &Match{
		ID:            uid.GenerateMatchID(),
		Players:       [2]Player{player1, player2},
		HintTimeout:   DefaultHintTimeout,
		MaxRejections: DefaultMaxRejections,
		game:          domain.NewGame(),
		renderer:      renderer,
		out:           out,
		createdAt:     time.Now(),
	}
}

// View exposes the live game read-only.
func (m *Match) View() domain.BoardView {
	return m.game.View()
}

func (m *Match) player(id domain.PlayerID) Player {
	if id == domain.Player2 {
		return m.Players[1]
	}
	return m.Players[0]
}

// Run plays until the game is won or drawn.
func (m *Match) Run(ctx context.Context) (Result, error) {
	log.Info().Str("component", "match").Str("match_id", m.ID).
		Str("player1", m.Players[0].Name).Str("player2", m.Players[1].Name).
		Msg("match started")

	rejections := 0
	for !m.game.IsFinished() {
		if err := ctx.Err(); err != nil {
			return m.result(), err
		}

		turn := m.game.CurrentTurn()
		player := m.player(turn)
		fmt.Fprintf(m.out, "%s Turn\n", player.Name)

		if player.Interactive && m.Hints != nil {
			m.printHint(ctx)
		}

		column, err := m.selectMove(ctx, player)
		if err != nil {
			return m.result(), fmt.Errorf("%s: %w", player.Name, err)
		}

		row, err := m.game.ApplyMove(column)
		if errors.Is(err, domain.ErrColumnFull) || errors.Is(err, domain.ErrColumnOutOfRange) {
			rejections++
			log.Warn().Str("component", "match").Str("match_id", m.ID).Str("player", player.Name).
				Int("column", column).Err(err).Msg("move rejected")
			if player.Interactive {
				if errors.Is(err, domain.ErrColumnFull) {
					fmt.Fprintln(m.out, "Column is already filled")
				} else {
					fmt.Fprintln(m.out, "Invalid Column")
				}
				continue
			}
			if rejections >= m.MaxRejections {
				return m.result(), fmt.Errorf("%s: %w", player.Name, ErrStrategyRejected)
			}
			continue
		}
		if err != nil {
			return m.result(), err
		}
		rejections = 0

		log.Debug().Str("component", "match").Str("match_id", m.ID).Int("player", int(turn)).
			Int("column", column).Int("row", row).Msg("move applied")

		if m.renderer != nil {
			if err := m.renderer.Render(m.game.View()); err != nil {
				return m.result(), fmt.Errorf("render: %w", err)
			}
		}
	}

	result := m.result()
	log.Info().Str("component", "match").Str("match_id", m.ID).Str("reason", result.Reason).
		Str("winner", result.WinnerName).Int("moves", result.Moves).Dur("duration", result.Duration).
		Msg("match finished")
	return result, nil
}

func (m *Match) selectMove(ctx context.Context, player Player) (int, error) {
	if player.Interactive || m.MoveTimeout <= 0 {
		return player.Strategy.SelectMove(ctx, m.game.View())
	}

	moveCtx, cancel := context.WithTimeout(ctx, m.MoveTimeout)
	defer cancel()

	column, err := player.Strategy.SelectMove(moveCtx, m.game.View())
	if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
		if m.Fallback == nil {
			return -1, ErrMoveTimeout
		}
		log.Warn().Str("component", "match").Str("match_id", m.ID).Str("player", player.Name).
			Dur("timeout", m.MoveTimeout).Msg("out of time, using fallback move")
		return m.Fallback.SelectMove(ctx, m.game.View())
	}
	return column, err
}

func (m *Match) printHint(ctx context.Context) {
	hintCtx := ctx
	if m.HintTimeout > 0 {
		var cancel context.CancelFunc
		hintCtx, cancel = context.WithTimeout(ctx, m.HintTimeout)
		defer cancel()
	}

	column, err := m.Hints.SelectMove(hintCtx, m.game.View())
	if err != nil {
		log.Warn().Err(err).Str("component", "match").Str("match_id", m.ID).Msg("no hint available")
		return
	}
	fmt.Fprintf(m.out, "Best move: %d\n", column)
}

func (m *Match) result() Result {
	r := Result{
		MatchID:  m.ID,
		Status:   m.game.Status(),
		Winner:   m.game.Winner(),
		Moves:    m.game.MoveCount(),
		Duration: time.Since(m.createdAt),
	}
	switch r.Status {
	case domain.StatusWon:
		r.Reason = "connect_four"
		r.WinnerName = m.player(r.Winner).Name
	case domain.StatusDraw:
		r.Reason = "draw"
	}
	return r
}
