package game

import (
	"fmt"
	"io"

	"github.com/iamasit07/connect4-engine/internal/domain"
	"github.com/iamasit07/connect4-engine/internal/service/bot"
)

const (
	ModeBot              = "bot"                // human against a heuristic bot
	ModeFriend           = "friend"             // two humans, perfect hints every turn
	ModePerfect          = "perfect"            // human against the exact solver
	ModeTest             = "test"               // heuristic bot against the exact solver
	ModePerfectVsPerfect = "perfect-vs-perfect" // cached solver against uncached solver
	ModeDemo             = "demo"               // heuristic bot moves first, human second
)

const ErrUnknownMode domain.Error = "unknown mode"

func Modes() []string {
	return []string{ModeBot, ModeFriend, ModePerfect, ModeTest, ModePerfectVsPerfect, ModeDemo}
}

// ModeDeps holds what NewModeMatch wires into players.
type ModeDeps struct {
	Human      domain.MoveStrategy
	BotName    string // heuristic bot, hard when empty
	BotOptions bot.Options
}

// NewModeMatch sets up the players of one of the predefined modes.
func NewModeMatch(mode string, deps ModeDeps, renderer Renderer, out io.Writer) (*Match, error) {
	human := Player{Name: "Player", Strategy: deps.Human, Interactive: true}

	newBot := func(name, label string) (Player, error) {
		s, err := bot.New(name, deps.BotOptions)
		if err != nil {
			return Player{}, err
		}
		return Player{Name: label, Strategy: s}, nil
	}

	botName := deps.BotName
	if botName == "" {
		botName = bot.Hard
	}

	// exact play goes through the solved table when one is configured
	perfect, perfectCached := bot.Perfect, bot.PerfectCached
	if deps.BotOptions.Table != nil {
		perfect, perfectCached = bot.Offline, bot.Offline
	}

	var (
		p1, p2 Player
		hints  domain.MoveStrategy
		err    error
	)
	switch mode {
	case ModeBot:
		p1 = human
		p2, err = newBot(botName, "Bot")
	case ModeFriend:
		p1, p2 = human, human
		p1.Name, p2.Name = "Player 1", "Player 2"
		hints, err = bot.New(perfect, deps.BotOptions)
	case ModePerfect:
		p1 = human
		p2, err = newBot(perfect, "Perfect Bot")
	case ModeTest:
		if p1, err = newBot(botName, "Bot"); err == nil {
			p2, err = newBot(perfect, "Perfect Bot")
		}
	case ModePerfectVsPerfect:
		if p1, err = newBot(perfectCached, "Perfect Bot 1"); err == nil {
			p2, err = newBot(perfect, "Perfect Bot 2")
		}
	case ModeDemo:
		p1, err = newBot(botName, "Bot")
		p2 = human
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
	if err != nil {
		return nil, err
	}

	if (p1.Interactive || p2.Interactive) && deps.Human == nil {
		return nil, fmt.Errorf("mode %q needs a human input", mode)
	}

	m := NewMatch(p1, p2, renderer, out)
	m.Hints = hints
	m.Fallback = bot.NewMedium()
	return m, nil
}
