package roles

import (
	"fmt"
	"strings"

	"github.com/hweijian/ghostgame-go/internal/dependencies/random"
	"github.com/hweijian/ghostgame-go/internal/model"
)

// Assignment is the outcome of dealing roles for one round
type Assignment struct {
	// Roles maps every member to their dealt role
	Roles map[model.Username]model.Role

	// TurnOrder is a permutation of all members; the ghost sits at their
	// requested position (clamped to the sequence length)
	TurnOrder []model.Username

	// Seq is the rendered turn order, one "<i>. <username>" line per player
	Seq string

	// Theme categories for the round, taken from one non-ghost player's
	// join preferences
	ThemeMajor string
	ThemeMinor string

	Ghost model.Username
}

// Engine deals roles and computes the turn order for a room. Pure apart
// from the injected randomness: one deterministic pass per start, no
// retries.
type Engine struct {
	random random.Random
}

// NewEngine creates an Engine drawing from the given randomness source
func NewEngine(random random.Random) *Engine {
	return &Engine{random: random}
}

// Assign deals a role to every player and computes the round's turn order.
// Fails with ErrInsufficientPlayers below 6 players and ErrUnsupportedSize
// above 10; nothing is mutated, players are read only.
func (e *Engine) Assign(players []*model.Player) (*Assignment, error) {
	n := len(players)
	if n < model.MinPlayersToStart {
		return nil, model.ErrInsufficientPlayers
	}

	quotas, err := QuotasFor(n)
	if err != nil {
		return nil, err
	}

	members := make([]model.Username, n)
	byName := make(map[model.Username]*model.Player, n)
	for i, p := range players {
		members[i] = p.Username
		byName[p.Username] = p
	}

	// Role deal: shuffle once, then hand out contiguous blocks of the
	// permutation to each role in display order.
	roleShuffle := append([]model.Username(nil), members...)
	e.shuffle(roleShuffle)

	assigned := make(map[model.Username]model.Role, n)
	var ghost model.Username
	ghostPosition := model.DefaultRequestedPosition
	next := 0
	for _, q := range quotas {
		for i := 0; i < q.Count; i++ {
			username := roleShuffle[next]
			next++
			assigned[username] = q.Role
			if q.Role == model.RoleGhost {
				ghost = username
				ghostPosition = byName[username].RequestedPosition
			}
		}
	}

	// Turn order: an independent shuffle of everyone but the ghost, with
	// the ghost dropped in at their requested 0-based slot. A position past
	// the end clamps to the end rather than erroring, since requested
	// positions are declared before the final player count is known.
	turnOrder := make([]model.Username, 0, n)
	for _, username := range members {
		if username != ghost {
			turnOrder = append(turnOrder, username)
		}
	}
	e.shuffle(turnOrder)

	if ghostPosition < 0 {
		ghostPosition = 0
	}
	if ghostPosition > len(turnOrder) {
		ghostPosition = len(turnOrder)
	}
	turnOrder = append(turnOrder, "")
	copy(turnOrder[ghostPosition+1:], turnOrder[ghostPosition:])
	turnOrder[ghostPosition] = ghost

	theme := e.themePlayer(assigned, byName)

	var seq strings.Builder
	for i, username := range turnOrder {
		fmt.Fprintf(&seq, "%d. %s\n", i+1, username)
	}

	return &Assignment{
		Roles:      assigned,
		TurnOrder:  turnOrder,
		Seq:        seq.String(),
		ThemeMajor: theme.PreferenceMajor,
		ThemeMinor: theme.PreferenceMinor,
		Ghost:      ghost,
	}, nil
}

// themePlayer picks whose preferences become the round theme: the
// major-role player with the lexically lowest username. Any non-ghost
// would do; this choice just has to be stable.
func (e *Engine) themePlayer(assigned map[model.Username]model.Role, byName map[model.Username]*model.Player) *model.Player {
	var theme *model.Player
	for username, role := range assigned {
		if role != model.RoleMajor {
			continue
		}
		if theme == nil || username < theme.Username {
			theme = byName[username]
		}
	}
	// every supported size deals at least three majors
	return theme
}

// shuffle applies an in-place Fisher-Yates permutation
func (e *Engine) shuffle(users []model.Username) {
	for i := len(users) - 1; i > 0; i-- {
		j := e.random.Intn(i + 1)
		users[i], users[j] = users[j], users[i]
	}
}
