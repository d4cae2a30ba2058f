// Package poller implements the pull-based sync loop that keeps a
// player's view of a room current. There is no push channel; clients
// converge by re-reading state on a fixed cadence, and the poller is
// that cadence plus change detection so callbacks only fire on real
// transitions.
package poller

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Rohit1301k/dareroom/internal/model"
	"github.com/Rohit1301k/dareroom/internal/service"
	"go.uber.org/zap"
)

// Events are the callbacks a poller fires. Nil callbacks are skipped.
// Callbacks run on the poller goroutine, so they must not block for
// long or the cadence drifts.
type Events struct {
	// OnState fires when the derived game state changes: phase
	// transitions, turn handoffs, question swaps, room closure.
	OnState func(state *service.GameState)

	// OnRoster fires when the set of active players changes.
	OnRoster func(players []*model.Player)

	// OnMessages fires with only the messages appended since the
	// previous delivery.
	OnMessages func(msgs []*model.Message)

	// OnTyping fires when the set of typing nicknames changes,
	// including the transition to nobody typing.
	OnTyping func(nicknames []string)

	// OnError fires on a failed poll. The loop keeps running; a
	// transient store error must not kill the sync.
	OnError func(err error)
}

// Poller drives the sync loop for one player in one room.
type Poller struct {
	games    *service.GameService
	messages *service.MessageService
	presence *service.PresenceService

	code     string
	playerID string

	pollInterval   time.Duration
	typingInterval time.Duration

	events Events
	logger *zap.Logger

	// change-detection state, touched only by the Run goroutine
	lastMessageSeq int64
	lastState      string
	lastRoster     string
	lastTyping     string
}

func New(
	games *service.GameService,
	messages *service.MessageService,
	presence *service.PresenceService,
	code, playerID string,
	pollInterval, typingInterval time.Duration,
	events Events,
	logger *zap.Logger,
) *Poller {
	return &Poller{
		games:          games,
		messages:       messages,
		presence:       presence,
		code:           code,
		playerID:       playerID,
		pollInterval:   pollInterval,
		typingInterval: typingInterval,
		events:         events,
		logger:         logger,
	}
}

// Run polls until ctx is cancelled. The first full poll happens
// immediately so a joining player sees the room without waiting one
// interval.
func (p *Poller) Run(ctx context.Context) {
	pollTicker := time.NewTicker(p.pollInterval)
	defer pollTicker.Stop()
	typingTicker := time.NewTicker(p.typingInterval)
	defer typingTicker.Stop()

	p.poll(ctx)
	p.pollTyping(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-pollTicker.C:
			p.poll(ctx)
		case <-typingTicker.C:
			p.pollTyping(ctx)
		}
	}
}

// poll runs one full sync pass: state, roster and message deltas.
func (p *Poller) poll(ctx context.Context) {
	state, err := p.games.State(ctx, p.code)
	if err != nil {
		p.fail(err)
		return
	}

	if fp := stateFingerprint(state); fp != p.lastState {
		p.lastState = fp
		if p.events.OnState != nil {
			p.events.OnState(state)
		}
	}
	if fp := rosterFingerprint(state.ActivePlayers); fp != p.lastRoster {
		p.lastRoster = fp
		if p.events.OnRoster != nil {
			p.events.OnRoster(state.ActivePlayers)
		}
	}

	msgs, err := p.messages.List(ctx, p.code, p.lastMessageSeq)
	if err != nil {
		p.fail(err)
		return
	}
	if len(msgs) > 0 {
		p.lastMessageSeq = msgs[len(msgs)-1].Seq
		if p.events.OnMessages != nil {
			p.events.OnMessages(msgs)
		}
	}
}

// pollTyping runs on the faster cadence so the indicator feels live.
func (p *Poller) pollTyping(ctx context.Context) {
	nicknames, err := p.presence.Typing(ctx, p.code, p.playerID)
	if err != nil {
		p.fail(err)
		return
	}
	if fp := strings.Join(nicknames, "\x00"); fp != p.lastTyping {
		p.lastTyping = fp
		if p.events.OnTyping != nil {
			p.events.OnTyping(nicknames)
		}
	}
}

func (p *Poller) fail(err error) {
	p.logger.Warn("Poll failed", zap.String("room_id", p.code), zap.Error(err))
	if p.events.OnError != nil {
		p.events.OnError(err)
	}
}

// stateFingerprint collapses the fields that matter for a state
// transition into a comparable string. Message traffic and typing
// flags deliberately stay out of it.
func stateFingerprint(state *service.GameState) string {
	var turnID string
	var turnType model.TurnType
	var question string
	if state.Turn != nil {
		turnID = state.Turn.ID
		turnType = state.Turn.Type
		question = state.Turn.Question
	}
	return fmt.Sprintf("%s|%t|%s|%s|%s|%s",
		state.Phase, state.Room.Active, turnID, turnType, question, currentPlayerID(state))
}

func currentPlayerID(state *service.GameState) string {
	if state.CurrentPlayer == nil {
		return ""
	}
	return state.CurrentPlayer.ID
}

func rosterFingerprint(players []*model.Player) string {
	ids := make([]string, len(players))
	for i, p := range players {
		ids[i] = p.ID
	}
	return strings.Join(ids, "\x00")
}
