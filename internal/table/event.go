package table

import "time"

// EventType identifies the kind of message carried by an Event.
type EventType string

const (
	EventGameState     EventType = "game_state"
	EventHandStarting  EventType = "hand_starting"
	EventCommunityCard EventType = "community_card"
	EventActionTaken   EventType = "action_taken"
	EventYourTurn      EventType = "your_turn"
	EventWinner        EventType = "winner"
	EventHandOver      EventType = "hand_over"
	EventGameOver      EventType = "game_over"
	EventChat          EventType = "chat"
	EventPong          EventType = "pong"
)

// PayloadFunc renders an event's payload for one recipient. Returning ok=false
// tells the sink to skip delivery to that recipient entirely (used by
// your_turn, which is only ever sent to the acting seat). Redaction of
// opponent hole cards happens inside the factory, not at the call site, so
// publication itself is the only place a leak could occur.
type PayloadFunc func(recipientID string) (payload any, ok bool)

// Event is a named message paired with a per-recipient payload factory.
type Event struct {
	Type      EventType
	GameID    string
	Timestamp time.Time
	render    PayloadFunc
}

// Render produces the payload for recipientID, or ok=false if this event
// should not be delivered to that recipient.
func (e Event) Render(recipientID string) (payload any, ok bool) {
	if e.render == nil {
		return nil, false
	}
	return e.render(recipientID)
}

// Broadcast builds an Event whose payload is identical for every recipient.
func Broadcast(gameID string, typ EventType, payload any) Event {
	return Event{
		Type:      typ,
		GameID:    gameID,
		Timestamp: time.Now(),
		render:    func(string) (any, bool) { return payload, true },
	}
}

// Targeted builds an Event delivered only to a single recipient.
func Targeted(gameID string, typ EventType, recipientID string, payload any) Event {
	return Event{
		Type:      typ,
		GameID:    gameID,
		Timestamp: time.Now(),
		render: func(rid string) (any, bool) {
			if rid != recipientID {
				return nil, false
			}
			return payload, true
		},
	}
}

// PerRecipient builds an Event whose payload is computed fresh for each
// recipient by fn, e.g. to mask a different set of hole cards for each
// viewer of a game_state snapshot.
func PerRecipient(gameID string, typ EventType, fn func(recipientID string) any) Event {
	return Event{
		Type:      typ,
		GameID:    gameID,
		Timestamp: time.Now(),
		render: func(rid string) (any, bool) {
			return fn(rid), true
		},
	}
}

// GameStatePayload renders the full game_state event payload for viewerID,
// with opponent hole cards masked unless revealShowdown is true and that
// opponent's seat reached showdown without folding.
func GameStatePayload(g *GameState, viewerID string, revealShowdown bool) GameStateView {
	return g.Render(viewerID, revealShowdown)
}

// YourTurnPayload is the payload carried by a your_turn event.
type YourTurnPayload struct {
	PlayerID     string            `json:"player_id"`
	ValidActions ValidActionsPayload `json:"valid_actions"`
}

// ValidActionsPayload is the wire form of a betting round's valid actions,
// defined here (rather than in internal/betting) so internal/table has no
// import-cycle dependency on the betting package.
type ValidActionsPayload struct {
	CanCheck   bool `json:"can_check"`
	CallAmount int  `json:"call_amount"`
	MinRaise   int  `json:"min_raise"`
	MaxRaise   int  `json:"max_raise"`
	CanRaise   bool `json:"can_raise"`
}

// ActionTakenPayload is broadcast after every applied action.
type ActionTakenPayload struct {
	PlayerID string `json:"player_id"`
	Action   string `json:"action"`
	Amount   int    `json:"amount"`
	Pot      int    `json:"pot"`
}

// CommunityCardPayload is broadcast when the flop, turn, or river is dealt.
type CommunityCardPayload struct {
	Street string   `json:"street"`
	Cards  []string `json:"cards"`
	Board  []string `json:"board"`
}

// WinnerEntry describes one seat's award from one side pot.
type WinnerEntry struct {
	PlayerID  string   `json:"player_id"`
	Amount    int      `json:"amount"`
	HoleCards []string `json:"hole_cards,omitempty"`
	HandRank  string   `json:"hand_rank,omitempty"`
}

// WinnerPayload is broadcast once at showdown, listing every award from
// every side pot, or once for the sole survivor when every other seat folds.
type WinnerPayload struct {
	PotAmount int           `json:"pot_amount"`
	Winners   []WinnerEntry `json:"winners"`
}

// HandOverPayload is broadcast at the end of every hand.
type HandOverPayload struct {
	HandNumber int `json:"hand_number"`
}

// GameOverPayload is broadcast when fewer than two seats retain chips.
type GameOverPayload struct {
	GameID string `json:"game_id"`
}
