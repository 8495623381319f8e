package combat

// EventKind classifies a battle notification.
type EventKind int

const (
	EventBattleStart EventKind = iota
	EventDiscount
	EventRoundStart
	EventAttack
	EventSkill
	EventItemUsed
	EventItemFailed
	EventInvalidSelection
	EventEmptyResource
	EventRetaliate
	EventDodge
	EventVictory
	EventLevelUp
	EventDefeat
)

var eventKindNames = map[EventKind]string{
	EventBattleStart:      "battle start",
	EventDiscount:         "discount",
	EventRoundStart:       "round start",
	EventAttack:           "attack",
	EventSkill:            "skill",
	EventItemUsed:         "item used",
	EventItemFailed:       "item failed",
	EventInvalidSelection: "invalid selection",
	EventEmptyResource:    "empty resource",
	EventRetaliate:        "retaliate",
	EventDodge:            "dodge",
	EventVictory:          "victory",
	EventLevelUp:          "level up",
	EventDefeat:           "defeat",
}

// String returns a human-readable event kind.
func (k EventKind) String() string {
	if s, ok := eventKindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Event is one structured notification for the presentation layer.
type Event struct {
	Kind  EventKind
	Round int
	Phase Phase
	// Actor and Target are display names; either may be empty.
	Actor  string
	Target string
	// Amount is damage dealt, HP restored, money won or level reached depending on Kind.
	Amount   int
	Critical bool
	// Detail names the skill or item involved, or explains a rejection.
	Detail string
	// Quote is the actor's line for this moment, if they have one.
	Quote string
}

// Presenter renders battle notifications.
type Presenter interface {
	Notify(e Event)
}

// PresenterFunc adapts a function to Presenter.
type PresenterFunc func(Event)

// Notify calls f(e).
func (f PresenterFunc) Notify(e Event) { f(e) }

type nopPresenter struct{}

func (nopPresenter) Notify(Event) {}
