package game

type EventType int

const (
	EventNotify EventType = iota
	EventLevelUp
	EventAbilityUnlocked
	EventAbilityActivated
	EventAbilityExpired
	EventAchievement
	EventSupernova
)

// Supernova origins carried in Event.Data for EventSupernova.
const (
	NovaAtPoint  = iota // X, Y are the origin
	NovaAtCenter        // origin is the canvas center
)

type Event struct {
	Type EventType
	X, Y float64
	Data int    // level, Ability, Achievement or nova origin, depending on Type
	Text string // user-facing message for EventNotify
}

type EventHandler func(Event)

type EventBus struct {
	handlers map[EventType][]EventHandler
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventType][]EventHandler),
	}
}

func (eb *EventBus) Subscribe(t EventType, fn EventHandler) {
	eb.handlers[t] = append(eb.handlers[t], fn)
}

func (eb *EventBus) Emit(e Event) {
	for _, fn := range eb.handlers[e.Type] {
		fn(e)
	}
}

// Notify emits a user-facing message.
func (eb *EventBus) Notify(text string) {
	eb.Emit(Event{Type: EventNotify, Text: text})
}
