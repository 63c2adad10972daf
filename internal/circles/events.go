package circles

type EventType int

const (
	EventWallHit EventType = iota
	EventContact
)

// Wall is a bit set of the arena edges a body touched in one tick.
type Wall uint8

const (
	WallRight Wall = 1 << iota
	WallLeft
	WallTop
	WallBottom
)

type Event struct {
	Type EventType
	A, B int  // body indices; B is -1 for wall hits
	Wall Wall // set for EventWallHit
	X, Y float32
	// Speed is the mover's speed for wall hits and the summed speed of the
	// pair for contacts, both measured after the response.
	Speed float32
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

// Emit is a no-op on a nil bus so the step loop can publish unconditionally.
func (eb *EventBus) Emit(e Event) {
	if eb == nil {
		return
	}
	for _, fn := range eb.handlers[e.Type] {
		fn(e)
	}
}
