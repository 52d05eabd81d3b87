package core

// System internal event codes. Application should use codes beyond 255.
type SystemEventCode int

const (
	// Shuts the application down on the next frame.
	EVENT_CODE_APPLICATION_QUIT SystemEventCode = 0x01

	// Keyboard key pressed.
	/* Context usage:
	 * data.(*KeyEvent).KeyCode
	 */
	EVENT_CODE_KEY_PRESSED SystemEventCode = 0x02

	// Keyboard key released.
	/* Context usage:
	 * data.(*KeyEvent).KeyCode
	 */
	EVENT_CODE_KEY_RELEASED SystemEventCode = 0x03

	// Resized/resolution changed from the OS.
	/* Context usage:
	 * data.(*SystemEvent).WindowWidth / WindowHeight
	 */
	EVENT_CODE_RESIZED SystemEventCode = 0x08

	// An asset on disk was created or modified.
	/* Context usage:
	 * data.(*AssetEvent).Path
	 */
	EVENT_CODE_ASSET_CHANGED SystemEventCode = 0x09

	MAX_EVENT_CODE SystemEventCode = 0xFF
)

// The number of events that can wait in the posted queue between two frames.
const MAX_PENDING_EVENTS = 256

type EventContext struct {
	Type SystemEventCode
	Data interface{}
}

type KeyEvent struct {
	KeyCode KeyCode
}

type SystemEvent struct {
	WindowWidth  uint32
	WindowHeight uint32
}

type AssetEvent struct {
	Path string
}

// Should return true if handled.
type FnOnEvent func(context EventContext) bool

type registeredEvent struct {
	listener interface{}
	callback FnOnEvent
}

// EventSystem dispatches events on the frame goroutine. Fire delivers immediately;
// Post is safe to call from any goroutine and is delivered by the next Dispatch.
type EventSystem struct {
	registered map[SystemEventCode][]*registeredEvent
	pending    chan EventContext
}

func NewEventSystem() *EventSystem {
	return &EventSystem{
		registered: make(map[SystemEventCode][]*registeredEvent),
		pending:    make(chan EventContext, MAX_PENDING_EVENTS),
	}
}

/**
 * Register to listen for when events are sent with the provided code. Events with duplicate
 * listeners will not be registered again and will cause this to return false.
 */
func (es *EventSystem) Register(code SystemEventCode, listener interface{}, onEvent FnOnEvent) bool {
	for _, e := range es.registered[code] {
		if e.listener == listener {
			LogWarn("listener already registered for event code %d", code)
			return false
		}
	}
	es.registered[code] = append(es.registered[code], &registeredEvent{
		listener: listener,
		callback: onEvent,
	})
	return true
}

// Unregister removes the listener for the code. Returns false if it was not registered.
func (es *EventSystem) Unregister(code SystemEventCode, listener interface{}) bool {
	events := es.registered[code]
	for i, e := range events {
		if e.listener == listener {
			es.registered[code] = append(events[:i], events[i+1:]...)
			return true
		}
	}
	return false
}

/**
 * Fires an event to listeners of the given code. If an event handler returns
 * true, the event is considered handled and is not passed on to any more listeners.
 */
func (es *EventSystem) Fire(context EventContext) bool {
	for _, e := range es.registered[context.Type] {
		if e.callback(context) {
			return true
		}
	}
	return false
}

// Post queues an event for the next Dispatch. Returns false when the queue is full.
func (es *EventSystem) Post(context EventContext) bool {
	select {
	case es.pending <- context:
		return true
	default:
		LogWarn("event queue full, dropping event code %d", context.Type)
		return false
	}
}

// Dispatch fires every posted event. Returns the number of events delivered.
func (es *EventSystem) Dispatch() int {
	n := 0
	for {
		select {
		case context := <-es.pending:
			es.Fire(context)
			n++
		default:
			return n
		}
	}
}

func (es *EventSystem) Shutdown() error {
	es.registered = make(map[SystemEventCode][]*registeredEvent)
	return nil
}
