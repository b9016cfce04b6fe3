package events

import (
	"fmt"

	"mollie-bridge/internal/logger"
	"mollie-bridge/internal/models"
)

// ListenerResponse lets a listener substitute the default checkout
// redirect with its own response.
type ListenerResponse struct {
	StatusCode  int
	RedirectURL string
	Body        string
}

// Listener receives a callback event and may supply a response. Listeners
// are registered once at boot; nil responses fall through to the default.
type Listener func(event *models.CallbackEvent) *ListenerResponse

// Publisher fans the event out to external consumers. Implemented by the
// Kafka producer.
type Publisher interface {
	PublishCallbackEvent(event *models.CallbackEvent) error
}

// Dispatcher notifies in-process listeners and publishes each event
// externally. Exactly one dispatch happens per callback invocation.
type Dispatcher struct {
	listeners []Listener
	publisher Publisher
	log       *logger.Logger
}

func NewDispatcher(publisher Publisher, log *logger.Logger) *Dispatcher {
	return &Dispatcher{
		publisher: publisher,
		log:       log,
	}
}

func (d *Dispatcher) Register(listener Listener) {
	d.listeners = append(d.listeners, listener)
}

// Dispatch publishes the event and runs every registered listener. The
// first non-nil listener response wins; later responses are ignored but
// the listeners still run. Publish failures are logged, never fatal: the
// shopper's redirect must not depend on the broker.
func (d *Dispatcher) Dispatch(event *models.CallbackEvent) *ListenerResponse {
	if d.publisher != nil {
		if err := d.publisher.PublishCallbackEvent(event); err != nil {
			d.log.Error("EVENTS", fmt.Sprintf("Failed to publish %s event: %v", event.Type, err))
		}
	}

	var response *ListenerResponse
	for _, listener := range d.listeners {
		if supplied := listener(event); supplied != nil && response == nil {
			response = supplied
		}
	}

	return response
}
