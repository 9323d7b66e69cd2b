package notify

import (
	"fmt"
	"log"
)

// Subscriber receives loan lifecycle events.
type Subscriber interface {
	OnLoanEvent(event Event) error
}

// SubscriberFunc adapts a function to the Subscriber interface.
type SubscriberFunc func(event Event) error

func (f SubscriberFunc) OnLoanEvent(event Event) error {
	return f(event)
}

// Dispatcher fans events out to subscribers, synchronously and in
// registration order.
//
// By default each subscriber call is isolated: a panic or error in one
// subscriber is logged and delivery continues to the rest, so a broken
// channel can never block the loan operation that emitted the event. The
// original system aborted delivery on the first failure; construct with
// FailFast(true) to keep that strict propagation.
type Dispatcher struct {
	subscribers []Subscriber
	failFast    bool
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// FailFast controls failure propagation: when enabled, the first subscriber
// error aborts delivery to the remaining subscribers and surfaces to the
// publisher.
func FailFast(enabled bool) Option {
	return func(d *Dispatcher) {
		d.failFast = enabled
	}
}

// NewDispatcher creates a dispatcher with no subscribers.
func NewDispatcher(opts ...Option) *Dispatcher {
	d := &Dispatcher{}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Subscribe appends a subscriber. Subscribers are invoked in the order they
// were registered.
func (d *Dispatcher) Subscribe(s Subscriber) {
	d.subscribers = append(d.subscribers, s)
}

// Publish delivers the event to every subscriber on the caller's goroutine.
// In fail-fast mode the first error is returned immediately; otherwise
// failures are logged and Publish always returns nil.
func (d *Dispatcher) Publish(event Event) error {
	for _, s := range d.subscribers {
		if err := d.deliver(s, event); err != nil {
			if d.failFast {
				return err
			}
			log.Printf("notify: subscriber failed for %s event %s: %v", event.Type, event.ID, err)
		}
	}
	return nil
}

func (d *Dispatcher) deliver(s Subscriber, event Event) (err error) {
	if !d.failFast {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("subscriber panicked: %v", r)
			}
		}()
	}
	return s.OnLoanEvent(event)
}
