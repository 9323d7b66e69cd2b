package notify

import (
	"io"
	"log"
	"sync"
)

// RecipientResolver looks up where a member's notifications should go.
type RecipientResolver interface {
	Email(userID string) (string, bool)
}

// Bridge is the dispatcher subscriber that forwards events to the currently
// active delivery channel. The channel can be switched at runtime; the switch
// only affects events published afterwards.
type Bridge struct {
	resolver RecipientResolver
	out      io.Writer

	mu      sync.RWMutex
	channel Channel
}

// NewBridge creates a bridge delivering through the named default channel.
func NewBridge(resolver RecipientResolver, out io.Writer, defaultChannel string) (*Bridge, error) {
	channel, err := NewChannel(defaultChannel, out)
	if err != nil {
		return nil, err
	}
	return &Bridge{
		resolver: resolver,
		out:      out,
		channel:  channel,
	}, nil
}

// SetChannel switches the active delivery channel. Fails with
// ErrUnknownChannel for names outside the known set.
func (b *Bridge) SetChannel(name string) error {
	channel, err := NewChannel(name, b.out)
	if err != nil {
		return err
	}

	b.mu.Lock()
	b.channel = channel
	b.mu.Unlock()

	log.Printf("notify: delivery channel switched to %s", channel.Name())
	return nil
}

// ActiveChannel reports the name of the channel events are delivered through.
func (b *Bridge) ActiveChannel() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.channel.Name()
}

// OnLoanEvent delivers the event through the active channel. The recipient is
// the member's email address, falling back to the member ID when none is set.
func (b *Bridge) OnLoanEvent(event Event) error {
	recipient := event.UserID
	if email, ok := b.resolver.Email(event.UserID); ok {
		recipient = email
	}

	b.mu.RLock()
	channel := b.channel
	b.mu.RUnlock()

	return channel.Deliver(recipient, event.Message)
}
