package notify

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrUnknownChannel is returned for channel names outside the known set.
var ErrUnknownChannel = errors.New("unknown notification channel")

// Channel renders a notification to one delivery medium. Channels only
// format and write; they never fail on well-formed input.
type Channel interface {
	Name() string
	Deliver(recipient, message string) error
}

// channelFactories is the closed set of delivery channels, keyed by name.
var channelFactories = map[string]func(out io.Writer) Channel{
	"console": func(out io.Writer) Channel { return &consoleChannel{out: out} },
	"email":   func(out io.Writer) Channel { return &emailChannel{out: out} },
}

// NewChannel builds the delivery channel registered under the given name.
// Names are case-insensitive. Unknown names fail with ErrUnknownChannel.
func NewChannel(name string, out io.Writer) (Channel, error) {
	factory, ok := channelFactories[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownChannel, name, strings.Join(ChannelNames(), ", "))
	}
	return factory(out), nil
}

// ChannelNames lists the available channel names.
func ChannelNames() []string {
	return []string{"console", "email"}
}

type consoleChannel struct {
	out io.Writer
}

func (c *consoleChannel) Name() string { return "console" }

func (c *consoleChannel) Deliver(recipient, message string) error {
	fmt.Fprintf(c.out, "--- notification ---\n")
	fmt.Fprintf(c.out, "To: %s\n", recipient)
	for _, line := range strings.Split(message, "\n") {
		fmt.Fprintf(c.out, "  %s\n", line)
	}
	fmt.Fprintf(c.out, "---------------------\n")
	return nil
}

// emailChannel renders the notification as an outgoing email. No mail is
// actually sent; real delivery is outside the system boundary.
type emailChannel struct {
	out io.Writer
}

func (c *emailChannel) Name() string { return "email" }

func (c *emailChannel) Deliver(recipient, message string) error {
	fmt.Fprintf(c.out, "From: library@shelfwise.local\n")
	fmt.Fprintf(c.out, "To: %s\n", recipient)
	fmt.Fprintf(c.out, "Subject: Library notification\n\n")
	fmt.Fprintf(c.out, "%s\n", message)
	return nil
}
