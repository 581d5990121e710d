// internal/relay/channel.go
package relay

import (
	"errors"
	"fmt"
	"sync"

	"knife-arena/internal/config"
)

var (
	ErrClosed    = errors.New("relay: channel closed")
	ErrQueueFull = errors.New("relay: send queue full")
)

// Channel is a bidirectional message stream to the relay. Receive returns
// the same channel on every call; it is closed when the connection ends.
type Channel interface {
	Send(m Message) error
	Receive() <-chan Message
	Close() error
}

// pipe is a connected in-memory pair. Messages pass through the wire codec
// so both ends see exactly what a socket would deliver.
type pipe struct {
	mu     sync.Mutex
	closed bool
	ab     chan Message
	ba     chan Message
}

type pipeEnd struct {
	p   *pipe
	in  chan Message
	out chan Message
}

// Pipe returns two connected channels. Closing either end closes both.
func Pipe() (Channel, Channel) {
	p := &pipe{
		ab: make(chan Message, config.RelaySendQueue),
		ba: make(chan Message, config.RelaySendQueue),
	}
	return &pipeEnd{p: p, in: p.ba, out: p.ab}, &pipeEnd{p: p, in: p.ab, out: p.ba}
}

func (e *pipeEnd) Send(m Message) error {
	b, err := Encode(m)
	if err != nil {
		return fmt.Errorf("pipe send: %w", err)
	}
	decoded, err := Decode(b)
	if err != nil {
		return fmt.Errorf("pipe send: %w", err)
	}

	e.p.mu.Lock()
	defer e.p.mu.Unlock()
	if e.p.closed {
		return ErrClosed
	}
	select {
	case e.out <- decoded:
		return nil
	default:
		return ErrQueueFull
	}
}

func (e *pipeEnd) Receive() <-chan Message {
	return e.in
}

func (e *pipeEnd) Close() error {
	e.p.mu.Lock()
	defer e.p.mu.Unlock()
	if e.p.closed {
		return nil
	}
	e.p.closed = true
	close(e.p.ab)
	close(e.p.ba)
	return nil
}
