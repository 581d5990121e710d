// internal/session/pending.go
package session

import (
	"context"
	"log"
	"sync"
)

// Pending is an online connection running in the background, so a front-end
// can keep drawing while the lobby handshake waits for the other player.
type Pending struct {
	cancel context.CancelFunc
	done   chan struct{}

	mu   sync.Mutex
	code string
	s    *Session
	err  error
}

// ConnectAsync starts Connect on its own goroutine.
func ConnectAsync(ctx context.Context, o OnlineOptions) *Pending {
	ctx, cancel := context.WithCancel(ctx)
	p := &Pending{cancel: cancel, done: make(chan struct{})}

	onRoom := o.OnRoom
	o.OnRoom = func(code string) {
		p.mu.Lock()
		p.code = code
		p.mu.Unlock()
		if onRoom != nil {
			onRoom(code)
		}
	}

	go func() {
		defer close(p.done)
		s, err := Connect(ctx, o)
		p.mu.Lock()
		p.s, p.err = s, err
		p.mu.Unlock()
	}()
	return p
}

// RoomCode returns the room code once the relay assigned it.
func (p *Pending) RoomCode() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.code
}

// Done reports whether the handshake finished, successfully or not.
func (p *Pending) Done() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

// Result returns the outcome. It is only meaningful after Done.
func (p *Pending) Result() (*Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.s, p.err
}

// Cancel aborts the handshake and waits for it. A session that was already
// established is disposed.
func (p *Pending) Cancel() {
	p.cancel()
	<-p.done
	p.mu.Lock()
	s := p.s
	p.s = nil
	p.mu.Unlock()
	if s != nil {
		if err := s.Dispose(); err != nil {
			log.Printf("WARNING: dispose cancelled session: %v", err)
		}
	}
}
