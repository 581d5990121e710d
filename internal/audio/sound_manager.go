// internal/audio/sound_manager.go
package audio

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"knife-arena/internal/event"
	"knife-arena/internal/types"
)

var voiced = []event.EventType{event.KnifeThrown, event.CombatantHit, event.CountdownTick, event.RoundResolved}

// Player plays a finished streamer. The speaker is the production player;
// tests record cues instead.
type Player interface {
	Play(s beep.Streamer)
}

type speakerPlayer struct {
	mixer *beep.Mixer
}

func (p *speakerPlayer) Play(s beep.Streamer) {
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// SoundManager turns match events into cues. Until Initialize succeeds (or
// when it fails) every cue is a no-op.
type SoundManager struct {
	mu     sync.Mutex
	player Player
	local  types.PlayerID
	volume float64
	played []Cue
}

func NewSoundManager(local types.PlayerID) *SoundManager {
	return &SoundManager{local: local, volume: 0.6}
}

// Initialize opens the speaker. A failure leaves the manager silent.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if sm.player != nil {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("audio init: %w", err)
	}
	mixer := &beep.Mixer{}
	speaker.Play(mixer)
	sm.player = &speakerPlayer{mixer: mixer}
	return nil
}

// UsePlayer replaces the output.
func (sm *SoundManager) UsePlayer(p Player) {
	sm.mu.Lock()
	sm.player = p
	sm.mu.Unlock()
}

// SetLocal changes whose victory the manager celebrates.
func (sm *SoundManager) SetLocal(id types.PlayerID) {
	sm.mu.Lock()
	sm.local = id
	sm.mu.Unlock()
}

// Play emits one cue.
func (sm *SoundManager) Play(c Cue) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if sm.player == nil {
		return
	}
	s := Build(c, sm.volume)
	if s == nil {
		return
	}
	sm.played = append(sm.played, c)
	sm.player.Play(s)
}

// Played returns the cues emitted so far.
func (sm *SoundManager) Played() []Cue {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return append([]Cue(nil), sm.played...)
}

// OnEvent implements event.Listener.
func (sm *SoundManager) OnEvent(e event.Event) {
	switch data := e.Data.(type) {
	case event.ThrowData:
		sm.Play(CueThrow)
	case event.HitData:
		if e.Type == event.CombatantHit {
			sm.Play(CueHit)
		}
	case event.CountdownData:
		if data.Remaining == 0 {
			sm.Play(CueFight)
		} else {
			sm.Play(CueCountdown)
		}
	case event.ResolvedData:
		sm.mu.Lock()
		won := data.Winner == sm.local
		sm.mu.Unlock()
		if won {
			sm.Play(CueVictory)
		} else {
			sm.Play(CueDefeat)
		}
	}
}

// Subscribe registers the manager for the events it voices.
func (sm *SoundManager) Subscribe(d *event.Dispatcher) {
	d.SubscribeMany(sm, voiced...)
}

// Unsubscribe detaches the manager from a session's dispatcher.
func (sm *SoundManager) Unsubscribe(d *event.Dispatcher) {
	for _, t := range voiced {
		d.Unsubscribe(t, sm)
	}
}

// Cleanup silences playback and releases the speaker.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sp, ok := sm.player.(*speakerPlayer)
	sm.player = nil
	if !ok {
		return
	}
	speaker.Lock()
	sp.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	log.Println("Audio closed")
}
