// internal/hud/model.go
package hud

import (
	"fmt"
	"image/color"

	"knife-arena/internal/component"
	"knife-arena/internal/config"
	"knife-arena/internal/types"
)

// Source is the read side of a session the HUD needs.
type Source interface {
	Health(id types.PlayerID) int
	CooldownFraction(id types.PlayerID) float64
	Countdown() int
	Phase() component.Phase
	Winner() types.PlayerID
	Tally() [2]int
	Local() types.PlayerID
	RoomCode() string
	PeerPresent() bool
}

// Bar is one health bar.
type Bar struct {
	Player types.PlayerID
	Label  string
	Health int
	Max    int
	Fill   color.RGBA
	Local  bool
}

// Fraction returns health as a share of the maximum.
func (b Bar) Fraction() float64 {
	if b.Max <= 0 {
		return 0
	}
	return float64(b.Health) / float64(b.Max)
}

// Model is everything the front-ends draw on top of the arena. All three
// clients render the same model.
type Model struct {
	Bars          [2]Bar
	Cooldown      float64 // elapsed share of the local cooldown, 1 = ready
	CooldownReady bool
	CooldownColor color.RGBA
	Banner        string // countdown number, fight call or result
	Hint          string
	Tally         string
	Status        string
}

// HealthColor picks the fill of a health bar.
func HealthColor(health, max int) color.RGBA {
	if max <= 0 || health <= 0 {
		return config.HealthEmptyColor
	}
	f := float64(health) / float64(max)
	switch {
	case f > 0.6:
		return config.HealthFullColor
	case f > 0.3:
		return config.HealthWarnColor
	}
	return config.HealthCritColor
}

// Build reads src into a Model.
func Build(src Source) Model {
	local := src.Local()
	var m Model
	for _, id := range types.Players {
		hp := src.Health(id)
		label := fmt.Sprintf("P%d", id)
		if id == local {
			label += " (you)"
		}
		m.Bars[id.Index()] = Bar{
			Player: id,
			Label:  label,
			Health: hp,
			Max:    config.MaxHealth,
			Fill:   HealthColor(hp, config.MaxHealth),
			Local:  id == local,
		}
	}

	m.Cooldown = src.CooldownFraction(local)
	m.CooldownReady = m.Cooldown >= 1 && src.Phase() == component.PhaseActive
	m.CooldownColor = config.CooldownBusyColor
	if m.CooldownReady {
		m.CooldownColor = config.CooldownReadyColor
	}

	t := src.Tally()
	m.Tally = fmt.Sprintf("%d : %d", t[0], t[1])

	switch src.Phase() {
	case component.PhaseIdle:
		m.Banner = "Waiting"
	case component.PhaseCountdown:
		if n := src.Countdown(); n > 0 {
			m.Banner = fmt.Sprintf("%d", n)
		} else {
			m.Banner = "FIGHT!"
		}
	case component.PhaseResolved:
		if src.Winner() == local {
			m.Banner = "VICTORY"
		} else {
			m.Banner = "DEFEAT"
		}
		if local == types.Player1 {
			m.Hint = "Press R for a rematch"
		} else {
			m.Hint = "Waiting for the host to restart"
		}
	}

	if code := src.RoomCode(); code != "" {
		m.Status = "Room " + code
		if !src.PeerPresent() {
			m.Status += " - opponent disconnected"
		}
	}
	return m
}
