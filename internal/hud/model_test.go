package hud

import (
	"testing"

	"knife-arena/internal/component"
	"knife-arena/internal/config"
	"knife-arena/internal/types"
)

type fakeSource struct {
	health    [2]int
	cooldown  float64
	countdown int
	phase     component.Phase
	winner    types.PlayerID
	tally     [2]int
	local     types.PlayerID
	room      string
	peer      bool
}

func (f fakeSource) Health(id types.PlayerID) int { return f.health[id.Index()] }
func (f fakeSource) CooldownFraction(types.PlayerID) float64 { return f.cooldown }
func (f fakeSource) Countdown() int { return f.countdown }
func (f fakeSource) Phase() component.Phase { return f.phase }
func (f fakeSource) Winner() types.PlayerID { return f.winner }
func (f fakeSource) Tally() [2]int { return f.tally }
func (f fakeSource) Local() types.PlayerID { return f.local }
func (f fakeSource) RoomCode() string { return f.room }
func (f fakeSource) PeerPresent() bool { return f.peer }

func TestBanner(t *testing.T) {
	tests := []struct {
		name string
		src  fakeSource
		want string
	}{
		{"countdown", fakeSource{phase: component.PhaseCountdown, countdown: 3, local: types.Player1}, "3"},
		{"fight", fakeSource{phase: component.PhaseCountdown, countdown: 0, local: types.Player1}, "FIGHT!"},
		{"active", fakeSource{phase: component.PhaseActive, local: types.Player1}, ""},
		{"won", fakeSource{phase: component.PhaseResolved, winner: types.Player2, local: types.Player2}, "VICTORY"},
		{"lost", fakeSource{phase: component.PhaseResolved, winner: types.Player2, local: types.Player1}, "DEFEAT"},
	}
	for _, tt := range tests {
		if got := Build(tt.src).Banner; got != tt.want {
			t.Errorf("%s: banner %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestBarsAndCooldown(t *testing.T) {
	m := Build(fakeSource{
		health:   [2]int{5, 1},
		cooldown: 1,
		phase:    component.PhaseActive,
		tally:    [2]int{2, 3},
		local:    types.Player2,
		room:     "ABCDEF",
	})
	if m.Bars[0].Fill != config.HealthFullColor || m.Bars[1].Fill != config.HealthCritColor {
		t.Errorf("fills %v %v", m.Bars[0].Fill, m.Bars[1].Fill)
	}
	if !m.Bars[1].Local || m.Bars[0].Local || m.Bars[1].Label != "P2 (you)" {
		t.Errorf("local bar: %+v", m.Bars[1])
	}
	if m.Bars[1].Fraction() != 0.2 {
		t.Errorf("fraction = %v", m.Bars[1].Fraction())
	}
	if !m.CooldownReady || m.CooldownColor != config.CooldownReadyColor {
		t.Error("ready cooldown not shown as ready")
	}
	if m.Tally != "2 : 3" || m.Status != "Room ABCDEF - opponent disconnected" {
		t.Errorf("tally %q status %q", m.Tally, m.Status)
	}

	m = Build(fakeSource{health: [2]int{5, 5}, cooldown: 1, phase: component.PhaseCountdown, countdown: 2, local: types.Player1})
	if m.CooldownReady {
		t.Error("cooldown ready during countdown")
	}
}

func TestHealthColor(t *testing.T) {
	cases := map[int]any{5: config.HealthFullColor, 3: config.HealthWarnColor, 2: config.HealthWarnColor, 1: config.HealthCritColor, 0: config.HealthEmptyColor}
	for hp, want := range cases {
		if got := HealthColor(hp, 5); got != want {
			t.Errorf("HealthColor(%d) = %v", hp, got)
		}
	}
}
