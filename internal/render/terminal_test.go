package render

import (
	"math"
	"testing"

	"github.com/gdamore/tcell/v2"

	"knife-arena/internal/component"
	"knife-arena/internal/config"
	"knife-arena/internal/hud"
	"knife-arena/internal/sim"
	"knife-arena/internal/types"
)

func newTestTerminal(t *testing.T) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 24)
	return NewTerminal(screen, component.DefaultArena()), screen
}

func runeAt(s tcell.Screen, x, y int) rune {
	r, _, _, _ := s.GetContent(x, y)
	return r
}

func testModel() hud.Model {
	m := hud.Model{Tally: "0 : 0", Cooldown: 1, CooldownColor: config.CooldownReadyColor}
	m.Bars[0] = hud.Bar{Player: types.Player1, Label: "P1 (you)", Health: 5, Max: 5, Fill: config.HealthFullColor, Local: true}
	m.Bars[1] = hud.Bar{Player: types.Player2, Label: "P2", Health: 2, Max: 5, Fill: config.HealthWarnColor}
	return m
}

func TestTerminalDrawsArena(t *testing.T) {
	term, screen := newTestTerminal(t)

	f := sim.Frame{
		Combatants: [2]sim.CombatantPose{
			{Player: types.Player1, X: -40, Z: 0},
			{Player: types.Player2, X: 40, Z: 10},
		},
		Projectiles: []sim.ProjectilePose{{ID: 7, Owner: types.Player1, X: 0, Z: -20}},
	}
	term.Draw(f, nil, testModel())

	checks := []struct {
		name string
		x, z float64
		want rune
	}{
		{"player one", -40, 0, '1'},
		{"player two", 40, 10, '2'},
		{"knife", 0, -20, '|'},
		{"river", 0, 30, '~'},
		{"ground", -60, 30, '.'},
	}
	for _, c := range checks {
		col, row := term.CellOf(c.x, c.z)
		if got := runeAt(screen, col, row); got != c.want {
			t.Errorf("%s at (%d,%d) = %q, want %q", c.name, col, row, got, c.want)
		}
	}

	label := make([]rune, 0, 8)
	for x := 0; x < 8; x++ {
		label = append(label, runeAt(screen, x, 0))
	}
	if string(label) != "P1 (you)" {
		t.Errorf("hud label = %q", string(label))
	}

	if term.trails.Len() != 1 {
		t.Fatalf("trails = %d", term.trails.Len())
	}
	f.Projectiles[0].Removed = true
	term.Draw(f, nil, testModel())
	if term.trails.Len() != 0 {
		t.Errorf("trail kept for a removed knife")
	}
}

func TestTerminalBannerAndBlood(t *testing.T) {
	term, screen := newTestTerminal(t)
	m := testModel()
	m.Banner = "VICTORY"
	m.Hint = "Press R for a rematch"
	effects := []*component.Effect{{
		Life:      0.5,
		Particles: []component.Particle{{X: -50, Z: -30}},
	}}
	term.Draw(sim.Frame{}, effects, m)

	col, row := term.CellOf(-50, -30)
	if got := runeAt(screen, col, row); got != '\'' {
		t.Errorf("blood = %q", got)
	}

	w, _ := screen.Size()
	row = hudRows + term.view.Height/2
	start := (w - len(m.Banner)) / 2
	var got []rune
	for i := range m.Banner {
		got = append(got, runeAt(screen, start+i, row))
	}
	if string(got) != m.Banner {
		t.Errorf("banner = %q", string(got))
	}
}

func TestScreenToWorld(t *testing.T) {
	term, _ := newTestTerminal(t)
	if _, _, ok := term.ScreenToWorld(10, 0); ok {
		t.Error("click on the HUD mapped to the ground")
	}
	col, row := term.CellOf(-40, 12)
	x, z, ok := term.ScreenToWorld(col, row)
	if !ok {
		t.Fatal("arena cell rejected")
	}
	if math.Abs(x+40) > 1/term.view.ScaleX || math.Abs(z-12) > 1/term.view.ScaleZ {
		t.Errorf("cell maps to (%v, %v)", x, z)
	}
}
