// internal/render/rl3d/scene.go
package rl3d

import (
	"image/color"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"knife-arena/internal/assets"
	"knife-arena/internal/component"
	"knife-arena/internal/config"
	"knife-arena/internal/render"
	"knife-arena/internal/sim"
	"knife-arena/internal/types"
)

const (
	trailLength  = 6
	cameraEasing = 0.1
	rad2deg      = 180 / math.Pi
)

// ColorToRL converts a config color for raylib.
func ColorToRL(c color.Color) rl.Color {
	r, g, b, a := c.RGBA()
	return rl.NewColor(uint8(r>>8), uint8(g>>8), uint8(b>>8), uint8(a>>8))
}

// Scene draws a frame of the arena in 3D.
type Scene struct {
	models *assets.ModelManager
	arena  component.Arena
	camera rl.Camera3D
	trails *render.Bindings[*render.Trail]
}

// NewScene sets up the camera above the middle of the arena.
func NewScene(models *assets.ModelManager, arena component.Arena) *Scene {
	s := &Scene{
		models: models,
		arena:  arena,
		trails: render.NewBindings(func(sim.ProjectilePose) *render.Trail { return render.NewTrail(trailLength) }, nil),
	}
	s.camera.Up = rl.NewVector3(0, 1, 0)
	s.camera.Projection = rl.CameraPerspective
	s.camera.Fovy = config.CameraFovy
	s.camera.Position = rl.NewVector3(0, config.CameraHeight, config.CameraBack)
	s.camera.Target = rl.NewVector3(0, 0, 0)
	return s
}

func (s *Scene) Camera() rl.Camera3D { return s.camera }

// Follow eases the camera towards a point behind (x, z).
func (s *Scene) Follow(x, z float64) {
	target := rl.NewVector3(float32(x), 0, float32(z))
	pos := rl.NewVector3(float32(x), config.CameraHeight, float32(z)+config.CameraBack)
	s.camera.Target = rl.Vector3Lerp(s.camera.Target, target, cameraEasing)
	s.camera.Position = rl.Vector3Lerp(s.camera.Position, pos, cameraEasing)
}

// Pick returns the ground point under the mouse cursor.
func (s *Scene) Pick() (float64, float64, bool) {
	ray := rl.GetMouseRay(rl.GetMousePosition(), s.camera)
	ground := float64(s.models.GroundY())
	origin := render.Vec3{X: float64(ray.Position.X), Y: float64(ray.Position.Y) - ground, Z: float64(ray.Position.Z)}
	dir := render.Vec3{X: float64(ray.Direction.X), Y: float64(ray.Direction.Y), Z: float64(ray.Direction.Z)}
	return render.GroundHit(origin, dir)
}

// Draw renders the terrain, the combatants, knives with trails and blood.
func (s *Scene) Draw(f sim.Frame, effects []*component.Effect) {
	rl.BeginMode3D(s.camera)
	defer rl.EndMode3D()

	s.drawTerrain()
	ground := s.models.GroundY()

	for _, c := range f.Combatants {
		if c.Player.Valid() {
			s.drawCombatant(c, ground)
		}
	}

	s.trails.Sync(f.Projectiles)
	for _, p := range f.Projectiles {
		if p.Removed {
			continue
		}
		tr, ok := s.trails.Get(p.ID)
		if ok {
			tr.Push(p.X, p.Z)
			s.drawTrail(tr, ground)
		}
		s.drawKnife(p, ground)
	}

	blood := ColorToRL(config.BloodColor)
	for _, e := range effects {
		if !e.Alive() {
			continue
		}
		col := rl.Fade(blood, float32(e.Life))
		for _, p := range e.Particles {
			rl.DrawSphere(rl.NewVector3(float32(p.X), ground+float32(p.Y), float32(p.Z)), 0.4, col)
		}
	}
}

func (s *Scene) drawTerrain() {
	model, ok := s.models.GetModel(assets.ModelTerrain)
	if !ok {
		return
	}
	if s.models.IsFallback(assets.ModelTerrain) {
		rl.DrawModel(model, rl.NewVector3(0, 0, 0), 1, ColorToRL(config.GroundColor))
		width := float32(s.arena.RiverMax - s.arena.RiverMin)
		center := float32(s.arena.RiverMin+s.arena.RiverMax) / 2
		rl.DrawPlane(rl.NewVector3(center, 0.05, 0), rl.NewVector2(width, config.TerrainDepth), ColorToRL(config.RiverColor))
		return
	}
	sc := s.models.Scale(assets.ModelTerrain)
	rl.DrawModelEx(model, rl.NewVector3(0, 0, 0), rl.NewVector3(0, 1, 0), 90, rl.NewVector3(sc, sc, sc), rl.White)
}

func (s *Scene) drawCombatant(c sim.CombatantPose, ground float32) {
	model, ok := s.models.GetModel(assets.ModelCharacter)
	if !ok {
		return
	}
	tint := ColorToRL(playerColor(c.Player))
	pos := rl.NewVector3(float32(c.X), ground, float32(c.Z))
	sc := s.models.Scale(assets.ModelCharacter)
	rl.DrawModelEx(model, pos, rl.NewVector3(0, 1, 0), float32(c.Rotation*rad2deg), rl.NewVector3(sc, sc, sc), tint)
}

func (s *Scene) drawKnife(p sim.ProjectilePose, ground float32) {
	model, ok := s.models.GetModel(assets.ModelKnife)
	if !ok {
		return
	}
	model.Transform = rl.MatrixMultiply(rl.MatrixRotateX(float32(p.Spin)), rl.MatrixRotateY(float32(p.Yaw)))
	pos := rl.NewVector3(float32(p.X), ground+config.KnifeHeight, float32(p.Z))
	rl.DrawModel(model, pos, s.models.Scale(assets.ModelKnife), ColorToRL(config.KnifeColor))
}

func (s *Scene) drawTrail(tr *render.Trail, ground float32) {
	pts := tr.Points()
	base := ColorToRL(config.KnifeColor)
	y := ground + config.KnifeHeight
	for i := 1; i < len(pts); i++ {
		a := rl.NewVector3(float32(pts[i-1].X), y, float32(pts[i-1].Z))
		b := rl.NewVector3(float32(pts[i].X), y, float32(pts[i].Z))
		rl.DrawLine3D(a, b, rl.Fade(base, float32(tr.Fade(i))*0.6))
	}
}

// Cleanup releases the knife bindings. Models belong to the manager.
func (s *Scene) Cleanup() {
	s.trails.Clear()
}

func playerColor(id types.PlayerID) color.RGBA {
	if id == types.Player2 {
		return config.Player2Color
	}
	return config.Player1Color
}
