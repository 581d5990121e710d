package assets

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"

	"knife-arena/internal/config"
	"knife-arena/internal/render"
)

// Model names. Files are looked up as <dir>/models/<name>.glb, then .obj.
const (
	ModelTerrain   = "terrain"
	ModelCharacter = "character"
	ModelKnife     = "knife"
)

var modelNames = []string{ModelTerrain, ModelCharacter, ModelKnife}

// ModelManager loads, caches and unloads the 3D models of the arena. A model
// that cannot be loaded is replaced by a generated placeholder mesh.
type ModelManager struct {
	dir      string
	models   map[string]rl.Model
	fallback map[string]bool
	scale    map[string]float32
	groundY  float32
}

// NewModelManager creates a manager reading from dir.
func NewModelManager(dir string) *ModelManager {
	return &ModelManager{
		dir:      dir,
		models:   make(map[string]rl.Model),
		fallback: make(map[string]bool),
		scale:    make(map[string]float32),
	}
}

// LoadAll loads every model, falling back to placeholders. Needs an open window.
func (m *ModelManager) LoadAll() {
	for _, name := range modelNames {
		if !m.loadSingleModel(name) {
			m.loadFallback(name)
		}
	}
}

func (m *ModelManager) findModel(name string) (string, bool) {
	for _, ext := range []string{".glb", ".obj"} {
		p := filepath.Join(m.dir, "models", name+ext)
		if _, err := os.Stat(p); err == nil {
			return p, true
		}
	}
	return "", false
}

// loadSingleModel loads one model file and its texture. raylib panics on some
// corrupt files, so the load is guarded.
func (m *ModelManager) loadSingleModel(name string) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("ERROR: raylib panicked while loading model '%s', using a placeholder: %v", name, r)
			ok = false
		}
	}()

	path, found := m.findModel(name)
	if !found {
		log.Printf("WARNING: No model file for '%s' in %s, using a placeholder", name, m.dir)
		return false
	}

	model := rl.LoadModel(path)
	if model.MeshCount == 0 {
		log.Printf("WARNING: Failed to load model for %s from path %s. It might be invalid or empty.", name, path)
		return false
	}

	texturePath := filepath.Join(m.dir, "textures", fmt.Sprintf("%s.png", name))
	if _, err := os.Stat(texturePath); err == nil {
		texture := rl.LoadTexture(texturePath)
		if texture.ID > 0 {
			rl.SetMaterialTexture(model.Materials, rl.MapDiffuse, texture)
		} else {
			log.Printf("WARNING: Failed to load texture for model %s from %s", name, texturePath)
		}
	}

	m.models[name] = model
	m.fallback[name] = false
	m.scale[name] = 1
	if name == ModelTerrain {
		box := rl.GetModelBoundingBox(model)
		size := rl.Vector3Subtract(box.Max, box.Min)
		// the map is authored along z, the arena runs along x
		s := float32(render.FitScale(float64(size.Z), float64(size.X), config.TerrainWidth, config.TerrainDepth))
		m.scale[name] = s
		m.groundY = box.Max.Y * s
	}
	log.Printf("Successfully loaded model for %s", name)
	return true
}

func (m *ModelManager) loadFallback(name string) {
	var mesh rl.Mesh
	switch name {
	case ModelTerrain:
		mesh = rl.GenMeshPlane(config.TerrainWidth, config.TerrainDepth, 1, 1)
		m.groundY = 0
	case ModelCharacter:
		mesh = rl.GenMeshCylinder(config.CharacterSize/3, config.CharacterSize, 12)
	case ModelKnife:
		mesh = rl.GenMeshCube(0.6, 0.2, 5)
	default:
		return
	}
	m.models[name] = rl.LoadModelFromMesh(mesh)
	m.fallback[name] = true
	m.scale[name] = 1
}

// GetModel returns a loaded model by name.
func (m *ModelManager) GetModel(name string) (rl.Model, bool) {
	model, ok := m.models[name]
	return model, ok
}

// IsFallback reports whether name is drawn with a placeholder.
func (m *ModelManager) IsFallback(name string) bool {
	return m.fallback[name]
}

// Scale is the uniform scale a model is drawn with.
func (m *ModelManager) Scale(name string) float32 {
	if s, ok := m.scale[name]; ok {
		return s
	}
	return 1
}

// GroundY is the height of the walkable surface of the terrain.
func (m *ModelManager) GroundY() float32 {
	return m.groundY
}

// Cleanup unloads every model.
func (m *ModelManager) Cleanup() {
	for name, model := range m.models {
		rl.UnloadModel(model)
		delete(m.models, name)
	}
	m.fallback = make(map[string]bool)
	log.Println("All models unloaded.")
}
