// internal/config/config.go
package config

import (
	"image/color"
	"time"
)

// Simulation timing
const (
	FixedStep    = 8 * time.Millisecond
	MaxFrameTime = 0.25 // seconds; longer frames are clamped
	MaxDeltaTime = MaxFrameTime
)

// Combatants
const (
	MaxHealth        = 5
	MoveSpeed        = 48.75 // units per second (0.39 per 8ms step)
	ArrivalThreshold = 1.0
	CharacterSize    = 10.5
	HitRadiusFactor  = 1.05

	AttackCooldown    = 2200 * time.Millisecond
	CountdownCooldown = 5000 * time.Millisecond
	ThrowAnimDuration = 2500 * time.Millisecond
	DefaultThrowReach = 20.0 // throw distance ahead of the facing when no aim point exists
)

// Projectiles
const (
	KnifeSpeed     = 573.3 // units per second (4.5864 per 8ms step)
	KnifeSpinStep  = 0.3   // radians per step, cosmetic
	KnifeCullX     = 120.0
	KnifeCullZ     = 90.0
	KnifeHeight    = CharacterSize
	BloodParticles = 30
	BloodDecay     = 0.012
	BloodGravity   = 0.6
	BloodVelScale  = 0.12
)

// Arena geometry
const (
	ArenaMinX = -70.0
	ArenaMaxX = 70.0
	ArenaMinZ = -70.0
	ArenaMaxZ = 70.0

	RiverMinX = -10.0
	RiverMaxX = 10.0

	SpawnNearX = 20.0
	SpawnFarX  = 50.0
	SpawnMinZ  = -40.0
	SpawnMaxZ  = 40.0

	AIHomeMinX = 25.0
	AIHomeMaxX = 60.0
	AIHomeMinZ = -60.0
	AIHomeMaxZ = 60.0

	TerrainWidth = 200.0
	TerrainDepth = 150.0
)

// Scripted opponent
const (
	AIWanderChance = 0.06
	AIWanderRange  = 12.5
	AILookAhead    = 500 * time.Millisecond
	MissBagSize    = 7
	MissBagMisses  = 2
	MissOffset     = 6.0
	HitJitter      = 1.0
)

// Round lifecycle
const (
	CountdownFrom     = 5
	CountdownInterval = time.Second
	FightDelay        = 500 * time.Millisecond
)

// Relay
const (
	RoomCodeLength   = 6
	RoomCapacity     = 2
	RelayReadLimit   = 1 << 16
	RelayPongWait    = 60 * time.Second
	RelayPingPeriod  = 25 * time.Second
	RelayWriteWait   = 10 * time.Second
	RelaySendQueue   = 256
	RelayMailboxSize = 256
)

// Front-ends
const (
	ScreenWidth  = 1280
	ScreenHeight = 720
	TargetFPS    = 60

	CameraHeight  = 90.0
	CameraBack    = 75.0
	CameraFovy    = 45.0
	TopDownScale  = 4.0 // pixels per world unit in the 2D client
	HUDMargin     = 20
	HUDBarWidth   = 120.0
	HUDBarHeight  = 12.0
	HUDBarSpacing = 2.0
)

var (
	BackgroundColor    = color.RGBA{20, 20, 30, 255}
	GroundColor        = color.RGBA{45, 80, 22, 255}
	RiverColor         = color.RGBA{77, 184, 255, 255}
	Player1Color       = color.RGBA{147, 112, 219, 255}
	Player2Color       = color.RGBA{220, 60, 60, 255}
	KnifeColor         = color.RGBA{192, 192, 192, 255}
	BloodColor         = color.RGBA{255, 0, 0, 255}
	TextLightColor     = color.RGBA{240, 240, 240, 255}
	UIBorderColor      = color.RGBA{240, 240, 240, 255}
	HealthFullColor    = color.RGBA{50, 205, 50, 255}
	HealthWarnColor    = color.RGBA{255, 215, 0, 255}
	HealthCritColor    = color.RGBA{220, 20, 60, 255}
	HealthEmptyColor   = color.RGBA{60, 60, 60, 200}
	CooldownBusyColor  = color.RGBA{255, 0, 0, 255}
	CooldownReadyColor = color.RGBA{0, 255, 0, 255}
	OverlayColor       = color.RGBA{0, 0, 0, 200}
)
