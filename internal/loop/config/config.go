// Package config centralizes all tunable scene parameters.
// Speeds and distances are logical units per frame at TargetFPS.
package config

import "time"

// Frame pacing
const (
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS
)

// Terminal viewport: logical units per terminal sub-pixel.
// A 160x45 terminal maps to a 1280x720 logical viewport.
const (
	UnitsPerSubPixel = 8
)

// Max render resolution. Larger terminals get a centred, bordered canvas.
const (
	MaxTermWidth  = 240
	MaxTermHeight = 70
)

// MaxFrameDelta caps how far one frame may advance the timeline, so a stalled
// connection doesn't fire a burst of countdown ticks at once.
const MaxFrameDelta = 250 * time.Millisecond

// Default viewport used before the first resize.
const (
	DefaultViewWidth  = 1280
	DefaultViewHeight = 720
)

// Idle field
const (
	IdleInitialObjects   = 6
	IdleMaxLive          = 8
	IdleSpawnInterval    = 2800 * time.Millisecond
	IdleRespawnDelay     = 1800 * time.Millisecond
	IdleClickRadiusScale = 1.3
	IdleHitRadiusScale   = 1.0
	IdleProjectileSpeed  = 15.0
	IdleProjectileMaxAge = 85 // Frames
	IdlePulseStep        = 0.03
	IdleOutOfBounds      = 90.0
	IdleProjectileTrail  = 3.0
)

// Arcade run
const (
	ArcadeLives             = 3
	ArcadeDurationSeconds   = 30
	ArcadeGracePeriod       = 2500 * time.Millisecond
	ArcadeInitialObjects    = 4
	ArcadeMaxLive           = 8
	ArcadeSpawnInterval     = 2200 * time.Millisecond
	ArcadeCountdownInterval = time.Second
	ArcadeProjectileSpeed   = 14.0
	ArcadeProjectileMaxAge  = 65 // Frames
	ArcadeHitRadiusScale    = 1.1
	ArcadeShotRespawnDelay  = 1200 * time.Millisecond
	ArcadeCrashRespawnDelay = 2000 * time.Millisecond
	ArcadeInvincibility     = 2000 * time.Millisecond
	ArcadePulseStep         = 0.04
	ArcadeOutOfBounds       = 100.0
	ArcadeProjectileTrail   = 2.5
	CraftSpeed              = 4.0
	CraftWrapMargin         = 24.0
	CraftHitPadding         = 10.0
	PlayerBlinkFrequency    = 10.0 // Hz, visibility flips this often while invincible
)

// View transitions
const (
	WarpSwapDelay    = 480 * time.Millisecond
	ShootResumeDelay = 350 * time.Millisecond
	NoticeDuration   = 5200 * time.Millisecond
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)
