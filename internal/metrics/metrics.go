// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Login outcomes.
const (
	LoginNew      = "new"
	LoginExisting = "existing"
)

// Chat reply modes.
const (
	ChatModeAI    = "ai"
	ChatModeDemo  = "demo"
	ChatModeError = "error"
)

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Account metrics
	IncLogin(outcome string) // outcome: LoginNew or LoginExisting
	IncProfileSaved()
	IncUserCacheHit()
	IncUserCacheMiss()

	// Cycle metrics
	IncCycleSaved()

	// Chat metrics
	IncChatReply(mode string) // mode: ChatModeAI, ChatModeDemo or ChatModeError
	IncChatRateLimited()
	ObserveChatDuration(duration time.Duration)
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
