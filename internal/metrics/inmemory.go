package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	LoginsNew           uint64
	LoginsExisting      uint64
	ProfilesSaved       uint64
	UserCacheHits       uint64
	UserCacheMisses     uint64
	CyclesSaved         uint64
	ChatRepliesAI       uint64
	ChatRepliesDemo     uint64
	ChatRepliesError    uint64
	ChatRateLimited     uint64
	ChatDurationCount   uint64
	ChatDurationTotalNs int64
}

// InMemoryRecorder stores metrics in memory. It backs /metrics and tests.
type InMemoryRecorder struct {
	loginsNew           atomic.Uint64
	loginsExisting      atomic.Uint64
	profilesSaved       atomic.Uint64
	userCacheHits       atomic.Uint64
	userCacheMisses     atomic.Uint64
	cyclesSaved         atomic.Uint64
	chatRepliesAI       atomic.Uint64
	chatRepliesDemo     atomic.Uint64
	chatRepliesError    atomic.Uint64
	chatRateLimited     atomic.Uint64
	chatDurationCount   atomic.Uint64
	chatDurationTotalNs atomic.Int64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		LoginsNew:           m.loginsNew.Load(),
		LoginsExisting:      m.loginsExisting.Load(),
		ProfilesSaved:       m.profilesSaved.Load(),
		UserCacheHits:       m.userCacheHits.Load(),
		UserCacheMisses:     m.userCacheMisses.Load(),
		CyclesSaved:         m.cyclesSaved.Load(),
		ChatRepliesAI:       m.chatRepliesAI.Load(),
		ChatRepliesDemo:     m.chatRepliesDemo.Load(),
		ChatRepliesError:    m.chatRepliesError.Load(),
		ChatRateLimited:     m.chatRateLimited.Load(),
		ChatDurationCount:   m.chatDurationCount.Load(),
		ChatDurationTotalNs: m.chatDurationTotalNs.Load(),
	}
}

// IncLogin counts a login by outcome. Unknown outcomes are ignored.
func (m *InMemoryRecorder) IncLogin(outcome string) {
	switch outcome {
	case LoginNew:
		m.loginsNew.Add(1)
	case LoginExisting:
		m.loginsExisting.Add(1)
	}
}

func (m *InMemoryRecorder) IncProfileSaved() {
	m.profilesSaved.Add(1)
}

func (m *InMemoryRecorder) IncUserCacheHit() {
	m.userCacheHits.Add(1)
}

func (m *InMemoryRecorder) IncUserCacheMiss() {
	m.userCacheMisses.Add(1)
}

func (m *InMemoryRecorder) IncCycleSaved() {
	m.cyclesSaved.Add(1)
}

// IncChatReply counts a chat reply by mode. Unknown modes are ignored.
func (m *InMemoryRecorder) IncChatReply(mode string) {
	switch mode {
	case ChatModeAI:
		m.chatRepliesAI.Add(1)
	case ChatModeDemo:
		m.chatRepliesDemo.Add(1)
	case ChatModeError:
		m.chatRepliesError.Add(1)
	}
}

func (m *InMemoryRecorder) IncChatRateLimited() {
	m.chatRateLimited.Add(1)
}

// ObserveChatDuration records the time spent waiting on the model.
func (m *InMemoryRecorder) ObserveChatDuration(duration time.Duration) {
	m.chatDurationCount.Add(1)
	m.chatDurationTotalNs.Add(duration.Nanoseconds())
}
