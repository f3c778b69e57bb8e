package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

func (n *NoopRecorder) IncLogin(outcome string)                    {}
func (n *NoopRecorder) IncProfileSaved()                           {}
func (n *NoopRecorder) IncUserCacheHit()                           {}
func (n *NoopRecorder) IncUserCacheMiss()                          {}
func (n *NoopRecorder) IncCycleSaved()                             {}
func (n *NoopRecorder) IncChatReply(mode string)                   {}
func (n *NoopRecorder) IncChatRateLimited()                        {}
func (n *NoopRecorder) ObserveChatDuration(duration time.Duration) {}
