package email

import (
	"context"
	"sync"

	"iblaze_backend/internal/logger"
)

// LogProvider writes messages to the log instead of sending them. It is used
// when no SMTP host is configured.
type LogProvider struct{}

func NewLogProvider() *LogProvider {
	return &LogProvider{}
}

func (p *LogProvider) Send(ctx context.Context, msg *Message) error {
	logger.CtxInfo(ctx, "Email (not sent, SMTP disabled)", "to", msg.To, "subject", msg.Subject)
	return nil
}

func (p *LogProvider) Close() error {
	return nil
}

// RecordingProvider keeps every message in memory.
type RecordingProvider struct {
	mu       sync.Mutex
	messages []Message
	err      error
}

func NewRecordingProvider() *RecordingProvider {
	return &RecordingProvider{}
}

// FailWith makes every following Send return err.
func (p *RecordingProvider) FailWith(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
}

func (p *RecordingProvider) Send(_ context.Context, msg *Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	c := *msg
	c.To = append([]string(nil), msg.To...)
	p.messages = append(p.messages, c)
	return nil
}

func (p *RecordingProvider) Messages() []Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Message(nil), p.messages...)
}

// SentTo returns the messages addressed to recipient.
func (p *RecordingProvider) SentTo(recipient string) []Message {
	var res []Message
	for _, m := range p.Messages() {
		for _, to := range m.To {
			if to == recipient {
				res = append(res, m)
				break
			}
		}
	}
	return res
}

func (p *RecordingProvider) Close() error {
	return nil
}
