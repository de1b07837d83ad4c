// Package bot runs one worker per connected account session and dispatches
// inbound commands into the shared pipeline.
package bot

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/redcell-sec/reportbot/src/reportbot/components/command"
	"github.com/redcell-sec/reportbot/src/reportbot/components/pipeline"
	"github.com/redcell-sec/reportbot/src/shared/platform"
)

const inboundQueueSize = 64

// Manager owns the session workers. Workers share the pipeline and the rate
// limiter but no per-session state; a slow command on one session never
// blocks another.
type Manager struct {
	pipeline *pipeline.Pipeline
	limiter  *RateLimiter

	mu       sync.Mutex
	sessions []platform.Session
	wg       sync.WaitGroup
	stop     chan struct{}
}

func NewManager(p *pipeline.Pipeline, commandLimit time.Duration) *Manager {
	m := &Manager{
		pipeline: p,
		limiter:  NewRateLimiter(commandLimit),
		stop:     make(chan struct{}),
	}
	m.limiter.StartCleanup(10*time.Minute, m.stop)
	return m
}

// Attach registers the inbound callback on a session and starts its worker.
func (m *Manager) Attach(ctx context.Context, sess platform.Session) {
	inbound := make(chan platform.Message, inboundQueueSize)
	acct := sess.Account()

	sess.OnMessage(func(msg platform.Message) {
		select {
		case inbound <- msg:
		default:
			log.Printf("account %d: inbound queue full, dropping message", acct.ID)
		}
	})

	m.mu.Lock()
	m.sessions = append(m.sessions, sess)
	m.mu.Unlock()

	m.wg.Add(1)
	go m.run(ctx, sess, inbound)
}

func (m *Manager) run(ctx context.Context, sess platform.Session, inbound <-chan platform.Message) {
	defer m.wg.Done()
	acct := sess.Account()

	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-inbound:
			m.dispatch(ctx, sess, acct, msg)
		}
	}
}

func (m *Manager) dispatch(ctx context.Context, sess platform.Session, acct platform.Account, msg platform.Message) {
	// Only report commands are rate limited; management commands stay
	// free.
	if strings.HasPrefix(command.Verb(msg.Text), "report_") {
		key := fmt.Sprintf("%d:%d", acct.ID, msg.SenderID)
		if !m.limiter.CanUse(key) {
			wait := m.limiter.TimeUntilNext(key)
			reply := fmt.Sprintf("Please wait %d minutes and %d seconds before reporting again.",
				int(wait.Minutes()), int(wait.Seconds())%60)
			if err := sess.SendText(ctx, msg.ChannelID, reply); err != nil {
				log.Printf("account %d: send rate-limit notice: %v", acct.ID, err)
			}
			return
		}
	}

	reply := m.pipeline.HandleMessage(ctx, sess, msg)
	if reply == "" {
		return
	}
	if err := sess.SendText(ctx, msg.ChannelID, reply); err != nil {
		log.Printf("account %d: send reply: %v", acct.ID, err)
	}
}

// Close shuts every session down and waits for the workers to exit. The
// caller cancels the worker context first.
func (m *Manager) Close() {
	close(m.stop)

	m.mu.Lock()
	sessions := m.sessions
	m.mu.Unlock()

	for _, sess := range sessions {
		if err := sess.Close(); err != nil {
			log.Printf("close session: %v", err)
		}
	}
	m.wg.Wait()
}
