// Package notification provides the notification manager for broadcasting player changes.
package notification

import (
	"sync"
	"time"

	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/radio247/internal/app/player"
)

// Type identifies why a notification was sent.
type Type int

const (
	TypeInitialState Type = iota // First notification of a subscription
	TypeChangeState              // The player state changed
)

// String returns the string representation of the type.
func (t Type) String() string {
	switch t {
	case TypeInitialState:
		return "initial_state"
	case TypeChangeState:
		return "change_state"
	default:
		return "unknown"
	}
}

// Notification carries a player snapshot to a subscriber.
type Notification struct {
	Type       Type
	SequenceNo uint64
	SessionID  string
	Snapshot   player.Snapshot
}

// Stream represents a notification stream for a subscriber.
type Stream interface {
	Send(Notification) error
}

// subscription represents a subscriber's subscription.
// Notifications wait in a one-slot mailbox that keeps only the newest snapshot,
// and a per-subscription goroutine delivers them in order.
type subscription struct {
	id        string
	sessionID string
	stream    Stream

	mu      sync.Mutex
	pending *Notification
	wake    chan struct{}

	done     chan struct{}
	stopOnce sync.Once
}

// offer stores n unless a newer snapshot is already waiting.
func (s *subscription) offer(n Notification) {
	s.mu.Lock()
	if s.pending == nil || s.pending.Snapshot.Version <= n.Snapshot.Version {
		s.pending = &n
	}
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *subscription) take() (Notification, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return Notification{}, false
	}
	n := *s.pending
	s.pending = nil
	return n, true
}

func (s *subscription) stop() {
	s.stopOnce.Do(func() {
		close(s.done)
	})
}

// Manager manages notification subscriptions and broadcasting.
type Manager struct {
	mu            sync.RWMutex
	subscriptions map[string]*subscription
	sequenceNo    uint64
	sequenceNoMu  sync.Mutex
	sendTimeout   time.Duration
}

// NewManager creates a new notification manager.
// Sends slower than sendTimeout are logged; they never hold up Publish.
func NewManager(sendTimeout time.Duration) *Manager {
	if sendTimeout <= 0 {
		sendTimeout = 500 * time.Millisecond
	}
	return &Manager{
		subscriptions: make(map[string]*subscription),
		sendTimeout:   sendTimeout,
	}
}

// Subscribe adds a subscription to a session's changes and returns its ID.
func (m *Manager) Subscribe(sessionID string, stream Stream) string {
	sub := &subscription{
		id:        uuid.New().String(),
		sessionID: sessionID,
		stream:    stream,
		wake:      make(chan struct{}, 1),
		done:      make(chan struct{}),
	}

	m.mu.Lock()
	m.subscriptions[sub.id] = sub
	m.mu.Unlock()

	go m.deliver(sub)
	return sub.id
}

// NextSequenceNo returns the next sequence number and increments the counter.
func (m *Manager) NextSequenceNo() uint64 {
	m.sequenceNoMu.Lock()
	defer m.sequenceNoMu.Unlock()
	m.sequenceNo++
	return m.sequenceNo
}

// Unsubscribe removes a subscription. Undelivered notifications are dropped.
func (m *Manager) Unsubscribe(subscriptionID string) {
	m.mu.Lock()
	sub, ok := m.subscriptions[subscriptionID]
	delete(m.subscriptions, subscriptionID)
	m.mu.Unlock()

	if ok {
		sub.stop()
	}
}

// Publish queues a change notification for every subscriber of the session
// and returns without waiting for delivery. A subscriber that falls behind
// receives only the newest snapshot.
func (m *Manager) Publish(sessionID string, snap player.Snapshot) {
	m.mu.RLock()
	// Copy subscriptions to avoid holding lock while queueing
	subs := make([]*subscription, 0)
	for _, sub := range m.subscriptions {
		if sub.sessionID == sessionID {
			subs = append(subs, sub)
		}
	}
	m.mu.RUnlock()

	if len(subs) == 0 {
		return
	}

	n := Notification{
		Type:       TypeChangeState,
		SequenceNo: m.NextSequenceNo(),
		SessionID:  sessionID,
		Snapshot:   snap,
	}
	for _, sub := range subs {
		sub.offer(n)
	}
}

func (m *Manager) deliver(sub *subscription) {
	for {
		select {
		case <-sub.done:
			return
		case <-sub.wake:
		}

		n, ok := sub.take()
		if !ok {
			continue
		}
		m.send(sub, n)
	}
}

// send delivers one notification. Sends stay sequential per subscription;
// one exceeding the send timeout is logged and then waited for.
func (m *Manager) send(sub *subscription, n Notification) {
	result := make(chan error, 1)
	go func() {
		result <- sub.stream.Send(n)
	}()

	timer := time.NewTimer(m.sendTimeout)
	defer timer.Stop()

	select {
	case err := <-result:
		logSendError(sub, err)
		return
	case <-timer.C:
		zlog.Warn().Msgf("slow notification subscriber: subscription=%s timeout=%s", sub.id, m.sendTimeout)
	case <-sub.done:
		return
	}

	select {
	case err := <-result:
		logSendError(sub, err)
	case <-sub.done:
	}
}

func logSendError(sub *subscription, err error) {
	if err != nil {
		zlog.Debug().Msgf("notification send failed: subscription=%s error=%v", sub.id, err)
	}
}

// SubscriberCount returns the number of active subscribers.
func (m *Manager) SubscriberCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.subscriptions)
}

// SessionSubscriberCount returns the number of subscribers of one session.
func (m *Manager) SessionSubscriberCount(sessionID string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, sub := range m.subscriptions {
		if sub.sessionID == sessionID {
			count++
		}
	}
	return count
}

// Close removes all subscriptions.
func (m *Manager) Close() {
	m.mu.Lock()
	subs := m.subscriptions
	m.subscriptions = make(map[string]*subscription)
	m.mu.Unlock()

	for _, sub := range subs {
		sub.stop()
	}
}
