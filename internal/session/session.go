package session

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrContactInfoRequired = errors.New("session: contact info required before sending")
	ErrEmptyMessage        = errors.New("session: message content is empty")
	ErrNotConnected        = errors.New("session: transport is not connected")
	ErrNoCounterparty      = errors.New("session: no support agent available, please try again")
	ErrSessionClosed       = errors.New("session: session is closed")
	ErrContactInfoInvalid  = errors.New("session: name and email are required")
)

// Manager creates sessions, one per panel open. It keeps the contact info
// an anonymous visitor already typed earlier in this process, so reopening
// the panel skips the form. Nothing else survives a panel close.
type Manager struct {
	auth      *AuthStore
	directory Directory
	history   HistoryFetcher
	dialer    Dialer
	now       func() time.Time

	mu          sync.Mutex
	cachedName  string
	cachedEmail string
}

func NewManager(auth *AuthStore, directory Directory, history HistoryFetcher, dialer Dialer) *Manager {
	return &Manager{
		auth:      auth,
		directory: directory,
		history:   history,
		dialer:    dialer,
		now:       time.Now,
	}
}

// NewManagerWithClock is the test constructor; it pins the timestamp source.
func NewManagerWithClock(auth *AuthStore, directory Directory, history HistoryFetcher, dialer Dialer, now func() time.Time) *Manager {
	m := NewManager(auth, directory, history, dialer)
	m.now = now
	return m
}

// OpenPanel starts a fresh session. Authenticated visitors proceed straight
// through the handshake; anonymous visitors stop at the contact-info gate
// unless contact info was already collected earlier in this process.
func (m *Manager) OpenPanel(ctx context.Context) (*Session, error) {
	s := &Session{
		manager: m,
		state:   StateResolvingIdentity,
	}

	if account, ok := m.auth.Current(); ok {
		s.identity = Identity{Kind: KindAuthenticated, ID: account.UserID}
		s.profileName = account.Name
		s.advance(ctx)
		return s, nil
	}

	s.identity = Identity{Kind: KindAnonymous, ID: NewAnonymousID(m.now())}

	m.mu.Lock()
	name, email := m.cachedName, m.cachedEmail
	m.mu.Unlock()

	if name != "" && email != "" {
		s.identity.DisplayName = name
		s.identity.DisplayEmail = email
		s.advance(ctx)
		return s, nil
	}

	s.state = StateAwaitingContactInfo
	return s, nil
}

func (m *Manager) cacheContactInfo(name, email string) {
	m.mu.Lock()
	m.cachedName = name
	m.cachedEmail = email
	m.mu.Unlock()
}

// Session is one visitor conversation, scoped to a single panel open. It
// exclusively owns its transport; closing the panel tears everything down
// and a reopen starts the full handshake again.
type Session struct {
	manager *Manager

	mu             sync.Mutex
	state          State
	identity       Identity
	profileName    string
	counterpartyID string
	transport      Transport
	log            messageLog
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Identity() Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity
}

// Messages returns the current list, oldest first by arrival.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.log.snapshot()
}

// SubmitContactInfo completes the anonymous contact form and resumes the
// handshake. There is no skip path.
func (s *Session) SubmitContactInfo(ctx context.Context, name, email string) error {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" {
		return ErrContactInfoInvalid
	}

	s.mu.Lock()
	if s.state == StateClosed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	if s.state != StateAwaitingContactInfo {
		s.mu.Unlock()
		return nil
	}
	s.identity.DisplayName = name
	s.identity.DisplayEmail = email
	s.mu.Unlock()

	s.manager.cacheContactInfo(name, email)
	s.advance(ctx)
	return nil
}

// advance walks counterparty resolution, connection and history hydration.
// Every step is non-fatal: a failed lookup is retried lazily at send time,
// a failed dial leaves the session usable in a degraded mode, and a failed
// history fetch falls back to the seeded greeting.
func (s *Session) advance(ctx context.Context) {
	s.mu.Lock()
	if s.state == StateClosed {
		s.mu.Unlock()
		return
	}
	s.state = StateResolvingCounterparty
	s.mu.Unlock()

	if agentID, err := s.manager.directory.OnDutyAgent(ctx); err != nil {
		log.Printf("chat session: counterparty lookup: %v", err)
	} else {
		s.mu.Lock()
		s.counterpartyID = agentID
		s.mu.Unlock()
	}

	s.mu.Lock()
	if s.state == StateClosed {
		s.mu.Unlock()
		return
	}
	s.state = StateConnecting
	identity := s.identity
	s.mu.Unlock()

	transport, err := s.manager.dialer.Dial(ctx, identity, s.receive)
	if err != nil {
		log.Printf("chat session: connect: %v", err)
	}

	s.mu.Lock()
	if s.state == StateClosed {
		s.mu.Unlock()
		if transport != nil {
			transport.Close()
		}
		return
	}
	s.transport = transport
	s.state = StateLoadingHistory
	s.mu.Unlock()

	s.loadHistory(ctx)

	s.mu.Lock()
	if s.state != StateClosed {
		s.state = StateActive
	}
	s.mu.Unlock()
}

func (s *Session) loadHistory(ctx context.Context) {
	s.mu.Lock()
	identity := s.identity
	greetingName := identity.DisplayName
	if identity.Kind == KindAuthenticated {
		greetingName = s.profileName
	}
	now := s.manager.now()
	s.mu.Unlock()

	greeting := Message{
		From:      SenderSystem,
		To:        identity.ID,
		Content:   greetingContent(greetingName),
		CreatedAt: now.UTC().Format(time.RFC3339),
	}

	if identity.Kind == KindAnonymous {
		s.mu.Lock()
		s.log.append(greeting)
		s.mu.Unlock()
		return
	}

	history, err := s.manager.history.History(ctx, identity.ID)
	if err != nil {
		log.Printf("chat session: history fetch: %v", err)
		history = nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateClosed {
		return
	}
	for _, msg := range history {
		s.log.append(msg)
	}
	if !s.log.startsWithGreeting() {
		s.log.messages = append([]Message{greeting}, s.log.messages...)
	}
}

// SendMessage validates, lazily re-resolves the counterparty if it is
// still unknown, appends the message locally and publishes it. The local
// append happens before the publish so the sender always sees their own
// message immediately; if no transport is open nothing is appended, so a
// message that was never sent is never shown.
func (s *Session) SendMessage(ctx context.Context, content string) (Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return Message{}, ErrEmptyMessage
	}

	s.mu.Lock()
	switch s.state {
	case StateClosed:
		s.mu.Unlock()
		return Message{}, ErrSessionClosed
	case StateAwaitingContactInfo:
		s.mu.Unlock()
		return Message{}, ErrContactInfoRequired
	case StateActive:
	default:
		s.mu.Unlock()
		return Message{}, ErrNotConnected
	}
	counterparty := s.counterpartyID
	identity := s.identity
	transport := s.transport
	s.mu.Unlock()

	if counterparty == "" {
		agentID, err := s.manager.directory.OnDutyAgent(ctx)
		if err != nil {
			return Message{}, ErrNoCounterparty
		}
		counterparty = agentID
		s.mu.Lock()
		s.counterpartyID = agentID
		s.mu.Unlock()
	}

	if transport == nil {
		return Message{}, ErrNotConnected
	}

	msg := Message{
		From:          identity.ID,
		To:            counterparty,
		Content:       content,
		CreatedAt:     s.manager.now().UTC().Format(time.RFC3339Nano),
		CorrelationID: uuid.NewString(),
	}
	if identity.Anonymous() {
		msg.SenderName = identity.DisplayName
		msg.SenderEmail = identity.DisplayEmail
	}

	s.mu.Lock()
	if s.state != StateActive {
		s.mu.Unlock()
		return Message{}, ErrSessionClosed
	}
	s.log.append(msg)
	s.mu.Unlock()

	if err := s.transportPublish(transport, msg); err != nil {
		// The optimistic append stands; delivery is unacknowledged.
		log.Printf("chat session: publish: %v", err)
	}
	return msg, nil
}

func (s *Session) transportPublish(transport Transport, msg Message) error {
	return transport.Publish(msg)
}

// receive merges one inbound transport event. Duplicates by the
// (createdAt, content, from) rule are dropped; everything else is appended
// in arrival order. Events landing after close are discarded.
func (s *Session) receive(msg Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateClosed {
		return
	}
	s.log.merge(msg)
}

// Close tears the session down unconditionally. Messages, counterparty and
// the contact info of this open are discarded; the transport is closed and
// never reused. There is no reconnect.
func (s *Session) Close() {
	s.mu.Lock()
	transport := s.transport
	s.transport = nil
	s.counterpartyID = ""
	s.log = messageLog{}
	s.state = StateClosed
	s.mu.Unlock()

	if transport != nil {
		if err := transport.Close(); err != nil {
			log.Printf("chat session: close transport: %v", err)
		}
	}
}
