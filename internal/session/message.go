package session

import "strings"

const (
	SenderSystem = "system"
	SenderBot    = "bot"
)

// Message is one exchanged chat message. CreatedAt is assigned by the
// sender's client at send time, not by the server. CorrelationID is a
// client-generated id carried for future acknowledgement matching; it is
// never used for display or de-duplication.
type Message struct {
	From          string
	To            string
	Content       string
	CreatedAt     string
	SenderName    string
	SenderEmail   string
	CorrelationID string
}

// sameEvent is the de-duplication rule: two messages are the same event
// when createdAt, content and from all match. There is no server-assigned
// unique id, so two identical texts from one sender within the same
// timestamp collapse into one. Known weakness, kept deliberately.
func sameEvent(a, b Message) bool {
	return a.CreatedAt == b.CreatedAt && a.Content == b.Content && a.From == b.From
}

// messageLog is an append-only, arrival-ordered list. Inbound messages are
// never re-sorted by timestamp.
type messageLog struct {
	messages []Message
}

func (l *messageLog) append(msg Message) {
	l.messages = append(l.messages, msg)
}

// merge appends msg unless an equal event is already present. Reports
// whether the message was added.
func (l *messageLog) merge(msg Message) bool {
	for _, existing := range l.messages {
		if sameEvent(existing, msg) {
			return false
		}
	}
	l.messages = append(l.messages, msg)
	return true
}

func (l *messageLog) snapshot() []Message {
	out := make([]Message, len(l.messages))
	copy(out, l.messages)
	return out
}

// startsWithGreeting reports whether the log already opens with a message
// from the bot or system sender.
func (l *messageLog) startsWithGreeting() bool {
	if len(l.messages) == 0 {
		return false
	}
	from := l.messages[0].From
	return from == SenderBot || from == SenderSystem
}

func greetingContent(displayName string) string {
	name := strings.TrimSpace(displayName)
	if name == "" {
		return "Hi! How can we help you plan your trip?"
	}
	return "Hi " + name + "! How can we help you plan your trip?"
}
