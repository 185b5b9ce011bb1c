package model

// ChatMessageItem is one persisted support-chat message. CreatedAt is the
// sender's client clock at send time, stored verbatim; the pk groups a
// visitor's conversation under their identity id.
type ChatMessageItem struct {
	PK            string `dynamodbav:"pk"`
	OwnerID       string `dynamodbav:"ownerId"`
	MessageID     string `dynamodbav:"messageId"`
	From          string `dynamodbav:"from"`
	To            string `dynamodbav:"to"`
	Content       string `dynamodbav:"content"`
	CreatedAt     string `dynamodbav:"createdAt"`
	SenderName    string `dynamodbav:"senderName,omitempty"`
	SenderEmail   string `dynamodbav:"senderEmail,omitempty"`
	CorrelationID string `dynamodbav:"correlationId,omitempty"`
}

// Sender ids reserved for seeded conversation openers.
const (
	SenderSystem = "system"
	SenderBot    = "bot"
)
