package dto

// ChatMessagePayload is the wire shape for one chat message, used on the
// websocket and by the history endpoint. SenderName/SenderEmail travel only
// with anonymous senders so the agent sees contact info without a lookup.
type ChatMessagePayload struct {
	From          string `json:"from"`
	To            string `json:"to"`
	Content       string `json:"content"`
	CreatedAt     string `json:"createdAt"`
	SenderName    string `json:"senderName,omitempty"`
	SenderEmail   string `json:"senderEmail,omitempty"`
	CorrelationID string `json:"correlationId,omitempty"`
}

type AgentResponse struct {
	AgentID string `json:"agentId"`
	Name    string `json:"name,omitempty"`
}

type HistoryResponse struct {
	Messages []ChatMessagePayload `json:"messages"`
}

type AgentStatusRequest struct {
	Status string `json:"status"`
}

// SendMessageRequest is the back-office reply path: the agent posts over
// REST and the message is fanned out to the visitor's room via Redis.
type SendMessageRequest struct {
	OwnerID   string `json:"ownerId"`
	From      string `json:"from"`
	To        string `json:"to"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
}
