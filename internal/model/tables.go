package model

import "fmt"

const (
	UsersTable    = "Users"
	AgentsTable   = "Agents"
	ToursTable    = "Tours"
	BookingsTable = "Bookings"
	MessagesTable = "ChatMessages"
)

type UserItem struct {
	UserID       string `dynamodbav:"userId"`
	Email        string `dynamodbav:"email"`
	Name         string `dynamodbav:"name"`
	Status       string `dynamodbav:"status"`
	PasswordHash string `dynamodbav:"passwordHash"`
	CreatedAt    string `dynamodbav:"createdAt"`
}

type AgentStatus string

const (
	AgentStatusOnDuty  AgentStatus = "on_duty"
	AgentStatusOffDuty AgentStatus = "off_duty"
)

type AgentItem struct {
	AgentID   string      `dynamodbav:"agentId"`
	Name      string      `dynamodbav:"name"`
	Email     string      `dynamodbav:"email"`
	Status    AgentStatus `dynamodbav:"status"`
	CreatedAt string      `dynamodbav:"createdAt"`
}

func MessagePK(userID, messageID string) string {
	return fmt.Sprintf("%s#%s", userID, messageID)
}
