package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"travel-market-backend/internal/env"
	"travel-market-backend/internal/session"
)

// Terminal chat widget. Drives a real support session against the public
// server and the socket server, the same way the storefront panel does.
func main() {
	apiBase := env.GetOrDefault(env.APIBaseURL, "http://localhost:82")
	wsBase := env.GetOrDefault(env.WSBaseURL, "ws://localhost:83")

	home, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("resolve home dir: %v", err)
	}
	authPath := filepath.Join(home, ".travel-market-auth.json")

	auth := session.NewAuthStore(&session.FilePersister{Path: authPath})
	if err := auth.Init(); err != nil {
		log.Printf("auth hydrate: %v", err)
	}

	client := session.NewAPIClient(apiBase)
	manager := session.NewManager(auth, client, client, &session.WSDialer{BaseURL: wsBase})

	ctx := context.Background()
	sess, err := manager.OpenPanel(ctx)
	if err != nil {
		log.Fatalf("open chat panel: %v", err)
	}
	defer sess.Close()

	reader := bufio.NewReader(os.Stdin)

	if sess.State() == session.StateAwaitingContactInfo {
		name := prompt(reader, "Your name: ")
		email := prompt(reader, "Your email: ")
		if err := sess.SubmitContactInfo(ctx, name, email); err != nil {
			log.Fatalf("contact info: %v", err)
		}
	}

	// Inbound messages arrive on the transport's read loop; a small poll
	// keeps the terminal view current without a redraw framework.
	go func() {
		printed := printNew(sess, 0)
		ticker := time.NewTicker(500 * time.Millisecond)
		defer ticker.Stop()
		for range ticker.C {
			printed = printNew(sess, printed)
		}
	}()

	fmt.Println("Type a message and press enter. /quit to leave.")
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		line = strings.TrimSpace(line)
		if line == "/quit" {
			return
		}
		if line == "" {
			continue
		}

		if _, err := sess.SendMessage(ctx, line); err != nil {
			switch {
			case errors.Is(err, session.ErrNoCounterparty):
				fmt.Println("No agent is available right now, please try again.")
			case errors.Is(err, session.ErrNotConnected):
				fmt.Println("Chat is offline, your message was not sent.")
			default:
				fmt.Printf("Send failed: %v\n", err)
			}
			continue
		}
	}
}

func printNew(sess *session.Session, printed int) int {
	messages := sess.Messages()
	for _, msg := range messages[printed:] {
		name := msg.From
		if msg.SenderName != "" {
			name = msg.SenderName
		}
		fmt.Printf("[%s] %s: %s\n", msg.CreatedAt, name, msg.Content)
	}
	return len(messages)
}

func prompt(reader *bufio.Reader, label string) string {
	fmt.Print(label)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}
