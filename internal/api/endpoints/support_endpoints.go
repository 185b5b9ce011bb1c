package endpoints

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"travel-market-backend/internal/dto"
	"travel-market-backend/internal/model"
	supportsvc "travel-market-backend/internal/service/support"
	"travel-market-backend/internal/websocket"
)

// SupportPaths carries the mount prefixes so a single endpoint set can be
// wired on both the storefront and the back-office server.
type SupportPaths struct {
	HistoryPrefix   string
	WebsocketPrefix string
}

type SupportEndpoints interface {
	OnDutyAgent(http.ResponseWriter, *http.Request) error
	History(http.ResponseWriter, *http.Request) error
	Websocket(http.ResponseWriter, *http.Request) error
	AgentStatus(http.ResponseWriter, *http.Request) error
	SendMessage(http.ResponseWriter, *http.Request) error
}

type supportEndpoints struct {
	service *supportsvc.Service
	handler *websocket.Handler
	paths   SupportPaths
}

func NewSupportEndpoints(service *supportsvc.Service, handler *websocket.Handler, paths SupportPaths) SupportEndpoints {
	return &supportEndpoints{
		service: service,
		handler: handler,
		paths:   paths,
	}
}

func (h *supportEndpoints) OnDutyAgent(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodGet: h.handleOnDutyAgent,
	})
}

func (h *supportEndpoints) History(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodGet: h.handleHistory,
	})
}

func (h *supportEndpoints) AgentStatus(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodPost: h.handleAgentStatus,
	})
}

func (h *supportEndpoints) SendMessage(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodPost: h.handleSendMessage,
	})
}

// handleSendMessage is the agent reply path. The back-office server has no
// websocket hub of its own, so the message is persisted here and pushed to
// the visitor's room through the Redis channel the socket server listens on.
func (h *supportEndpoints) handleSendMessage(w http.ResponseWriter, r *http.Request) error {
	var req dto.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    "Invalid request payload",
			ErrorLog:   fmt.Errorf("decode send message request: %w", err),
		}
	}

	message, err := h.service.RecordMessage(r.Context(), supportsvc.RecordMessageParams{
		OwnerID:   req.OwnerID,
		From:      req.From,
		To:        req.To,
		Content:   req.Content,
		CreatedAt: req.CreatedAt,
	})
	if err != nil {
		return h.serviceError(err)
	}

	if err := websocket.Publish(req.OwnerID, toMessagePayload(message)); err != nil {
		// Persisted but not delivered live; the visitor catches up on the
		// next history fetch.
		fmt.Println(err)
	}

	return WriteJSON(w, http.StatusCreated, toMessagePayload(message))
}

func (h *supportEndpoints) handleOnDutyAgent(w http.ResponseWriter, r *http.Request) error {
	agent, err := h.service.OnDutyAgent(r.Context())
	if err != nil {
		return h.serviceError(err)
	}

	return WriteJSON(w, http.StatusOK, dto.AgentResponse{
		AgentID: agent.AgentID,
		Name:    agent.Name,
	})
}

func (h *supportEndpoints) handleHistory(w http.ResponseWriter, r *http.Request) error {
	ownerID := strings.TrimPrefix(r.URL.Path, h.paths.HistoryPrefix)
	if ownerID == "" || strings.Contains(ownerID, "/") {
		return &HTTPError{
			StatusCode: http.StatusNotFound,
			Message:    "Conversation not found",
			ErrorLog:   fmt.Errorf("history path %q", r.URL.Path),
		}
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return &HTTPError{
				StatusCode: http.StatusBadRequest,
				Message:    "Invalid limit",
				ErrorLog:   fmt.Errorf("history limit %q", raw),
			}
		}
		limit = parsed
	}

	messages, err := h.service.History(r.Context(), ownerID, limit)
	if err != nil {
		return h.serviceError(err)
	}

	resp := dto.HistoryResponse{Messages: make([]dto.ChatMessagePayload, 0, len(messages))}
	for _, msg := range messages {
		resp.Messages = append(resp.Messages, toMessagePayload(msg))
	}

	return WriteJSON(w, http.StatusOK, resp)
}

// Websocket upgrades the request and joins the caller to the room named
// after the conversation owner. Messages flowing through the room are
// persisted by the handler's sink, not here.
func (h *supportEndpoints) Websocket(w http.ResponseWriter, r *http.Request) error {
	roomID := strings.TrimPrefix(r.URL.Path, h.paths.WebsocketPrefix)
	if roomID == "" || strings.Contains(roomID, "/") {
		return &HTTPError{
			StatusCode: http.StatusNotFound,
			Message:    "Conversation not found",
			ErrorLog:   fmt.Errorf("websocket path %q", r.URL.Path),
		}
	}

	clientID := r.URL.Query().Get("id")
	if clientID == "" {
		clientID = roomID
	}

	h.handler.CreateRoom(roomID)
	h.handler.JoinRoom(w, r, roomID, clientID)
	return nil
}

func (h *supportEndpoints) handleAgentStatus(w http.ResponseWriter, r *http.Request) error {
	agentID := r.URL.Query().Get("agentId")

	var req dto.AgentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    "Invalid request payload",
			ErrorLog:   fmt.Errorf("decode agent status request: %w", err),
		}
	}

	agent, err := h.service.SetAgentStatus(r.Context(), agentID, model.AgentStatus(req.Status))
	if err != nil {
		return h.serviceError(err)
	}

	return WriteJSON(w, http.StatusOK, dto.AgentResponse{
		AgentID: agent.AgentID,
		Name:    agent.Name,
	})
}

func (h *supportEndpoints) serviceError(err error) error {
	if err == nil {
		return nil
	}

	svcErr, ok := err.(*supportsvc.Error)
	if !ok {
		return &HTTPError{
			StatusCode: http.StatusInternalServerError,
			Message:    "Internal server error",
			ErrorLog:   fmt.Errorf("support service: %w", err),
		}
	}

	var errorLog error
	if svcErr.Err != nil {
		errorLog = fmt.Errorf("%s: %w", svcErr.Message, svcErr.Err)
	} else {
		errorLog = svcErr
	}

	switch svcErr.Code {
	case supportsvc.ErrorCodeValidation:
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    svcErr.Message,
			ErrorLog:   errorLog,
		}
	case supportsvc.ErrorCodeNotFound:
		return &HTTPError{
			StatusCode: http.StatusNotFound,
			Message:    svcErr.Message,
			ErrorLog:   errorLog,
		}
	default:
		return &HTTPError{
			StatusCode: http.StatusInternalServerError,
			Message:    "Internal server error",
			ErrorLog:   errorLog,
		}
	}
}

func toMessagePayload(msg model.ChatMessageItem) dto.ChatMessagePayload {
	return dto.ChatMessagePayload{
		From:          msg.From,
		To:            msg.To,
		Content:       msg.Content,
		CreatedAt:     msg.CreatedAt,
		SenderName:    msg.SenderName,
		SenderEmail:   msg.SenderEmail,
		CorrelationID: msg.CorrelationID,
	}
}
