package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/domain/chat"
	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/handler/http/response"
	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/pkg/validator"
)

const (
	wsWriteTimeout = 10 * time.Second
	wsPongTimeout  = 60 * time.Second
	wsPingInterval = 30 * time.Second
)

type ChatHandler interface {
	// Questions handles GET /chat/questions
	Questions(w http.ResponseWriter, r *http.Request)
	// Ask handles POST /chat/ask
	Ask(w http.ResponseWriter, r *http.Request)
	// WebSocket handles GET /chat/ws. Each text frame is a question.
	WebSocket(w http.ResponseWriter, r *http.Request)
}

type chatHandlerImpl struct {
	chatService chat.ChatService
	upgrader    websocket.Upgrader
	logger      *slog.Logger
}

func NewChatHandler(chatService chat.ChatService, allowedOrigins []string, logger *slog.Logger) ChatHandler {
	origins := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[o] = true
	}
	return &chatHandlerImpl{
		chatService: chatService,
		logger:      logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || origins["*"] || origins[origin] || origin == "http://"+r.Host
			},
		},
	}
}

type questionResponse struct {
	ID       string `json:"id"`
	Question string `json:"question"`
}

func (h *chatHandlerImpl) Questions(w http.ResponseWriter, r *http.Request) {
	intents := h.chatService.Questions()
	questions := make([]questionResponse, 0, len(intents))
	for _, intent := range intents {
		questions = append(questions, questionResponse{ID: intent.ID, Question: intent.Question})
	}
	response.Success(w, questions)
}

func (h *chatHandlerImpl) Ask(w http.ResponseWriter, r *http.Request) {
	var req chat.AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	answer, err := h.chatService.Ask(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, answer)
}

// wsError is sent instead of an answer when a question is rejected
type wsError struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

func (h *chatHandlerImpl) WebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	conn.SetReadLimit(int64(chat.MaxQuestionLength) * 4)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongTimeout))
	})

	// WriteControl may be called concurrently with WriteJSON below
	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(wsPingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteTimeout)); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}()

	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Warn("websocket closed unexpectedly", "error", err)
			}
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var payload interface{}
		answer, err := h.chatService.Ask(r.Context(), chat.AskRequest{Question: string(data)})
		if err != nil {
			var verrs validator.ValidationErrors
			if !errors.As(err, &verrs) {
				h.logger.Error("chat answer failed", "error", err)
				payload = wsError{Error: "An unexpected error occurred"}
			} else {
				payload = wsError{Error: "Validation failed", Details: verrs.ToMap()}
			}
		} else {
			payload = answer
		}

		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
		if err := conn.WriteJSON(payload); err != nil {
			return
		}
	}
}
