package http

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"quizwhiz-service/internal/app"
	"quizwhiz-service/internal/domain"
)

type WSHandler struct {
	service  *app.SessionService
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.SessionService) *WSHandler {
	return &WSHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type selectPayload struct {
	OptionID string `json:"optionId"`
}

type jokerPayload struct {
	Kind domain.JokerKind `json:"kind"`
}

type startedPayload struct {
	SessionID string             `json:"sessionId"`
	View      domain.SessionView `json:"view"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades the request, starts a quiz session for the connecting user,
// and bridges the session's event stream and the client's commands over one
// websocket. The session is closed when the socket goes away.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	key := domain.TopicKey{
		ExamType: r.URL.Query().Get("examType"),
		Subject:  r.URL.Query().Get("subject"),
		Topic:    r.URL.Query().Get("topic"),
	}
	if userID == "" || key.ExamType == "" || key.Subject == "" || key.Topic == "" {
		http.Error(w, "missing userId, examType, subject, or topic", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	sess, err := h.service.StartSession(r.Context(), userID, key)
	if err != nil {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}
	sessionID := sess.ID()
	defer h.service.Close(sessionID)

	updates, cancel, err := h.service.Subscribe(sessionID)
	if err != nil {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}
	defer cancel()

	send := make(chan outboundMessage[any], 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	updatesDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		}
	}()

	go func() {
		defer close(updatesDone)
		for {
			select {
			case event, ok := <-updates:
				if !ok {
					return
				}
				select {
				case send <- eventMessage(event):
				case <-closeSignals:
					return
				}
			case <-closeSignals:
				return
			}
		}
	}()

	send <- outboundMessage[any]{Type: "started", Payload: startedPayload{SessionID: sessionID, View: sess.View()}}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "select":
			var payload selectPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- errorMessage("invalid select payload")
				continue
			}
			if _, err := h.service.SelectAnswer(sessionID, payload.OptionID); err != nil {
				send <- errorMessage(err.Error())
			}
		case "submit":
			if _, err := h.service.SubmitAnswer(r.Context(), sessionID); err != nil {
				send <- errorMessage(err.Error())
			}
		case "next":
			if _, err := h.service.NextQuestion(r.Context(), sessionID); err != nil {
				send <- errorMessage(err.Error())
			}
		case "joker":
			var payload jokerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- errorMessage("invalid joker payload")
				continue
			}
			if _, err := h.service.UseJoker(r.Context(), sessionID, payload.Kind); err != nil {
				send <- errorMessage(err.Error())
			}
		case "restart":
			if _, err := h.service.Restart(r.Context(), sessionID); err != nil {
				send <- errorMessage(err.Error())
			}
		default:
			send <- errorMessage("unsupported message type")
		}
	}

	close(closeSignals)
	<-updatesDone
	close(send)
	<-writerDone
}

func eventMessage(event domain.Event) outboundMessage[any] {
	switch event.Kind {
	case domain.EventNotice:
		return outboundMessage[any]{Type: "notice", Payload: event.Notice}
	default:
		return outboundMessage[any]{Type: "state", Payload: event.View}
	}
}

func errorMessage(message string) outboundMessage[any] {
	return outboundMessage[any]{Type: "error", Payload: errorPayload{Message: message}}
}
