package handlers

import (
	"log"
	"net/http"

	"github.com/dom/postboard/internal/api/middleware"
	"github.com/dom/postboard/internal/websocket"
	ws "github.com/gorilla/websocket"
)

var upgrader = ws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

type WebSocketHandler struct {
	hub           *websocket.Hub
	authenticator middleware.Authenticator
}

func NewWebSocketHandler(hub *websocket.Hub, authenticator middleware.Authenticator) *WebSocketHandler {
	return &WebSocketHandler{
		hub:           hub,
		authenticator: authenticator,
	}
}

// Handle upgrades to the live feed. Browsers cannot set headers on the
// upgrade request, so the access token may also come from ?token=.
//
//	@Summary		Open the live feed
//	@Description	Upgrade to a WebSocket that receives post and comment events.
//	@Tags			Feed
//	@Produce		json
//	@Security		BearerAuth
//	@Param			token	query		string	false	"Access token when the Authorization header cannot be set"
//	@Success		101	{string}	string	"Switching protocols"
//	@Failure		401	{object}	handlers.MessageResponse	"Access token required"
//	@Failure		403	{object}	handlers.MessageResponse	"Invalid or expired token"
//	@Router			/ws [get]
func (h *WebSocketHandler) Handle(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.BearerToken(r)
	if !ok {
		token = r.URL.Query().Get("token")
	}
	if token == "" {
		writeError(w, http.StatusUnauthorized, "Access token required")
		return
	}

	identity, err := h.authenticator.Authenticate(token)
	if err != nil {
		writeError(w, http.StatusForbidden, "Invalid or expired token")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	client := websocket.NewClient(h.hub, conn, identity.UserID)
	client.Greet()
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
