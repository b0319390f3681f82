package grow

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/mager/bloom/config"
	"github.com/mager/bloom/garden"
	"github.com/mager/bloom/middleware"
)

// StreamRequest is one websocket message from the client.
type StreamRequest struct {
	Track string `json:"track"`
}

// StreamHandler answers every {"track": ...} message on a websocket with
// the garden of that track, so a front end can browse tracks over one
// connection.
type StreamHandler struct {
	log      *zap.SugaredLogger
	grower   Grower
	upgrader websocket.Upgrader
}

func (*StreamHandler) Pattern() string {
	return "/grow/ws"
}

// NewStreamHandler builds a new StreamHandler.
func NewStreamHandler(log *zap.SugaredLogger, cfg config.Config, svc *garden.Service) *StreamHandler {
	return newStreamHandler(log, cfg.AllowedOrigins, svc)
}

func newStreamHandler(log *zap.SugaredLogger, allowedOrigins []string, g Grower) *StreamHandler {
	policy := middleware.CORS(allowedOrigins)
	return &StreamHandler{
		log:    log,
		grower: g,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Upgrades bypass CORS, so origins are checked here. Requests
			// without an Origin header do not come from browsers.
			CheckOrigin: func(r *http.Request) bool {
				return r.Header.Get("Origin") == "" || policy.OriginAllowed(r)
			},
		},
	}
}

func (h *StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Errorw("Error upgrading connection to WebSocket", "origin", r.Header.Get("Origin"), "error", err)
		return
	}
	defer conn.Close()

	ctx := r.Context()
	l := h.log.With("request_id", middleware.GetRequestID(ctx))
	l.Info("WebSocket client connected")

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				l.Errorw("Error reading WebSocket message", "error", err)
			}
			return
		}

		var (
			req StreamRequest
			msg interface{}
		)
		if err := json.Unmarshal(data, &req); err != nil {
			msg = ErrorResponse{Error: "invalid message: " + err.Error()}
		} else if req.Track == "" {
			msg = ErrorResponse{Error: "track is required"}
		} else if g, err := h.grower.Grow(ctx, req.Track); err != nil {
			l.Errorw("Failed to grow garden", "query", req.Track, "error", err)
			msg = ErrorResponse{Error: err.Error()}
		} else {
			msg = g
		}

		if err := conn.WriteJSON(msg); err != nil {
			l.Errorw("Error sending WebSocket message", "error", err)
			return
		}
	}
}
