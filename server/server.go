package main

import (
	"net/http"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/burntcarrot/richpad/commons"
	"github.com/burntcarrot/richpad/config"
	"github.com/burntcarrot/richpad/editor"
	"github.com/burntcarrot/richpad/style"
)

// Upgrader instance to upgrade all HTTP connections to a WebSocket.
var upgrader = websocket.Upgrader{}

type server struct {
	cfg    *config.Config
	sheet  *style.Stylesheet
	logger *logrus.Logger

	mu sync.Mutex

	// Map to store currently active client connections.
	activeClients map[*websocket.Conn]uuid.UUID
}

func newServer(cfg *config.Config, sheet *style.Stylesheet, logger *logrus.Logger) *server {
	return &server{
		cfg:           cfg,
		sheet:         sheet,
		logger:        logger,
		activeClients: make(map[*websocket.Conn]uuid.UUID),
	}
}

func (s *server) register(conn *websocket.Conn) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New()
	s.activeClients[conn] = id
	return id
}

func (s *server) unregister(conn *websocket.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.activeClients, conn)
}

// clients returns the number of connected clients.
func (s *server) clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.activeClients)
}

// handleConn upgrades a connection and serves its editing session until the
// client goes away.
func (s *server) handleConn(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Errorf("error upgrading connection to websocket: %v", err)
		return
	}
	defer conn.Close()

	id := s.register(conn)
	defer s.unregister(conn)

	log := s.logger.WithField("client", id)
	sess, err := newSession(id, editor.Config{
		Stylesheet:  s.sheet,
		Logger:      log,
		InitialHTML: s.cfg.Editor.InitialHTML,
	})
	if err != nil {
		log.Errorf("failed to create session: %v", err)
		_ = conn.WriteJSON(commons.Message{Type: commons.ErrorMessage, ID: id, Error: err.Error()})
		return
	}

	color.Green("%s >> %v connected (%d active)\n", time.Now().Format(time.ANSIC), id, s.clients())
	if err := conn.WriteJSON(sess.doc(false)); err != nil {
		log.Errorf("failed to send document: %v", err)
		return
	}

	for {
		var msg commons.Message

		// Read message from the connection.
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Errorf("websocket error: %v", err)
			}
			color.Yellow("%s >> %v disconnected\n", time.Now().Format(time.ANSIC), id)
			return
		}
		msg.ID = id

		// The replies see the resolved styles, the flush strips them.
		replies := sess.handle(msg)
		for _, reply := range replies {
			if err := conn.WriteJSON(reply); err != nil {
				log.Errorf("error sending message to client: %v", err)
				return
			}
		}
		sess.surface.Flush()
	}
}
