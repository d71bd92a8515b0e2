package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/pprof"
	"time"

	"maw-server/internal/domain"
	"maw-server/internal/network"
	"maw-server/internal/version"
	"maw-server/pkg/logger"
)

// CommandSubmitter - вход игрового движка (engine.Engine)
type CommandSubmitter interface {
	Submit(cmd domain.Command) error
}

type Server struct {
	Engine  CommandSubmitter
	Hub     *network.Broadcaster
	Journal JournalReader // может быть nil
	Port    string

	httpServer *http.Server
}

func New(engine CommandSubmitter, hub *network.Broadcaster, journal JournalReader, port string) *Server {
	s := &Server{
		Engine:  engine,
		Hub:     hub,
		Journal: journal,
		Port:    port,
	}
	s.httpServer = &http.Server{
		Addr:              ":" + port,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler собирает все роуты
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Регистрируем роуты
	mux.HandleFunc("/ws", enableCORS(s.handleWS))
	mux.HandleFunc("/health", enableCORS(s.handleHealth))
	mux.HandleFunc("/version", enableCORS(s.handleVersion))

	// Debug Routes
	debugHandler := NewDebugHandler(s.Hub, s.Journal)
	debugHandler.RegisterRoutes(mux)

	// Profiling
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	return mux
}

// Run запускает HTTP сервер. После Shutdown возвращает http.ErrServerClosed.
func (s *Server) Run() error {
	logger.Log.Infof("Maw server running on :%s", s.Port)
	return s.httpServer.ListenAndServe()
}

// Shutdown останавливает приём соединений
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func enableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Разрешаем запросы с фронтенда
		w.Header().Set("Access-Control-Allow-Origin", "*")
		// Разрешаем заголовки, если фронт шлет что-то нестандартное
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		next(w, r)
	}
}

// handleWS обрабатывает подключение по WebSocket: /ws?player=<id>
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	player, err := parsePlayerID(r.URL.Query().Get("player"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Error("Upgrade error:", err)
		return
	}

	client := NewClient(s.Engine, s.Hub, conn, player)

	// Запускаем пампы
	go client.writePump()
	go client.readPump()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(version.Info())
}
