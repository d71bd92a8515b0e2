package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"maw-server/internal/domain"
	"maw-server/internal/infrastructure/journal"
	"maw-server/internal/network"
)

// JournalReader - чтение журнала повествования
type JournalReader interface {
	Recent(ctx context.Context, q journal.Query) ([]domain.LogEntry, error)
}

// DebugHandler предоставляет доступ к служебному состоянию сервера
type DebugHandler struct {
	Hub     *network.Broadcaster
	Journal JournalReader
}

func NewDebugHandler(hub *network.Broadcaster, j JournalReader) *DebugHandler {
	return &DebugHandler{Hub: hub, Journal: j}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/journal", h.handleJournal)
	mux.HandleFunc("/debug/clients", h.handleClients)
}

// /journal?limit=50&player=1 - последние строки повествования.
// С player - только то, что видел этот игрок.
func (h *DebugHandler) handleJournal(w http.ResponseWriter, r *http.Request) {
	if h.Journal == nil {
		http.Error(w, "Journal is disabled", http.StatusNotFound)
		return
	}

	q := journal.Query{Limit: 50}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 1000 {
			http.Error(w, "limit must be 1..1000", http.StatusBadRequest)
			return
		}
		q.Limit = n
	}
	if raw := r.URL.Query().Get("player"); raw != "" {
		player, err := parsePlayerID(raw)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		q.Player = player
	}

	entries, err := h.Journal.Recent(r.Context(), q)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []domain.LogEntry{}
	}
	writeJSON(w, entries)
}

// /debug/clients - сколько игроков подключено
func (h *DebugHandler) handleClients(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]int{"subscribers": h.Hub.SubscriberCount()})
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	// Разрешаем запросы с любого источника (нужно для локального debug-клиента)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	w.Header().Set("Content-Type", "application/json")

	// Пустой срез отдаём как [], а не null
	if data == nil {
		_, _ = w.Write([]byte("[]"))
		return
	}

	_ = json.NewEncoder(w).Encode(data)
}
