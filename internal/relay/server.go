package relay

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Liam-made-young/REPUBLIC/internal/version"
	"github.com/Liam-made-young/REPUBLIC/pkg/logger"
)

// Server — HTTP-обвязка релея: апгрейд сокетов, health и отладка.
// Игровой семантики здесь нет: сервер не знает ни очередей ходов,
// ни команд — только комнаты и байты.
type Server struct {
	Registry *Registry
	Addr     string

	// RoomTTL — порог простоя, после которого комната закрывается.
	RoomTTL time.Duration
	// SweepEvery — период обхода комнат.
	SweepEvery time.Duration
}

// New создаёт сервер релея.
func New(addr string, roomTTL time.Duration) *Server {
	return &Server{
		Registry:   NewRegistry(),
		Addr:       addr,
		RoomTTL:    roomTTL,
		SweepEvery: time.Minute,
	}
}

// Run запускает HTTP сервер и уборщик комнат.
// Завершается по отмене контекста с корректным shutdown.
func (s *Server) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", enableCORS(s.handleWS))
	mux.HandleFunc("/health", enableCORS(s.handleHealth))
	mux.HandleFunc("/version", enableCORS(s.handleVersion))
	mux.HandleFunc("/debug/rooms", enableCORS(s.handleDebugRooms))

	srv := &http.Server{Addr: s.Addr, Handler: mux}

	go s.sweepLoop(ctx)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Log.WithError(err).Warn("relay shutdown error")
		}
	}()

	logger.Log.Infof("relay server running on %s", s.Addr)
	err := srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// sweepLoop периодически закрывает простаивающие комнаты.
func (s *Server) sweepLoop(ctx context.Context) {
	if s.RoomTTL <= 0 {
		return
	}
	ticker := time.NewTicker(s.SweepEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Registry.Sweep(s.RoomTTL); n > 0 {
				logger.Log.WithField("rooms", n).Info("swept stale rooms")
			}
		}
	}
}

func enableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		next(w, r)
	}
}

// handleWS обрабатывает подключение по WebSocket
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.WithError(err).Error("upgrade error")
		return
	}

	peer := NewPeer(s.Registry, conn)
	logger.Log.WithField("peer", peer.ID).Info("peer connected")

	go peer.writePump()
	go peer.readPump()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(version.Info())
}

// handleDebugRooms отдаёт срез активных комнат.
func (s *Server) handleDebugRooms(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	summaries := s.Registry.Summaries()
	if summaries == nil {
		w.Write([]byte("[]"))
		return
	}
	json.NewEncoder(w).Encode(summaries)
}
