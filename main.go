package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/joho/godotenv"

	"github.com/desarrolladores-de-pila-completa/app-desacoplada-sub002/domain"
	"github.com/desarrolladores-de-pila-completa/app-desacoplada-sub002/hub"
	"github.com/desarrolladores-de-pila-completa/app-desacoplada-sub002/metric"
	"github.com/desarrolladores-de-pila-completa/app-desacoplada-sub002/notify"
	"github.com/desarrolladores-de-pila-completa/app-desacoplada-sub002/protocol"
	ws "github.com/desarrolladores-de-pila-completa/app-desacoplada-sub002/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}
	setupLogger()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	metrics := metric.New()
	registry := hub.NewRegistry(metrics)
	rooms := hub.NewRooms()
	presence := hub.NewPresence(rooms, registry)
	router := protocol.NewRouter(registry, rooms, presence, metrics)
	lifecycle := hub.NewLifecycle(registry, rooms, presence)
	bridge := notify.NewBridge(registry)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", wsHandler(router, lifecycle, metrics))
	mux.HandleFunc("/health", healthHandler)
	mux.HandleFunc("/stats", statsHandler(registry, rooms))
	mux.Handle("/metrics", metrics.Handler())
	mux.HandleFunc("/internal/notify", notifyHandler(bridge))

	server := &http.Server{
		Addr:    ":" + port,
		Handler: mux,
	}

	go func() {
		slog.Info("gateway starting", "port", port)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err, "hint", "check that the port is not already in use")
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("gateway shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}

func setupLogger() {
	level := slog.LevelInfo
	switch os.Getenv("LOG_LEVEL") {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))
}

func wsHandler(router *protocol.Router, lifecycle *hub.Lifecycle, metrics *metric.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			slog.Error("upgrade error", "error", err)
			return
		}

		wsConn := ws.NewConn(uuid.New().String(), conn, router, lifecycle, metrics)
		wsConn.Start()
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func statsHandler(registry *hub.Registry, rooms *hub.Rooms) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]int{
			"users":         registry.Count(),
			"rooms":         rooms.RoomCount(),
			"globalMembers": len(rooms.Members(domain.GlobalRoom)),
		})
	}
}

type notifyRequest struct {
	UserID  string          `json:"userId"`
	Payload json.RawMessage `json:"payload"`
}

// notifyHandler lets the rest of the backend push a payload to a connected
// user. Delivery is best-effort, so 202 is returned whether or not the
// user is online.
func notifyHandler(bridge *notify.Bridge) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req notifyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if req.UserID == "" || len(req.Payload) == 0 {
			http.Error(w, "userId and payload are required", http.StatusBadRequest)
			return
		}

		bridge.DeliverToUser(req.UserID, req.Payload)
		w.WriteHeader(http.StatusAccepted)
	}
}
