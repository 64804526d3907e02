package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/anchal00/blackjack/internal/config"
	"github.com/anchal00/blackjack/internal/db"
	"github.com/anchal00/blackjack/internal/logger"
	"github.com/anchal00/blackjack/internal/service"
	"github.com/anchal00/blackjack/internal/state"
)

const HTTP_API_V1_PREFIX = "/api/v1"

const defaultShutdownTimeout = 5 * time.Second

type GameServer struct {
	Db              db.Repository
	Service         *service.Service
	Logger          logger.Logger
	port            string
	wssUpgrader     websocket.Upgrader
	Router          *mux.Router
	ConnStore       ConnectionStore
	shutdownTimeout time.Duration
}

func (s *GameServer) UpgradeToWebsocket(writer http.ResponseWriter, request *http.Request) *websocket.Conn {
	conn, err := s.wssUpgrader.Upgrade(writer, request, nil)
	if err != nil {
		s.Logger.Error("Failed to upgrade to WS connection", err)
		return nil
	}
	return conn
}

// Run serves on the configured port until ctx is cancelled or the process
// receives SIGINT/SIGTERM.
func (s *GameServer) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%s", s.port))
	if err != nil {
		s.Logger.Error(fmt.Sprintf("Failed to start server on port %s", s.port), err)
		s.Shutdown()
		return err
	}
	return s.Serve(ctx, listener)
}

// Serve accepts connections on listener. It drains in-flight requests on
// shutdown and closes the repository before returning.
func (s *GameServer) Serve(ctx context.Context, listener net.Listener) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer s.Shutdown()

	httpServer := &http.Server{
		Handler:           s.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.Logger.Info(fmt.Sprintf("Starting server on %s", listener.Addr()))
		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.Logger.Info("Shutting down server....")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		// Hijacked websocket connections are not tracked by http.Server.
		s.ConnStore.CloseAll()
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *GameServer) Shutdown() {
	s.Db.CloseConnection()
	s.Logger.Info("Goodbye !")
}

func NewGameServer(cfg config.Config, log logger.Logger) (*GameServer, error) {
	var repo db.Repository
	switch cfg.Store {
	case config.StoreMemory:
		repo = state.NewInMemoryStore()
	default:
		store, err := db.SetupDB(cfg.DBDriver, cfg.DSN(), log)
		if err != nil {
			return nil, err
		}
		repo = store
	}
	svc := service.New(repo, log, service.WithSeed(cfg.Seed))
	gs := newGameServer(repo, svc, log.Named("api_server"), cfg.Port)
	if cfg.ShutdownTimeout > 0 {
		gs.shutdownTimeout = cfg.ShutdownTimeout
	}
	return gs, nil
}

func newGameServer(repo db.Repository, svc *service.Service, log logger.Logger, port string) *GameServer {
	router := mux.NewRouter().PathPrefix(HTTP_API_V1_PREFIX).Subrouter()
	gs := &GameServer{
		Db:      repo,
		Service: svc,
		Logger:  log,
		port:    port,
		wssUpgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		Router:          router,
		ConnStore:       NewConnectionStore(),
		shutdownTimeout: defaultShutdownTimeout,
	}
	router.Use(gs.withLogging, noCache)
	router.HandleFunc("/deal", gs.Deal).Methods("POST")
	router.HandleFunc("/game", gs.ActiveGame).Methods("GET")
	router.HandleFunc("/hit", gs.Hit).Methods("POST")
	router.HandleFunc("/stay", gs.Stand).Methods("POST")
	router.HandleFunc("/stand", gs.Stand).Methods("POST")
	router.HandleFunc("/stats", gs.Stats).Methods("GET")
	router.HandleFunc("/history", gs.History).Methods("GET")
	router.HandleFunc("/delete", gs.DeleteHistory).Methods("DELETE")
	router.HandleFunc("/delete/{token}", gs.DeleteHistory).Methods("DELETE")
	router.HandleFunc("/connect", gs.HandlePlayerInput)
	router.HandleFunc("/health", gs.Health).Methods("GET")
	return gs
}
