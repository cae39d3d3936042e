package gateway

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"token-swap-gateway/config"
	"token-swap-gateway/pkg/client"
	"token-swap-gateway/pkg/quote"
	"token-swap-gateway/pkg/util"
)

// Server is the swap route gateway: it proxies allowance/approve/swap
// calls to the aggregator and serves the combined price quote. It holds
// no per-request state; the only shared mutable state is the rate
// limiter's window map.
type Server struct {
	cfg     *config.Config
	router  *mux.Router
	logger  *zap.Logger
	quotes  *quote.Service
	oneInch *client.OneInchClient
	limiter *RateLimiter
}

// NewServer creates a new gateway server
func NewServer(cfg *config.Config, logger *zap.Logger) *Server {
	retrier := client.NewRetrier(nil)

	s := &Server{
		cfg:     cfg,
		router:  mux.NewRouter(),
		logger:  logger,
		quotes:  quote.NewService(client.NewOracleClient(cfg.MoralisBaseURL, cfg.MoralisKey, retrier)),
		oneInch: client.NewOneInchClient(cfg.OneInchBaseURL, cfg.OneInchKey, retrier),
		limiter: NewRateLimiter(cfg.RateLimitMax, cfg.RateLimitWindow, util.RealClock{}),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/tokenPrice", s.handleTokenPrice).Methods("GET")
	s.router.HandleFunc("/api/1inch-allowance", s.handleAllowance).Methods("GET")
	s.router.HandleFunc("/api/1inch-approve-transaction", s.handleApproveTransaction).Methods("GET")
	s.router.HandleFunc("/api/1inch-swap", s.handleSwap).Methods("GET")

	// Health check
	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")
}

// Handler returns the fully wrapped HTTP handler: rate limiting, then
// request logging, then CORS, then the router.
func (s *Server) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: []string{s.cfg.AllowedOrigin},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})

	return s.limiter.Middleware(s.logRequests(c.Handler(s.router)))
}

// Start starts the gateway server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.logger.Info("gateway listening", zap.String("addr", addr))
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("took", time.Since(start)),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, map[string]string{"status": "ok"})
}
