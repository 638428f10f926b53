package api

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/p-shah256/bridge/internal/config"
	"github.com/p-shah256/bridge/internal/matching"
	"github.com/p-shah256/bridge/internal/patch"
	"github.com/p-shah256/bridge/internal/pricing"
	"github.com/p-shah256/bridge/internal/storage"
	"github.com/p-shah256/bridge/pkg/errors"
	"github.com/p-shah256/bridge/pkg/logger"
	"github.com/p-shah256/bridge/pkg/types"
)

const maxBodyBytes = 1 << 20

// Assistant is the generative side of the API.
type Assistant interface {
	Chat(ctx context.Context, message string, extra json.RawMessage) (string, error)
	GenerateDocument(ctx context.Context, kind string, profile *types.UserProfile, job *types.JobOpportunity) (string, error)
}

type Server struct {
	cfg        config.ServerConfig
	store      storage.Storage
	matcher    *matching.Service
	assistant  Assistant
	orders     *pricing.Service
	httpServer *http.Server
	now        func() time.Time
}

func NewServer(cfg config.ServerConfig, store storage.Storage, matcher *matching.Service, assistant Assistant, orders *pricing.Service) *Server {
	s := &Server{
		cfg:       cfg,
		store:     store,
		matcher:   matcher,
		assistant: assistant,
		orders:    orders,
		now:       time.Now,
	}
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

type route struct {
	pattern  string
	handlers map[string]http.HandlerFunc
}

func (s *Server) routes() []route {
	return []route{
		{"/health", map[string]http.HandlerFunc{http.MethodGet: s.handleHealth}},
		{"/{$}", map[string]http.HandlerFunc{http.MethodGet: s.handleIndex}},

		{"/api/user-profile", map[string]http.HandlerFunc{http.MethodPost: s.handleCreateProfile}},
		{"/api/user-profile/{id}", map[string]http.HandlerFunc{
			http.MethodGet: s.handleGetProfile,
			http.MethodPut: s.handleUpdateProfile,
		}},
		{"/api/user-profile/{id}/orders", map[string]http.HandlerFunc{http.MethodGet: s.handleListOrders}},

		{"/api/jobs", map[string]http.HandlerFunc{
			http.MethodGet:  s.handleListJobs,
			http.MethodPost: s.handleCreateJob,
		}},
		{"/api/jobs/{id}", map[string]http.HandlerFunc{
			http.MethodGet: s.handleGetJob,
			http.MethodPut: s.handleUpdateJob,
		}},

		{"/api/match-jobs", map[string]http.HandlerFunc{http.MethodPost: s.handleMatchJobs}},
		{"/api/matches/{userId}", map[string]http.HandlerFunc{http.MethodGet: s.handleListMatches}},
		{"/api/match/{id}", map[string]http.HandlerFunc{http.MethodGet: s.handleGetMatch}},

		{"/api/chat", map[string]http.HandlerFunc{http.MethodPost: s.handleChat}},
		{"/api/documents", map[string]http.HandlerFunc{http.MethodPost: s.handleGenerateDocument}},

		{"/api/pricing", map[string]http.HandlerFunc{http.MethodGet: s.handlePricing}},
		{"/api/pricing/orders", map[string]http.HandlerFunc{http.MethodPost: s.handleCreateOrder}},
		{"/api/pricing/orders/{id}/status", map[string]http.HandlerFunc{http.MethodPatch: s.handleUpdateOrderStatus}},

		{"/api/analytics/job-stats", map[string]http.HandlerFunc{http.MethodGet: s.handleJobStats}},
	}
}

// Handler returns the full middleware-wrapped router.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	for _, rt := range s.routes() {
		methods := make([]string, 0, len(rt.handlers))
		for m := range rt.handlers {
			methods = append(methods, m)
		}
		slices.Sort(methods)

		handlers := rt.handlers
		mux.HandleFunc(rt.pattern, MethodChecker(methods...)(func(w http.ResponseWriter, r *http.Request) {
			handlers[r.Method](w, r)
		}))
	}
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		s.respondError(w, r, errors.ErrNotFound(fmt.Sprintf("no route for %s %s", r.Method, r.URL.Path)))
	})

	return RequestID(Logger(Recover(CORS(s.cfg.CORSOrigin)(mux.ServeHTTP))))
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	slog.Info("Starting API server", "port", s.cfg.Port)
	if err := s.httpServer.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) respondError(w http.ResponseWriter, r *http.Request, apiErr *errors.ApiError) {
	RespondWithError(w, apiErr.WithRequestID(logger.GetRequestID(r.Context())))
}

// fail maps domain errors onto API errors. notFound is the detail used for
// storage.ErrNotFound.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	var fieldErrs types.FieldErrors
	switch {
	case stderrors.Is(err, storage.ErrNotFound):
		s.respondError(w, r, errors.ErrNotFound(notFound))
	case stderrors.Is(err, storage.ErrConflict):
		s.respondError(w, r, errors.ErrConflict(err.Error()))
	case stderrors.As(err, &fieldErrs):
		s.respondError(w, r, errors.ErrValidation(fieldErrs.Error()))
	case stderrors.Is(err, patch.ErrInvalidPatch), stderrors.Is(err, errBadBody):
		s.respondError(w, r, errors.ErrBadRequest(err.Error()))
	case stderrors.Is(err, pricing.ErrUnknownTier), stderrors.Is(err, pricing.ErrInvalidStatus):
		s.respondError(w, r, errors.ErrValidation(err.Error()))
	default:
		slog.Error("request failed",
			"path", r.URL.Path,
			"request_id", logger.GetRequestID(r.Context()),
			"error", err)
		s.respondError(w, r, errors.ErrInternalServer(err.Error()))
	}
}

var errBadBody = stderrors.New("invalid request body")

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errBadBody, err)
	}
	return body, nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	body, err := readBody(w, r)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("%w: %v", errBadBody, err)
	}
	return nil
}
