package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/photoindex/internal/domain"
	"github.com/kailas-cloud/photoindex/internal/domain/search/result"
	"github.com/kailas-cloud/photoindex/internal/transport/dto"
	gen "github.com/kailas-cloud/photoindex/internal/transport/generated"
	healthuc "github.com/kailas-cloud/photoindex/internal/usecase/health"
)

const maxEventBytes = 1 << 20

// Searcher answers one search query.
type Searcher interface {
	Search(ctx context.Context, rawQuery string) (result.Result, error)
}

// Ingester indexes one stored object.
type Ingester interface {
	Ingest(ctx context.Context, bucket, rawKey string) (string, error)
}

// Server implements generated.ServerInterface. search and ingest may be nil
// when the process was built without them.
type Server struct {
	gen.Unimplemented
	search Searcher
	ingest Ingester
	health *healthuc.Service
	logger *zap.Logger
}

var _ gen.ServerInterface = (*Server)(nil)

// NewServer creates an HTTP server.
func NewServer(search Searcher, ingest Ingester, health *healthuc.Service, log *zap.Logger) *Server {
	return &Server{search: search, ingest: ingest, health: health, logger: log}
}

// Search handles GET /search?q=...
func (s *Server) Search(w http.ResponseWriter, r *http.Request, params gen.SearchParams) {
	if s.search == nil {
		writeError(w, http.StatusNotImplemented, dto.CodeInternal, "search is not enabled")
		return
	}

	res, err := s.search.Search(r.Context(), params.Q)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	w.Header().Set("Access-Control-Allow-Origin", "*")
	writeJSON(w, http.StatusOK, dto.FromResult(&res))
}

// IngestS3Event handles POST /events/s3 with an S3 event notification body.
func (s *Server) IngestS3Event(w http.ResponseWriter, r *http.Request) {
	if s.ingest == nil {
		writeError(w, http.StatusNotImplemented, dto.CodeInternal, "ingestion is not enabled")
		return
	}

	var event events.S3Event
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxEventBytes)).Decode(&event); err != nil {
		writeError(w, http.StatusBadRequest, dto.CodeBadRequest, "invalid event body")
		return
	}
	if len(event.Records) == 0 {
		s.handleDomainError(w, r, domain.ErrEmptyEvent)
		return
	}

	var resp dto.IngestResponse
	for i := range event.Records {
		rec := &event.Records[i]
		contentType, err := s.ingest.Ingest(r.Context(), rec.S3.Bucket.Name, rec.S3.Object.Key)
		if err != nil {
			s.handleDomainError(w, r, err)
			return
		}
		resp.ContentType = contentType
	}
	writeJSON(w, http.StatusOK, resp)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, gen.HealthResponse{Status: gen.HealthResponseStatus(report.Status), Checks: checks})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code dto.ErrorCode, message string) {
	writeJSON(w, status, dto.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// statusFor maps an error code to its HTTP status.
func statusFor(code dto.ErrorCode) int {
	switch code {
	case dto.CodeBadRequest, dto.CodeMissingQuery, dto.CodeInvalidKey:
		return http.StatusBadRequest
	case dto.CodeUnauthorized:
		return http.StatusUnauthorized
	case dto.CodeObjectNotFound:
		return http.StatusNotFound
	case dto.CodeMissingLabels:
		return http.StatusUnprocessableEntity
	case dto.CodeUpstream:
		return http.StatusBadGateway
	case dto.CodeIndexNotFound:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// handleParamError answers requests the generated router rejected before
// they reached a handler.
func (s *Server) handleParamError(w http.ResponseWriter, r *http.Request, err error) {
	var required *gen.RequiredParamError
	if errors.As(err, &required) && required.ParamName == "q" {
		s.handleDomainError(w, r, domain.ErrMissingQuery)
		return
	}
	writeError(w, http.StatusBadRequest, dto.CodeBadRequest, "invalid request")
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := s.logger.With(zap.String("request_id", chiMiddleware.GetReqID(r.Context())))
	body := dto.Classify(err)
	status := statusFor(body.Code)
	if status >= http.StatusInternalServerError {
		log.Error("request failed", zap.Error(err))
	} else {
		log.Warn("domain error", zap.Error(err))
	}
	writeJSON(w, status, body)
}
