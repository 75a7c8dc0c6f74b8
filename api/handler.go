package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"cloud-fee/core/fees"
	"cloud-fee/core/quote"
	apperrors "cloud-fee/internal/errors"
)

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"version": s.opts.Version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// handleVersion handles GET /version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"version":     s.opts.Version,
		"engine":      "cloud-fee",
		"api_version": "v1",
	})
}

// handleListProviders handles GET /v1/providers
func (s *Server) handleListProviders(w http.ResponseWriter, r *http.Request) {
	resp := ProvidersResponse{Categories: make(map[fees.Category][]ProviderInfo)}
	for _, c := range fees.Categories() {
		for _, p := range fees.Providers(c) {
			q, err := quote.Quote(string(c), string(p), quote.Usage{})
			if err != nil {
				s.writeError(w, err)
				return
			}
			info := ProviderInfo{Key: p, Name: p.Name(), Components: q.Breakdown.Names()}
			if q.FixedFee.IsPositive() {
				info.FixedFee = q.FixedFee.String()
			}
			resp.Categories[c] = append(resp.Categories[c], info)
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleFee handles POST /v1/fees/{category}
func (s *Server) handleFee(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")

	var req FeeRequest
	if err := decodeJSON(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes), &req); err != nil {
		s.writeError(w, err)
		return
	}

	result, err := quote.Quote(category, req.Provider, req.Usage)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.metrics.RecordQuote(result.Category, string(result.Provider))
	writeJSON(w, http.StatusOK, result)
}

// handleCompare handles POST /v1/compare/{category}
func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")

	var req compareRequest
	switch fees.Category(category) {
	case fees.CategoryQueue:
		req = &queueCompareRequest{}
	case fees.CategoryServerless:
		req = &serverlessCompareRequest{}
	case fees.CategoryStorage:
		req = &storageCompareRequest{}
	case fees.CategoryDatabase:
		s.writeError(w, apperrors.NotSupported("compare for category database"))
		return
	default:
		s.writeError(w, apperrors.Newf(apperrors.TypeInput, "unknown category: %s", category))
		return
	}

	if err := decodeJSON(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes), req); err != nil {
		s.writeError(w, err)
		return
	}

	sample := req.sample()
	if sample.Step == 0 && sample.Count == 0 {
		*sample = s.opts.DefaultSample
	}
	if err := sample.Validate(s.opts.MaxSamplePoints); err != nil {
		s.writeError(w, err)
		return
	}

	comparison := req.run()
	s.metrics.RecordComparison(category, len(comparison.Labels))
	writeJSON(w, http.StatusOK, comparison)
}

// decodeJSON decodes a single JSON object and rejects unknown fields. An
// empty body decodes to the zero value.
func decodeJSON(body io.Reader, v interface{}) error {
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return apperrors.Wrap(apperrors.TypeInput, "invalid JSON body", err)
	}
	if dec.More() {
		return apperrors.Input("request body must contain a single JSON object")
	}
	return nil
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.log.Error("request failed", zap.Error(err))
	}

	detail := ErrorDetail{Code: string(apperrors.TypeOf(err)), Message: err.Error()}
	var typed *apperrors.Error
	if errors.As(err, &typed) {
		detail.Message = typed.Message
		detail.Context = typed.Context
	}
	writeJSON(w, status, ErrorBody{Error: detail})
}

// statusFor maps error types to HTTP status codes
func statusFor(err error) int {
	switch apperrors.TypeOf(err) {
	case apperrors.TypeInput, apperrors.TypeParsing, apperrors.TypeNotSupported:
		return http.StatusBadRequest
	case apperrors.TypeNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
