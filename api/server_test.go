package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cloud-fee/core/compare"
)

func newTestServer() *Server {
	return NewServer(Options{
		Version:         "test",
		DefaultSample:   compare.SampleFactor{Step: 1_000_000, Count: 10},
		MaxSamplePoints: 100,
	})
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorDetail {
	t.Helper()
	var body ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func TestHealthAndVersion(t *testing.T) {
	s := newTestServer()

	rec := do(t, s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"healthy"`)

	rec = do(t, s, http.MethodGet, "/version", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"version":"test"`)
}

func TestListProviders(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodGet, "/v1/providers", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ProvidersResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	require.Len(t, resp.Categories["queue"], 2)
	require.Len(t, resp.Categories["serverless"], 2)
	require.Len(t, resp.Categories["storage"], 2)
	require.Len(t, resp.Categories["database"], 1)

	var workers ProviderInfo
	for _, p := range resp.Categories["serverless"] {
		if p.Key == "cloudflare-workers" {
			workers = p
		}
	}
	assert.Equal(t, "Cloudflare Workers", workers.Name)
	assert.Equal(t, "5", workers.FixedFee)
	assert.Equal(t, []string{"request_fee", "request_time_fee"}, workers.Components)
}

func TestFee(t *testing.T) {
	s := newTestServer()

	rec := do(t, s, http.MethodPost, "/v1/fees/serverless",
		`{"provider":"cloudflare-workers","usage":{"requests":20000000,"elapsed_ms":100}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result struct {
		Provider string `json:"provider"`
		Total    string `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "cloudflare-workers", result.Provider)
	assert.Equal(t, "47.4", result.Total)
}

func TestFeeEgress(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodPost, "/v1/fees/egress", `{"usage":{"transferred_gb":20}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":"2.28"`)
}

func TestFeeErrors(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		body   string
		status int
		code   string
	}{
		{
			name:   "unknown category",
			path:   "/v1/fees/compute",
			body:   `{"provider":"aws-sqs"}`,
			status: http.StatusBadRequest,
			code:   "INPUT_ERROR",
		},
		{
			name:   "unknown provider",
			path:   "/v1/fees/queue",
			body:   `{"provider":"azure-bus"}`,
			status: http.StatusNotFound,
			code:   "NOT_FOUND",
		},
		{
			name:   "malformed body",
			path:   "/v1/fees/queue",
			body:   `{"provider":`,
			status: http.StatusBadRequest,
			code:   "INPUT_ERROR",
		},
		{
			name:   "unknown field",
			path:   "/v1/fees/queue",
			body:   `{"provider":"aws-sqs","usage":{"gigawatts":1}}`,
			status: http.StatusBadRequest,
			code:   "INPUT_ERROR",
		},
	}

	s := newTestServer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, decodeError(t, rec).Code)
		})
	}
}

func TestCompare(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodPost, "/v1/compare/queue",
		`{"sample":{"step":1000000,"count":3},"message_per_batch":10,"size_of_message":10}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var c struct {
		Labels   []string `json:"labels"`
		Datasets []struct {
			Label string   `json:"label"`
			Data  []string `json:"data"`
		} `json:"datasets"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &c))
	assert.Equal(t, []string{"1000000", "2000000", "3000000"}, c.Labels)
	require.Len(t, c.Datasets, 2)
	assert.Equal(t, "Cloudflare Queues", c.Datasets[0].Label)
	assert.Equal(t, []string{"1.14", "2.68", "4.22"}, c.Datasets[0].Data)
}

func TestCompareDefaultSample(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodPost, "/v1/compare/storage", `{"egress_usage":10}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var c compare.Comparison
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &c))
	assert.Len(t, c.Labels, 10)
	assert.Len(t, c.Datasets, 3)
}

func TestCompareErrors(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		body   string
		status int
		code   string
	}{
		{"database", "/v1/compare/database", `{}`, http.StatusBadRequest, "NOT_SUPPORTED"},
		{"unknown category", "/v1/compare/compute", `{}`, http.StatusBadRequest, "INPUT_ERROR"},
		{"negative step", "/v1/compare/queue", `{"sample":{"step":-1,"count":3}}`, http.StatusBadRequest, "INPUT_ERROR"},
		{"too many points", "/v1/compare/serverless", `{"sample":{"step":1,"count":1000}}`, http.StatusBadRequest, "INPUT_ERROR"},
	}

	s := newTestServer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, decodeError(t, rec).Code)
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer()
	do(t, s, http.MethodPost, "/v1/fees/egress", `{"usage":{"transferred_gb":1}}`)

	rec := do(t, s, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `cloudfee_quotes_total{category="egress",provider="aws-egress"} 1`)
	assert.Contains(t, body, `route="/v1/fees/{category}"`)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, statusFor(io.ErrUnexpectedEOF))
}
