package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shtax/salary-calculator/internal/domain"
)

func newTestServer() *Server {
	return NewServer(domain.ShanghaiRules(), nil)
}

func postForm(t *testing.T, s *Server, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.Mux().ServeHTTP(rec, req)
	return rec
}

func TestIndexPage(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	s.Mux().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "<form")
}

func TestIndexUnknownPath(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	s.Mux().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCalculateMonthly(t *testing.T) {
	s := newTestServer()

	rec := postForm(t, s, "/calculate", url.Values{
		"amount": {"12000"},
		"mode":   {"monthly"},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "¥9753.00")
	assert.Contains(t, body, "¥147.00")
}

func TestCalculateAnnual(t *testing.T) {
	s := newTestServer()

	rec := postForm(t, s, "/calculate", url.Values{
		"amount": {"144000"},
		"mode":   {"annual"},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "¥115440.00")
	assert.Contains(t, body, "¥3360.00")
}

func TestCalculateDetails(t *testing.T) {
	s := newTestServer()

	rec := postForm(t, s, "/calculate", url.Values{
		"amount": {"12000"},
		"mode":   {"details"},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "¥371.00")
	assert.Contains(t, body, "/export")
}

func TestCalculateRejectsGet(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/calculate", nil)
	rec := httptest.NewRecorder()
	s.Mux().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestCalculateInvalidAmount(t *testing.T) {
	s := newTestServer()

	tests := []struct {
		name   string
		amount string
	}{
		{"Empty amount", ""},
		{"Non-numeric amount", "abc"},
		{"Negative amount", "-5000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postForm(t, s, "/calculate", url.Values{
				"amount": {tt.amount},
				"mode":   {"monthly"},
			})
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "salary amount")
		})
	}
}

func TestCalculateUnknownMode(t *testing.T) {
	s := newTestServer()

	rec := postForm(t, s, "/calculate", url.Values{
		"amount": {"12000"},
		"mode":   {"weekly"},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unrecognized mode")
}

func TestExportCSV(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/export?amount=12000", nil)
	rec := httptest.NewRecorder()
	s.Mux().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "salary_details.csv")

	body := rec.Body.String()
	lines := strings.Split(strings.TrimSpace(body), "\n")
	assert.Len(t, lines, 13)
	assert.Contains(t, lines[0], "cumulative_tax")
}

func TestExportInvalidAmount(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/export?amount=-1", nil)
	rec := httptest.NewRecorder()
	s.Mux().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
