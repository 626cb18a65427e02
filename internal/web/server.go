package web

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/shtax/salary-calculator/internal/calculation"
	"github.com/shtax/salary-calculator/internal/domain"
	"github.com/shtax/salary-calculator/internal/output"
)

//go:embed templates/index.html.tmpl
var indexTemplateSource string

var indexTemplate = template.Must(template.New("index").Funcs(template.FuncMap{
	"curr": output.FormatCurrency,
	"pct":  output.FormatPercentage,
}).Parse(indexTemplateSource))

// Server is the web dashboard: one form, three report modes, CSV export. All
// calculation state is per-request; the rule set is read-only and shared.
type Server struct {
	calc   *calculation.ReportCalculator
	logger *zap.Logger
}

// NewServer creates a dashboard server over the given rule set.
func NewServer(rules *domain.RuleSet, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		calc:   calculation.NewReportCalculatorWithConfig(rules),
		logger: logger,
	}
}

// Mux builds the route table.
func (s *Server) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.logged(s.handleIndex))
	mux.HandleFunc("/calculate", s.logged(s.handleCalculate))
	mux.HandleFunc("/export", s.logged(s.handleExport))
	return mux
}

// logged wraps a handler with request logging.
func (s *Server) logged(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next(w, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)),
		)
	}
}

// pageData feeds the dashboard template. Exactly one of Monthly, Annual or
// Detail is set after a successful calculation.
type pageData struct {
	Amount   string
	Mode     string
	RoundInt bool
	Error    string
	Monthly  *domain.MonthlyRecord
	Annual   *domain.AnnualSummary
	Detail   *domain.DetailReport
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	s.render(w, pageData{Mode: "monthly"})
}

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	data := pageData{
		Amount:   r.PostFormValue("amount"),
		Mode:     r.PostFormValue("mode"),
		RoundInt: r.PostFormValue("round_int") == "on",
	}

	amount, err := parseAmount(data.Amount)
	if err != nil {
		s.renderError(w, data, err)
		return
	}

	switch data.Mode {
	case "monthly":
		rec, err := s.calc.MonthlyReport(amount, data.RoundInt)
		if err != nil {
			s.renderError(w, data, err)
			return
		}
		data.Monthly = &rec
	case "annual":
		summary, err := s.calc.AnnualReport(amount, data.RoundInt)
		if err != nil {
			s.renderError(w, data, err)
			return
		}
		data.Annual = &summary
	case "details":
		report, err := s.calc.DetailReport(amount, data.RoundInt)
		if err != nil {
			s.renderError(w, data, err)
			return
		}
		data.Detail = report
	default:
		s.renderError(w, data, fmt.Errorf("unrecognized mode: %q", data.Mode))
		return
	}

	s.render(w, data)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	amount, err := parseAmount(r.FormValue("amount"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	roundInt := r.FormValue("round_int") == "on" || r.FormValue("round_int") == "true"

	report, err := s.calc.DetailReport(amount, roundInt)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, calculation.ErrInvalidInput) {
			status = http.StatusBadRequest
		}
		http.Error(w, err.Error(), status)
		return
	}

	data, err := output.CSVFormatter{}.Format(report)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="salary_details.csv"`)
	_, _ = w.Write(data)
}

func (s *Server) render(w http.ResponseWriter, data pageData) {
	s.renderStatus(w, http.StatusOK, data)
}

func (s *Server) renderStatus(w http.ResponseWriter, status int, data pageData) {
	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, data); err != nil {
		s.logger.Error("template render failed", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) renderError(w http.ResponseWriter, data pageData, err error) {
	data.Error = err.Error()
	s.renderStatus(w, http.StatusBadRequest, data)
}

// parseAmount converts form input into a non-negative decimal salary.
func parseAmount(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, fmt.Errorf("salary amount is required: %w", calculation.ErrInvalidInput)
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("salary amount %q is not a number: %w", raw, calculation.ErrInvalidInput)
	}
	if amount.LessThan(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("salary amount cannot be negative, got %s: %w", amount, calculation.ErrInvalidInput)
	}
	return amount, nil
}
