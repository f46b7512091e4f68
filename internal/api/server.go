// Package api exposes the load planner over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/piwi3910/CargoLoad/internal/engine"
	"github.com/piwi3910/CargoLoad/internal/importer"
	"github.com/piwi3910/CargoLoad/internal/model"
)

// DefaultMaxUnits bounds how many units the cargo of one request may expand to.
const DefaultMaxUnits = 10000

// Server serves the planning API. It holds no per-request state, so one
// Server may handle concurrent requests.
type Server struct {
	catalog  []model.ContainerType
	settings model.PlanSettings
	maxUnits int
	log      *slog.Logger
}

// NewServer returns a server planning against catalog with the given
// default settings.
func NewServer(catalog []model.ContainerType, settings model.PlanSettings, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{catalog: catalog, settings: settings, maxUnits: DefaultMaxUnits, log: logger}
}

// SetMaxUnits changes the per-request unit budget. Values below one restore
// DefaultMaxUnits.
func (s *Server) SetMaxUnits(n int) {
	if n < 1 {
		n = DefaultMaxUnits
	}
	s.maxUnits = n
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/healthz", s.handleHealth)

	v1 := r.Group("/api/v1")
	v1.GET("/containers", s.handleContainers)
	v1.POST("/plan", s.handlePlan)
	v1.POST("/compare", s.handleCompare)
	v1.POST("/estimate", s.handleEstimate)
	v1.POST("/import/paste", s.handlePaste)

	return r
}

// requestLogger logs one line per request through slog.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// ListenAndServe serves the API on addr until ctx is cancelled, then shuts
// down gracefully within shutdownTimeout.
func (s *Server) ListenAndServe(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("starting HTTP server", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleContainers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"containers": s.catalog})
}

// PlanRequest is the body of plan, compare and estimate calls.
type PlanRequest struct {
	Cargo        []model.CargoTemplate `json:"cargo"`
	ContainerIDs []string              `json:"container_ids"`
	Containers   []model.ContainerType `json:"containers,omitempty"` // extra types for this request only
	Metric       string                `json:"metric,omitempty"`
	RoundCap     int                   `json:"round_cap,omitempty"`
	Stowage      *float64              `json:"stowage,omitempty"` // estimate only
}

// PlanSummary carries the headline numbers of a plan.
type PlanSummary struct {
	Containers      int            `json:"containers"`
	Placed          int            `json:"placed"`
	Overflow        int            `json:"overflow"`
	TotalWeight     float64        `json:"total_weight"`
	MeanUtilization float64        `json:"mean_utilization"`
	TypeCounts      map[string]int `json:"type_counts"`
}

// PlanResponse is returned by the plan endpoint.
type PlanResponse struct {
	Summary        PlanSummary            `json:"summary"`
	Result         model.FleetResult      `json:"result"`
	OverflowGroups []engine.OverflowGroup `json:"overflow_groups"`
	FreeSpace      []model.FreeSpace      `json:"free_space"`
	Warnings       []string               `json:"warnings"`
}

// ScenarioResponse is one entry of the compare endpoint's response.
type ScenarioResponse struct {
	Name            string  `json:"name"`
	ContainersUsed  int     `json:"containers_used"`
	OverflowCount   int     `json:"overflow_count"`
	MeanUtilization float64 `json:"mean_utilization"`
	TypeSummary     string  `json:"type_summary"`
}

// ImportResponse is returned by the paste import endpoint.
type ImportResponse struct {
	Cargo    []model.CargoTemplate `json:"cargo"`
	Errors   []string              `json:"errors"`
	Warnings []string              `json:"warnings"`
}

var errNoContainers = errors.New("no container types selected")

// resolve validates a request and returns the cargo, the selected types and
// the settings to plan with.
func (s *Server) resolve(req PlanRequest) ([]model.CargoTemplate, []model.ContainerType, model.PlanSettings, error) {
	settings := s.settings
	if req.Metric != "" {
		metric, err := model.ParseSelectionMetric(req.Metric)
		if err != nil {
			return nil, nil, settings, err
		}
		settings.Metric = metric
	}
	if req.RoundCap < 0 {
		return nil, nil, settings, fmt.Errorf("round_cap must not be negative")
	}
	if req.RoundCap > 0 {
		settings.RoundCap = min(req.RoundCap, model.DefaultRoundCap)
	}

	if err := model.ValidateTemplates(req.Cargo); err != nil {
		return nil, nil, settings, err
	}
	if err := checkUnitBudget(req.Cargo, s.maxUnits); err != nil {
		return nil, nil, settings, err
	}

	catalog := s.catalog
	if len(req.Containers) > 0 {
		for _, ct := range req.Containers {
			if err := ct.Validate(); err != nil {
				return nil, nil, settings, err
			}
		}
		catalog = append(append([]model.ContainerType{}, s.catalog...), req.Containers...)
	}

	ids := req.ContainerIDs
	if len(ids) == 0 {
		for _, ct := range req.Containers {
			ids = append(ids, ct.ID)
		}
	}
	if len(ids) == 0 {
		return nil, nil, settings, errNoContainers
	}
	selected, unknown := model.SelectContainers(catalog, ids)
	if len(unknown) > 0 {
		return nil, nil, settings, fmt.Errorf("unknown container types: %s", strings.Join(unknown, ", "))
	}

	return req.Cargo, selected, settings, nil
}

// checkUnitBudget fails when templates expand to more than limit units. The
// running total never exceeds limit, so huge quantities cannot overflow it.
func checkUnitBudget(templates []model.CargoTemplate, limit int) error {
	total := 0
	for _, t := range templates {
		if t.Quantity > limit-total {
			return fmt.Errorf("cargo expands to more than %d units", limit)
		}
		total += t.Quantity
	}
	return nil
}

func (s *Server) bindPlanRequest(c *gin.Context) (PlanRequest, bool) {
	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return req, false
	}
	return req, true
}

func (s *Server) handlePlan(c *gin.Context) {
	req, ok := s.bindPlanRequest(c)
	if !ok {
		return
	}
	cargo, types, settings, err := s.resolve(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := engine.New(settings, s.log).Plan(cargo, types)
	counts, _ := result.TypeCounts()

	warnings := result.Warnings()
	if warnings == nil {
		warnings = []string{}
	}
	groups := engine.GroupOverflow(result.Overflow)
	if groups == nil {
		groups = []engine.OverflowGroup{}
	}
	free := model.DetectAllFreeSpace(result)
	if free == nil {
		free = []model.FreeSpace{}
	}

	c.JSON(http.StatusOK, PlanResponse{
		Summary: PlanSummary{
			Containers:      len(result.Containers),
			Placed:          result.PlacedCount(),
			Overflow:        len(result.Overflow),
			TotalWeight:     result.TotalWeight(),
			MeanUtilization: result.MeanUtilization(),
			TypeCounts:      counts,
		},
		Result:         result,
		OverflowGroups: groups,
		FreeSpace:      free,
		Warnings:       warnings,
	})
}

func (s *Server) handleCompare(c *gin.Context) {
	req, ok := s.bindPlanRequest(c)
	if !ok {
		return
	}
	cargo, types, settings, err := s.resolve(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	catalog := append(append([]model.ContainerType{}, s.catalog...), req.Containers...)
	scenarios := engine.BuildDefaultScenarios(types, catalog, settings)
	results := engine.CompareScenarios(scenarios, cargo)

	out := make([]ScenarioResponse, 0, len(results))
	for _, r := range results {
		out = append(out, ScenarioResponse{
			Name:            r.Scenario.Name,
			ContainersUsed:  r.ContainersUsed,
			OverflowCount:   r.OverflowCount,
			MeanUtilization: r.MeanUtilization,
			TypeSummary:     r.TypeSummary,
		})
	}
	c.JSON(http.StatusOK, gin.H{"scenarios": out})
}

// DefaultStowage is the broken-stowage allowance used when a request names none.
const DefaultStowage = 15.0

func (s *Server) handleEstimate(c *gin.Context) {
	req, ok := s.bindPlanRequest(c)
	if !ok {
		return
	}
	cargo, types, _, err := s.resolve(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	stowage := DefaultStowage
	if req.Stowage != nil {
		stowage = *req.Stowage
	}

	estimates := make([]model.LoadEstimate, 0, len(types))
	for _, ct := range types {
		estimates = append(estimates, model.CalculateLoadEstimate(cargo, ct, stowage))
	}
	c.JSON(http.StatusOK, gin.H{"estimates": estimates})
}

type pasteRequest struct {
	Text string `json:"text" binding:"required"`
}

func (s *Server) handlePaste(c *gin.Context) {
	var req pasteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	res := importer.ParsePaste(req.Text)
	resp := ImportResponse{Cargo: res.Cargo, Errors: res.Errors, Warnings: res.Warnings}
	if resp.Cargo == nil {
		resp.Cargo = []model.CargoTemplate{}
	}
	if resp.Errors == nil {
		resp.Errors = []string{}
	}
	if resp.Warnings == nil {
		resp.Warnings = []string{}
	}

	status := http.StatusOK
	if len(resp.Cargo) == 0 {
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, resp)
}
