// Package httpapi serves health, metrics and read-only JSON views.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/alexanderramin/pacer/internal/domain"
	"github.com/alexanderramin/pacer/internal/export"
	"github.com/alexanderramin/pacer/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// Services are the use cases the API reads from.
type Services struct {
	Dashboard service.DashboardService
	Config    service.ConfigService
}

type Server struct {
	echo     *echo.Echo
	services Services
	logger   *zap.Logger
	addr     string
}

// NewServer builds the router. metrics may be nil, in which case /metrics
// is not registered.
func NewServer(services Services, metrics http.Handler, logger *zap.Logger, addr string) (*Server, error) {
	if services.Dashboard == nil {
		return nil, fmt.Errorf("dashboard service is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			logger.Debug("http request",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", c.Response().Status),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			)
			return err
		}
	})

	s := &Server{echo: e, services: services, logger: logger, addr: addr}
	e.GET("/health", s.handleHealth)
	if metrics != nil {
		e.GET("/metrics", echo.WrapHandler(metrics))
	}

	v1 := e.Group("/api/v1/users/:user")
	v1.GET("/today", s.handleToday)
	v1.GET("/status", s.handleStatus)
	if services.Config != nil {
		v1.GET("/notifications", s.handleNotificationConfig)
	}
	return s, nil
}

func (s *Server) Handler() http.Handler { return s.echo }

func (s *Server) Start() error {
	s.logger.Info("starting http server", zap.String("addr", s.addr))
	err := s.echo.Start(s.addr)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.echo.Shutdown(ctx)
}

type HealthResponse struct {
	Status string `json:"status"`
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

type SlotResponse struct {
	ID        string `json:"id"`
	StartTime string `json:"start_time"`
	Recorded  bool   `json:"recorded"`
}

type TodayEntryResponse struct {
	Task           export.TaskRecord `json:"task"`
	Slots          []SlotResponse    `json:"slots"`
	FirstStartTime string            `json:"first_start_time"`
	TargetDelta    int               `json:"target_delta"`
	AllRecorded    bool              `json:"all_recorded"`
	NextSlotID     string            `json:"next_slot_id,omitempty"`
}

type TodayResponse struct {
	Date    string               `json:"date"`
	Entries []TodayEntryResponse `json:"entries"`
}

func (s *Server) handleToday(c echo.Context) error {
	userID := c.Param("user")
	view, err := s.services.Dashboard.Today(c.Request().Context(), userID)
	if err != nil {
		return s.internalError(c, "today view", err)
	}
	status, err := s.services.Dashboard.Status(c.Request().Context(), userID)
	if err != nil {
		return s.internalError(c, "status view", err)
	}

	resp := TodayResponse{Date: view.Date, Entries: make([]TodayEntryResponse, 0, len(view.Entries))}
	for _, e := range view.Entries {
		entry := TodayEntryResponse{
			Task:           export.NewTaskRecord(e.Task, status.Summary.Tasks[e.Task.ID]),
			Slots:          slotResponses(e.Slots),
			FirstStartTime: e.FirstStartTime,
			TargetDelta:    e.TargetDelta,
			AllRecorded:    e.AllRecorded,
			NextSlotID:     e.NextSlotID,
		}
		resp.Entries = append(resp.Entries, entry)
	}
	return c.JSON(http.StatusOK, resp)
}

type StatusResponse struct {
	GlobalAbility  float64             `json:"global_ability"`
	TotalRemaining float64             `json:"total_remaining_hours"`
	AchievementPct int                 `json:"achievement_pct"`
	UnsafeTaskIDs  []string            `json:"unsafe_task_ids"`
	Tasks          []export.TaskRecord `json:"tasks"`
}

func (s *Server) handleStatus(c echo.Context) error {
	view, err := s.services.Dashboard.Status(c.Request().Context(), c.Param("user"))
	if err != nil {
		return s.internalError(c, "status view", err)
	}
	resp := StatusResponse{
		GlobalAbility:  view.Summary.GlobalAbility,
		TotalRemaining: view.Summary.TotalRemaining,
		AchievementPct: view.Summary.AchievementPct,
		UnsafeTaskIDs:  view.Summary.UnsafeTaskIDs,
		Tasks:          make([]export.TaskRecord, 0, len(view.Tasks)),
	}
	if resp.UnsafeTaskIDs == nil {
		resp.UnsafeTaskIDs = []string{}
	}
	for _, st := range view.Tasks {
		resp.Tasks = append(resp.Tasks, export.NewTaskRecord(st.Task, st.Forecast))
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleNotificationConfig(c echo.Context) error {
	cfg, err := s.services.Config.Get(c.Request().Context(), c.Param("user"))
	if err != nil {
		return s.internalError(c, "notification config", err)
	}
	return c.JSON(http.StatusOK, cfg)
}

func (s *Server) internalError(c echo.Context, what string, err error) error {
	s.logger.Error("http handler failed",
		zap.String("view", what),
		zap.String("user_id", c.Param("user")),
		zap.Error(err),
	)
	return echo.NewHTTPError(http.StatusInternalServerError, what+" unavailable")
}

func slotResponses(slots []domain.ScheduleSlot) []SlotResponse {
	out := make([]SlotResponse, 0, len(slots))
	for _, sl := range slots {
		out = append(out, SlotResponse{ID: sl.ID, StartTime: sl.StartTime, Recorded: sl.Recorded})
	}
	return out
}
