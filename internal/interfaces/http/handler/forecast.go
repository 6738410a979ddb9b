package handler

import (
	"context"

	forecastapp "github.com/cashcast/backend/internal/application/forecast"
	"github.com/cashcast/backend/internal/domain/tax"
	"github.com/cashcast/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// ForecastGenerator is the application surface the forecast endpoints need
type ForecastGenerator interface {
	GenerateForecast(ctx context.Context, horizonDays int) (*forecastapp.Result, error)
	UpcomingObligations(ctx context.Context, horizonDays int) ([]tax.Obligation, error)
}

// ForecastHandler handles forecast-related API endpoints
type ForecastHandler struct {
	BaseHandler
	forecastService ForecastGenerator
}

// NewForecastHandler creates a new ForecastHandler
func NewForecastHandler(forecastService ForecastGenerator) *ForecastHandler {
	return &ForecastHandler{
		forecastService: forecastService,
	}
}

// GenerateForecast godoc
// @Summary      Generate a cash flow forecast
// @Description  Projects daily cash movements over the requested horizon
// @Tags         forecast
// @Produce      json
// @Param        horizon_days query int false "Forecast horizon in days (defaults to configured value)"
// @Success      200 {object} dto.Response{data=ForecastResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /forecast [get]
func (h *ForecastHandler) GenerateForecast(c *gin.Context) {
	var req ForecastRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.forecastService.GenerateForecast(c.Request.Context(), req.HorizonDays)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	days := make([]DailyForecastResponse, len(result.Days))
	for i := range result.Days {
		days[i] = toDailyForecastResponse(result.Days[i])
	}

	h.Success(c, ForecastResponse{
		HorizonDays: len(result.Days),
		FromCache:   result.FromCache,
		Persisted:   result.PersistErr == nil,
		Days:        days,
	})
}

// GetUpcomingObligations godoc
// @Summary      List upcoming tax obligations
// @Description  Returns pending and freshly calculated tax obligations inside the horizon
// @Tags         forecast
// @Produce      json
// @Param        horizon_days query int false "Lookahead horizon in days (defaults to configured value)"
// @Success      200 {object} dto.Response{data=[]ObligationResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /forecast/obligations [get]
func (h *ForecastHandler) GetUpcomingObligations(c *gin.Context) {
	var req ForecastRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	obligations, err := h.forecastService.UpcomingObligations(c.Request.Context(), req.HorizonDays)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]ObligationResponse, len(obligations))
	for i := range obligations {
		responses[i] = toObligationResponse(obligations[i])
	}

	h.Success(c, responses)
}
