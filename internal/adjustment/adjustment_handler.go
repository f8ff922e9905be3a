package adjustment

import (
	"net/http"

	"github.com/AIforimpact22/HR-amas/internal/shared/apperror"
	"github.com/AIforimpact22/HR-amas/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("adjustment.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("adjustment.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("adjustment request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Post(c *gin.Context) {
	var req PostAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http post adjustment validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.PostAdjustment(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) List(c *gin.Context) {
	employeeID := c.Query("employee_id")
	start := c.Query("start")
	end := c.Query("end")
	h.logger.Debug("http list adjustments",
		zap.String("employee_id", employeeID),
		zap.String("start", start),
		zap.String("end", end),
	)

	resp, err := h.service.ListByEmployee(c.Request.Context(), employeeID, start, end)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
