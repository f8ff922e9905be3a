package salaryhistory

import (
	"net/http"
	"time"

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
	l := zap.L().Named("salaryhistory.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("salaryhistory.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("salary history request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) GetHistory(c *gin.Context) {
	employeeID := c.Param("id")

	resp, err := h.service.GetHistory(c.Request.Context(), employeeID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Resolve(c *gin.Context) {
	employeeID := c.Param("id")
	date := c.DefaultQuery("date", time.Now().UTC().Format("2006-01-02"))

	resp, err := h.service.ResolveAt(c.Request.Context(), employeeID, date)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
