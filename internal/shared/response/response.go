// Package response renders the one JSON envelope every endpoint speaks:
// {ok, data, meta, error}. Handlers never call c.JSON directly.
package response

import "github.com/gin-gonic/gin"

type PaginationMeta struct {
	Total      int64 `json:"total,omitempty"`
	TotalPages int   `json:"totalPages,omitempty"`
	Page       int   `json:"page,omitempty"`
	PageSize   int   `json:"pageSize,omitempty"`
}

// NewPaginationMeta derives the page count from a total row count and the
// page size. A non-positive limit leaves TotalPages at zero.
func NewPaginationMeta(total int64, page, limit int) PaginationMeta {
	meta := PaginationMeta{Total: total, Page: page, PageSize: limit}
	if limit > 0 {
		meta.TotalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return meta
}

type ApiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  any             `json:"data,omitempty"`
	Meta  *PaginationMeta `json:"meta,omitempty"`
	Error any             `json:"error,omitempty"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details"`
}

// Success writes an ok envelope. meta is optional and only list endpoints
// pass one.
func Success(c *gin.Context, status int, data interface{}, meta *PaginationMeta) {
	c.JSON(status, ApiEnvelope{Ok: true, Data: data, Meta: meta})
}

// Error writes a failed envelope. code is one of the apperror codes, details
// carries field-level extras and may be nil.
func Error(c *gin.Context, status int, errorCode string, message string, details interface{}) {
	c.JSON(status, ApiEnvelope{
		Ok: false,
		Error: errorBody{
			Code:    errorCode,
			Message: message,
			Details: details,
		},
	})
}
