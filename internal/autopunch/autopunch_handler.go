package autopunch

import (
	"errors"
	"io"
	"net/http"

	"go-timeclock/internal/shared/apperror"
	"go-timeclock/internal/shared/contextutil"
	"go-timeclock/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) AutoPunchIn(c *gin.Context) {
	ctx := contextutil.WithRunID(c.Request.Context(), uuid.NewString())
	sum, err := h.service.AutoPunchIn(ctx)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, sum, nil)
}

// AutoPunchOut accepts an empty body; date and force are optional.
func (h *Handler) AutoPunchOut(c *gin.Context) {
	var req AutoPunchOutRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}
	in, err := req.ToPunchOutRequest()
	if err != nil {
		writeServiceError(c, err)
		return
	}

	ctx := contextutil.WithRunID(c.Request.Context(), uuid.NewString())
	sum, err := h.service.AutoPunchOut(ctx, in)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, sum, nil)
}
