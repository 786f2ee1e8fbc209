package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lawithanx/jcorp/internal/domain/entities"
	domainerrors "github.com/lawithanx/jcorp/internal/domain/errors"
	"github.com/lawithanx/jcorp/internal/interfaces/http/response"
)

type DownloadService interface {
	ResolveDownloadToken(ctx context.Context, token string) (*entities.Payment, error)
}

// DownloadHandler gates access to the purchased asset
type DownloadHandler struct {
	paymentUsecase DownloadService
}

func NewDownloadHandler(paymentUsecase DownloadService) *DownloadHandler {
	return &DownloadHandler{paymentUsecase: paymentUsecase}
}

// Download validates a download token and confirms access
// GET /api/download/:token
func (h *DownloadHandler) Download(c *gin.Context) {
	token := c.Param("token")

	payment, err := h.paymentUsecase.ResolveDownloadToken(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			response.Error(c, domainerrors.NotFound("Invalid download link"))
			return
		}
		response.Error(c, err)
		return
	}

	if !payment.IsDownloadValid() {
		response.ErrorWithStatus(c, http.StatusForbidden, "Download link expired")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"success":           true,
		"downloadAvailable": true,
	})
}
