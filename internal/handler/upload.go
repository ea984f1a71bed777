package handler

import (
	"net/http"

	"github.com/Payphone-Digital/carrental/internal/constants"
	"github.com/Payphone-Digital/carrental/internal/service"
	ctxutil "github.com/Payphone-Digital/carrental/pkg/context"
	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	uploadService *service.UploadService
}

func NewUploadHandler(uploadService *service.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// Upload stores the multipart image part and returns its public URL.
func (h *UploadHandler) Upload(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Upload")

	url, err := h.uploadService.SaveCarImage(ctx, formFile(c, constants.FormFieldImage))
	if err != nil {
		respondError(c, ctx, err, "")
		return
	}

	c.JSON(http.StatusOK, constants.BuildUploadResponse(constants.MsgFileUploaded, url))
}
