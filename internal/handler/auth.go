package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/Payphone-Digital/carrental/internal/constants"
	"github.com/Payphone-Digital/carrental/internal/dto"
	"github.com/Payphone-Digital/carrental/internal/service"
	ctxutil "github.com/Payphone-Digital/carrental/pkg/context"
	"github.com/Payphone-Digital/carrental/pkg/logger"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService         *service.AuthService
	verificationService *service.VerificationService
}

func NewAuthHandler(authService *service.AuthService, verificationService *service.VerificationService) *AuthHandler {
	return &AuthHandler{
		authService:         authService,
		verificationService: verificationService,
	}
}

// Register handles the multipart registration form.
func (h *AuthHandler) Register(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Register")

	var req dto.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, ctx, err)
		return
	}

	license := dto.LicenseUpload{
		Front: formFile(c, constants.FormFieldLicenseFront),
		Back:  formFile(c, constants.FormFieldLicenseBack),
	}

	resp, err := h.authService.Register(ctx, req, license)
	if err != nil {
		respondError(c, ctx, err, constants.MsgRegisterFailed)
		return
	}

	c.JSON(http.StatusCreated, constants.BuildDataResponse(resp))
}

func (h *AuthHandler) Login(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Login")

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, ctx, err)
		return
	}

	resp, err := h.authService.Login(ctx, req)
	if err != nil {
		respondError(c, ctx, err, constants.MsgLoginFailed)
		return
	}

	c.JSON(http.StatusOK, constants.BuildDataResponse(resp))
}

func (h *AuthHandler) SendVerification(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "SendVerification")

	var req dto.SendVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, ctx, err)
		return
	}

	ticket, err := h.verificationService.SendCode(ctx, req.MobileNumber)
	if err != nil {
		respondError(c, ctx, err, constants.MsgSendCodeFailed)
		return
	}

	c.JSON(http.StatusOK, constants.BuildTokenResponse(constants.MsgVerificationSent, ticket))
}

// VerifyPhone exchanges a ticket and code for a verified token. Missing
// fields are reported by the service with one combined message.
func (h *AuthHandler) VerifyPhone(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "VerifyPhone")

	var req dto.VerifyPhoneRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondBindError(c, ctx, err)
		return
	}

	token, err := h.verificationService.VerifyPhone(ctx, req.Token, req.VerificationCode)
	if err != nil {
		respondError(c, ctx, err, constants.MsgVerifyPhoneFailed)
		return
	}

	logger.InfoWithContext(ctx, "Phone verification completed").Log()

	c.JSON(http.StatusOK, constants.BuildTokenResponse(constants.MsgPhoneVerified, token))
}

// formFile returns the uploaded part named field, or nil when absent.
func formFile(c *gin.Context, field string) *multipart.FileHeader {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil
	}
	return fh
}
