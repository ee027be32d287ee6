package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "github.com/oksasatya/go-user-accounts/internal/application"
	"github.com/oksasatya/go-user-accounts/internal/interface/middleware"
	"github.com/oksasatya/go-user-accounts/pkg/helpers"
	"github.com/oksasatya/go-user-accounts/pkg/response"
	"github.com/oksasatya/go-user-accounts/pkg/validation"
)

const maxImageBytes = 5 << 20

type UserHandler struct {
	Svc     *userapp.Service
	Logger  *logrus.Logger
	Cookies *helpers.Manager
}

func NewUserHandler(svc *userapp.Service, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Invalid(c, err)
		return
	}

	u, err := h.Svc.Register(c.Request.Context(), userapp.RegisterInput{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Password:     req.Password,
		Country:      req.Country,
		Image:        req.Image,
		FrontBaseURL: req.FrontBaseURL,
	})
	switch {
	case errors.Is(err, userapp.ErrEmailTaken):
		response.Error(c, http.StatusConflict, "Email already registered")
		return
	case errors.Is(err, userapp.ErrPasswordTooLong):
		response.InvalidField(c, "password", validation.PasswordMessage)
		return
	case err != nil:
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, toUserResponse(u))
}

func (h *UserHandler) VerifyEmail(c *gin.Context) {
	var uri codeURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Message(c, http.StatusUnauthorized, "Invalid code")
		return
	}

	u, err := h.Svc.VerifyEmail(c.Request.Context(), uri.Code)
	switch {
	case errors.Is(err, userapp.ErrInvalidCode):
		response.Message(c, http.StatusUnauthorized, "Invalid code")
		return
	case errors.Is(err, userapp.ErrUserNotFound):
		response.Empty(c, http.StatusNotFound)
		return
	case err != nil:
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(u))
}

func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Invalid(c, err)
		return
	}

	res, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, userapp.ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, "Invalid credentials")
		return
	case errors.Is(err, userapp.ErrUserNotVerified):
		response.Error(c, http.StatusUnauthorized, "User is not verified")
		return
	case err != nil:
		_ = c.Error(err)
		return
	}
	h.Cookies.SetToken(c, res.Token, res.ExpiresAt)
	c.JSON(http.StatusOK, loginResponse{User: toUserResponse(res.User), Token: res.Token})
}

func (h *UserHandler) Logout(c *gin.Context) {
	h.Cookies.Clear(c)
	c.Status(http.StatusNoContent)
}

func (h *UserHandler) RequestPasswordReset(c *gin.Context) {
	var req resetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Invalid(c, err)
		return
	}

	u, err := h.Svc.RequestPasswordReset(c.Request.Context(), req.Email, req.FrontBaseURL)
	if errors.Is(err, userapp.ErrInvalidCredentials) {
		response.Error(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, toUserResponse(u))
}

func (h *UserHandler) ResetPassword(c *gin.Context) {
	var uri codeURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Message(c, http.StatusUnauthorized, "Invalid code")
		return
	}
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Invalid(c, err)
		return
	}

	u, err := h.Svc.ResetPassword(c.Request.Context(), uri.Code, req.Password)
	switch {
	case errors.Is(err, userapp.ErrInvalidCode):
		response.Message(c, http.StatusUnauthorized, "Invalid code")
		return
	case errors.Is(err, userapp.ErrPasswordTooLong):
		response.InvalidField(c, "password", validation.PasswordMessage)
		return
	case errors.Is(err, userapp.ErrUserNotFound):
		response.Empty(c, http.StatusNotFound)
		return
	case err != nil:
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(u))
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.Svc.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, toUserResponses(users))
}

func (h *UserHandler) Get(c *gin.Context) {
	u, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, userapp.ErrUserNotFound) {
		response.Empty(c, http.StatusNotFound)
		return
	}
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(u))
}

func (h *UserHandler) Update(c *gin.Context) {
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Invalid(c, err)
		return
	}

	u, err := h.Svc.UpdateProfile(c.Request.Context(), c.Param("id"), req.toUpdate())
	if errors.Is(err, userapp.ErrUserNotFound) {
		response.Empty(c, http.StatusNotFound)
		return
	}
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(u))
}

func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Me echoes the identity attached by the auth middleware.
func (h *UserHandler) Me(c *gin.Context) {
	u, ok := middleware.IdentityFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *UserHandler) Search(c *gin.Context) {
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	users, err := h.Svc.Search(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, toUserResponses(users))
}

func (h *UserHandler) UploadImage(c *gin.Context) {
	me, ok := middleware.IdentityFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if h.Svc.Storage == nil {
		response.Error(c, http.StatusServiceUnavailable, "Image storage unavailable")
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImageBytes)
	fh, err := c.FormFile("image")
	if err != nil {
		response.InvalidField(c, "image", "is required")
		return
	}
	f, err := fh.Open()
	if err != nil {
		_ = c.Error(err)
		return
	}
	defer func() { _ = f.Close() }()

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	u, err := h.Svc.UploadImage(c.Request.Context(), me.ID, f, fh.Filename, contentType)
	switch {
	case errors.Is(err, userapp.ErrStorageUnavailable):
		response.Error(c, http.StatusServiceUnavailable, "Image storage unavailable")
		return
	case errors.Is(err, userapp.ErrUserNotFound):
		response.Empty(c, http.StatusNotFound)
		return
	case err != nil:
		h.Logger.WithError(err).WithField("user_id", me.ID).Error("image upload failed")
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(u))
}
