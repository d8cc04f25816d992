package v1

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/dainadb/improplan/internal/api/handler/v1/request"
	"github.com/dainadb/improplan/internal/api/handler/v1/response"
	"github.com/dainadb/improplan/internal/config"
	"github.com/dainadb/improplan/internal/domain"
	"github.com/dainadb/improplan/internal/pkg/jwthelper"
	"github.com/dainadb/improplan/internal/service"
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (domain.User, error)
	Register(ctx context.Context, user domain.User, password string) (domain.User, error)
	CurrentUser(ctx context.Context, id uint) (domain.User, error)
}

type AuthHandler struct {
	conf *config.APIConfig
	svc  AuthService
}

func NewAuthHandler(conf *config.APIConfig, svc AuthService) *AuthHandler {
	return &AuthHandler{
		conf: conf,
		svc:  svc,
	}
}

// HandleRegister godoc
// @Summary      Register a new account
// @Tags         auth
// @Produce      json
// @Param        request   body      request.RegisterRequest true "request body"
// @Success      201      {object}   response.Response
// @Failure      400      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/register [post]
func (h *AuthHandler) HandleRegister(ctx *gin.Context) {
	var req request.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	user, err := h.svc.Register(ctx.Request.Context(), domain.User{
		Email:    req.Email,
		Name:     req.Name,
		Surnames: req.Surnames,
	}, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserEmailExists):
			response.RenderErr(ctx, response.ErrConflict(service.ErrUserEmailExists))
		case errors.Is(err, service.ErrInvalidEmail), errors.Is(err, service.ErrWeakPassword):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleRegister -> h.svc.Register -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	response.RenderCreated(ctx, "user registered", user)
}

// HandleLogin godoc
// @Summary      Login with email and password
// @Tags         auth
// @Produce      json
// @Param        request   body      request.LoginRequest true "request body"
// @Success      200      {object}   response.Response
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/login [post]
func (h *AuthHandler) HandleLogin(ctx *gin.Context) {
	var req request.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	user, err := h.svc.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWrongCredentials):
			response.RenderErr(ctx, response.ErrUnauthorized(service.ErrWrongCredentials.Error()))
		case errors.Is(err, service.ErrUserDisabled):
			response.RenderErr(ctx, response.ErrUnauthorized(service.ErrUserDisabled.Error()))
		case errors.Is(err, service.ErrInvalidEmail):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidEmail))
		default:
			err = fmt.Errorf("v1.HandleLogin -> h.svc.Login -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	token, err := jwthelper.GenerateToken(h.conf.JWTSigningKey, user)
	if err != nil {
		err = fmt.Errorf("v1.HandleLogin -> jwthelper.GenerateToken -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	response.RenderOK(ctx, "login successful", response.LoginResponse{
		Token: token,
		User:  user,
	})
}

// HandleLogout godoc
// @Summary      Logout the current session
// @Tags         auth
// @Produce      json
// @Success      200 {object} response.Response
// @Security     BearerAuth
// @Router       /auth/logout [post]
func (h *AuthHandler) HandleLogout(ctx *gin.Context) {
	// Tokens are stateless; the client drops its copy.
	response.RenderOK(ctx, "logout successful", nil)
}

// HandleGetMe godoc
// @Summary      Get the authenticated account
// @Tags         auth
// @Produce      json
// @Success      200 {object} response.Response
// @Failure      401 {object} response.Err
// @Failure      500 {object} response.Err
// @Security     BearerAuth
// @Router       /auth/me [get]
func (h *AuthHandler) HandleGetMe(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrUnauthorized("missing authorization header"))
		return
	}

	user, err := h.svc.CurrentUser(ctx.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("user", "ID", userID))
			return
		}

		err = fmt.Errorf("v1.HandleGetMe -> h.svc.CurrentUser -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	response.RenderOK(ctx, "current user", user)
}
