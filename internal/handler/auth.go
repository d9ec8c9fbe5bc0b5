package handler

import (
	"log/slog"
	"net/http"

	"github.com/templui/habitkit/internal/dto"
	"github.com/templui/habitkit/internal/model"
	"github.com/templui/habitkit/internal/service"
)

type AuthHandler struct {
	authService    *service.AuthService
	profileService *service.ProfileService
}

func NewAuthHandler(authService *service.AuthService, profileService *service.ProfileService) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		profileService: profileService,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	err := decode(w, r, &req, false)
	if err != nil {
		handleError(w, r, err, "invalid register request")
		return
	}

	user, err := h.authService.Register(r.Context(), req.Email, req.Password, req.Name, req.Timezone)
	if err != nil {
		handleError(w, r, err, "failed to register")
		return
	}

	h.issueToken(w, r, user, http.StatusCreated)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	err := decode(w, r, &req, false)
	if err != nil {
		handleError(w, r, err, "invalid login request")
		return
	}

	user, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if statusFor(err) == http.StatusUnauthorized {
			slog.Info("login failed", "email", req.Email)
		}
		handleError(w, r, err, "failed to login")
		return
	}

	h.issueToken(w, r, user, http.StatusOK)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.authService.ClearJWTCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// issueToken signs a JWT for user, sets it as cookie and returns it in the body.
func (h *AuthHandler) issueToken(w http.ResponseWriter, r *http.Request, user *model.User, status int) {
	token, expiry, err := h.authService.GenerateJWT(user)
	if err != nil {
		handleError(w, r, err, "failed to generate token", "user_id", user.ID)
		return
	}
	h.authService.SetJWTCookie(w, token, expiry)

	profile, err := h.profileService.ByUserID(user.ID)
	if err != nil {
		slog.Warn("failed to load profile", "error", err, "user_id", user.ID)
		profile = nil
	}

	userResp, err := dto.NewUserResponse(user, profile)
	if err != nil {
		handleError(w, r, err, "failed to map user", "user_id", user.ID)
		return
	}

	writeJSON(w, status, dto.AuthResponse{
		Token:     token,
		ExpiresAt: expiry,
		User:      userResp,
	})
}
