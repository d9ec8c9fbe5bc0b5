package handler

import (
	"log/slog"
	"net/http"

	"github.com/templui/habitkit/internal/ctxkeys"
	"github.com/templui/habitkit/internal/dto"
	"github.com/templui/habitkit/internal/service"
	"github.com/templui/habitkit/internal/validation"
)

type AccountHandler struct {
	authService    *service.AuthService
	userService    *service.UserService
	profileService *service.ProfileService
	fileService    *service.FileService
}

func NewAccountHandler(
	authService *service.AuthService,
	userService *service.UserService,
	profileService *service.ProfileService,
	fileService *service.FileService,
) *AccountHandler {
	return &AccountHandler{
		authService:    authService,
		userService:    userService,
		profileService: profileService,
		fileService:    fileService,
	}
}

func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	profile := ctxkeys.Profile(r.Context())

	resp, err := dto.NewUserResponse(user, profile)
	if err != nil {
		handleError(w, r, err, "failed to map user", "user_id", user.ID)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AccountHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req dto.UpdateProfileRequest
	err := decode(w, r, &req, false)
	if err != nil {
		handleError(w, r, err, "invalid profile request", "user_id", user.ID)
		return
	}

	profile, err := h.profileService.Update(user.ID, req.Name, req.Timezone)
	if err != nil {
		handleError(w, r, err, "failed to update profile", "user_id", user.ID)
		return
	}

	resp, err := dto.NewProfileResponse(profile)
	if err != nil {
		handleError(w, r, err, "failed to map profile", "user_id", user.ID)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AccountHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	// room for the multipart envelope around the largest allowed image
	r.Body = http.MaxBytesReader(w, r.Body, validation.ImageConstraints.MaxSize+(1<<20))
	file, header, err := r.FormFile("avatar")
	if err != nil {
		writeError(w, http.StatusBadRequest, "avatar file is required")
		return
	}
	defer func() { _ = file.Close() }()

	record, err := h.fileService.UploadAvatar(r.Context(), user.ID, file, header)
	if err != nil {
		handleError(w, r, err, "failed to upload avatar", "user_id", user.ID)
		return
	}

	writeJSON(w, http.StatusCreated, dto.AvatarResponse{
		URL:  h.fileService.URL(record),
		Size: record.Size,
	})
}

func (h *AccountHandler) DeleteAvatar(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := h.fileService.DeleteUserAvatar(r.Context(), user.ID)
	if err != nil {
		handleError(w, r, err, "failed to delete avatar", "user_id", user.ID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AccountHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := h.userService.DeleteAccount(r.Context(), user.ID)
	if err != nil {
		handleError(w, r, err, "failed to delete account", "user_id", user.ID)
		return
	}

	slog.Info("account deleted via api", "user_id", user.ID)
	h.authService.ClearJWTCookie(w)
	w.WriteHeader(http.StatusNoContent)
}
