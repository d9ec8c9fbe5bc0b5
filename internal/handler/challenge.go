package handler

import (
	"net/http"

	"github.com/templui/habitkit/internal/ctxkeys"
	"github.com/templui/habitkit/internal/dto"
	"github.com/templui/habitkit/internal/model"
	"github.com/templui/habitkit/internal/service"
)

type ChallengeHandler struct {
	challengeService *service.ChallengeService
}

func NewChallengeHandler(challengeService *service.ChallengeService) *ChallengeHandler {
	return &ChallengeHandler{
		challengeService: challengeService,
	}
}

func (h *ChallengeHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	list, err := h.challengeService.Challenges(user.ID, r.URL.Query().Get("status"))
	if err != nil {
		handleError(w, r, err, "failed to get challenges", "user_id", user.ID)
		return
	}

	resp, err := dto.NewChallengeProgressResponses(list)
	if err != nil {
		handleError(w, r, err, "failed to map challenges", "user_id", user.ID)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *ChallengeHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req dto.CreateChallengeRequest
	err := decode(w, r, &req, false)
	if err != nil {
		handleError(w, r, err, "invalid challenge request", "user_id", user.ID)
		return
	}

	challenge, err := h.challengeService.Create(r.Context(), user.ID, req.OpponentEmail, req.HabitID, req.DurationDays)
	if err != nil {
		handleError(w, r, err, "failed to create challenge", "user_id", user.ID, "habit_id", req.HabitID)
		return
	}

	h.writeChallenge(w, r, challenge, http.StatusCreated)
}

func (h *ChallengeHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	challengeID := r.PathValue("id")

	progress, err := h.challengeService.ByID(user.ID, challengeID)
	if err != nil {
		handleError(w, r, err, "failed to get challenge", "user_id", user.ID, "challenge_id", challengeID)
		return
	}

	resp, err := dto.NewChallengeProgressResponse(progress)
	if err != nil {
		handleError(w, r, err, "failed to map challenge", "challenge_id", challengeID)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *ChallengeHandler) Accept(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	challengeID := r.PathValue("id")

	var req dto.AcceptChallengeRequest
	err := decode(w, r, &req, true)
	if err != nil {
		handleError(w, r, err, "invalid accept request", "user_id", user.ID)
		return
	}

	challenge, err := h.challengeService.Accept(r.Context(), user.ID, challengeID, req.HabitID)
	if err != nil {
		handleError(w, r, err, "failed to accept challenge", "user_id", user.ID, "challenge_id", challengeID)
		return
	}

	h.writeChallenge(w, r, challenge, http.StatusOK)
}

func (h *ChallengeHandler) Decline(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	challengeID := r.PathValue("id")

	challenge, err := h.challengeService.Decline(user.ID, challengeID)
	if err != nil {
		handleError(w, r, err, "failed to decline challenge", "user_id", user.ID, "challenge_id", challengeID)
		return
	}

	h.writeChallenge(w, r, challenge, http.StatusOK)
}

func (h *ChallengeHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	challengeID := r.PathValue("id")

	challenge, err := h.challengeService.Cancel(user.ID, challengeID)
	if err != nil {
		handleError(w, r, err, "failed to cancel challenge", "user_id", user.ID, "challenge_id", challengeID)
		return
	}

	h.writeChallenge(w, r, challenge, http.StatusOK)
}

func (h *ChallengeHandler) writeChallenge(w http.ResponseWriter, r *http.Request, challenge *model.Challenge, status int) {
	resp, err := dto.NewChallengeResponse(challenge)
	if err != nil {
		handleError(w, r, err, "failed to map challenge", "challenge_id", challenge.ID)
		return
	}
	writeJSON(w, status, resp)
}
