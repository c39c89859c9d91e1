package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/poolup/backend/internal/ledger"
	"github.com/poolup/backend/internal/middleware"
	"github.com/poolup/backend/internal/models"
	"github.com/poolup/backend/internal/service"
)

// recentActivityLimit caps the dashboard's activity feed.
const recentActivityLimit = 20

// PoolHandler serves the expense pool endpoints.
type PoolHandler struct {
	svc      *service.PoolService
	validate *validator.Validate
}

// NewPoolHandler creates a PoolHandler.
func NewPoolHandler(svc *service.PoolService) *PoolHandler {
	return &PoolHandler{svc: svc, validate: validator.New()}
}

type createPoolRequest struct {
	Title          string   `json:"title" validate:"required"`
	TotalAmount    float64  `json:"totalAmount" validate:"required,gt=0"`
	ParticipantIDs []string `json:"participantIds" validate:"required,min=1,dive,required"`
	IncludeCreator bool     `json:"includeCreator"`
	ChatID         string   `json:"chatId" validate:"required"`
}

type createPoolResponse struct {
	Request *models.ExpenseRequest `json:"request"`
	Pools   []*models.DebtRecord   `json:"pools"`
	Split   splitPreview           `json:"split"`
}

// splitPreview mirrors the math shown in the create modal.
type splitPreview struct {
	GroupSize    int          `json:"groupSize"`
	PerShare     models.Cents `json:"perShare"`
	CreatorShare models.Cents `json:"creatorShare"`
	Receivable   models.Cents `json:"youReceive"`
}

// Create handles POST /api/v1/pools.
func (h *PoolHandler) Create(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.GetUserID(r.Context())

	var req createPoolRequest
	if err := decodeJSON(r, w, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	request, pools, split, err := h.svc.CreatePool(r.Context(), actorID, service.CreatePoolParams{
		Title:           req.Title,
		TotalAmount:     models.CentsFromFloat(req.TotalAmount),
		ParticipantIDs:  req.ParticipantIDs,
		CreatorIncluded: req.IncludeCreator,
		ChatID:          req.ChatID,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, createPoolResponse{
		Request: request,
		Pools:   pools,
		Split: splitPreview{
			GroupSize:    split.GroupSize,
			PerShare:     split.PerShare,
			CreatorShare: split.CreatorShare,
			Receivable:   split.Receivable,
		},
	})
}

type actionRequest struct {
	Action string `json:"action" validate:"required"`
}

// Act handles POST /api/v1/pools/{poolID}/actions.
func (h *PoolHandler) Act(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.GetUserID(r.Context())
	poolID := chi.URLParam(r, "poolID")

	var req actionRequest
	if err := decodeJSON(r, w, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	action, err := ledger.ParseAction(req.Action)
	if err != nil {
		writeError(w, err)
		return
	}

	updated, err := h.svc.ApplyAction(r.Context(), poolID, actorID, action)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// ChatPools handles GET /api/v1/chats/{chatID}/pools.
func (h *PoolHandler) ChatPools(w http.ResponseWriter, r *http.Request) {
	pools, err := h.svc.ChatPools(r.Context(), chi.URLParam(r, "chatID"))
	if err != nil {
		writeError(w, err)
		return
	}
	if pools == nil {
		pools = []*models.DebtRecord{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"pools": pools})
}

type friendBalanceResponse struct {
	NetBalance models.Cents `json:"netBalance"`
}

// FriendBalance handles GET /api/v1/friends/{userID}/balance.
func (h *PoolHandler) FriendBalance(w http.ResponseWriter, r *http.Request) {
	viewerID := middleware.GetUserID(r.Context())
	otherID := chi.URLParam(r, "userID")

	net, err := h.svc.FriendBalance(r.Context(), viewerID, otherID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, friendBalanceResponse{NetBalance: net})
}

// Dashboard handles GET /api/v1/dashboard.
func (h *PoolHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	viewerID := middleware.GetUserID(r.Context())

	data, err := h.svc.Dashboard(r.Context(), viewerID, recentActivityLimit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}
