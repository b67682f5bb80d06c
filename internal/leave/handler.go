package leave

import (
	"context"
	"net/http"

	"github.com/frahmantamala/hr-management/internal/transport"
)

type ServiceAPI interface {
	Submit(ctx context.Context, employeeID int64, dto SubmitLeaveDTO) (*Request, error)
	MyRequests(ctx context.Context, employeeID int64) ([]*Request, error)
	AllRequests(ctx context.Context, status string) ([]*Request, error)
	UpdateStatus(ctx context.Context, id int64, dto UpdateStatusDTO, approverID int64) (*Request, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	user, appErr := h.CurrentUser(r)
	if appErr != nil {
		h.WriteError(w, appErr)
		return
	}

	var dto SubmitLeaveDTO
	if appErr := h.DecodeJSON(r, &dto); appErr != nil {
		h.WriteError(w, appErr)
		return
	}

	req, err := h.Service.Submit(r.Context(), user.ID, dto)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteMessage(w, http.StatusCreated, "Leave request submitted successfully", req)
}

func (h *Handler) MyRequests(w http.ResponseWriter, r *http.Request) {
	user, appErr := h.CurrentUser(r)
	if appErr != nil {
		h.WriteError(w, appErr)
		return
	}

	list, err := h.Service.MyRequests(r.Context(), user.ID)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	if list == nil {
		list = []*Request{}
	}
	h.WriteJSON(w, http.StatusOK, list)
}

func (h *Handler) AllRequests(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.AllRequests(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	if list == nil {
		list = []*Request{}
	}
	h.WriteJSON(w, http.StatusOK, list)
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	user, appErr := h.CurrentUser(r)
	if appErr != nil {
		h.WriteError(w, appErr)
		return
	}

	id, appErr := h.PathID(r, "id")
	if appErr != nil {
		h.WriteError(w, appErr)
		return
	}

	var dto UpdateStatusDTO
	if appErr := h.DecodeJSON(r, &dto); appErr != nil {
		h.WriteError(w, appErr)
		return
	}

	req, err := h.Service.UpdateStatus(r.Context(), id, dto, user.ID)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteMessage(w, http.StatusOK, "Leave request status updated to "+req.Status, req)
}
