package salary

import (
	"context"
	"net/http"

	"github.com/frahmantamala/hr-management/internal/transport"
)

type ServiceAPI interface {
	Upsert(ctx context.Context, employeeID int64, dto UpsertSalaryDTO) (*Component, error)
	Get(ctx context.Context, employeeID int64) (*Component, error)
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

func (h *Handler) Upsert(w http.ResponseWriter, r *http.Request) {
	employeeID, appErr := h.PathID(r, "employeeId")
	if appErr != nil {
		h.WriteError(w, appErr)
		return
	}

	var dto UpsertSalaryDTO
	if appErr := h.DecodeJSON(r, &dto); appErr != nil {
		h.WriteError(w, appErr)
		return
	}

	c, err := h.Service.Upsert(r.Context(), employeeID, dto)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteMessage(w, http.StatusOK, "Salary components saved successfully", c)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	employeeID, appErr := h.PathID(r, "employeeId")
	if appErr != nil {
		h.WriteError(w, appErr)
		return
	}

	c, err := h.Service.Get(r.Context(), employeeID)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, c)
}
