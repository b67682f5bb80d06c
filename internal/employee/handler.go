package employee

import (
	"context"
	"net/http"

	"github.com/frahmantamala/hr-management/internal/transport"
)

type ServiceAPI interface {
	Create(ctx context.Context, dto CreateEmployeeDTO) (*Employee, error)
	List(ctx context.Context) ([]*Employee, error)
	GetByID(ctx context.Context, id int64) (*Employee, error)
	Update(ctx context.Context, id int64, dto UpdateEmployeeDTO) (*Employee, error)
	Delete(ctx context.Context, id int64) error
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

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto CreateEmployeeDTO
	if appErr := h.DecodeJSON(r, &dto); appErr != nil {
		h.WriteError(w, appErr)
		return
	}

	e, err := h.Service.Create(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	h.WriteMessage(w, http.StatusCreated, "Employee created successfully", e.ToCreated())
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Service.List(r.Context())
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	if employees == nil {
		employees = []*Employee{}
	}
	h.WriteJSON(w, http.StatusOK, employees)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, appErr := h.PathID(r, "id")
	if appErr != nil {
		h.WriteError(w, appErr)
		return
	}

	e, err := h.Service.GetByID(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, e)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, appErr := h.PathID(r, "id")
	if appErr != nil {
		h.WriteError(w, appErr)
		return
	}

	var dto UpdateEmployeeDTO
	if appErr := h.DecodeJSON(r, &dto); appErr != nil {
		h.WriteError(w, appErr)
		return
	}

	e, err := h.Service.Update(r.Context(), id, dto)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteMessage(w, http.StatusOK, "Employee updated successfully", e)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, appErr := h.PathID(r, "id")
	if appErr != nil {
		h.WriteError(w, appErr)
		return
	}

	if err := h.Service.Delete(r.Context(), id); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteMessage(w, http.StatusOK, "Employee deleted successfully", nil)
}
