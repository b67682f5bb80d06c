package payslip

import (
	"context"
	"net/http"
	"strconv"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/transport"
)

type ServiceAPI interface {
	Generate(ctx context.Context, dto GeneratePayslipDTO) (*Payslip, error)
	MyHistory(ctx context.Context, employeeID int64) ([]Summary, error)
	Download(ctx context.Context, id int64, user *internal.User) (*Document, error)
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

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var dto GeneratePayslipDTO
	if appErr := h.DecodeJSON(r, &dto); appErr != nil {
		h.WriteError(w, appErr)
		return
	}

	p, err := h.Service.Generate(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteMessage(w, http.StatusCreated, "Payslip generated successfully", p)
}

func (h *Handler) MyHistory(w http.ResponseWriter, r *http.Request) {
	user, appErr := h.CurrentUser(r)
	if appErr != nil {
		h.WriteError(w, appErr)
		return
	}

	list, err := h.Service.MyHistory(r.Context(), user.ID)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, list)
}

func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
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

	doc, err := h.Service.Download(r.Context(), id, user)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+doc.Filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Content)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc.Content); err != nil {
		h.Logger.Error("failed to write payslip pdf", "error", err, "payslip_id", id)
	}
}
