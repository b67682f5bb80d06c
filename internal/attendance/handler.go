package attendance

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/frahmantamala/hr-management/internal/transport"
)

type ServiceAPI interface {
	CheckIn(ctx context.Context, employeeID int64) (*Record, error)
	CheckOut(ctx context.Context, employeeID int64) (*Record, error)
	TodayRecord(ctx context.Context, employeeID int64) (*Record, error)
	History(ctx context.Context, employeeID int64) ([]*Record, error)
	Report(ctx context.Context, date string) ([]ReportRow, error)
	ExportRange(ctx context.Context, startDate, endDate string) ([]ReportRow, error)
	Location() *time.Location
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

func (h *Handler) CheckIn(w http.ResponseWriter, r *http.Request) {
	user, appErr := h.CurrentUser(r)
	if appErr != nil {
		h.WriteError(w, appErr)
		return
	}

	rec, err := h.Service.CheckIn(r.Context(), user.ID)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteMessage(w, http.StatusCreated, "Check-in successful", rec)
}

func (h *Handler) CheckOut(w http.ResponseWriter, r *http.Request) {
	user, appErr := h.CurrentUser(r)
	if appErr != nil {
		h.WriteError(w, appErr)
		return
	}

	rec, err := h.Service.CheckOut(r.Context(), user.ID)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteMessage(w, http.StatusOK, "Check-out successful", rec)
}

func (h *Handler) Today(w http.ResponseWriter, r *http.Request) {
	user, appErr := h.CurrentUser(r)
	if appErr != nil {
		h.WriteError(w, appErr)
		return
	}

	rec, err := h.Service.TodayRecord(r.Context(), user.ID)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, rec)
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	user, appErr := h.CurrentUser(r)
	if appErr != nil {
		h.WriteError(w, appErr)
		return
	}

	records, err := h.Service.History(r.Context(), user.ID)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	if records == nil {
		records = []*Record{}
	}
	h.WriteJSON(w, http.StatusOK, records)
}

func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Service.Report(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	if rows == nil {
		rows = []ReportRow{}
	}
	h.WriteJSON(w, http.StatusOK, rows)
}

func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	startDate := r.URL.Query().Get("startDate")
	endDate := r.URL.Query().Get("endDate")

	rows, err := h.Service.ExportRange(r.Context(), startDate, endDate)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, rows, h.Service.Location()); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, ExportFilename(startDate, endDate)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
