package attendance_test

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/attendance"
	"github.com/frahmantamala/hr-management/internal/transport"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("AttendanceHandler", func() {
	var h *attendance.Handler

	BeforeEach(func() {
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		repo := newMockAttendanceRepository()
		svc := attendance.NewService(repo, repo, time.UTC, logger)
		h = attendance.NewHandler(transport.NewBaseHandler(logger), svc)
	})

	asEmployee := func(req *http.Request) *http.Request {
		return req.WithContext(internal.ContextWithUser(req.Context(), &internal.User{ID: 3, Role: internal.RoleEmployee}))
	}

	It("walks through check-in and check-out", func() {
		w := httptest.NewRecorder()
		h.Today(w, asEmployee(httptest.NewRequest(http.MethodGet, "/attendance/today", nil)))
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(Equal("null\n"))

		w = httptest.NewRecorder()
		h.CheckOut(w, asEmployee(httptest.NewRequest(http.MethodPatch, "/attendance/check-out", nil)))
		Expect(w.Code).To(Equal(http.StatusNotFound))

		w = httptest.NewRecorder()
		h.CheckIn(w, asEmployee(httptest.NewRequest(http.MethodPost, "/attendance/check-in", nil)))
		Expect(w.Code).To(Equal(http.StatusCreated))

		w = httptest.NewRecorder()
		h.CheckIn(w, asEmployee(httptest.NewRequest(http.MethodPost, "/attendance/check-in", nil)))
		Expect(w.Code).To(Equal(http.StatusConflict))

		w = httptest.NewRecorder()
		h.CheckOut(w, asEmployee(httptest.NewRequest(http.MethodPatch, "/attendance/check-out", nil)))
		Expect(w.Code).To(Equal(http.StatusOK))

		w = httptest.NewRecorder()
		h.CheckOut(w, asEmployee(httptest.NewRequest(http.MethodPatch, "/attendance/check-out", nil)))
		Expect(w.Code).To(Equal(http.StatusConflict))
	})

	It("requires a principal", func() {
		w := httptest.NewRecorder()
		h.CheckIn(w, httptest.NewRequest(http.MethodPost, "/attendance/check-in", nil))
		Expect(w.Code).To(Equal(http.StatusUnauthorized))
	})

	It("serves the export as a CSV attachment", func() {
		w := httptest.NewRecorder()
		h.Export(w, httptest.NewRequest(http.MethodGet, "/attendance/report/export?startDate=2025-08-01&endDate=2025-08-31", nil))

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Header().Get("Content-Type")).To(Equal("text/csv"))
		Expect(w.Header().Get("Content-Disposition")).To(Equal(`attachment; filename="attendance_report_2025-08-01_2025-08-31.csv"`))
		Expect(w.Body.String()).To(HavePrefix("DATE,EMPLOYEE NAME"))
	})

	It("rejects a bad report date", func() {
		w := httptest.NewRecorder()
		h.Report(w, httptest.NewRequest(http.MethodGet, "/attendance/report?date=yesterday", nil))
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})
})
