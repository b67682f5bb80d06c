package leave_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/leave"
	"github.com/frahmantamala/hr-management/internal/transport"
	"github.com/go-chi/chi"
	"github.com/goccy/go-json"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("LeaveHandler", func() {
	var (
		h    *leave.Handler
		repo *mockLeaveRepository
	)

	BeforeEach(func() {
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		repo = newMockLeaveRepository()
		h = leave.NewHandler(transport.NewBaseHandler(logger), leave.NewService(repo, nil, logger))
	})

	as := func(req *http.Request, id int64, role string) *http.Request {
		return req.WithContext(internal.ContextWithUser(req.Context(), &internal.User{ID: id, Role: role}))
	}

	withID := func(req *http.Request, id string) *http.Request {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", id)
		return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}

	submit := func(body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/leave-requests", strings.NewReader(body))
		h.Submit(w, as(req, 7, internal.RoleEmployee))
		return w
	}

	It("submits a request for the caller", func() {
		w := submit(`{"leave_type":"Sick","start_date":"2025-09-01","end_date":"2025-09-02","reason":"flu"}`)
		Expect(w.Code).To(Equal(http.StatusCreated))

		var body struct {
			Message string        `json:"message"`
			Data    leave.Request `json:"data"`
		}
		Expect(json.Unmarshal(w.Body.Bytes(), &body)).To(Succeed())
		Expect(body.Message).To(Equal("Leave request submitted successfully"))
		Expect(body.Data.EmployeeID).To(Equal(int64(7)))
		Expect(body.Data.Status).To(Equal(leave.StatusPending))
	})

	It("rejects an inverted range", func() {
		w := submit(`{"leave_type":"Sick","start_date":"2025-09-05","end_date":"2025-09-02","reason":"flu"}`)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("lists only the caller's requests", func() {
		Expect(submit(`{"leave_type":"Sick","start_date":"2025-09-01","end_date":"2025-09-01","reason":"flu"}`).Code).To(Equal(http.StatusCreated))

		w := httptest.NewRecorder()
		h.MyRequests(w, as(httptest.NewRequest(http.MethodGet, "/leave-requests/my-requests", nil), 8, internal.RoleEmployee))
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(Equal("[]\n"))
	})

	It("rejects an unknown status filter", func() {
		w := httptest.NewRecorder()
		h.AllRequests(w, httptest.NewRequest(http.MethodGet, "/leave-requests?status=Maybe", nil))
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("updates the status once", func() {
		Expect(submit(`{"leave_type":"Sick","start_date":"2025-09-01","end_date":"2025-09-01","reason":"flu"}`).Code).To(Equal(http.StatusCreated))

		decide := func(status string) *httptest.ResponseRecorder {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPut, "/leave-requests/1/status", strings.NewReader(`{"status":"`+status+`"}`))
			h.UpdateStatus(w, as(withID(req, "1"), 1, internal.RoleHR))
			return w
		}

		w := decide(leave.StatusApproved)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring("Leave request status updated to Approved"))

		Expect(decide(leave.StatusRejected).Code).To(Equal(http.StatusConflict))
	})

	It("returns 404 for a missing request", func() {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/leave-requests/42/status", strings.NewReader(`{"status":"Approved"}`))
		h.UpdateStatus(w, as(withID(req, "42"), 1, internal.RoleHR))
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})
})
