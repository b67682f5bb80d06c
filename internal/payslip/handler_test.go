package payslip_test

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/employee"
	"github.com/frahmantamala/hr-management/internal/payslip"
	"github.com/frahmantamala/hr-management/internal/salary"
	"github.com/frahmantamala/hr-management/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("PayslipHandler", func() {
	var router *chi.Mux

	BeforeEach(func() {
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		salaries := &stubSalaries{components: map[int64]*salary.Component{
			1: {EmployeeID: 1, BasicSalary: 5000000, Allowances: salary.Amounts{}, Deductions: salary.Amounts{}},
		}}
		svc := payslip.NewService(newMockPayslipRepository(), salaries, stubEmployees{1: &employee.Employee{ID: 1, FullName: "Budi"}}, nil, logger)
		h := payslip.NewHandler(transport.NewBaseHandler(logger), svc)

		router = chi.NewRouter()
		router.Post("/payslips/generate", h.Generate)
		router.Get("/payslips/my-history", h.MyHistory)
		router.Get("/payslips/{id}/download", h.Download)
	})

	do := func(method, path, body string, user *internal.User) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		if user != nil {
			req = req.WithContext(internal.ContextWithUser(req.Context(), user))
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	hr := &internal.User{ID: 9, Role: internal.RoleHR}
	owner := &internal.User{ID: 1, Role: internal.RoleEmployee}

	It("generates, lists and downloads", func() {
		w := do(http.MethodPost, "/payslips/generate", `{"employee_id":1,"month":8,"year":2025}`, hr)
		Expect(w.Code).To(Equal(http.StatusCreated))
		Expect(w.Body.String()).To(ContainSubstring(`"net_salary":5000000`))

		w = do(http.MethodPost, "/payslips/generate", `{"employee_id":1,"month":8,"year":2025}`, hr)
		Expect(w.Code).To(Equal(http.StatusConflict))

		w = do(http.MethodGet, "/payslips/my-history", "", owner)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring(`"pay_period_month":8`))

		w = do(http.MethodGet, "/payslips/1/download", "", owner)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Header().Get("Content-Type")).To(Equal("application/pdf"))
		Expect(w.Header().Get("Content-Disposition")).To(ContainSubstring("payslip_2025_08.pdf"))

		w = do(http.MethodGet, "/payslips/1/download", "", &internal.User{ID: 2, Role: internal.RoleEmployee})
		Expect(w.Code).To(Equal(http.StatusForbidden))
	})

	It("returns an empty history as a list", func() {
		w := do(http.MethodGet, "/payslips/my-history", "", owner)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(Equal("[]\n"))
	})

	It("returns 404 for a missing payslip", func() {
		Expect(do(http.MethodGet, "/payslips/77/download", "", hr).Code).To(Equal(http.StatusNotFound))
	})

	It("requires a principal for history", func() {
		Expect(do(http.MethodGet, "/payslips/my-history", "", nil).Code).To(Equal(http.StatusUnauthorized))
	})
})
