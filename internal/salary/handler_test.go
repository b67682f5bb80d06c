package salary_test

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"

	"github.com/frahmantamala/hr-management/internal/salary"
	"github.com/frahmantamala/hr-management/internal/transport"
	"github.com/go-chi/chi"
	"github.com/goccy/go-json"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("SalaryHandler", func() {
	var router *chi.Mux

	BeforeEach(func() {
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		svc := salary.NewService(newMockSalaryRepository(), stubEmployees{3: {ID: 3}}, logger)
		h := salary.NewHandler(transport.NewBaseHandler(logger), svc)

		router = chi.NewRouter()
		router.Post("/salary-components/{employeeId}", h.Upsert)
		router.Get("/salary-components/{employeeId}", h.Get)
	})

	do := func(method, path, body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(method, path, strings.NewReader(body)))
		return w
	}

	It("upserts then reads the component", func() {
		w := do(http.MethodPost, "/salary-components/3",
			`{"basic_salary":5000000,"allowances":{"Transport":500000},"deductions":{"BPJS":150000}}`)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring("Salary components saved successfully"))

		w = do(http.MethodGet, "/salary-components/3", "")
		Expect(w.Code).To(Equal(http.StatusOK))

		var c salary.Component
		Expect(json.Unmarshal(w.Body.Bytes(), &c)).To(Succeed())
		Expect(c.EmployeeID).To(Equal(int64(3)))
		Expect(c.Deductions).To(HaveKeyWithValue("BPJS", int64(150000)))
	})

	It("maps missing rows to 404", func() {
		Expect(do(http.MethodGet, "/salary-components/3", "").Code).To(Equal(http.StatusNotFound))
		Expect(do(http.MethodPost, "/salary-components/8",
			`{"basic_salary":1,"allowances":{},"deductions":{}}`).Code).To(Equal(http.StatusNotFound))
	})

	It("rejects a bad employee id", func() {
		Expect(do(http.MethodGet, "/salary-components/abc", "").Code).To(Equal(http.StatusBadRequest))
	})
})
