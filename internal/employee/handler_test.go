package employee_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/employee"
	"github.com/frahmantamala/hr-management/internal/transport"
	"github.com/go-chi/chi"
	"github.com/goccy/go-json"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
)

var _ = Describe("EmployeeHandler", func() {
	var (
		router   *chi.Mux
		mockRepo *mockEmployeeRepository
	)

	BeforeEach(func() {
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		mockRepo = newMockEmployeeRepository()
		h := employee.NewHandler(transport.NewBaseHandler(logger), employee.NewService(mockRepo, bcrypt.MinCost, logger))

		router = chi.NewRouter()
		router.Post("/employees", h.Create)
		router.Get("/employees", h.List)
		router.Get("/employees/{id}", h.Get)
		router.Put("/employees/{id}", h.Update)
		router.Delete("/employees/{id}", h.Delete)
	})

	do := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req = req.WithContext(internal.ContextWithUser(context.Background(), &internal.User{ID: 1, Role: internal.RoleAdmin}))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	It("creates an employee and returns the summary", func() {
		w := do(http.MethodPost, "/employees",
			`{"full_name":"Siti","email":"siti@mail.com","password":"secret123","role":"HR"}`)
		Expect(w.Code).To(Equal(http.StatusCreated))

		var body struct {
			Message string                   `json:"message"`
			Data    employee.CreatedEmployee `json:"data"`
		}
		Expect(json.Unmarshal(w.Body.Bytes(), &body)).To(Succeed())
		Expect(body.Data.ID).To(Equal(int64(1)))
		Expect(body.Data.Role).To(Equal("HR"))
		Expect(w.Body.String()).NotTo(ContainSubstring("password"))
	})

	It("returns 409 on duplicate email", func() {
		payload := `{"full_name":"Siti","email":"siti@mail.com","password":"secret123","role":"HR"}`
		Expect(do(http.MethodPost, "/employees", payload).Code).To(Equal(http.StatusCreated))
		Expect(do(http.MethodPost, "/employees", payload).Code).To(Equal(http.StatusConflict))
	})

	It("returns 400 on missing fields", func() {
		w := do(http.MethodPost, "/employees", `{"email":"x@mail.com"}`)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("lists employees without password hashes", func() {
		do(http.MethodPost, "/employees", `{"full_name":"Zed","email":"z@mail.com","password":"secret123","role":"Employee"}`)
		do(http.MethodPost, "/employees", `{"full_name":"Ana","email":"a@mail.com","password":"secret123","role":"Employee"}`)

		w := do(http.MethodGet, "/employees", "")
		Expect(w.Code).To(Equal(http.StatusOK))

		var list []employee.Employee
		Expect(json.Unmarshal(w.Body.Bytes(), &list)).To(Succeed())
		Expect(list).To(HaveLen(2))
		Expect(list[0].FullName).To(Equal("Ana"))
		Expect(w.Body.String()).NotTo(ContainSubstring("$2a$"))
	})

	It("returns 404 for unknown employees", func() {
		Expect(do(http.MethodGet, "/employees/12", "").Code).To(Equal(http.StatusNotFound))
		Expect(do(http.MethodDelete, "/employees/12", "").Code).To(Equal(http.StatusNotFound))
		Expect(do(http.MethodPut, "/employees/12", `{"full_name":"X","role":"HR"}`).Code).To(Equal(http.StatusNotFound))
	})

	It("returns 400 for a non numeric id", func() {
		Expect(do(http.MethodGet, "/employees/abc", "").Code).To(Equal(http.StatusBadRequest))
	})
})
