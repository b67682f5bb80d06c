package auth

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"time"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/transport"
	"github.com/goccy/go-json"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("Auth Handler", func() {
	var (
		h      *Handler
		tokens *JWTTokenGenerator
	)

	ginkgo.BeforeEach(func() {
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		tokens = NewJWTTokenGenerator(testSecret, time.Hour)
		svc := NewService(newMockEmployeeFinder(), tokens, nil, logger)
		h = NewHandler(transport.NewBaseHandler(logger), svc)
	})

	ginkgo.It("logs in with valid credentials", func() {
		req := httptest.NewRequest(http.MethodPost, "/auth/login",
			strings.NewReader(`{"email":"admin@example.com","password":"correct_password"}`))
		w := httptest.NewRecorder()
		h.Login(w, req)

		gomega.Expect(w.Code).To(gomega.Equal(http.StatusOK))
		var resp LoginResponse
		gomega.Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(gomega.Succeed())
		gomega.Expect(resp.Token).NotTo(gomega.BeEmpty())
		gomega.Expect(resp.User.FullName).To(gomega.Equal("Main Admin"))
	})

	ginkgo.It("returns 401 with a generic message on bad credentials", func() {
		req := httptest.NewRequest(http.MethodPost, "/auth/login",
			strings.NewReader(`{"email":"admin@example.com","password":"nope"}`))
		w := httptest.NewRecorder()
		h.Login(w, req)

		gomega.Expect(w.Code).To(gomega.Equal(http.StatusUnauthorized))
		gomega.Expect(w.Body.String()).To(gomega.ContainSubstring("Invalid email or password"))
	})

	ginkgo.It("returns 400 on a malformed body", func() {
		w := httptest.NewRecorder()
		h.Login(w, httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader("{")))
		gomega.Expect(w.Code).To(gomega.Equal(http.StatusBadRequest))
	})

	ginkgo.Describe("AuthMiddleware", func() {
		var protected http.Handler

		ginkgo.BeforeEach(func() {
			protected = h.AuthMiddleware(http.HandlerFunc(h.Me))
		})

		ginkgo.It("returns 401 without a bearer token", func() {
			w := httptest.NewRecorder()
			protected.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/me", nil))
			gomega.Expect(w.Code).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(w.Body.String()).To(gomega.ContainSubstring("MISSING_TOKEN"))
		})

		ginkgo.It("returns 401 for an invalid token", func() {
			req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
			req.Header.Set("Authorization", "Bearer not.a.token")
			w := httptest.NewRecorder()
			protected.ServeHTTP(w, req)
			gomega.Expect(w.Code).To(gomega.Equal(http.StatusUnauthorized))
		})

		ginkgo.It("puts the employee in the context", func() {
			token, _ := tokens.GenerateAccessToken(2, internal.RoleEmployee)
			req := httptest.NewRequest(http.MethodGet, "/auth/me", nil).WithContext(context.Background())
			req.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()
			protected.ServeHTTP(w, req)

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusOK))
			var user internal.User
			gomega.Expect(json.Unmarshal(w.Body.Bytes(), &user)).To(gomega.Succeed())
			gomega.Expect(user.ID).To(gomega.Equal(int64(2)))
			gomega.Expect(user.Role).To(gomega.Equal(internal.RoleEmployee))
		})
	})
})
