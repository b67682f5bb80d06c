package salary_test

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/employee"
	"github.com/frahmantamala/hr-management/internal/payslip"
	"github.com/frahmantamala/hr-management/internal/salary"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type mockSalaryRepository struct {
	components map[int64]*salary.Component
	nextID     int64
}

func newMockSalaryRepository() *mockSalaryRepository {
	return &mockSalaryRepository{components: map[int64]*salary.Component{}, nextID: 1}
}

func (m *mockSalaryRepository) Upsert(_ context.Context, c *salary.Component) error {
	if existing, ok := m.components[c.EmployeeID]; ok {
		c.ID = existing.ID
	} else {
		c.ID = m.nextID
		m.nextID++
	}
	m.components[c.EmployeeID] = c.Clone()
	return nil
}

func (m *mockSalaryRepository) GetByEmployee(_ context.Context, employeeID int64) (*salary.Component, error) {
	c, ok := m.components[employeeID]
	if !ok {
		return nil, salary.ErrSalaryNotFound
	}
	return c.Clone(), nil
}

func (m *mockSalaryRepository) List(_ context.Context) ([]*salary.Component, error) {
	out := make([]*salary.Component, 0, len(m.components))
	for _, c := range m.components {
		out = append(out, c.Clone())
	}
	return out, nil
}

type stubEmployees map[int64]*employee.Employee

func (s stubEmployees) GetByID(_ context.Context, id int64) (*employee.Employee, error) {
	e, ok := s[id]
	if !ok {
		return nil, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func int64Ptr(v int64) *int64 { return &v }

var _ = Describe("SalaryService", func() {
	var (
		svc  *salary.Service
		repo *mockSalaryRepository
		ctx  = context.Background()
	)

	BeforeEach(func() {
		repo = newMockSalaryRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		svc = salary.NewService(repo, stubEmployees{3: {ID: 3, FullName: "Budi"}}, logger)
	})

	It("saves and replaces the component", func() {
		c, err := svc.Upsert(ctx, 3, salary.UpsertSalaryDTO{
			BasicSalary: int64Ptr(5000000),
			Allowances:  map[string]int64{"Transport": 500000},
			Deductions:  map[string]int64{"BPJS": 150000},
		})
		Expect(err).NotTo(HaveOccurred())
		total, ok := c.Allowances.Total()
		Expect(ok).To(BeTrue())
		Expect(total).To(Equal(int64(500000)))

		_, err = svc.Upsert(ctx, 3, salary.UpsertSalaryDTO{
			BasicSalary: int64Ptr(6000000),
			Allowances:  map[string]int64{},
			Deductions:  map[string]int64{},
		})
		Expect(err).NotTo(HaveOccurred())

		got, err := svc.Get(ctx, 3)
		Expect(err).NotTo(HaveOccurred())
		Expect(got.ID).To(Equal(c.ID))
		Expect(got.BasicSalary).To(Equal(int64(6000000)))
		Expect(got.Allowances).To(BeEmpty())
	})

	It("accepts a zero basic salary but not a missing one", func() {
		_, err := svc.Upsert(ctx, 3, salary.UpsertSalaryDTO{
			BasicSalary: int64Ptr(0),
			Allowances:  map[string]int64{},
			Deductions:  map[string]int64{},
		})
		Expect(err).NotTo(HaveOccurred())

		_, err = svc.Upsert(ctx, 3, salary.UpsertSalaryDTO{Allowances: map[string]int64{}, Deductions: map[string]int64{}})
		Expect(err).To(HaveOccurred())
		Expect(err.(*internal.AppError).GetDetailedMessage()).To(ContainSubstring("basic_salary is required"))
	})

	It("rejects negative amounts and missing maps", func() {
		_, err := svc.Upsert(ctx, 3, salary.UpsertSalaryDTO{
			BasicSalary: int64Ptr(-1),
			Allowances:  map[string]int64{"Meal": -5},
		})
		Expect(err).To(HaveOccurred())
		msg := err.(*internal.AppError).GetDetailedMessage()
		Expect(msg).To(ContainSubstring("basic_salary must be at least 0"))
		Expect(msg).To(ContainSubstring("must be at least 0"))
		Expect(msg).To(ContainSubstring("deductions is required"))
	})

	It("rejects amounts above the supported maximum", func() {
		_, err := svc.Upsert(ctx, 3, salary.UpsertSalaryDTO{
			BasicSalary: int64Ptr(5000000),
			Allowances:  map[string]int64{"A": math.MaxInt64, "B": math.MaxInt64},
			Deductions:  map[string]int64{},
		})
		Expect(err).To(HaveOccurred())
		Expect(err.(*internal.AppError).StatusCode).To(Equal(400))
		Expect(err.(*internal.AppError).GetDetailedMessage()).To(ContainSubstring("must not exceed 1000000000000"))
		Expect(repo.components).To(BeEmpty())

		_, err = svc.Upsert(ctx, 3, salary.UpsertSalaryDTO{
			BasicSalary: int64Ptr(salary.MaxAmount + 1),
			Allowances:  map[string]int64{},
			Deductions:  map[string]int64{},
		})
		Expect(err).To(HaveOccurred())
		Expect(err.(*internal.AppError).GetDetailedMessage()).To(ContainSubstring("basic_salary must not exceed"))
	})

	It("accepts the largest allowed component and computes a payslip from it", func() {
		allowances := map[string]int64{}
		for i := 0; i < salary.MaxLines; i++ {
			allowances[fmt.Sprintf("A%02d", i)] = salary.MaxAmount
		}
		c, err := svc.Upsert(ctx, 3, salary.UpsertSalaryDTO{
			BasicSalary: int64Ptr(salary.MaxAmount),
			Allowances:  allowances,
			Deductions:  map[string]int64{},
		})
		Expect(err).NotTo(HaveOccurred())

		p, err := payslip.Compute(c, 8, 2025)
		Expect(err).NotTo(HaveOccurred())
		Expect(p.TotalAllowances).To(Equal(int64(salary.MaxLines) * salary.MaxAmount))
		Expect(p.NetSalary).To(BeNumerically(">", 0))
	})

	It("returns 404 for an unknown employee", func() {
		_, err := svc.Upsert(ctx, 99, salary.UpsertSalaryDTO{
			BasicSalary: int64Ptr(1),
			Allowances:  map[string]int64{},
			Deductions:  map[string]int64{},
		})
		Expect(err).To(Equal(employee.ErrEmployeeNotFound))
	})

	It("returns 404 when no component exists", func() {
		_, err := svc.Get(ctx, 3)
		Expect(err).To(Equal(salary.ErrSalaryNotFound))
	})
})
