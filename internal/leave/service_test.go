package leave_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/core/events"
	"github.com/frahmantamala/hr-management/internal/leave"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type mockLeaveRepository struct {
	requests    map[int64]*leave.Request
	nextID      int64
	createError error
}

func newMockLeaveRepository() *mockLeaveRepository {
	return &mockLeaveRepository{requests: map[int64]*leave.Request{}, nextID: 1}
}

func (m *mockLeaveRepository) Create(_ context.Context, r *leave.Request) error {
	if m.createError != nil {
		return m.createError
	}
	r.ID = m.nextID
	m.nextID++
	r.CreatedAt = time.Now()
	cp := *r
	m.requests[r.ID] = &cp
	return nil
}

func (m *mockLeaveRepository) GetByID(_ context.Context, id int64) (*leave.Request, error) {
	r, ok := m.requests[id]
	if !ok {
		return nil, leave.ErrLeaveNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *mockLeaveRepository) ListByEmployee(_ context.Context, employeeID int64) ([]*leave.Request, error) {
	var out []*leave.Request
	for _, r := range m.requests {
		if r.EmployeeID == employeeID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockLeaveRepository) ListAll(_ context.Context, status string) ([]*leave.Request, error) {
	var out []*leave.Request
	for _, r := range m.requests {
		if status == "" || r.Status == status {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockLeaveRepository) Decide(_ context.Context, id int64, status string, approverID int64) (*leave.Request, error) {
	r, ok := m.requests[id]
	if !ok {
		return nil, leave.ErrLeaveNotFound
	}
	if r.Status != leave.StatusPending {
		return nil, leave.ErrLeaveAlreadyClosed
	}
	r.Status = status
	r.ApprovedBy = &approverID
	cp := *r
	return &cp, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

var _ = Describe("LeaveService", func() {
	var (
		svc       *leave.Service
		repo      *mockLeaveRepository
		publisher *recordingPublisher
		ctx       = context.Background()
	)

	BeforeEach(func() {
		repo = newMockLeaveRepository()
		publisher = &recordingPublisher{}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		svc = leave.NewService(repo, publisher, logger)
	})

	validDTO := func() leave.SubmitLeaveDTO {
		return leave.SubmitLeaveDTO{
			LeaveType: "Annual",
			StartDate: "2025-09-01",
			EndDate:   "2025-09-03",
			Reason:    "Family trip",
		}
	}

	Describe("Submit", func() {
		It("creates a Pending request", func() {
			r, err := svc.Submit(ctx, 5, validDTO())
			Expect(err).NotTo(HaveOccurred())
			Expect(r.Status).To(Equal(leave.StatusPending))
			Expect(r.StartDate).To(Equal(time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)))
			Expect(r.Days()).To(Equal(3))
			Expect(r.ApprovedBy).To(BeNil())
		})

		It("accepts a single-day leave", func() {
			dto := validDTO()
			dto.EndDate = dto.StartDate
			r, err := svc.Submit(ctx, 5, dto)
			Expect(err).NotTo(HaveOccurred())
			Expect(r.Days()).To(Equal(1))
		})

		It("rejects an end date before the start date", func() {
			dto := validDTO()
			dto.EndDate = "2025-08-31"
			_, err := svc.Submit(ctx, 5, dto)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(400))
			Expect(appErr.GetDetailedMessage()).To(ContainSubstring("start_date must not be after end date"))
		})

		It("requires every field in YYYY-MM-DD", func() {
			_, err := svc.Submit(ctx, 5, leave.SubmitLeaveDTO{StartDate: "01-09-2025"})
			Expect(err).To(HaveOccurred())
			msg := err.(*internal.AppError).GetDetailedMessage()
			Expect(msg).To(ContainSubstring("leave_type is required"))
			Expect(msg).To(ContainSubstring("start_date must be a date in YYYY-MM-DD format"))
			Expect(msg).To(ContainSubstring("reason is required"))
		})
	})

	Describe("UpdateStatus", func() {
		var pending *leave.Request

		BeforeEach(func() {
			var err error
			pending, err = svc.Submit(ctx, 5, validDTO())
			Expect(err).NotTo(HaveOccurred())
		})

		It("approves a Pending request and publishes the change", func() {
			r, err := svc.UpdateStatus(ctx, pending.ID, leave.UpdateStatusDTO{Status: leave.StatusApproved}, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(r.Status).To(Equal(leave.StatusApproved))
			Expect(*r.ApprovedBy).To(Equal(int64(1)))

			Expect(publisher.events).To(HaveLen(1))
			evt, ok := publisher.events[0].(*events.LeaveStatusChangedEvent)
			Expect(ok).To(BeTrue())
			Expect(evt.EmployeeID).To(Equal(int64(5)))
			Expect(evt.Status).To(Equal(leave.StatusApproved))
		})

		It("refuses to decide twice", func() {
			_, err := svc.UpdateStatus(ctx, pending.ID, leave.UpdateStatusDTO{Status: leave.StatusRejected}, 1)
			Expect(err).NotTo(HaveOccurred())

			_, err = svc.UpdateStatus(ctx, pending.ID, leave.UpdateStatusDTO{Status: leave.StatusApproved}, 1)
			Expect(errors.Is(err, leave.ErrLeaveAlreadyClosed)).To(BeTrue())
			Expect(publisher.events).To(HaveLen(1))
		})

		It("only accepts Approved or Rejected", func() {
			_, err := svc.UpdateStatus(ctx, pending.ID, leave.UpdateStatusDTO{Status: leave.StatusPending}, 1)
			Expect(err).To(HaveOccurred())
			Expect(err.(*internal.AppError).StatusCode).To(Equal(400))
		})

		It("returns not found for unknown requests", func() {
			_, err := svc.UpdateStatus(ctx, 999, leave.UpdateStatusDTO{Status: leave.StatusApproved}, 1)
			Expect(err).To(Equal(leave.ErrLeaveNotFound))
		})
	})

	Describe("AllRequests", func() {
		It("rejects an unknown status filter", func() {
			_, err := svc.AllRequests(ctx, "Cancelled")
			Expect(err).To(Equal(leave.ErrInvalidStatus))
		})

		It("filters by status", func() {
			a, _ := svc.Submit(ctx, 5, validDTO())
			_, _ = svc.Submit(ctx, 6, validDTO())
			_, err := svc.UpdateStatus(ctx, a.ID, leave.UpdateStatusDTO{Status: leave.StatusApproved}, 1)
			Expect(err).NotTo(HaveOccurred())

			list, err := svc.AllRequests(ctx, leave.StatusPending)
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(1))
			Expect(list[0].EmployeeID).To(Equal(int64(6)))
		})
	})
})
