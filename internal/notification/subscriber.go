package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/hr-management/internal/core/events"
	"github.com/frahmantamala/hr-management/internal/employee"
	"github.com/frahmantamala/hr-management/internal/payslip"
)

type EmployeeLookup interface {
	GetByID(ctx context.Context, id int64) (*employee.Employee, error)
}

type Enqueuer interface {
	Enqueue(msg Message) bool
}

// Subscriber turns domain events into queued mail.
type Subscriber struct {
	employees EmployeeLookup
	queue     Enqueuer
	logger    *slog.Logger
}

func NewSubscriber(employees EmployeeLookup, queue Enqueuer, logger *slog.Logger) *Subscriber {
	return &Subscriber{employees: employees, queue: queue, logger: logger}
}

func (s *Subscriber) RegisterEventHandlers(bus *events.EventBus) {
	bus.Subscribe(events.EventTypeLeaveStatusChanged, s.HandleLeaveStatusChanged)
	bus.Subscribe(events.EventTypePayslipGenerated, s.HandlePayslipGenerated)
}

func (s *Subscriber) HandleLeaveStatusChanged(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.LeaveStatusChangedEvent)
	if !ok {
		return fmt.Errorf("unexpected event %T for %s", event, event.EventType())
	}

	emp, err := s.employees.GetByID(ctx, e.EmployeeID)
	if err != nil {
		return fmt.Errorf("lookup employee %d: %w", e.EmployeeID, err)
	}

	msg, err := LeaveStatusMessage(emp.Email, LeaveStatusData{
		FullName:  emp.FullName,
		Status:    e.Status,
		StartDate: e.StartDate,
		EndDate:   e.EndDate,
	})
	if err != nil {
		return err
	}

	s.enqueue(msg, event)
	return nil
}

func (s *Subscriber) HandlePayslipGenerated(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.PayslipGeneratedEvent)
	if !ok {
		return fmt.Errorf("unexpected event %T for %s", event, event.EventType())
	}

	emp, err := s.employees.GetByID(ctx, e.EmployeeID)
	if err != nil {
		return fmt.Errorf("lookup employee %d: %w", e.EmployeeID, err)
	}

	msg, err := PayslipMessage(emp.Email, PayslipData{
		FullName:  emp.FullName,
		Month:     e.Month,
		Year:      e.Year,
		NetSalary: payslip.FormatRupiah(e.NetSalary),
	})
	if err != nil {
		return err
	}

	s.enqueue(msg, event)
	return nil
}

func (s *Subscriber) enqueue(msg Message, event events.Event) {
	if s.queue.Enqueue(msg) {
		s.logger.Info("notification queued",
			"event_type", event.EventType(),
			"event_id", event.EventID(),
			"to", msg.To)
	}
}
