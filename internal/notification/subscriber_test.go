package notification_test

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/frahmantamala/hr-management/internal/core/events"
	"github.com/frahmantamala/hr-management/internal/employee"
	"github.com/frahmantamala/hr-management/internal/notification"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type memoryQueue struct {
	mu       sync.Mutex
	messages []notification.Message
}

func (q *memoryQueue) Enqueue(msg notification.Message) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.messages = append(q.messages, msg)
	return true
}

func (q *memoryQueue) all() []notification.Message {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]notification.Message(nil), q.messages...)
}

type stubEmployees map[int64]*employee.Employee

func (s stubEmployees) GetByID(_ context.Context, id int64) (*employee.Employee, error) {
	e, ok := s[id]
	if !ok {
		return nil, employee.ErrEmployeeNotFound
	}
	return e, nil
}

var _ = Describe("Subscriber", func() {
	var (
		bus   *events.EventBus
		queue *memoryQueue
		ctx   = context.Background()
	)

	BeforeEach(func() {
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		bus = events.NewEventBus(logger)
		queue = &memoryQueue{}
		employees := stubEmployees{5: {ID: 5, FullName: "Budi", Email: "budi@mail.com"}}
		notification.NewSubscriber(employees, queue, logger).RegisterEventHandlers(bus)
	})

	It("queues a leave decision mail for the requester", func() {
		start := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
		event := events.NewLeaveStatusChangedEvent(1, 5, 2, "Approved", start, start)
		Expect(bus.PublishSync(ctx, event)).To(Succeed())

		messages := queue.all()
		Expect(messages).To(HaveLen(1))
		Expect(messages[0].To).To(Equal("budi@mail.com"))
		Expect(messages[0].Subject).To(Equal("Leave request Approved"))
	})

	It("queues a payslip mail with the period and net salary", func() {
		Expect(bus.Publish(ctx, events.NewPayslipGeneratedEvent(3, 5, 8, 2025, 5350000))).To(Succeed())
		bus.Wait()

		messages := queue.all()
		Expect(messages).To(HaveLen(1))
		Expect(messages[0].Subject).To(ContainSubstring("August 2025"))
		Expect(messages[0].HTML).To(ContainSubstring("Rp 5.350.000"))
	})

	It("fails when the employee no longer exists", func() {
		event := events.NewPayslipGeneratedEvent(3, 99, 8, 2025, 1)
		Expect(bus.PublishSync(ctx, event)).To(HaveOccurred())
		Expect(queue.all()).To(BeEmpty())
	})
})
