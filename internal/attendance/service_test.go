package attendance_test

import (
	"context"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/frahmantamala/hr-management/internal/attendance"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type dayKey struct {
	employeeID int64
	day        time.Time
}

type mockAttendanceRepository struct {
	records map[dayKey]*attendance.Record
	nextID  int64
	filters []attendance.ReportFilter
}

func newMockAttendanceRepository() *mockAttendanceRepository {
	return &mockAttendanceRepository{records: map[dayKey]*attendance.Record{}, nextID: 1}
}

func (m *mockAttendanceRepository) Create(_ context.Context, r *attendance.Record) error {
	key := dayKey{r.EmployeeID, r.AttendanceDate}
	if _, ok := m.records[key]; ok {
		return attendance.ErrAlreadyCheckedIn
	}
	r.ID = m.nextID
	m.nextID++
	cp := *r
	m.records[key] = &cp
	return nil
}

func (m *mockAttendanceRepository) GetForDay(_ context.Context, employeeID int64, day time.Time) (*attendance.Record, error) {
	r, ok := m.records[dayKey{employeeID, day}]
	if !ok {
		return nil, attendance.ErrNotCheckedIn
	}
	cp := *r
	return &cp, nil
}

func (m *mockAttendanceRepository) CheckOut(_ context.Context, id int64, at time.Time) error {
	for _, r := range m.records {
		if r.ID == id {
			if r.CheckOutTime != nil {
				return attendance.ErrAlreadyCheckedOut
			}
			r.CheckOutTime = &at
			return nil
		}
	}
	return attendance.ErrNotCheckedIn
}

func (m *mockAttendanceRepository) History(_ context.Context, employeeID int64, limit int) ([]*attendance.Record, error) {
	var out []*attendance.Record
	for _, r := range m.records {
		if r.EmployeeID == employeeID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AttendanceDate.After(out[j].AttendanceDate) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockAttendanceRepository) Report(_ context.Context, filter attendance.ReportFilter) ([]attendance.ReportRow, error) {
	m.filters = append(m.filters, filter)
	return []attendance.ReportRow{}, nil
}

var _ = Describe("AttendanceService", func() {
	var (
		svc  *attendance.Service
		repo *mockAttendanceRepository
		now  time.Time
		ctx  = context.Background()
		wib  = time.FixedZone("WIB", 7*3600)
	)

	BeforeEach(func() {
		repo = newMockAttendanceRepository()
		now = time.Date(2025, 8, 23, 1, 30, 0, 0, wib)
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		svc = attendance.NewService(repo, repo, wib, logger).WithClock(func() time.Time { return now })
	})

	It("computes today in the configured zone", func() {
		// 01:30 WIB is still the 22nd in UTC
		Expect(svc.Today()).To(Equal(time.Date(2025, 8, 23, 0, 0, 0, 0, time.UTC)))
	})

	Describe("CheckIn", func() {
		It("records a Present check-in for today", func() {
			rec, err := svc.CheckIn(ctx, 7)
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.Status).To(Equal(attendance.StatusPresent))
			Expect(rec.AttendanceDate).To(Equal(svc.Today()))
			Expect(rec.CheckInTime.Equal(now)).To(BeTrue())
			Expect(rec.CheckOutTime).To(BeNil())
		})

		It("refuses a second check-in on the same day", func() {
			_, err := svc.CheckIn(ctx, 7)
			Expect(err).NotTo(HaveOccurred())

			_, err = svc.CheckIn(ctx, 7)
			Expect(err).To(Equal(attendance.ErrAlreadyCheckedIn))
		})

		It("allows a new check-in the next day", func() {
			_, err := svc.CheckIn(ctx, 7)
			Expect(err).NotTo(HaveOccurred())

			now = now.Add(24 * time.Hour)
			_, err = svc.CheckIn(ctx, 7)
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("CheckOut", func() {
		It("fails when the employee has not checked in", func() {
			_, err := svc.CheckOut(ctx, 7)
			Expect(err).To(Equal(attendance.ErrNotCheckedIn))
		})

		It("closes today's record once", func() {
			_, err := svc.CheckIn(ctx, 7)
			Expect(err).NotTo(HaveOccurred())

			now = now.Add(8 * time.Hour)
			rec, err := svc.CheckOut(ctx, 7)
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.CheckOutTime).NotTo(BeNil())
			Expect(rec.CheckOutTime.Equal(now)).To(BeTrue())

			_, err = svc.CheckOut(ctx, 7)
			Expect(err).To(Equal(attendance.ErrAlreadyCheckedOut))
		})

		It("never records a check-out before the check-in", func() {
			in, err := svc.CheckIn(ctx, 7)
			Expect(err).NotTo(HaveOccurred())

			now = now.Add(-time.Minute)
			rec, err := svc.CheckOut(ctx, 7)
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.CheckOutTime.Equal(in.CheckInTime)).To(BeTrue())
		})
	})

	Describe("TodayRecord", func() {
		It("returns nil before check-in", func() {
			rec, err := svc.TodayRecord(ctx, 7)
			Expect(err).NotTo(HaveOccurred())
			Expect(rec).To(BeNil())
		})

		It("returns the record after check-in", func() {
			_, _ = svc.CheckIn(ctx, 7)
			rec, err := svc.TodayRecord(ctx, 7)
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.EmployeeID).To(Equal(int64(7)))
		})
	})

	Describe("History", func() {
		It("caps the history at 30 records, newest first", func() {
			for i := 0; i < 35; i++ {
				_, err := svc.CheckIn(ctx, 7)
				Expect(err).NotTo(HaveOccurred())
				now = now.Add(24 * time.Hour)
			}

			records, err := svc.History(ctx, 7)
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(attendance.HistoryLimit))
			Expect(records[0].AttendanceDate.After(records[1].AttendanceDate)).To(BeTrue())
		})
	})

	Describe("Report and export filters", func() {
		It("passes a single day filter", func() {
			_, err := svc.Report(ctx, "2025-08-01")
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.filters[0].Date).NotTo(BeNil())
		})

		It("rejects a malformed date", func() {
			_, err := svc.Report(ctx, "01/08/2025")
			Expect(err).To(HaveOccurred())
		})

		It("applies the range only when both bounds are present", func() {
			_, err := svc.ExportRange(ctx, "2025-08-01", "")
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.filters[0].From).To(BeNil())

			_, err = svc.ExportRange(ctx, "2025-08-01", "2025-08-31")
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.filters[1].From).NotTo(BeNil())
			Expect(repo.filters[1].To).NotTo(BeNil())
		})

		It("rejects an inverted range", func() {
			_, err := svc.ExportRange(ctx, "2025-08-31", "2025-08-01")
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("startDate must not be after end date"))
		})
	})
})
