package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/plogging-ethiopia/volunteer-ledger/internal/model"
)

// fakeEventRepo serves a single event and a single attendance row from memory.
type fakeEventRepo struct {
	event      *model.Event
	attendance *model.Attendance
	updated    *model.Attendance
}

func (f *fakeEventRepo) FindAll(ctx context.Context, filter model.EventFilter) ([]*model.Event, int64, error) {
	return []*model.Event{f.event}, 1, nil
}

func (f *fakeEventRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Event, error) {
	if f.event != nil && f.event.ID == id {
		return f.event, nil
	}
	return nil, nil
}

func (f *fakeEventRepo) Create(ctx context.Context, e *model.Event) error { return nil }
func (f *fakeEventRepo) Update(ctx context.Context, e *model.Event) error { return nil }
func (f *fakeEventRepo) Delete(ctx context.Context, id uuid.UUID) error   { return nil }

func (f *fakeEventRepo) FindAttendance(ctx context.Context, eventID, volunteerID uuid.UUID) (*model.Attendance, error) {
	if f.attendance != nil && f.attendance.EventID == eventID && f.attendance.VolunteerID == volunteerID {
		return f.attendance, nil
	}
	return nil, nil
}

func (f *fakeEventRepo) ListAttendance(ctx context.Context, eventID uuid.UUID, status string) ([]*model.Attendance, error) {
	return nil, nil
}

func (f *fakeEventRepo) CountEnrolled(ctx context.Context, eventID uuid.UUID) (int, error) {
	return 0, nil
}

func (f *fakeEventRepo) CreateAttendance(ctx context.Context, a *model.Attendance) error { return nil }

func (f *fakeEventRepo) UpdateAttendance(ctx context.Context, a *model.Attendance) error {
	f.updated = a
	return nil
}

func checkOutFixture(status string, checkedInAt *time.Time) (*fakeEventRepo, string, string) {
	eventID := uuid.New()
	volunteerID := uuid.New()
	repo := &fakeEventRepo{
		event: &model.Event{ID: eventID, Name: "Entoto Park Cleanup", Status: "ongoing"},
		attendance: &model.Attendance{
			ID:          uuid.New(),
			EventID:     eventID,
			VolunteerID: volunteerID,
			Status:      status,
			CheckedInAt: checkedInAt,
		},
	}
	return repo, eventID.String(), volunteerID.String()
}

func TestCheckOut_ComputesQuarterHours(t *testing.T) {
	checkedIn := time.Now().Add(-2 * time.Hour)
	repo, eventID, volunteerID := checkOutFixture(model.AttendanceCheckedIn, &checkedIn)
	svc := NewEventService(repo, nil)

	attendance, err := svc.CheckOut(context.Background(), eventID, volunteerID, 3.2)
	if err != nil {
		t.Fatalf("CheckOut: %v", err)
	}
	if attendance.Status != model.AttendanceCheckedOut {
		t.Fatalf("status = %q, want %q", attendance.Status, model.AttendanceCheckedOut)
	}
	if attendance.Hours != 2 {
		t.Fatalf("hours = %v, want 2", attendance.Hours)
	}
	if attendance.DistanceKM != 3.2 {
		t.Fatalf("distance = %v, want 3.2", attendance.DistanceKM)
	}
	if repo.updated == nil {
		t.Fatal("attendance was not persisted")
	}
}

func TestCheckOut_NotCheckedIn(t *testing.T) {
	repo, eventID, volunteerID := checkOutFixture(model.AttendanceEnrolled, nil)
	svc := NewEventService(repo, nil)

	if _, err := svc.CheckOut(context.Background(), eventID, volunteerID, 0); !errors.Is(err, ErrNotCheckedIn) {
		t.Fatalf("CheckOut on enrolled attendance = %v, want ErrNotCheckedIn", err)
	}
}

// A row whose status says checked_in but whose check-in time is missing (e.g.
// hand-edited data) must fail cleanly instead of panicking.
func TestCheckOut_MissingCheckInTime(t *testing.T) {
	repo, eventID, volunteerID := checkOutFixture(model.AttendanceCheckedIn, nil)
	svc := NewEventService(repo, nil)

	if _, err := svc.CheckOut(context.Background(), eventID, volunteerID, 0); !errors.Is(err, ErrNotCheckedIn) {
		t.Fatalf("CheckOut without check-in time = %v, want ErrNotCheckedIn", err)
	}
}

func TestCheckOut_AlreadyCheckedOut(t *testing.T) {
	checkedIn := time.Now().Add(-time.Hour)
	repo, eventID, volunteerID := checkOutFixture(model.AttendanceCheckedOut, &checkedIn)
	svc := NewEventService(repo, nil)

	if _, err := svc.CheckOut(context.Background(), eventID, volunteerID, 0); !errors.Is(err, ErrAlreadyCheckedOut) {
		t.Fatalf("double CheckOut = %v, want ErrAlreadyCheckedOut", err)
	}
}
