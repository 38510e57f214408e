package store

import (
	"strconv"
	"testing"
	"time"

	"mobilia/internal/models"
)

// makeAppointment inserts an appointment with a unique display id and
// registers cleanup.
func makeAppointment(t *testing.T, s *AppointmentStore, name string) *models.Appointment {
	t.Helper()
	displayID := strconv.FormatInt(time.Now().UnixNano(), 10)
	t.Cleanup(func() { cleanAppointment(t, s.db, displayID) })

	created, err := s.Create(&models.Appointment{
		AppointmentID:   displayID,
		ClientName:      name,
		ClientEmail:     "client@example.com",
		Phone:           "+40 700 000 000",
		AppointmentDate: time.Now().Add(48 * time.Hour).Truncate(time.Second),
		Status:          models.AppointmentStatusPending,
		PreferredTime:   models.ContactTimeMorning,
		Address:         "1 Showroom Way",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return created
}

func TestAppointmentStoreCreateAndFind(t *testing.T) {
	db := testDB(t)
	s := NewAppointmentStore(db)

	created := makeAppointment(t, s, "Ana Popescu")
	if created.ID == 0 {
		t.Error("expected non-zero id")
	}
	if created.Status != models.AppointmentStatusPending {
		t.Errorf("status: got %q, want pending", created.Status)
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}

	found, err := s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found == nil {
		t.Fatal("expected appointment, got nil")
	}
	if found.ClientName != "Ana Popescu" {
		t.Errorf("client_name: got %q", found.ClientName)
	}
}

func TestAppointmentStoreUpdateStatus(t *testing.T) {
	db := testDB(t)
	s := NewAppointmentStore(db)

	created := makeAppointment(t, s, "Bogdan Ionescu")
	if err := s.UpdateStatus(created.ID, models.AppointmentStatusCompleted); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	found, err := s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found.Status != models.AppointmentStatusCompleted {
		t.Errorf("status: got %q, want completed", found.Status)
	}
}

func TestAppointmentStoreUpdate(t *testing.T) {
	db := testDB(t)
	s := NewAppointmentStore(db)

	created := makeAppointment(t, s, "Carmen Dumitru")
	notes := "prefers weekend visits"
	created.Notes = &notes
	created.PreferredTime = models.ContactTimeEvening

	if err := s.Update(created); err != nil {
		t.Fatalf("Update: %v", err)
	}

	found, err := s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found.Notes == nil || *found.Notes != notes {
		t.Errorf("notes: got %v", found.Notes)
	}
	if found.PreferredTime != models.ContactTimeEvening {
		t.Errorf("preferred time: got %q", found.PreferredTime)
	}
}

func TestAppointmentStoreDelete(t *testing.T) {
	db := testDB(t)
	s := NewAppointmentStore(db)

	created := makeAppointment(t, s, "Short Lived")
	if err := s.Delete(created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	found, err := s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found != nil {
		t.Error("expected appointment to be gone")
	}
}

func TestAppointmentStoreListByCreatedAsc(t *testing.T) {
	db := testDB(t)
	s := NewAppointmentStore(db)

	makeAppointment(t, s, "Earlier")
	makeAppointment(t, s, "Later")

	items, err := s.ListByCreatedAsc()
	if err != nil {
		t.Fatalf("ListByCreatedAsc: %v", err)
	}
	for i := 1; i < len(items); i++ {
		if items[i].CreatedAt.Before(items[i-1].CreatedAt) {
			t.Errorf("export order broken at position %d", i)
		}
	}
}
