package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/medcollect/pickup-api/internal/core/domain"
	"github.com/medcollect/pickup-api/internal/core/ports"
)

type pickupFixture struct {
	pickups *stubPickupRepo
	drivers *stubDriverRepo
	clinics *stubClinicRepo
	users   *stubUserRepo
	svc     *PickupService
}

func newPickupFixture() *pickupFixture {
	f := &pickupFixture{
		pickups: newStubPickupRepo(),
		drivers: newStubDriverRepo(),
		clinics: newStubClinicRepo(),
		users:   newStubUserRepo(),
	}
	f.svc = NewPickupService(f.pickups, f.drivers, f.clinics, f.users, testLog)
	return f
}

func TestPickupService_Create(t *testing.T) {
	f := newPickupFixture()

	date := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	created, err := f.svc.Create(context.Background(), ports.CreatePickupInput{
		ClinicID: "clinic-1",
		DriverID: "driver-1",
		Date:     date,
		Note:     "front desk",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected an id")
	}
	if created.Done {
		t.Fatalf("new pickups start not done")
	}
	if !created.Date.Equal(date) {
		t.Fatalf("date mangled: %v", created.Date)
	}
}

func TestPickupService_Create_Validation(t *testing.T) {
	f := newPickupFixture()

	tests := []struct {
		name  string
		input ports.CreatePickupInput
	}{
		{"missing clinic", ports.CreatePickupInput{DriverID: "d", Date: time.Now()}},
		{"missing driver", ports.CreatePickupInput{ClinicID: "c", Date: time.Now()}},
		{"missing date", ports.CreatePickupInput{ClinicID: "c", DriverID: "d"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.svc.Create(context.Background(), tt.input); !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestPickupService_Get_ResolvesReferences(t *testing.T) {
	f := newPickupFixture()

	admin := f.users.add(&domain.User{Name: "Admin", Email: "admin@example.com", Administrator: true})
	owner := f.users.add(&domain.User{Name: "Joana", Email: "joana@example.com"})
	clinic := f.clinics.add(&domain.Clinic{Name: "Lab Central"})
	driver := f.drivers.add(&domain.Driver{UserID: owner.ID})
	pickup := f.pickups.add(&domain.Pickup{ClinicID: clinic.ID, DriverID: driver.ID, Date: time.Now()})

	view, err := f.svc.Get(context.Background(), admin, pickup.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if view.Clinic.Name != "Lab Central" {
		t.Fatalf("clinic name not resolved: %+v", view.Clinic)
	}
	if view.Driver.UserName != "Joana" {
		t.Fatalf("driver user name not resolved: %+v", view.Driver)
	}
}

func TestPickupService_Get_DanglingReferences(t *testing.T) {
	f := newPickupFixture()

	admin := f.users.add(&domain.User{Name: "Admin", Email: "admin@example.com", Administrator: true})
	pickup := f.pickups.add(&domain.Pickup{ClinicID: "gone-clinic", DriverID: "gone-driver", Date: time.Now()})

	// Dangling references leave names blank instead of failing the read.
	view, err := f.svc.Get(context.Background(), admin, pickup.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if view.Clinic.ID != "gone-clinic" || view.Clinic.Name != "" {
		t.Fatalf("unexpected clinic ref: %+v", view.Clinic)
	}
	if view.Driver.ID != "gone-driver" || view.Driver.UserName != "" {
		t.Fatalf("unexpected driver ref: %+v", view.Driver)
	}
}

func TestPickupService_Get_ForbiddenForOtherDriver(t *testing.T) {
	f := newPickupFixture()

	owner := f.users.add(&domain.User{Name: "Owner", Email: "owner@example.com"})
	other := f.users.add(&domain.User{Name: "Other", Email: "other@example.com"})
	ownDriver := f.drivers.add(&domain.Driver{UserID: owner.ID})
	pickup := f.pickups.add(&domain.Pickup{ClinicID: "c", DriverID: ownDriver.ID, Date: time.Now()})

	if _, err := f.svc.Get(context.Background(), owner, pickup.ID); err != nil {
		t.Fatalf("assigned driver must read its pickup: %v", err)
	}
	if _, err := f.svc.Get(context.Background(), other, pickup.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestPickupService_ListForDriver(t *testing.T) {
	f := newPickupFixture()

	owner := f.users.add(&domain.User{Name: "Owner", Email: "owner@example.com"})
	mine := f.drivers.add(&domain.Driver{UserID: owner.ID})
	othersUser := f.users.add(&domain.User{Name: "Other", Email: "other@example.com"})
	others := f.drivers.add(&domain.Driver{UserID: othersUser.ID})

	f.pickups.add(&domain.Pickup{ClinicID: "c", DriverID: mine.ID, Date: time.Now()})
	f.pickups.add(&domain.Pickup{ClinicID: "c", DriverID: mine.ID, Date: time.Now()})
	f.pickups.add(&domain.Pickup{ClinicID: "c", DriverID: others.ID, Date: time.Now()})

	views, err := f.svc.ListForDriver(context.Background(), owner)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 assignments, got %d", len(views))
	}
	for _, v := range views {
		if v.Driver.ID != mine.ID {
			t.Fatalf("foreign pickup leaked: %+v", v)
		}
	}
}

func TestPickupService_ListForDriver_NoDriverRecord(t *testing.T) {
	f := newPickupFixture()

	user := f.users.add(&domain.User{Name: "No Record", Email: "nr@example.com"})
	f.pickups.add(&domain.Pickup{ClinicID: "c", DriverID: "driver-x", Date: time.Now()})

	views, err := f.svc.ListForDriver(context.Background(), user)
	if err != nil {
		t.Fatalf("expected empty result, got error: %v", err)
	}
	if len(views) != 0 {
		t.Fatalf("user without driver record must see nothing, got %d", len(views))
	}
}

func TestPickupService_Update_Policy(t *testing.T) {
	f := newPickupFixture()

	pickup := f.pickups.add(&domain.Pickup{ClinicID: "c1", DriverID: "d1", Date: time.Now()})

	// Driver closes out the job.
	updated, err := f.svc.Update(context.Background(), domain.RoleDriver, pickup.ID, ports.Patch{
		"done": json.RawMessage(`true`),
		"note": json.RawMessage(`"left at reception"`),
	})
	if err != nil {
		t.Fatalf("driver update failed: %v", err)
	}
	if !updated.Done || updated.Note != "left at reception" {
		t.Fatalf("update not applied: %+v", updated)
	}

	// Driver cannot reassign.
	if _, err := f.svc.Update(context.Background(), domain.RoleDriver, pickup.ID, ports.Patch{
		"driver": json.RawMessage(`"d2"`),
	}); !errors.Is(err, domain.ErrUpdateNotPermitted) {
		t.Fatalf("expected ErrUpdateNotPermitted, got %v", err)
	}

	// Admin can.
	updated, err = f.svc.Update(context.Background(), domain.RoleAdmin, pickup.ID, ports.Patch{
		"driver": json.RawMessage(`"d2"`),
	})
	if err != nil {
		t.Fatalf("admin update failed: %v", err)
	}
	if updated.DriverID != "d2" {
		t.Fatalf("reassignment not applied: %+v", updated)
	}
}

func TestPickupService_Delete(t *testing.T) {
	f := newPickupFixture()

	pickup := f.pickups.add(&domain.Pickup{ClinicID: "c", DriverID: "d", Date: time.Now()})

	deleted, err := f.svc.Delete(context.Background(), pickup.ID)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if deleted.ID != pickup.ID {
		t.Fatalf("expected the deleted pickup back, got %+v", deleted)
	}
	if _, err := f.svc.Delete(context.Background(), pickup.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestPickupService_DeleteMany(t *testing.T) {
	f := newPickupFixture()

	a := f.pickups.add(&domain.Pickup{ClinicID: "c", DriverID: "d", Date: time.Now()})
	b := f.pickups.add(&domain.Pickup{ClinicID: "c", DriverID: "d", Date: time.Now()})

	count, err := f.svc.DeleteMany(context.Background(), []string{a.ID, b.ID, "missing"})
	if err != nil {
		t.Fatalf("delete many failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2, got %d", count)
	}
}
