package guests_test

import (
	"context"
	"errors"
	"testing"
	"time"

	appguests "frontdesk/internal/app/guests"
	domainguest "frontdesk/internal/domain/guest"
	"frontdesk/internal/infra/storage/memory"
)

var clock = time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)

func newService(t *testing.T) *appguests.Service {
	t.Helper()
	service := appguests.NewService(memory.NewFactory(), nil)
	service.Clock = func() time.Time { return clock }
	return service
}

func create(t *testing.T, service *appguests.Service, email, idNumber string) *domainguest.Guest {
	t.Helper()
	g, err := service.Create(context.Background(), appguests.CreateParams{
		FirstName: "Maria",
		LastName:  "Silva",
		Email:     email,
		IDNumber:  idNumber,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return g
}

func TestCreateNormalizesEmail(t *testing.T) {
	service := newService(t)
	g := create(t, service, "  Maria@Example.COM ", "P123456")
	if g.Email != "maria@example.com" {
		t.Fatalf("Email = %q", g.Email)
	}
}

func TestCreateRejectsDuplicateEmail(t *testing.T) {
	service := newService(t)
	create(t, service, "maria@example.com", "P123456")
	_, err := service.Create(context.Background(), appguests.CreateParams{
		FirstName: "Other", LastName: "Person",
		Email: "maria@example.com", IDNumber: "P999999",
	})
	if !errors.Is(err, domainguest.ErrEmailTaken) {
		t.Fatalf("duplicate email: got %v", err)
	}
}

func TestCreateRejectsDuplicateIDNumber(t *testing.T) {
	service := newService(t)
	create(t, service, "maria@example.com", "P123456")
	_, err := service.Create(context.Background(), appguests.CreateParams{
		FirstName: "Other", LastName: "Person",
		Email: "other@example.com", IDNumber: "P123456",
	})
	if !errors.Is(err, domainguest.ErrIDNumberTaken) {
		t.Fatalf("duplicate id number: got %v", err)
	}
}

func TestUpdateRejectsTakenIDNumber(t *testing.T) {
	service := newService(t)
	create(t, service, "maria@example.com", "P123456")
	second := create(t, service, "joao@example.com", "P654321")

	taken := "P123456"
	if _, err := service.Update(context.Background(), second.ID, appguests.UpdateParams{
		IDNumber: &taken,
	}); !errors.Is(err, domainguest.ErrIDNumberTaken) {
		t.Fatalf("taken id number: got %v", err)
	}

	fresh := "P777777"
	updated, err := service.Update(context.Background(), second.ID, appguests.UpdateParams{
		IDNumber: &fresh,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.IDNumber != "P777777" {
		t.Fatalf("IDNumber = %q", updated.IDNumber)
	}
}

func TestUpdateRequiresName(t *testing.T) {
	service := newService(t)
	g := create(t, service, "maria@example.com", "P123456")

	blank := ""
	if _, err := service.Update(context.Background(), g.ID, appguests.UpdateParams{
		FirstName: &blank,
	}); !errors.Is(err, domainguest.ErrNameRequired) {
		t.Fatalf("blank name: got %v", err)
	}
}

func TestDeactivateMarksInactive(t *testing.T) {
	service := newService(t)
	g := create(t, service, "maria@example.com", "P123456")
	if err := service.Deactivate(context.Background(), g.ID); err != nil {
		t.Fatalf("Deactivate: %v", err)
	}
	loaded, err := service.Get(context.Background(), g.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if loaded.IsActive {
		t.Fatal("guest still active after deactivation")
	}
}
