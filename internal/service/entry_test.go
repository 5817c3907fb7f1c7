package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/templui/screentime/internal/model"
	"github.com/templui/screentime/internal/service"
	"github.com/templui/screentime/internal/store"
	"github.com/templui/screentime/internal/validation"
)

func newEntry(date, app string, minutes int) model.TimeEntry {
	return model.TimeEntry{
		Date:     date,
		Device:   model.DevicePhone,
		App:      app,
		Category: model.CategorySocial,
		Duration: minutes,
	}
}

func TestEntryServiceCreateValidates(t *testing.T) {
	svc := service.NewEntryService(newTestStore(t))

	_, err := svc.Create(context.Background(), model.TimeEntry{Duration: -5})
	var fe validation.FieldErrors
	if !errors.As(err, &fe) {
		t.Fatalf("err = %v, want FieldErrors", err)
	}
	for _, field := range []string{"date", "device", "app", "category", "duration"} {
		if _, ok := fe[field]; !ok {
			t.Errorf("missing field error for %q", field)
		}
	}
}

func TestEntryServiceCreateTrimsApp(t *testing.T) {
	svc := service.NewEntryService(newTestStore(t))

	created, err := svc.Create(context.Background(), newEntry("2026-10-17", "  Slack  ", 10))
	if err != nil {
		t.Fatal(err)
	}
	if created.App != "Slack" {
		t.Errorf("App = %q, want Slack", created.App)
	}
}

func TestEntryServiceListOrdersByDateThenApp(t *testing.T) {
	ctx := context.Background()
	svc := service.NewEntryService(newTestStore(t))

	for _, e := range []model.TimeEntry{
		newEntry("2026-10-15", "Zoom", 5),
		newEntry("2026-10-17", "YouTube", 5),
		newEntry("2026-10-17", "Instagram", 5),
	} {
		if _, err := svc.Create(ctx, e); err != nil {
			t.Fatal(err)
		}
	}

	all := svc.List("")
	got := []string{all[0].App, all[1].App, all[2].App}
	want := []string{"Instagram", "YouTube", "Zoom"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}

	if n := len(svc.List("2026-10-15")); n != 1 {
		t.Errorf("List(2026-10-15) returned %d, want 1", n)
	}
}

func TestEntryServiceUpdate(t *testing.T) {
	ctx := context.Background()
	svc := service.NewEntryService(newTestStore(t))

	created, err := svc.Create(ctx, newEntry("2026-10-17", "Reddit", 10))
	if err != nil {
		t.Fatal(err)
	}

	changed := created
	changed.ID = "ignored"
	changed.Duration = 25
	updated, err := svc.Update(ctx, created.ID, changed)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.ID != created.ID || updated.Duration != 25 {
		t.Errorf("updated = %+v", updated)
	}

	_, err = svc.Update(ctx, "missing", changed)
	if !errors.Is(err, store.ErrEntryNotFound) {
		t.Errorf("Update missing: err = %v, want ErrEntryNotFound", err)
	}

	bad := changed
	bad.Category = "nope"
	_, err = svc.Update(ctx, created.ID, bad)
	var fe validation.FieldErrors
	if !errors.As(err, &fe) {
		t.Errorf("Update invalid: err = %v, want FieldErrors", err)
	}
}

func TestEntryServiceDeleteAndRestore(t *testing.T) {
	ctx := context.Background()
	svc := service.NewEntryService(newTestStore(t))

	created, err := svc.Create(ctx, newEntry("2026-10-17", "TikTok", 35))
	if err != nil {
		t.Fatal(err)
	}

	deleted, err := svc.Delete(ctx, created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(svc.List("")) != 0 {
		t.Fatal("entry still listed after delete")
	}

	restored, err := svc.Restore(ctx, deleted)
	if err != nil {
		t.Fatal(err)
	}
	if restored.ID == created.ID {
		t.Error("restore reused the deleted ID")
	}
	if !restored.SameFields(created) {
		t.Errorf("restored = %+v, want fields of %+v", restored, created)
	}
}
