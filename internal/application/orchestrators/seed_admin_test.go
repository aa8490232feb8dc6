package orchestrators

import (
	"context"
	"testing"
)

func TestExecuteSeedAdmin(t *testing.T) {
	ctx := context.Background()
	store := newMockUserStore()
	deps := SeedAdminDeps{UserStore: store, GenerateID: sequentialIDs(), Now: fixedNow}

	created, err := ExecuteSeedAdmin(ctx, SeedAdminInput{}, deps)
	if err != nil || created {
		t.Fatalf("without credentials: created=%v err=%v, want no-op", created, err)
	}

	created, err = ExecuteSeedAdmin(ctx, SeedAdminInput{Email: "admin@x.com", Password: "secret"}, deps)
	if err != nil || !created {
		t.Fatalf("first seed: created=%v err=%v", created, err)
	}
	admin := store.users["id-1"]
	if !admin.IsAdmin || admin.Name != "Administrator" {
		t.Errorf("seeded admin = %+v", admin)
	}

	created, err = ExecuteSeedAdmin(ctx, SeedAdminInput{Email: "other@x.com", Password: "secret"}, deps)
	if err != nil || created {
		t.Errorf("second seed: created=%v err=%v, want skip", created, err)
	}
	if len(store.users) != 1 {
		t.Errorf("users = %d, want 1", len(store.users))
	}
}
