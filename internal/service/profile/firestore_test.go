package profile

import (
	"context"
	"testing"

	"cloud.google.com/go/firestore"

	"github.com/janisto/contact-card/internal/testutil"
)

func setupFirestoreTest(t *testing.T) *firestore.Client {
	t.Helper()

	testutil.SkipIfFirestoreUnavailable(t)
	testutil.SetupEmulator(t)
	testutil.ClearFirestore(t)

	client, err := firestore.NewClient(context.Background(), testutil.ProjectID)
	if err != nil {
		t.Fatalf("failed to create Firestore client: %v", err)
	}
	t.Cleanup(func() {
		testutil.ClearFirestore(t)
		_ = client.Close()
	})
	return client
}

func TestFirestoreStoreContract(t *testing.T) {
	testStoreContract(t, func(t *testing.T) Store {
		return NewFirestoreStore(setupFirestoreTest(t), "profiles", "userProfile")
	})
}

func TestFirestoreStoreDocumentLayout(t *testing.T) {
	client := setupFirestoreTest(t)
	ctx := context.Background()
	store := NewFirestoreStore(client, "profiles", "userProfile")

	if err := store.Save(ctx, adaProfile()); err != nil {
		t.Fatalf("save: %v", err)
	}

	snap, err := client.Collection("profiles").Doc("userProfile").Get(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	data := snap.Data()
	for key, want := range map[string]string{
		"firstName": "Ada",
		"lastName":  "Lovelace",
		"company":   "",
		"phone":     "+15551234567",
		"email":     "ada@example.com",
	} {
		if data[key] != want {
			t.Errorf("expected %s=%q, got %v", key, want, data[key])
		}
	}
}

func TestFirestoreStoreLoadsDocumentWithoutCompany(t *testing.T) {
	client := setupFirestoreTest(t)
	ctx := context.Background()

	_, err := client.Collection("profiles").Doc("userProfile").Set(ctx, map[string]any{
		"firstName": "Ada",
		"lastName":  "Lovelace",
		"phone":     "+15551234567",
		"email":     "ada@example.com",
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	p, found, err := NewFirestoreStore(client, "profiles", "userProfile").Load(ctx)
	if err != nil || !found {
		t.Fatalf("expected record, found=%v err=%v", found, err)
	}
	if p.Company != "" || p.LastName != "Lovelace" {
		t.Fatalf("unexpected profile %+v", p)
	}
}
