package profile

import (
	"context"
	"errors"
	"testing"
)

func adaProfile() Profile {
	return Profile{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Company:   "",
		Phone:     "+15551234567",
		Email:     "ada@example.com",
	}
}

// testStoreContract runs the behaviour every backend must share against a fresh store.
func testStoreContract(t *testing.T, newStore func(t *testing.T) Store) {
	t.Helper()

	t.Run("first run is absent", func(t *testing.T) {
		store := newStore(t)
		p, found, err := store.Load(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if found {
			t.Fatalf("expected no record, got %+v", p)
		}
		if p != (Profile{}) {
			t.Fatalf("expected zero profile, got %+v", p)
		}
	})

	t.Run("round trip", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		want := adaProfile()

		if err := store.Save(ctx, want); err != nil {
			t.Fatalf("save: %v", err)
		}
		got, found, err := store.Load(ctx)
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if !found {
			t.Fatal("expected record to be found")
		}
		if got != want {
			t.Fatalf("expected %+v, got %+v", want, got)
		}
	})

	t.Run("save overwrites", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		first := Profile{FirstName: "Grace", LastName: "Hopper", Company: "US Navy", Phone: "1", Email: "g@example.com"}
		if err := store.Save(ctx, first); err != nil {
			t.Fatalf("first save: %v", err)
		}
		second := Profile{FirstName: "Ada"}
		if err := store.Save(ctx, second); err != nil {
			t.Fatalf("second save: %v", err)
		}

		got, _, err := store.Load(ctx)
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if got != second {
			t.Fatalf("expected full overwrite to %+v, got %+v", second, got)
		}
	})

	t.Run("special characters survive", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		want := Profile{FirstName: "Zoë", LastName: "O'Neil; Jr.", Company: "A:B\nC", Phone: "+1 (555) 000", Email: "z@ex.com"}

		if err := store.Save(ctx, want); err != nil {
			t.Fatalf("save: %v", err)
		}
		got, _, err := store.Load(ctx)
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if got != want {
			t.Fatalf("expected %+v, got %+v", want, got)
		}
	})
}

func TestStoreErrorMatchesSentinelAndCause(t *testing.T) {
	cause := errors.New("disk full")
	err := storeError("save", cause)

	if !errors.Is(err, ErrStore) {
		t.Fatal("expected ErrStore")
	}
	if !errors.Is(err, cause) {
		t.Fatal("expected cause to be preserved")
	}
	if err.Error() != "profile save: disk full" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestCategorizeError(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{context.Canceled, "canceled"},
		{context.DeadlineExceeded, "deadline_exceeded"},
		{errCorrupt, "corrupt_record"},
		{errors.New("boom"), "internal_error"},
	}
	for _, tt := range tests {
		if got := categorizeError(tt.err); got != tt.want {
			t.Errorf("categorizeError(%v) = %s, want %s", tt.err, got, tt.want)
		}
	}
}

func TestDecodeRecordDefaultsMissingFields(t *testing.T) {
	p, err := decodeRecord([]byte(`{"firstName":"Ada","lastName":"Lovelace","phone":"+15551234567","email":"ada@example.com"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Company != "" {
		t.Fatalf("expected empty company, got %q", p.Company)
	}
	if p.FirstName != "Ada" || p.Email != "ada@example.com" {
		t.Fatalf("unexpected profile %+v", p)
	}

	p, err = decodeRecord([]byte(`{"firstName":null}`))
	if err != nil {
		t.Fatalf("unexpected error for null field: %v", err)
	}
	if p != (Profile{}) {
		t.Fatalf("expected empty profile, got %+v", p)
	}
}

func TestDecodeRecordCorrupt(t *testing.T) {
	_, err := decodeRecord([]byte(`{"firstName":`))
	if !errors.Is(err, errCorrupt) {
		t.Fatalf("expected errCorrupt, got %v", err)
	}
}

func TestEncodeRecordLayout(t *testing.T) {
	data, err := encodeRecord(adaProfile())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := `{"firstName":"Ada","lastName":"Lovelace","company":"","phone":"+15551234567","email":"ada@example.com"}`
	if string(data) != want {
		t.Fatalf("expected %s, got %s", want, data)
	}
}
