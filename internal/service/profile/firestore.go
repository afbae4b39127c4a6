package profile

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	applog "github.com/janisto/contact-card/internal/platform/logging"
)

// firestoreProfile maps to the Firestore document structure. Field names
// match the JSON layout used by the other backends.
type firestoreProfile struct {
	FirstName string `firestore:"firstName"`
	LastName  string `firestore:"lastName"`
	Company   string `firestore:"company"`
	Phone     string `firestore:"phone"`
	Email     string `firestore:"email"`
}

// FirestoreStore keeps the record as the document <collection>/<key>.
type FirestoreStore struct {
	client     *firestore.Client
	collection string
	key        string
}

// NewFirestoreStore creates a new Firestore-backed store.
func NewFirestoreStore(client *firestore.Client, collection, key string) *FirestoreStore {
	return &FirestoreStore{client: client, collection: collection, key: key}
}

func (s *FirestoreStore) doc() *firestore.DocumentRef {
	return s.client.Collection(s.collection).Doc(s.key)
}

// Load reads the document.
func (s *FirestoreStore) Load(ctx context.Context) (Profile, bool, error) {
	snap, err := s.doc().Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			applog.LogStoreEvent(ctx, "load", "firestore", s.key, "absent", nil)
			return Profile{}, false, nil
		}
		return Profile{}, false, s.fail(ctx, "load", err)
	}

	var fp firestoreProfile
	if err := snap.DataTo(&fp); err != nil {
		return Profile{}, false, s.fail(ctx, "load", err)
	}
	applog.LogStoreEvent(ctx, "load", "firestore", s.key, "success", nil)
	return Profile(fp), true, nil
}

// Save replaces the whole document. Set without merge options drops any
// fields the new record does not carry.
func (s *FirestoreStore) Save(ctx context.Context, p Profile) error {
	if _, err := s.doc().Set(ctx, firestoreProfile(p)); err != nil {
		return s.fail(ctx, "save", err)
	}
	applog.LogStoreEvent(ctx, "save", "firestore", s.key, "success", nil)
	return nil
}

func (s *FirestoreStore) fail(ctx context.Context, action string, err error) error {
	applog.LogStoreEvent(ctx, action, "firestore", s.key, "failure",
		map[string]any{"error": categorizeError(err)})
	return storeError(action, err)
}

// Compile-time interface check
var _ Store = (*FirestoreStore)(nil)
