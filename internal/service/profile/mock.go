package profile

import (
	"context"
	"sync"

	applog "github.com/janisto/contact-card/internal/platform/logging"
)

// MockStore implements Store in memory for tests. FailLoad and FailSave
// simulate storage faults; a failed Save leaves the stored record as it was.
type MockStore struct {
	mu        sync.Mutex
	profile   *Profile
	loadErr   error
	saveErr   error
	loads     int
	saves     int
	loadBlock chan struct{}
	saveBlock chan struct{}
}

// NewMockStore creates an empty store (first-run state).
func NewMockStore() *MockStore {
	return &MockStore{}
}

// NewMockStoreWith creates a store that already holds p.
func NewMockStoreWith(p Profile) *MockStore {
	return &MockStore{profile: &p}
}

// Load reads the record at call time. A held load delivers that read
// only after release, like a slow backend returning an older value.
func (m *MockStore) Load(ctx context.Context) (Profile, bool, error) {
	m.mu.Lock()
	m.loads++
	loadErr := m.loadErr
	var snapshot *Profile
	if m.profile != nil {
		p := *m.profile
		snapshot = &p
	}
	block := m.loadBlock
	m.mu.Unlock()

	if err := wait(ctx, block); err != nil {
		return Profile{}, false, storeError("load", err)
	}
	if loadErr != nil {
		applog.LogStoreEvent(ctx, "load", "memory", "mock", "failure", nil)
		return Profile{}, false, storeError("load", loadErr)
	}
	if snapshot == nil {
		applog.LogStoreEvent(ctx, "load", "memory", "mock", "absent", nil)
		return Profile{}, false, nil
	}
	applog.LogStoreEvent(ctx, "load", "memory", "mock", "success", nil)
	return *snapshot, true, nil
}

func (m *MockStore) Save(ctx context.Context, p Profile) error {
	m.mu.Lock()
	block := m.saveBlock
	m.mu.Unlock()
	if err := wait(ctx, block); err != nil {
		return storeError("save", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.saveErr != nil {
		applog.LogStoreEvent(ctx, "save", "memory", "mock", "failure", nil)
		return storeError("save", m.saveErr)
	}
	m.profile = &p
	applog.LogStoreEvent(ctx, "save", "memory", "mock", "success", nil)
	return nil
}

// FailLoad makes subsequent Loads fail with err (nil clears the fault).
func (m *MockStore) FailLoad(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadErr = err
}

// FailSave makes subsequent Saves fail with err (nil clears the fault).
func (m *MockStore) FailSave(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveErr = err
}

// BlockLoads holds every Load until the returned function is called.
func (m *MockStore) BlockLoads() (release func()) {
	return m.hold(&m.loadBlock)
}

// BlockSaves holds every Save until the returned function is called.
func (m *MockStore) BlockSaves() (release func()) {
	return m.hold(&m.saveBlock)
}

func (m *MockStore) hold(gate *chan struct{}) func() {
	ch := make(chan struct{})
	m.mu.Lock()
	*gate = ch
	m.mu.Unlock()
	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			*gate = nil
			m.mu.Unlock()
			close(ch)
		})
	}
}

func wait(ctx context.Context, gate <-chan struct{}) error {
	if gate == nil {
		return nil
	}
	select {
	case <-gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stored returns the persisted record, if any.
func (m *MockStore) Stored() (Profile, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.profile == nil {
		return Profile{}, false
	}
	return *m.profile, true
}

// Loads counts Load calls that reached the store.
func (m *MockStore) Loads() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loads
}

// Saves counts Save calls that reached the store.
func (m *MockStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// Compile-time interface check
var _ Store = (*MockStore)(nil)
