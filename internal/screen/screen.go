// Package screen implements the profile screen controller: it mirrors the
// stored profile in an editable working copy, re-encodes the card on every
// edit and commits the working copy to the store on demand.
package screen

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	applog "github.com/janisto/contact-card/internal/platform/logging"
	"github.com/janisto/contact-card/internal/service/card"
	"github.com/janisto/contact-card/internal/service/profile"
	"github.com/janisto/contact-card/internal/service/qr"
)

// Controller errors
var (
	ErrUnknownField   = errors.New("unknown field")
	ErrSaveInProgress = errors.New("save already in progress")
	ErrSaveFailed     = errors.New("save failed")
)

// State is the controller lifecycle state.
type State int

const (
	StateUninitialized State = iota
	StateLoaded
	StateEditing
	StateSaving
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLoaded:
		return "loaded"
	case StateEditing:
		return "editing"
	case StateSaving:
		return "saving"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Notifier receives every save acknowledgment.
type Notifier interface {
	Notify(ctx context.Context, ack Ack)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, ack Ack)

// Notify calls f.
func (f NotifierFunc) Notify(ctx context.Context, ack Ack) { f(ctx, ack) }

// View is a consistent snapshot of the screen.
type View struct {
	State     State
	Focus     Field
	Working   profile.Profile
	Committed profile.Profile
	// Stored is false until a record was loaded or saved.
	Stored  bool
	Dirty   bool
	Payload string
	SavedAt time.Time
}

// Option customises a Screen.
type Option func(*Screen)

// WithNotifier delivers acknowledgments to n.
func WithNotifier(n Notifier) Option {
	return func(s *Screen) { s.notifier = n }
}

// WithMessages replaces the acknowledgment texts.
func WithMessages(m Messages) Option {
	return func(s *Screen) { s.messages = m }
}

// WithForm replaces the form layout.
func WithForm(f Form) Option {
	return func(s *Screen) { s.form = f }
}

// WithClock overrides time.Now for SavedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Screen) { s.now = now }
}

// Screen is safe for concurrent use. Store calls run outside the lock;
// every state transition happens under it.
type Screen struct {
	store    profile.Store
	renderer *qr.Renderer
	notifier Notifier
	messages Messages
	form     Form
	now      func() time.Time

	mountOnce sync.Once
	loaded    chan struct{}

	mu        sync.Mutex
	state     State
	focus     Field
	working   profile.Profile
	committed profile.Profile
	stored    bool
	loadDone  bool
	commits   int
	savedAt   time.Time
}

// New creates an unmounted screen.
func New(store profile.Store, renderer *qr.Renderer, opts ...Option) *Screen {
	s := &Screen{
		store:    store,
		renderer: renderer,
		messages: DefaultMessages(),
		form:     DefaultForm(),
		now:      time.Now,
		loaded:   make(chan struct{}),
		state:    StateUninitialized,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Mount starts loading the stored profile in the background and returns a
// channel closed once loading resolved. Later calls return the same channel.
func (s *Screen) Mount(ctx context.Context) <-chan struct{} {
	s.mountOnce.Do(func() {
		go s.load(applog.WithComponent(context.WithoutCancel(ctx), "screen"))
	})
	return s.loaded
}

// Ready is closed once the initial load resolved.
func (s *Screen) Ready() <-chan struct{} {
	return s.loaded
}

func (s *Screen) load(ctx context.Context) {
	defer close(s.loaded)

	p, found, err := s.store.Load(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadDone = true

	switch {
	case s.commits > 0:
		// A save finished first; the loaded record is older than what was committed.
		applog.LogInfo(ctx, "profile load superseded by save")
	case err != nil:
		// The working copy keeps its empty defaults (or any edits made meanwhile).
		applog.LogWarn(ctx, "profile load failed, using empty fields", zap.Error(err))
	case s.state == StateSaving:
		// Working holds what the pending save is writing. The record only
		// updates the committed side; Save settles the state.
		if found {
			s.committed = p
			s.stored = true
		}
		applog.LogInfo(ctx, "profile loaded during save, keeping working values")
	case found:
		s.working = p
		s.committed = p
		s.stored = true
		applog.LogInfo(ctx, "profile loaded")
	default:
		applog.LogInfo(ctx, "no stored profile, starting empty")
	}
	if s.state != StateSaving {
		s.state = s.settledLocked()
	}
}

// Edit replaces one working field and focuses it. The other fields are untouched.
func (s *Screen) Edit(field Field, value string) error {
	if _, err := ParseField(string(field)); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	field.set(&s.working, value)
	s.focus = field
	if s.state == StateLoaded {
		s.state = StateEditing
	}
	return nil
}

// Focus marks field as the active input.
func (s *Screen) Focus(field Field) error {
	if _, err := ParseField(string(field)); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.focus = field
	return nil
}

// Blur dismisses the active input.
func (s *Screen) Blur() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.focus = ""
}

// Save commits the working copy. The working copy is never modified by
// Save, whatever the outcome; a failed save may be retried by calling Save
// again.
func (s *Screen) Save(ctx context.Context) (Ack, error) {
	s.mu.Lock()
	if s.state == StateSaving {
		s.mu.Unlock()
		return Ack{}, ErrSaveInProgress
	}
	s.focus = ""
	s.state = StateSaving
	attempt := s.working
	s.mu.Unlock()

	// A save runs to completion even if the caller goes away.
	err := s.store.Save(context.WithoutCancel(ctx), attempt)

	s.mu.Lock()
	var ack Ack
	if err != nil {
		ack = s.messages.Failure
		err = fmt.Errorf("%w: %w", ErrSaveFailed, err)
	} else {
		ack = s.messages.Success
		s.committed = attempt
		s.stored = true
		s.commits++
		s.savedAt = s.now()
	}
	s.state = s.settledLocked()
	s.mu.Unlock()

	if err != nil {
		applog.LogError(ctx, "profile save failed", err)
	} else {
		applog.LogInfo(ctx, "profile saved")
	}
	if s.notifier != nil {
		s.notifier.Notify(ctx, ack)
	}
	return ack, err
}

// settledLocked picks the resting state once no save is running.
func (s *Screen) settledLocked() State {
	switch {
	case !s.loadDone:
		return StateUninitialized
	case s.working != s.committed:
		return StateEditing
	default:
		return StateLoaded
	}
}

// Snapshot returns the current view, including the live payload.
func (s *Screen) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return View{
		State:     s.state,
		Focus:     s.focus,
		Working:   s.working,
		Committed: s.committed,
		Stored:    s.stored,
		Dirty:     s.working != s.committed,
		Payload:   card.Encode(s.working),
		SavedAt:   s.savedAt,
	}
}

// Value returns the working value of one field.
func (s *Screen) Value(field Field) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return field.get(s.working)
}

// Payload encodes the working copy, saved or not.
func (s *Screen) Payload() string {
	s.mu.Lock()
	working := s.working
	s.mu.Unlock()
	return card.Encode(working)
}

// QRPNG renders the live payload; size 0 uses the renderer default.
func (s *Screen) QRPNG(size int) ([]byte, error) {
	if size == 0 {
		size = s.renderer.Size()
	}
	return s.renderer.PNGSize(s.Payload(), size)
}

// QRText renders the live payload for terminals.
func (s *Screen) QRText() (string, error) {
	return s.renderer.Text(s.Payload())
}

// Form returns the layout the screen was built with.
func (s *Screen) Form() Form {
	return s.form
}
