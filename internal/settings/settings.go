// Package settings holds the cross-cutting user preferences: the
// amount-masking toggle and the color theme.
//
// Views used to re-read these flags from storage every time they gained
// focus. Here they share one Service instead: every change is persisted
// and pushed to subscribers, so consumers stay current without polling.
package settings

import (
	"context"
	"sync"

	"github.com/MrJamesThe3rd/myfinance/internal/kvstore"
)

const (
	keyVisibility = "visibility"
	keyTheme      = "theme"
)

// Theme names a color scheme.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// Snapshot is the full preference state handed to subscribers.
type Snapshot struct {
	HideAmounts bool
	Theme       Theme
}

type Service struct {
	store kvstore.Store

	mu      sync.Mutex
	subs    map[int]func(Snapshot)
	nextSub int
}

func NewService(store kvstore.Store) *Service {
	return &Service{store: store, subs: make(map[int]func(Snapshot))}
}

// Load reads the current preferences; absent keys fall back to visible
// amounts and the light theme.
func (s *Service) Load(ctx context.Context) (Snapshot, error) {
	snap := Snapshot{Theme: ThemeLight}

	var hide bool
	if err := kvstore.GetJSON(ctx, s.store, keyVisibility, &hide); err != nil {
		return snap, err
	}

	snap.HideAmounts = hide

	raw, err := s.store.Get(ctx, keyTheme)
	if err == nil && Theme(raw) == ThemeDark {
		snap.Theme = ThemeDark
	}

	return snap, nil
}

// SetHideAmounts persists the masking flag and notifies subscribers.
func (s *Service) SetHideAmounts(ctx context.Context, hide bool) error {
	if err := kvstore.SetJSON(ctx, s.store, keyVisibility, hide); err != nil {
		return err
	}

	return s.notify(ctx)
}

// SetTheme persists the theme and notifies subscribers.
func (s *Service) SetTheme(ctx context.Context, theme Theme) error {
	if err := s.store.Set(ctx, keyTheme, string(theme)); err != nil {
		return err
	}

	return s.notify(ctx)
}

// Subscribe registers fn to run on every preference change. The returned
// cancel function removes the subscription.
func (s *Service) Subscribe(fn func(Snapshot)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		delete(s.subs, id)
	}
}

func (s *Service) notify(ctx context.Context) error {
	snap, err := s.Load(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	fns := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}

	return nil
}
