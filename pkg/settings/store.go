package settings

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/dmitrymomot/freshwatch/pkg/kvstore"
	"github.com/dmitrymomot/freshwatch/pkg/logger"
)

// StorageKey is the fixed key the settings document lives under.
const StorageKey = "notification_settings"

// Store holds the in-process settings state, hydrated from a kvstore at
// startup and persisted on every update. In-memory state is authoritative
// for the session; persistence is best effort.
type Store struct {
	kv      kvstore.Store
	logger  *slog.Logger
	mu      sync.RWMutex
	current Settings
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the logger for the Store.
func WithLogger(l *slog.Logger) StoreOption {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewStore creates a settings store over kv, starting from defaults until
// Load is called.
func NewStore(kv kvstore.Store, opts ...StoreOption) *Store {
	s := &Store{
		kv:      kv,
		logger:  slog.Default(),
		current: Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load hydrates settings from the kvstore. Malformed documents are handled
// section by section: any section that fails to decode keeps its default,
// so a corrupt blob can never take the engine down. A missing key leaves
// the defaults untouched. Load never returns a configuration error.
func (s *Store) Load(ctx context.Context) error {
	raw, err := s.kv.Get(ctx, StorageKey)
	if err != nil {
		if !errors.Is(err, kvstore.ErrKeyNotFound) {
			s.logger.LogAttrs(ctx, slog.LevelWarn, "failed to read persisted settings, using defaults",
				logger.Error(err),
			)
		}
		return nil
	}

	loaded := decodeTolerant(ctx, raw, s.logger)

	s.mu.Lock()
	s.current = loaded
	s.mu.Unlock()
	return nil
}

// decodeTolerant decodes raw over defaults, dropping only the sections
// that fail to parse.
func decodeTolerant(ctx context.Context, raw []byte, log *slog.Logger) Settings {
	out := Default()

	var sections map[string]json.RawMessage
	if err := json.Unmarshal(raw, &sections); err != nil {
		log.LogAttrs(ctx, slog.LevelWarn, "persisted settings are not valid JSON, using defaults",
			logger.Error(err),
		)
		return out
	}

	decode := func(name string, target any) {
		sec, ok := sections[name]
		if !ok {
			return
		}
		if err := json.Unmarshal(sec, target); err != nil {
			log.LogAttrs(ctx, slog.LevelWarn, "ignoring malformed settings section",
				slog.String("section", name),
				logger.Error(err),
			)
		}
	}

	decode("enabled", &out.Enabled)
	decode("enabled_types", &out.EnabledTypes)
	decode("timing", &out.Timing)
	decode("sound", &out.Sound)
	decode("visual", &out.Visual)
	decode("batching", &out.Batching)
	decode("dnd", &out.DND)
	decode("messages", &out.Messages)

	return out
}

// Current returns a snapshot of the active settings. The snapshot is a
// deep copy; mutating it never affects the live configuration.
func (s *Store) Current() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.clone()
}

// Update applies fn to a deep copy of the current settings, installs the
// result wholesale as the new active configuration, and persists it.
// Persistence failures are logged; the in-memory update always wins.
func (s *Store) Update(ctx context.Context, fn func(*Settings)) Settings {
	s.mu.Lock()
	next := s.current.clone()
	fn(&next)
	s.current = next
	s.mu.Unlock()

	s.persist(ctx, next)
	return next.clone()
}

func (s *Store) persist(ctx context.Context, value Settings) {
	raw, err := json.Marshal(value)
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelError, "failed to encode settings",
			logger.Error(err),
		)
		return
	}
	if err := s.kv.Set(ctx, StorageKey, raw); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "failed to persist settings, in-memory state remains active",
			logger.Error(err),
		)
	}
}
