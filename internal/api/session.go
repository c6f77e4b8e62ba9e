package api

import (
	"errors"
	"log/slog"

	"rinna/internal/config"
	"rinna/internal/engine"
	"rinna/internal/logging"
	"rinna/internal/notifications"
	"rinna/internal/store"
)

// session bundles the store, notification log, and engine for one operation.
// Every exported function opens a session, performs its work, and closes.
type session struct {
	cfg    *config.Config
	store  *store.Store
	notifs *notifications.Store
	engine *engine.Engine
}

func openSession(cfg *config.Config, logger *slog.Logger) (*session, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	st, err := store.Open(cfg)
	if err != nil {
		return nil, err
	}
	notifStore, err := notifications.NewStore(cfg)
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	svc := notifications.NewService(cfg, notifStore, logger)
	return &session{
		cfg:    cfg,
		store:  st,
		notifs: notifStore,
		engine: engine.New(cfg, st, logger, svc),
	}, nil
}

func (s *session) Close() error {
	return s.store.Close()
}

// openNotifications opens just the per-user notification logs for read-side
// operations that never touch the work-item database.
func openNotifications(cfg *config.Config) (*notifications.Store, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	return notifications.NewStore(cfg)
}
