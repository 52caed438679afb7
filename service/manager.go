package service

import (
	"context"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/layer-3/keyring/core"
	"github.com/layer-3/keyring/ports"
)

// Manager is the single source of truth for the integration's
// authentication state. It mediates between the in-memory cache, the
// persistent store and the two flows that can mint a credential.
//
// Operations may be called concurrently; the Manager does not serialize
// them against each other. The cache and status feed are individually safe
// and every commit overwrites whole-state, so concurrent login/refresh/
// logout resolve as last-commit-wins.
type Manager struct {
	store   ports.CredentialStore
	login   ports.LoginFlow
	refresh ports.RefreshFlow
	events  ports.EventPublisher

	cache  *credentialCache
	feed   *StatusFeed
	logger watermill.LoggerAdapter

	hydrated chan struct{}
}

// NewManager wires the manager and kicks off a one-shot background
// hydration from the store. The constructor does not wait for hydration;
// a GetCredential call racing it simply performs its own store read.
func NewManager(
	store ports.CredentialStore,
	login ports.LoginFlow,
	refresh ports.RefreshFlow,
	events ports.EventPublisher,
	logger watermill.LoggerAdapter,
) *Manager {
	if logger == nil {
		logger = watermill.NopLogger{}
	}

	m := &Manager{
		store:    store,
		login:    login,
		refresh:  refresh,
		events:   events,
		cache:    newCredentialCache(),
		feed:     NewStatusFeed(),
		logger:   logger,
		hydrated: make(chan struct{}),
	}

	go m.hydrate(context.Background())

	return m
}

// hydrate loads the persisted credential at startup. The store is already
// the source of this data, so nothing is written back: persisting here
// would be redundant and could race a concurrent explicit login.
func (m *Manager) hydrate(ctx context.Context) {
	defer close(m.hydrated)

	credential, err := m.store.Get(ctx)
	if err != nil {
		m.logger.Error("failed to hydrate credential from store", err, nil)
		credential = nil
	}
	if credential == nil {
		m.commit(ctx, core.Credential{}, false)
		return
	}
	m.commit(ctx, *credential, false)
}

// Hydrated returns a channel that is closed once startup hydration has
// completed. Callers that want a settled view before their first read can
// wait on it; everyone else can race it safely.
func (m *Manager) Hydrated() <-chan struct{} {
	return m.hydrated
}

// Status returns the current authentication status.
func (m *Manager) Status() core.Status {
	return m.feed.Current()
}

// ObserveStatus subscribes to status changes. The returned channel yields
// the current status immediately, then every subsequent change until ctx
// is done.
func (m *Manager) ObserveStatus(ctx context.Context) <-chan core.Status {
	return m.feed.Subscribe(ctx)
}

// GetCredential returns the current credential, or nil if none exists.
// Cache-first: the store is only consulted on a cache miss, and the result
// is fed back into the cache. Read-only with respect to persisted state
// and the status feed.
func (m *Manager) GetCredential(ctx context.Context) *core.Credential {
	if credential := m.cache.read(); credential != nil {
		m.logger.Debug("credential cache hit", nil)
		return credential
	}

	credential, err := m.store.Get(ctx)
	if err != nil {
		m.logger.Error("failed to read credential from store", err, nil)
		return nil
	}
	if credential == nil {
		return nil
	}

	m.cache.write(*credential)
	return credential
}

// Login runs the login flow and commits its outcome. A failed or cancelled
// flow commits the empty credential, transitioning to logged out.
func (m *Manager) Login(ctx context.Context) *core.Credential {
	credential, err := m.login.Login(ctx)
	if err != nil {
		m.logger.Error("login flow failed", err, nil)
		credential = nil
	}

	if credential == nil {
		m.commit(ctx, core.Credential{}, true)
		return nil
	}

	m.commit(ctx, *credential, true)
	return credential
}

// RefreshTokens exchanges the current credential for a renewed one. When
// no credential exists at all, the refresh flow is not invoked and nothing
// is committed. A failed refresh commits the empty credential.
func (m *Manager) RefreshTokens(ctx context.Context) *core.Credential {
	current := m.GetCredential(ctx)
	if current == nil {
		m.logger.Debug("no credential to refresh", nil)
		return nil
	}

	renewed, err := m.refresh.Refresh(ctx, *current)
	if err != nil {
		m.logger.Error("token refresh failed", err, nil)
		renewed = nil
	}

	if renewed == nil {
		m.commit(ctx, core.Credential{}, true)
		return nil
	}

	m.commit(ctx, *renewed, true)
	return renewed
}

// Logout discards the credential and clears the store. The in-memory state
// reflects the logout even if clearing the store fails.
func (m *Manager) Logout(ctx context.Context) {
	m.commit(ctx, core.Credential{}, true)
}

// commit is the only mutation path for the shared state. Status feed and
// cache are updated before any persistence I/O starts, so in-process
// observers see the new state immediately. Persistence is best-effort:
// failures are logged, never surfaced to the caller, and the published
// state is not rolled back.
func (m *Manager) commit(ctx context.Context, credential core.Credential, persist bool) {
	status := core.StatusFor(credential)
	m.feed.Set(status)
	m.cache.write(credential)
	m.publishStatus(ctx, status)

	if !persist {
		return
	}

	if credential.Authorized() {
		if err := m.store.Save(ctx, credential); err != nil {
			m.logger.Error("failed to persist credential", err, nil)
		}
		return
	}
	if err := m.store.Clear(ctx); err != nil {
		m.logger.Error("failed to clear persisted credential", err, nil)
	}
}

func (m *Manager) publishStatus(ctx context.Context, status core.Status) {
	if m.events == nil {
		return
	}
	if err := m.events.PublishStatusChange(ctx, status); err != nil {
		m.logger.Error("failed to publish status change", err, watermill.LogFields{
			"status": string(status),
		})
	}
}
