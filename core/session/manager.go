package session

import (
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	fibersession "github.com/gofiber/fiber/v2/middleware/session"
)

const (
	// CookieName is the name of the session id cookie.
	CookieName = "portal_session"

	keyToken = "uuid"
	keyFile  = "file_path"
	localKey = "session_snapshot"
)

// StoreConfig configures the server-side session store.
type StoreConfig struct {
	// Expiration is the idle lifetime of a session.
	Expiration time.Duration
	// Storage persists session data. Nil keeps sessions in memory.
	Storage fiber.Storage
	// Secure marks the cookie as HTTPS only.
	Secure bool
}

// NewStore creates the fiber session store used by the Manager.
func NewStore(cfg StoreConfig) *fibersession.Store {
	return fibersession.New(fibersession.Config{
		Expiration:     cfg.Expiration,
		Storage:        cfg.Storage,
		KeyLookup:      "cookie:" + CookieName,
		CookieHTTPOnly: true,
		CookieSecure:   cfg.Secure,
		CookieSameSite: fiber.CookieSameSiteLaxMode,
	})
}

// Manager maps fiber sessions onto Snapshots and applies transitions.
type Manager struct {
	store  *fibersession.Store
	secret []byte
}

// NewManager creates a manager that authorizes sessions holding token.
func NewManager(store *fibersession.Store, token string) *Manager {
	return &Manager{store: store, secret: []byte(token)}
}

// CheckToken compares a presented token with the shared secret in constant time.
func (m *Manager) CheckToken(token string) bool {
	if token == "" || len(m.secret) == 0 {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), m.secret) == 1
}

// Load decodes the current session. The result is cached on the request.
func (m *Manager) Load(c *fiber.Ctx) (Snapshot, error) {
	if snap, ok := c.Locals(localKey).(Snapshot); ok {
		return snap, nil
	}

	sess, err := m.store.Get(c)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to load session: %w", err)
	}

	snap := Snapshot{}
	token, _ := sess.Get(keyToken).(string)
	if m.CheckToken(token) {
		snap = snap.Authorize()
		if path, _ := sess.Get(keyFile).(string); path != "" {
			snap, _ = snap.Activate(path)
		}
	}

	c.Locals(localKey, snap)
	return snap, nil
}

// Authorize starts a fresh authenticated session. The session id is rotated.
func (m *Manager) Authorize(c *fiber.Ctx) (Snapshot, error) {
	sess, err := m.store.Get(c)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to load session: %w", err)
	}
	if err := sess.Regenerate(); err != nil {
		return Snapshot{}, fmt.Errorf("failed to rotate session: %w", err)
	}

	sess.Set(keyToken, string(m.secret))
	sess.Delete(keyFile)
	if err := sess.Save(); err != nil {
		return Snapshot{}, fmt.Errorf("failed to save session: %w", err)
	}

	snap := Snapshot{}.Authorize()
	c.Locals(localKey, snap)
	return snap, nil
}

// Activate records the active spreadsheet for an authenticated session.
func (m *Manager) Activate(c *fiber.Ctx, path string) (Snapshot, error) {
	current, err := m.Load(c)
	if err != nil {
		return Snapshot{}, err
	}
	next, err := current.Activate(path)
	if err != nil {
		return current, err
	}

	sess, err := m.store.Get(c)
	if err != nil {
		return current, fmt.Errorf("failed to load session: %w", err)
	}
	sess.Set(keyFile, next.FilePath)
	if err := sess.Save(); err != nil {
		return current, fmt.Errorf("failed to save session: %w", err)
	}

	c.Locals(localKey, next)
	return next, nil
}

// Reset destroys the session.
func (m *Manager) Reset(c *fiber.Ctx) error {
	sess, err := m.store.Get(c)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	if err := sess.Destroy(); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}
	c.Locals(localKey, Snapshot{}.Reset())
	return nil
}
