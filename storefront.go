// Package storefront is the entry point for the storefront client SDK.
// It wires configuration, logging, telemetry, the API gateway client, the
// session holder and the per-page state stores together. Users who need
// finer control can import the specific packages directly:
//   - github.com/islam174932/EcommerceWeb/gateway - typed commerce API client
//   - github.com/islam174932/EcommerceWeb/state - cart/wishlist/search stores
//   - github.com/islam174932/EcommerceWeb/session - session holder and persistence
package storefront

import (
	"context"
	"fmt"

	"github.com/islam174932/EcommerceWeb/core"
	"github.com/islam174932/EcommerceWeb/gateway"
	"github.com/islam174932/EcommerceWeb/session"
	"github.com/islam174932/EcommerceWeb/state"
	"github.com/islam174932/EcommerceWeb/telemetry"
)

// Re-export common types so simple callers only import this package
type (
	Config       = core.Config
	Option       = core.Option
	Logger       = core.Logger
	Telemetry    = core.Telemetry
	Product      = gateway.Product
	Category     = gateway.Category
	Brand        = gateway.Brand
	Order        = gateway.Order
	Registration = gateway.Registration
	Session      = session.Session
	SessionEvent = session.Event
	CartSnapshot = state.Snapshot
	CartLine     = state.Line
)

// Re-export configuration helpers
var (
	NewConfig             = core.NewConfig
	DefaultConfig         = core.DefaultConfig
	WithAPIBaseURL        = core.WithAPIBaseURL
	WithHTTPTimeout       = core.WithHTTPTimeout
	WithRetry             = core.WithRetry
	WithCircuitBreaker    = core.WithCircuitBreaker
	WithRedisSessionStore = core.WithRedisSessionStore
	WithSearchDebounce    = core.WithSearchDebounce
	WithLogLevel          = core.WithLogLevel
	WithTelemetry         = core.WithTelemetry
	WithConfigFile        = core.WithConfigFile
)

// Client is the assembled storefront SDK: one gateway client, one session
// holder, and a factory for page-scoped state stores.
type Client struct {
	Gateway  *gateway.Client
	Sessions *session.Holder

	config     *core.Config
	logger     core.Logger
	tokenStore session.TokenStore
	shutdown   func(context.Context) error
}

// New assembles a storefront client from functional options
func New(opts ...core.Option) (*Client, error) {
	cfg, err := core.NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	return NewWithConfig(cfg)
}

// NewWithConfig assembles a storefront client from a validated configuration
func NewWithConfig(cfg *core.Config) (*Client, error) {
	logger := core.NewProductionLogger(cfg.Logging, cfg.Telemetry.ServiceName)

	gatewayOpts := []gateway.ClientOption{gateway.WithLogger(logger)}
	shutdown := func(context.Context) error { return nil }

	if cfg.Telemetry.Enabled {
		provider, err := telemetry.NewProvider(cfg.Telemetry.ServiceName, cfg.Telemetry.Endpoint)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize telemetry: %w", err)
		}
		gatewayOpts = append(gatewayOpts,
			gateway.WithTelemetry(provider),
			gateway.WithTransport(telemetry.NewTransport(nil)),
		)
		shutdown = provider.Shutdown
	}

	var tokenStore session.TokenStore
	switch cfg.Session.Provider {
	case "redis":
		rts, err := session.NewRedisTokenStore(cfg.Session.RedisURL, cfg.Telemetry.ServiceName, cfg.Session.TTL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize session store: %w", err)
		}
		tokenStore = rts
	default:
		tokenStore = session.NewMemoryTokenStore(cfg.Session.TTL)
	}

	holder := session.NewHolder()
	holder.SetLogger(logger)

	c := &Client{
		Gateway:    gateway.NewClient(cfg, gatewayOpts...),
		Sessions:   holder,
		config:     cfg,
		logger:     logger,
		tokenStore: tokenStore,
		shutdown:   shutdown,
	}

	// Keep the persisted token in step with the holder so a restart
	// resumes the session and a logout clears it everywhere
	holder.Subscribe(func(ev session.Event) {
		ctx := context.Background()
		switch ev.Reason {
		case session.ReasonLogin:
			if err := tokenStore.Save(ctx, ev.Session); err != nil {
				logger.Warn("Failed to persist session", map[string]interface{}{
					"error": err.Error(),
				})
			}
		case session.ReasonLogout, session.ReasonExpired:
			if err := tokenStore.Clear(ctx); err != nil {
				logger.Warn("Failed to clear persisted session", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}
	})

	return c, nil
}

// Restore loads a previously persisted session, if any, into the holder.
// Call once at startup; a zero return means the user must sign in.
func (c *Client) Restore(ctx context.Context) (Session, error) {
	s, err := c.tokenStore.Load(ctx)
	if err != nil {
		return Session{}, core.NewStoreError("storefront.Restore", "session", err)
	}
	if s.Authenticated() {
		c.Sessions.Set(s)
	}
	return s, nil
}

// Login signs in and installs the resulting session
func (c *Client) Login(ctx context.Context, email, password string) (Session, error) {
	creds, err := c.Gateway.Login(ctx, email, password)
	if err != nil {
		return Session{}, err
	}
	s := Session{Token: creds.Token, UserName: creds.User.Name, Email: creds.User.Email}
	c.Sessions.Set(s)
	return s, nil
}

// Register creates an account and installs the resulting session
func (c *Client) Register(ctx context.Context, reg Registration) (Session, error) {
	creds, err := c.Gateway.Register(ctx, reg)
	if err != nil {
		return Session{}, err
	}
	s := Session{Token: creds.Token, UserName: creds.User.Name, Email: creds.User.Email}
	c.Sessions.Set(s)
	return s, nil
}

// ResetPassword runs the two-step flow: verify the emailed code, then set
// the new password
func (c *Client) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	if err := c.Gateway.VerifyResetCode(ctx, code); err != nil {
		return err
	}
	return c.Gateway.ResetPassword(ctx, email, newPassword)
}

// Logout clears the session everywhere
func (c *Client) Logout() {
	c.Sessions.Clear(session.ReasonLogout)
}

// NewStorefront creates the page-scoped cart and wishlist stores.
// Call on every page mount; stores are never shared across pages.
func (c *Client) NewStorefront() *state.Storefront {
	return state.NewStorefront(c.Gateway, c.Sessions, c.logger)
}

// NewSearchDebouncer creates a debouncer with the configured quiet period
func (c *Client) NewSearchDebouncer(dispatch func(query string)) *state.SearchDebouncer {
	return state.NewSearchDebouncer(c.config.SearchDebounce, dispatch)
}

// Close flushes telemetry and releases resources
func (c *Client) Close(ctx context.Context) error {
	return c.shutdown(ctx)
}
