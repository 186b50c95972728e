package mongodb

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultServerSelectionTimeout        = 30 * time.Second // tolerate Atlas cold starts
	DefaultConnectTimeout                = 10 * time.Second
	DefaultMaxPoolSize            uint64 = 5

	connectKey = "connect"
)

// ErrConnectionFailed is returned once the initial attempt and its single retry have both failed.
var ErrConnectionFailed = errors.New("mongodb: connection failed")

// Config holds MongoDB connection details.
type Config struct {
	URI                    string
	Database               string
	ServerSelectionTimeout time.Duration
	ConnectTimeout         time.Duration
	MaxPoolSize            uint64
	// DNSServers replaces the system resolvers for the whole process when set.
	DNSServers []string
}

// DialFunc opens a client and returns it only once a server is usable.
type DialFunc func(ctx context.Context, opts *options.ClientOptions) (*mongo.Client, error)

// Option customises a Pool.
type Option func(*Pool)

// WithDialFunc replaces the function used to open clients.
func WithDialFunc(fn DialFunc) Option {
	return func(p *Pool) {
		p.dial = fn
	}
}

// Pool lazily establishes one MongoDB client and shares it with every caller
// for the life of the process. Create it once at startup and Close it on shutdown.
type Pool struct {
	cfg    Config
	log    *zap.Logger
	dial   DialFunc
	group  singleflight.Group
	client atomic.Pointer[mongo.Client]
}

// NewPool creates a Pool. It performs no I/O; the first call to Database connects.
func NewPool(cfg Config, log *zap.Logger, opts ...Option) *Pool {
	if cfg.ServerSelectionTimeout <= 0 {
		cfg.ServerSelectionTimeout = DefaultServerSelectionTimeout
	}
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = DefaultConnectTimeout
	}
	if cfg.MaxPoolSize == 0 {
		cfg.MaxPoolSize = DefaultMaxPoolSize
	}
	if log == nil {
		log = zap.NewNop()
	}

	p := &Pool{
		cfg:  cfg,
		log:  log.Named("mongodb"),
		dial: connectAndPing,
	}
	for _, opt := range opts {
		opt(p)
	}

	if len(cfg.DNSServers) > 0 {
		UseDNSServers(cfg.DNSServers)
		p.log.Info("overriding system DNS resolvers", zap.Strings("servers", cfg.DNSServers))
	}

	return p
}

// Database returns a handle bound to the configured database name,
// connecting first if no client is cached yet.
func (p *Pool) Database(ctx context.Context) (*mongo.Database, error) {
	client, err := p.Client(ctx)
	if err != nil {
		return nil, err
	}
	return client.Database(p.cfg.Database), nil
}

// Client returns the cached client. Concurrent callers during a cold start
// share a single connection attempt.
func (p *Pool) Client(ctx context.Context) (*mongo.Client, error) {
	if client := p.client.Load(); client != nil {
		return client, nil
	}

	// The attempt outlives any single caller; the driver timeouts bound it.
	attemptCtx := context.WithoutCancel(ctx)
	ch := p.group.DoChan(connectKey, func() (interface{}, error) {
		return p.connect(attemptCtx)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*mongo.Client), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (p *Pool) connect(ctx context.Context) (*mongo.Client, error) {
	if client := p.client.Load(); client != nil {
		return client, nil
	}

	client, err := p.dial(ctx, p.clientOptions())
	if err != nil {
		p.log.Warn("connection attempt failed, retrying once", zap.Error(err))

		client, err = p.dial(ctx, p.clientOptions())
		if err != nil {
			p.log.Error("connection retry failed", zap.Error(err))
			return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
		}
	}

	p.client.Store(client)
	p.log.Info("connected", zap.String("database", p.cfg.Database))
	return client, nil
}

func (p *Pool) clientOptions() *options.ClientOptions {
	return options.Client().
		ApplyURI(p.cfg.URI).
		SetServerSelectionTimeout(p.cfg.ServerSelectionTimeout).
		SetConnectTimeout(p.cfg.ConnectTimeout).
		SetSocketTimeout(0).
		SetMaxPoolSize(p.cfg.MaxPoolSize)
}

// Ping checks that the store is reachable through the cached client.
func (p *Pool) Ping(ctx context.Context) error {
	client, err := p.Client(ctx)
	if err != nil {
		return err
	}
	return client.Ping(ctx, readpref.Primary())
}

// Close disconnects the cached client. A later call to Database reconnects.
func (p *Pool) Close(ctx context.Context) error {
	client := p.client.Swap(nil)
	if client == nil {
		return nil
	}
	if err := client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from mongodb: %w", err)
	}
	p.log.Info("disconnected")
	return nil
}

func connectAndPing(ctx context.Context, opts *options.ClientOptions) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return client, nil
}
