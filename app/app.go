package app

import (
	"context"
	"log/slog"

	"github.com/apexhome/products-manager/config"
	"github.com/apexhome/products-manager/internal/allocator"
	httpapi "github.com/apexhome/products-manager/internal/api/http"
	"github.com/apexhome/products-manager/internal/apisrv/products"
	"github.com/apexhome/products-manager/internal/apisrv/serialization"
	"github.com/apexhome/products-manager/internal/auth/jwt"
	"github.com/apexhome/products-manager/internal/bucket"
	"github.com/apexhome/products-manager/internal/cache"
	"github.com/apexhome/products-manager/internal/dependency"
	"github.com/apexhome/products-manager/internal/engine"
	"github.com/apexhome/products-manager/internal/lock"
	"github.com/apexhome/products-manager/internal/mail"
	"github.com/apexhome/products-manager/internal/metrics"
	"github.com/apexhome/products-manager/internal/ratelimit"
	"github.com/apexhome/products-manager/internal/rediscli"
	"github.com/apexhome/products-manager/internal/registry"
	"github.com/apexhome/products-manager/internal/store"
	"github.com/redis/go-redis/v9"
)

// App is the main application
type App struct {
	hs     *httpapi.Server
	db     dependency.Repository
	rdb    *redis.Client
	mailer dependency.Mailer
	// mailing is set once the mailer worker runs
	mailing bool
	rl      *ratelimit.MultiKeyLimiter
	c       *config.Config
	done    chan struct{}
}

// New returns a new instance of App
func New(c *config.Config) *App {
	return &App{
		c:    c,
		done: make(chan struct{}),
	}
}

// Services are the domain services shared by the server and the CLI.
type Services struct {
	Engine   *engine.Engine
	Registry *registry.Service
	// Archive is nil when no object store is configured.
	Archive dependency.FileStore
	Metrics *metrics.Metrics
}

// Build connects the optional redis, object store and mailer and wires the services on db.
// Fields of a that are set here are released by Stop.
func (a *App) Build(ctx context.Context, db dependency.Repository) (*Services, error) {
	a.db = db
	m := metrics.New(a.c.Metrics)

	// a nil *redis.Client must not end up inside the Cmdable interface
	var rdb redis.Cmdable
	if a.c.Redis.Enabled() {
		client, err := rediscli.Connect(ctx, &a.c.Redis)
		if err != nil {
			slog.Default().ErrorContext(ctx, "couldn't connect to redis",
				slog.String("err", err.Error()),
			)
			return nil, err
		}
		a.rdb = client
		rdb = client
	}

	if a.c.Mailer.Enabled() {
		ml, err := mail.New(&a.c.Mailer, db.Mail())
		if err != nil {
			slog.Default().ErrorContext(ctx, "failed create mailer",
				slog.String("err", err.Error()),
			)
			return nil, err
		}
		a.mailer = ml
	}

	alloc, err := allocator.New(a.c.Sequence, db, rdb, m, a.mailer)
	if err != nil {
		return nil, err
	}

	var locker dependency.Locker = lock.NewLocal()
	if a.rdb != nil {
		locker = lock.NewRedis(a.rdb, a.c.Registry.Lock)
	}

	var archive dependency.FileStore
	if a.c.Bucket.Enabled() {
		b, err := bucket.New(&a.c.Bucket)
		if err != nil {
			slog.Default().ErrorContext(ctx, "failed create bucket",
				slog.String("err", err.Error()),
			)
			return nil, err
		}
		archive = b
	}

	rc := cache.NewRegistryCache(db.Registry(), a.c.Registry.Cache)
	if err := rc.Warm(ctx); err != nil {
		// lookups fall through to the database until the next reload
		slog.Default().WarnContext(ctx, "can't warm registry cache",
			slog.String("err", err.Error()),
		)
	}
	reg := registry.New(db, rc, locker, archive)

	return &Services{
		Engine:   engine.New(db, alloc, reg, m),
		Registry: reg,
		Archive:  archive,
		Metrics:  m,
	}, nil
}

// Start starts the app
func (a *App) Start(ctx context.Context) error {
	slog.Default().InfoContext(ctx, "starting products manager",
		slog.String("sequence_backend", string(a.c.Sequence.Backend)),
	)

	db, err := store.New(ctx, a.c.DB)
	if err != nil {
		slog.Default().ErrorContext(ctx, "couldn't connect to mysql",
			slog.String("err", err.Error()),
		)
		return err
	}
	svc, err := a.Build(ctx, db)
	if err != nil {
		return err
	}

	ja, err := jwt.New(&a.c.Auth)
	if err != nil {
		slog.Default().ErrorContext(ctx, "failed create jwt auth",
			slog.String("err", err.Error()),
		)
		return err
	}

	if a.mailer != nil {
		if err := a.mailer.Start(ctx); err != nil {
			slog.Default().ErrorContext(ctx, "failed start mailer",
				slog.String("err", err.Error()),
			)
			return err
		}
		a.mailing = true
	}

	a.rl = ratelimit.NewMultiKeyLimiter(a.c.RateLimit)

	// start API server
	a.hs = httpapi.New(&a.c.HTTP)
	err = a.hs.Start(ctx, &httpapi.Handlers{
		Products:      products.New(svc.Engine, a.rl),
		Serialization: serialization.New(svc.Engine, svc.Registry, svc.Archive, a.rl),
		JWT:           ja,
		Metrics:       svc.Metrics,
		Health:        a.db.Ping,
	})
	if err != nil {
		slog.Default().ErrorContext(ctx, "cannot start http server",
			slog.String("err", err.Error()),
		)
		return err
	}
	go func() {
		<-a.hs.Done()
		close(a.done)
	}()

	return nil
}

// Stop stops the application and waits for all services to exit
func (a *App) Stop(ctx context.Context) {
	if a.hs != nil {
		if err := a.hs.Stop(ctx); err != nil {
			slog.Default().ErrorContext(ctx, "can't stop http server",
				slog.String("err", err.Error()),
			)
		}
	}
	a.Close()
}

// Close releases the connections opened by Build.
func (a *App) Close() {
	if a.rl != nil {
		a.rl.Stop()
	}
	if a.mailing {
		if err := a.mailer.Stop(); err != nil {
			slog.Default().Error("can't stop mailer", slog.String("err", err.Error()))
		}
	}
	if a.rdb != nil {
		a.rdb.Close()
	}
	if a.db != nil {
		a.db.Close()
	}
}

// Done returns a channel that is closed when the application is done
func (a *App) Done() <-chan struct{} {
	return a.done
}
