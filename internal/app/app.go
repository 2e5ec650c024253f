// Package app собирает все слои сервиса и управляет его жизненным циклом.
package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/floralab/catalog-backend/internal/cfg"
	v1Http "github.com/floralab/catalog-backend/internal/delivery/v1/http"
	"github.com/floralab/catalog-backend/internal/indexer"
	"github.com/floralab/catalog-backend/internal/infrastructure/embedder"
	"github.com/floralab/catalog-backend/internal/infrastructure/kafka"
	"github.com/floralab/catalog-backend/internal/infrastructure/photos"
	s3Repo "github.com/floralab/catalog-backend/internal/repository/minio"
	"github.com/floralab/catalog-backend/internal/repository/pgdb"
	pgdbConv "github.com/floralab/catalog-backend/internal/repository/pgdb/converter/generated"
	qdrantRepo "github.com/floralab/catalog-backend/internal/repository/qdrant"
	"github.com/floralab/catalog-backend/internal/repository/redis"
	redisConv "github.com/floralab/catalog-backend/internal/repository/redis/converter/generated"
	"github.com/floralab/catalog-backend/internal/usecase"
	"github.com/floralab/catalog-backend/pkg/clients"
	"github.com/floralab/catalog-backend/pkg/closer"
	"github.com/floralab/catalog-backend/pkg/e"
	"github.com/floralab/catalog-backend/pkg/logger"
	"github.com/floralab/catalog-backend/pkg/postgres"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

// App инкапсулирует собранный сервис и его фоновые компоненты.
type App struct {
	cfg    *config.Config
	logger logger.Logger
	closer *closer.Closer

	db           *postgres.PgDatabase
	httpSrv      *v1Http.Server
	scheduler    *indexer.Scheduler
	outboxWorker *kafka.OutboxWorker

	bgCtx    context.Context
	bgCancel context.CancelFunc
}

func NewApp(cfg *config.Config, log logger.Logger) (*App, error) {
	const op = "app.NewApp"

	cl := closer.NewCloser(2 * time.Second)
	bgCtx, bgCancel := context.WithCancel(context.Background())

	app := &App{
		cfg:      cfg,
		logger:   log,
		closer:   cl,
		bgCtx:    bgCtx,
		bgCancel: bgCancel,
	}

	db, err := initPGDB(log, cfg)
	if err != nil {
		bgCancel()
		return nil, e.Wrap(op, err)
	}
	app.db = db
	cl.Add(func(ctx context.Context) error {
		db.Close()
		return nil
	})

	itemConv := &pgdbConv.CatalogItemConverterImpl{}
	imageConv := &pgdbConv.CatalogImageConverterImpl{}
	tenantConv := &pgdbConv.TenantConverterImpl{}
	embConv := &pgdbConv.EmbeddingRecordConverterImpl{}
	outboxConv := &pgdbConv.OutboxEventConverterImpl{}
	infoConv := &redisConv.ItemInfoConverterImpl{}

	tenantRepo := pgdb.NewTenantRepo(db.Pool, tenantConv)
	itemRepo := pgdb.NewItemRepo(db.Pool, itemConv)
	imageRepo := pgdb.NewImageRepo(db.Pool, imageConv)
	embeddingRepo := pgdb.NewEmbeddingRepo(db.Pool, embConv)
	outboxRepo := pgdb.NewOutboxEventRepo(db.Pool, outboxConv)

	minioClient, err := clients.NewMinIOClient(cfg)
	if err != nil {
		bgCancel()
		return nil, e.Wrap(op, err)
	}

	minioCtx, minioCancel := context.WithTimeout(context.Background(), 10*time.Second)
	err = clients.EnsureBucket(minioCtx, minioClient, cfg.Minio.BucketName)
	minioCancel()
	if err != nil {
		bgCancel()
		return nil, e.Wrap(op, err)
	}
	photoRepo := s3Repo.NewPhotoRepo(minioClient, cfg.Minio)

	qdrantClient, err := clients.NewQdrantClient(cfg.Qdrant)
	if err != nil {
		bgCancel()
		return nil, e.Wrap(op, err)
	}
	qdrantCtx, qdrantCancel := context.WithTimeout(context.Background(), 10*time.Second)
	err = clients.EnsureCollection(qdrantCtx, qdrantClient)
	qdrantCancel()
	if err != nil {
		bgCancel()
		return nil, e.Wrap(op, err)
	}
	cl.Add(func(ctx context.Context) error {
		return qdrantClient.Client.Close()
	})
	vectorRepo := qdrantRepo.NewVectorRepo(qdrantClient.Client, cfg.Qdrant)

	redisClient := clients.NewRedisClient(cfg.Redis)
	redisCtx, redisCancel := context.WithTimeout(context.Background(), 5*time.Second)
	err = redisClient.Ping(redisCtx)
	redisCancel()
	if err != nil {
		bgCancel()
		return nil, e.Wrap(op, err)
	}
	cl.Add(func(ctx context.Context) error {
		return redisClient.Client.Close()
	})
	cacheRepo := redis.NewCacheRepo(redisClient, infoConv, cfg.Redis, log)

	embedderInfra := embedder.NewEmbedder(cfg.Embedder, log)
	photosInfra := photos.NewPhotosInfrastructure(cfg.Indexer, photoRepo, log)

	producer, err := kafka.NewProducer(log, cfg.Kafka)
	if err != nil {
		bgCancel()
		return nil, e.Wrap(op, err)
	}
	if err := producer.EnsureTopic(10 * time.Second); err != nil {
		bgCancel()
		return nil, e.Wrap(op, err)
	}
	cl.Add(func(ctx context.Context) error {
		return producer.Close()
	})

	indexUC := usecase.NewIndexUC(
		itemRepo,
		imageRepo,
		embeddingRepo,
		vectorRepo,
		db.Pool,
		embedderInfra,
		photosInfra,
		cfg.Embedder,
		log,
	)

	app.scheduler = indexer.NewScheduler(indexUC, cfg.Indexer, log)
	cl.Add(func(ctx context.Context) error {
		app.scheduler.Stop()
		return nil
	})

	syncUC := usecase.NewSyncUC(
		tenantRepo,
		itemRepo,
		imageRepo,
		outboxRepo,
		db.Pool,
		app.scheduler,
		cacheRepo,
		log,
	)

	searchUC := usecase.NewSearchUC(
		itemRepo,
		vectorRepo,
		embedderInfra,
		cacheRepo,
		cfg.Search,
		cfg.Embedder,
		log,
	)

	app.outboxWorker = kafka.NewOutboxWorker(outboxRepo, log, producer, db.Dsn)
	cl.Add(func(ctx context.Context) error {
		app.outboxWorker.Stop()
		return nil
	})

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, log)
	router.Init(syncUC, searchUC, app.scheduler, db)

	app.httpSrv = v1Http.NewServer(r, cfg.Http)

	return app, nil
}

// Run запускает фоновые компоненты и HTTP-сервер, блокируется до сигнала
// остановки или фатальной ошибки сервера, после чего закрывает ресурсы в LIFO.
func (a *App) Run() error {
	a.scheduler.Start(a.bgCtx)
	a.outboxWorker.Start(a.bgCtx)

	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case <-shutdown:
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := a.httpSrv.Stop(shutdownCtx); err != nil {
		a.logger.Errorf(err, "HTTP server shutdown error")
	} else {
		a.logger.Infof("HTTP server stopped")
	}

	// Фоновые воркеры останавливаются до закрытия клиентов и пула.
	a.bgCancel()
	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Warnf("shutdown finished with errors: %v", err)
	}

	a.logger.Infof("Application shutdown complete")
	return appErr
}

func initPGDB(logger logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(cfg.Db)
	if err != nil {
		logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(logger); err != nil {
		logger.Errorf(err, "failed to run migrations")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.Ping(); err != nil {
		logger.Errorf(err, "failed to ping database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}
