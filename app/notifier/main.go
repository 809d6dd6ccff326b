package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/viper"
	"github.com/viney-shih/goroutines"

	"github.com/x-xyz/launchpad/base/config"
	bCtx "github.com/x-xyz/launchpad/base/ctx"
	"github.com/x-xyz/launchpad/base/database/mongoclient"
	"github.com/x-xyz/launchpad/base/database/redisclient"
	"github.com/x-xyz/launchpad/base/log"
	"github.com/x-xyz/launchpad/base/metrics"
	"github.com/x-xyz/launchpad/base/tracker"
	"github.com/x-xyz/launchpad/domain"
	"github.com/x-xyz/launchpad/domain/healthcheck"
	mmiddleware "github.com/x-xyz/launchpad/middleware"
	"github.com/x-xyz/launchpad/service/ens"
	"github.com/x-xyz/launchpad/service/locker"
	"github.com/x-xyz/launchpad/service/query"
	"github.com/x-xyz/launchpad/service/redis"
	assetRepo "github.com/x-xyz/launchpad/stores/asset/repository"
	assetUseCase "github.com/x-xyz/launchpad/stores/asset/usecase"
	hcDelivery "github.com/x-xyz/launchpad/stores/healthcheck/delivery/http"
	hcRepo "github.com/x-xyz/launchpad/stores/healthcheck/repository"
	hcUseCase "github.com/x-xyz/launchpad/stores/healthcheck/usecase"
	ledgerRepo "github.com/x-xyz/launchpad/stores/ledger/repository"
	ledgerUseCase "github.com/x-xyz/launchpad/stores/ledger/usecase"
	nftitemRepo "github.com/x-xyz/launchpad/stores/nftitem/repository"
	nftitemUseCase "github.com/x-xyz/launchpad/stores/nftitem/usecase"
	"github.com/x-xyz/launchpad/stores/tracker_state/repository/mongo"
	"github.com/x-xyz/launchpad/stores/tracker_state/usecase"
)

const salesTag = "sales"

func init() {
	if err := config.Load("notifier", os.Args[1:]); err != nil {
		panic(err)
	}
}

func main() {
	ctx, cancel := bCtx.WithCancel(bCtx.Background())
	defer cancel()

	ctx.Info("init mongo")
	mongoClient := mongoclient.MustConnectMongoClient(mongoclient.Config{
		URI:                viper.GetString("mongo.uri"),
		AuthDBName:         viper.GetString("mongo.authDBName"),
		DBName:             viper.GetString("mongo.dbName"),
		SSL:                viper.GetBool("mongo.enableSSL"),
		SetSafe:            true,
		PoolSizeMultiplier: 1,
	})
	q := query.New(mongoClient, metrics.New("mongo"))

	var redisCache redis.Service
	if uri := viper.GetString("redis.uri"); uri != "" {
		ctx.Info("init redis")
		redisName := viper.GetString("redis.name")
		redisCache = redis.New(redisName, metrics.New(redisName), &redis.Pools{
			Src: redisclient.MustConnectRedis(uri, viper.GetString("redis.password"), redisclient.RedisParam{
				PoolMultiplier: viper.GetFloat64("redis.poolMultiplier"),
				Retry:          true,
			}),
		})
	}

	// the notifier only reads the ledger, writes never take a lock here
	ledger := ledgerUseCase.New(&ledgerUseCase.Cfg{
		Repo:    ledgerRepo.New(q),
		Mongo:   q,
		Locker:  locker.NewLocal(time.Second),
		Metrics: metrics.New("ledger"),
	})
	asset := assetUseCase.New(&assetUseCase.Cfg{
		Repo:   assetRepo.New(q),
		Ledger: ledger,
	})
	nftitem := nftitemUseCase.New(&nftitemUseCase.Cfg{
		Repo:   nftitemRepo.NewNftItem(q),
		Ledger: ledger,
		Asset:  asset,
	})

	tsRepo := mongo.NewTrackerStateMongoRepo(q)
	if err := tsRepo.EnsureIndexes(ctx); err != nil {
		ctx.WithField("err", err).Panic("tsRepo.EnsureIndexes failed")
	}
	tsUseCase := usecase.NewTrackerStateUseCase(tsRepo, 10*time.Second)

	notifierCfg := tracker.SaleNotifierConfig{
		DiscordBotKey:    viper.GetString("discord.token"),
		DiscordChannelId: viper.GetString("discord.channel"),
		Collections:      asset,
		Tokens:           nftitem,
		Pool:             goroutines.NewPool(4, goroutines.WithTaskQueueLength(256)),
	}
	if rpc := viper.GetString("ens.rpc"); rpc != "" {
		names, err := ens.New(rpc, redisCache)
		if err != nil {
			ctx.WithField("err", err).Panic("ens.New failed")
		}
		notifierCfg.Names = names
	}
	saleHandler, err := tracker.NewSaleNotifierHandler(notifierCfg)
	if err != nil {
		ctx.WithField("err", err).Panic("NewSaleNotifierHandler failed")
	}

	errCh := make(chan error, 10)
	salesTracker, err := tracker.NewEventTracker(&tracker.EventTrackerCfg{
		ChainId:             viper.GetInt64("ledger.chainId"),
		Interval:            viper.GetDuration("notifier.interval"),
		Ledger:              ledger,
		Transactor:          q,
		TrackerStateUseCase: tsUseCase,
		ContractAddress:     domain.Address(viper.GetString("ledger.marketplace")),
		EventHandl:          saleHandler,
		ErrorCh:             errCh,
		TrackerTag:          salesTag,
		FromLatest:          viper.GetBool("notifier.fromLatest"),
	})
	if err != nil {
		ctx.WithField("err", err).Panic("NewEventTracker failed")
	}

	startEchoServer(hcUseCase.New(hcRepo.New(mongoClient, redisCache), ledger))

	ctx.Info("starting workers")
	salesTracker.Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	select {
	case err := <-errCh:
		ctx.WithField("err", err).Error("tracker error")
	case sig := <-quit:
		ctx.WithField("signal", sig).Info("received signal")
	}

	go func() {
		for range errCh {
		}
	}()
	cancel()
	salesTracker.Wait()
}

func startEchoServer(hc healthcheck.HealthCheckUsecase) {
	context := bCtx.Background()

	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	hcDelivery.New(e, hc)

	address := viper.GetString("notifier.address")
	context.WithField("address", address).Info("starting server")
	go func() {
		if err := e.Start(address); err != nil && err != http.ErrServerClosed {
			context.WithFields(log.Fields{"err": err}).Error("shutting down the server")
		}
	}()
}
