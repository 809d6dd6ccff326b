package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/storage"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/samber/lo"
	"github.com/spf13/viper"
	echoSwagger "github.com/swaggo/echo-swagger"
	"google.golang.org/api/option"

	"github.com/x-xyz/launchpad/base/config"
	"github.com/x-xyz/launchpad/base/ctx"
	"github.com/x-xyz/launchpad/base/database/mongoclient"
	"github.com/x-xyz/launchpad/base/database/redisclient"
	"github.com/x-xyz/launchpad/base/log"
	"github.com/x-xyz/launchpad/base/metrics"
	bValidator "github.com/x-xyz/launchpad/base/validator"
	"github.com/x-xyz/launchpad/domain"
	"github.com/x-xyz/launchpad/domain/file"
	"github.com/x-xyz/launchpad/domain/staking"
	mmiddleware "github.com/x-xyz/launchpad/middleware"
	"github.com/x-xyz/launchpad/service/ens"
	"github.com/x-xyz/launchpad/service/ipfs"
	"github.com/x-xyz/launchpad/service/locker"
	"github.com/x-xyz/launchpad/service/pinata"
	"github.com/x-xyz/launchpad/service/query"
	"github.com/x-xyz/launchpad/service/redis"
	asset_delivery "github.com/x-xyz/launchpad/stores/asset/delivery/http"
	asset_repository "github.com/x-xyz/launchpad/stores/asset/repository"
	asset_usecase "github.com/x-xyz/launchpad/stores/asset/usecase"
	auth_delivery "github.com/x-xyz/launchpad/stores/auth/delivery/http"
	auth_middleware "github.com/x-xyz/launchpad/stores/auth/delivery/http/middleware"
	auth_usecase "github.com/x-xyz/launchpad/stores/auth/usecase"
	balance_delivery "github.com/x-xyz/launchpad/stores/balance/delivery/http"
	balance_repository "github.com/x-xyz/launchpad/stores/balance/repository"
	balance_usecase "github.com/x-xyz/launchpad/stores/balance/usecase"
	ens_delivery "github.com/x-xyz/launchpad/stores/ens/delivery/http"
	file_delivery "github.com/x-xyz/launchpad/stores/file/delivery/http"
	file_repository "github.com/x-xyz/launchpad/stores/file/repository"
	file_usecase "github.com/x-xyz/launchpad/stores/file/usecase"
	hc_delivery "github.com/x-xyz/launchpad/stores/healthcheck/delivery/http"
	hc_repo "github.com/x-xyz/launchpad/stores/healthcheck/repository"
	hc_usecase "github.com/x-xyz/launchpad/stores/healthcheck/usecase"
	ledger_delivery "github.com/x-xyz/launchpad/stores/ledger/delivery/http"
	ledger_repository "github.com/x-xyz/launchpad/stores/ledger/repository"
	ledger_usecase "github.com/x-xyz/launchpad/stores/ledger/usecase"
	marketplace_delivery "github.com/x-xyz/launchpad/stores/marketplace/delivery/http"
	marketplace_repository "github.com/x-xyz/launchpad/stores/marketplace/repository"
	marketplace_usecase "github.com/x-xyz/launchpad/stores/marketplace/usecase"
	metadata_usecase "github.com/x-xyz/launchpad/stores/metadata/usecase"
	nftitem_delivery "github.com/x-xyz/launchpad/stores/nftitem/delivery/http"
	nftitem_repository "github.com/x-xyz/launchpad/stores/nftitem/repository"
	nftitem_usecase "github.com/x-xyz/launchpad/stores/nftitem/usecase"
	staking_delivery "github.com/x-xyz/launchpad/stores/staking/delivery/http"
	staking_repository "github.com/x-xyz/launchpad/stores/staking/repository"
	staking_usecase "github.com/x-xyz/launchpad/stores/staking/usecase"

	_ "github.com/x-xyz/launchpad/app/api/docs"
)

func init() {
	if err := config.Load("api", os.Args[1:]); err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

func etherConfig(context ctx.Ctx, key string) *domain.Amount {
	s := viper.GetString(key)
	if s == "" {
		return nil
	}
	v, err := domain.ParseEther(s)
	if err != nil {
		context.WithFields(log.Fields{"key": key, "value": s, "err": err}).Panic("invalid ether amount")
	}
	a := domain.NewAmount(v)
	return &a
}

func newPinner(context ctx.Ctx) pinata.Service {
	timeout := viper.GetDuration("pinata.timeout")
	if jwt, key := viper.GetString("pinata.jwt"), viper.GetString("pinata.apiKey"); jwt != "" || key != "" {
		context.Info("pin with pinata")
		return pinata.New(pinata.Cfg{
			Jwt:       jwt,
			ApiKey:    key,
			ApiSecret: viper.GetString("pinata.apiSecret"),
			Endpoint:  viper.GetString("pinata.endpoint"),
			Timeout:   timeout,
		})
	}
	context.WithField("node", viper.GetString("ipfs.node")).Info("pin with ipfs node")
	return ipfs.New(viper.GetString("ipfs.node"), timeout)
}

func newMirror(context ctx.Ctx) file.MirrorRepo {
	bucket := viper.GetString("gcs.bucket")
	if bucket == "" {
		return nil
	}
	opts := []option.ClientOption{}
	if creds := viper.GetString("gcs.credentials"); creds != "" {
		opts = append(opts, option.WithCredentialsFile(creds))
	}
	client, err := storage.NewClient(context, opts...)
	if err != nil {
		context.WithField("err", err).Panic("storage.NewClient failed")
	}
	mirror, err := file_repository.NewCloudStorageWriterRepo(&file_repository.CloudStorageWriterRepoCfg{
		Timeout:    viper.GetDuration("gcs.timeout"),
		Client:     client,
		BucketName: bucket,
		Url:        viper.GetString("gcs.url"),
	})
	if err != nil {
		context.WithField("err", err).Panic("NewCloudStorageWriterRepo failed")
	}
	return mirror
}

//	@title			Launchpad API
//	@version		1.0
//	@description	Token and NFT factories, marketplace and staking pool on a transactional ledger.

// main
//
//	@securityDefinitions.apikey	ApiKeyAuth
//	@in							header
//	@name						Authorization
//	@description				retrive token from #/auth/post_auth_login and apply with `bearer {token}`
func main() {
	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit("12M"))
	e.Validator = bValidator.NewCustomValidator(validator.New())

	context := ctx.Background()

	// init mongo client
	context.Info("init mongo")
	mongoClient := mongoclient.MustConnectMongoClient(mongoclient.Config{
		URI:                viper.GetString("mongo.uri"),
		AuthDBName:         viper.GetString("mongo.authDBName"),
		DBName:             viper.GetString("mongo.dbName"),
		SSL:                viper.GetBool("mongo.enableSSL"),
		SetSafe:            true,
		PoolSizeMultiplier: 2,
	})
	q := query.New(mongoClient, metrics.New("mongo"))

	// init Redis service
	context.Info("init redis")
	redisName := viper.GetString("redis.name")
	redisPool := redisclient.MustConnectRedis(viper.GetString("redis.uri"), viper.GetString("redis.password"), redisclient.RedisParam{
		PoolMultiplier: viper.GetFloat64("redis.poolMultiplier"),
		Retry:          true,
	})
	redisCache := redis.New(redisName, metrics.New(redisName), &redis.Pools{
		Src: redisPool,
	})
	httpCache := mmiddleware.NewHttpCache(redisCache)

	operator := domain.Address(viper.GetString("ledger.operator")).ToLower()
	marketplaceAddr := domain.Address(viper.GetString("ledger.marketplace")).ToLower()
	stakingAddr := domain.Address(viper.GetString("ledger.stakingPool")).ToLower()

	// construct repository, usecase and delivery
	hcRepo := hc_repo.New(mongoClient, redisCache)
	ledgerRepo := ledger_repository.New(q)
	balanceRepo := balance_repository.New(q)
	assetRepo := asset_repository.New(q)
	nftitemRepo := nftitem_repository.NewNftItem(q)
	listingRepo := marketplace_repository.NewListing(q)
	stakingRepo := staking_repository.NewStaking(q)

	for name, repo := range map[string]interface{ EnsureIndexes(ctx.Ctx) error }{
		"ledger":      ledgerRepo,
		"balance":     balanceRepo,
		"asset":       assetRepo,
		"nftitem":     nftitemRepo,
		"marketplace": listingRepo,
		"staking":     stakingRepo,
	} {
		if err := repo.EnsureIndexes(context); err != nil {
			context.WithFields(log.Fields{"repo": name, "err": err}).Panic("EnsureIndexes failed")
		}
	}

	ledger := ledger_usecase.New(&ledger_usecase.Cfg{
		Repo:  ledgerRepo,
		Mongo: q,
		Locker: locker.New(locker.Cfg{
			Redis: redisCache,
			TTL:   viper.GetDuration("ledger.lockTTL"),
			Wait:  viper.GetDuration("ledger.lockWait"),
		}),
		Metrics: metrics.New("ledger"),
	})
	balance := balance_usecase.New(&balance_usecase.Cfg{
		Repo:     balanceRepo,
		Ledger:   ledger,
		Operator: operator,
	})
	asset := asset_usecase.New(&asset_usecase.Cfg{
		Repo:         assetRepo,
		Ledger:       ledger,
		Bank:         balance,
		TokenFactory: domain.Address(viper.GetString("ledger.tokenFactory")).ToLower(),
		NFTFactory:   domain.Address(viper.GetString("ledger.nftFactory")).ToLower(),
		Operator:     operator,
	})
	nftitem := nftitem_usecase.New(&nftitem_usecase.Cfg{
		Repo:   nftitemRepo,
		Ledger: ledger,
		Asset:  asset,
	})
	readTimeout := viper.GetDuration("ipfs.timeout")
	metadata := metadata_usecase.NewMetadataUseCase(&metadata_usecase.MetadataUseCaseCfg{
		HttpReader:    file_repository.NewHttpReaderRepo(http.Client{}, readTimeout, nil),
		IpfsReader:    file_repository.NewIpfsGatewayReaderRepo(http.Client{}, viper.GetString("ipfs.gateway"), readTimeout),
		DataUriReader: file_repository.NewDataUriReaderRepo(),
		Cache:         metadata_usecase.NewMetadataCache(redisCache),
	})
	marketplace := marketplace_usecase.New(&marketplace_usecase.Cfg{
		Repo:     listingRepo,
		Ledger:   ledger,
		Bank:     balance,
		Nft:      nftitem,
		Asset:    asset,
		Address:  marketplaceAddr,
		Metadata: metadata,
		Cache:    marketplace_usecase.NewListingCache(redisCache),
	})
	stakingPool := staking_usecase.New(&staking_usecase.Cfg{
		Repo:    stakingRepo,
		Ledger:  ledger,
		Bank:    balance,
		Address: stakingAddr,
	})
	poolCfg := staking.PoolConfig{
		StakingToken: domain.Address(viper.GetString("staking.token")).ToLower(),
		RewardToken:  domain.Address(viper.GetString("staking.rewardToken")).ToLower(),
		Owner:        operator,
	}
	if rate := etherConfig(context, "staking.rewardRate"); rate != nil {
		poolCfg.RewardRate = rate.MustBig()
	}
	if budget := etherConfig(context, "staking.rewardBudget"); budget != nil {
		poolCfg.RewardBudget = budget.MustBig()
	}
	if _, err := stakingPool.InitPool(context, poolCfg); err != nil {
		context.WithField("err", err).Panic("stakingPool.InitPool failed")
	}

	file := file_usecase.New(&file_usecase.Cfg{
		Pinner:  newPinner(context),
		Mirror:  newMirror(context),
		Gateway: viper.GetString("ipfs.gateway"),
	})
	hc := hc_usecase.New(hcRepo, ledger)

	admins := lo.Map(viper.GetStringSlice("admin.addresses"), func(a string, _ int) domain.Address {
		return domain.Address(a).ToLower()
	})
	auth := auth_usecase.New(&auth_usecase.Cfg{
		JwtSecret:   viper.GetString("jwt.secret"),
		Redis:       redisCache,
		MsgTemplate: viper.GetString("auth.signatureMsg"),
		Admins:      admins,
	})
	auth_middleware := auth_middleware.New(auth)

	hc_delivery.New(e, hc)
	auth_delivery.New(e, auth)
	ledger_delivery.New(e, ledger)
	balance_delivery.New(e, balance, auth_middleware)
	asset_delivery.New(e, asset, file, auth_middleware, httpCache)
	nftitem_delivery.New(e, nftitem, auth_middleware)
	marketplace_delivery.New(e, marketplace, auth_middleware)
	staking_delivery.New(e, stakingPool, auth_middleware)
	file_delivery.New(e, file, auth_middleware)

	// ens on ethereum
	if rpc := viper.GetString("ens.rpc"); rpc != "" {
		ensService, err := ens.New(rpc, redisCache)
		if err != nil {
			context.WithField("err", err).Panic("ens.New failed")
		}
		ens_delivery.New(e, ensService)
	} else {
		context.Warn("ens.rpc is not set, name resolution disabled")
	}

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	go func() {
		if err := e.Start(viper.GetString("http.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	// Use a buffered channel to avoid missing signals as recommended for signal.Notify
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	ctx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}
