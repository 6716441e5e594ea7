package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/viper"

	"github.com/ougirez/econdash/internal/api"
	"github.com/ougirez/econdash/internal/pkg/cache"
	"github.com/ougirez/econdash/internal/pkg/config"
	"github.com/ougirez/econdash/internal/pkg/constants"
	"github.com/ougirez/econdash/internal/pkg/logger"
	"github.com/ougirez/econdash/internal/pkg/store"
	"github.com/ougirez/econdash/internal/pkg/store/memstore"
	"github.com/ougirez/econdash/internal/pkg/store/xpgx"
	"github.com/ougirez/econdash/internal/service/aggregation"
	"github.com/ougirez/econdash/internal/service/conversion"
	"github.com/ougirez/econdash/internal/service/dashboard"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := logger.Init(viper.GetString(constants.ViperLogLevel), viper.GetString(constants.ViperLogEncoding)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, closeStore, err := openStore(ctx)
	if err != nil {
		logger.Fatal(ctx, err)
	}
	defer closeStore()

	dash, closeCache, err := newDashboard(ctx, st)
	if err != nil {
		logger.Fatal(ctx, err)
	}
	defer closeCache()

	svc := api.NewAPIService(dash, api.Options{
		CORSOrigins: viper.GetStringSlice(constants.ViperHTTPCORSOrigins),
		DefaultYear: viper.GetInt(constants.ViperDashboardDefaultYear),
		LogLevel:    viper.GetString(constants.ViperLogLevel),
	})

	errCh := make(chan error, 1)
	go func() {
		addr := viper.GetString(constants.ViperHTTPAddr)
		logger.Infof(ctx, "listening on %s", addr)
		errCh <- svc.Serve(addr)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Fatal(ctx, err)
		}
	case <-ctx.Done():
		logger.Info(context.Background(), "shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := svc.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(shutdownCtx, "shutdown: %s", err.Error())
	}
}

func openStore(ctx context.Context) (store.Store, func(), error) {
	switch driver := viper.GetString(constants.ViperStoreDriver); driver {
	case constants.StoreDriverMemory:
		path := viper.GetString(constants.ViperStoreFixturePath)
		st, err := memstore.Load(path)
		if err != nil {
			return nil, nil, err
		}
		logger.Infof(ctx, "serving fixture %s", path)
		return st, func() {}, nil
	case constants.StoreDriverPostgres:
		pool, err := xpgx.Connect(ctx,
			viper.GetString(constants.ViperStoreDSN),
			viper.GetUint64(constants.ViperStoreConnectRetries),
		)
		if err != nil {
			return nil, nil, err
		}
		return store.NewStore(pool), pool.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", driver)
	}
}

func newDashboard(ctx context.Context, st store.Store) (*dashboard.Service, func(), error) {
	source, err := dashboard.ParseSource(viper.GetString(constants.ViperDashboardSource))
	if err != nil {
		return nil, nil, err
	}

	units, err := conversion.MetricUnitsFromConfig(viper.GetStringMapString(constants.ViperMetricsUnits))
	if err != nil {
		return nil, nil, err
	}

	opts := []dashboard.Option{
		dashboard.WithSource(source),
		dashboard.WithMetricUnits(units),
		dashboard.WithBuckets(aggregation.BucketsFromConfig(config.StringMapSlice(viper.GetViper(), constants.ViperMetricsAliases))),
	}

	closeCache := func() {}
	if addr := viper.GetString(constants.ViperCacheRedisAddr); addr != "" {
		rc, err := cache.NewRedis(ctx, addr, viper.GetDuration(constants.ViperCacheTTL))
		if err != nil {
			logger.Warnf(ctx, "redis cache disabled: %s", err.Error())
		} else {
			opts = append(opts, dashboard.WithCache(rc))
			closeCache = func() { _ = rc.Close() }
		}
	}

	return dashboard.NewService(st, opts...), closeCache, nil
}
