package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	_AuthorRepo "github.com/semka95/authors/author/repository"
	_AuthorUcase "github.com/semka95/authors/author/usecase"
	"github.com/semka95/authors/cmd"
	"github.com/semka95/authors/domain"
	"github.com/semka95/authors/metrics"
	"github.com/semka95/authors/validation"
)

// withUsecase builds the lookup stack, runs fn and tears the stack down.
func withUsecase(ctx context.Context, flags *globalFlags, fn func(domain.AuthorUsecase) error) error {
	logger, err := newLogger(flags.verbose)
	if err != nil {
		return fmt.Errorf("can't create logger: %w", err)
	}
	defer func() {
		// do not need to check for errors
		_ = logger.Sync()
	}()

	configPath, err := cmd.ConfigPath(flags.configPath)
	if err != nil {
		return err
	}
	logger.Debug("config path", zap.String("path", configPath))

	v, err := validation.NewAppValidator()
	if err != nil {
		return err
	}

	cfg, err := cmd.AppConfig(configPath, v, logger)
	if err != nil {
		return err
	}

	tel, err := cmd.InitTelemetry(ctx, cfg, "authors-cli", logger)
	if err != nil {
		return fmt.Errorf("can't init telemetry: %w", err)
	}
	defer func() {
		if err := tel.Shutdown(context.WithoutCancel(ctx)); err != nil {
			logger.Error("shutdown telemetry", zap.Error(err))
		}
	}()

	lookups, err := metrics.NewLookupRecorder(metrics.WithMeterProvider(tel.MeterProvider))
	if err != nil {
		return fmt.Errorf("can't create lookup metrics: %w", err)
	}

	ar, err := _AuthorRepo.NewFixtureAuthorRepository(_AuthorRepo.Fixture(), v, logger, tel.Tracer)
	if err != nil {
		return fmt.Errorf("author repository creation failed: %w", err)
	}
	au := _AuthorUcase.NewAuthorUsecase(ar, cfg.LookupTimeout(), tel.Tracer, lookups)

	return fn(au)
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}

	return cfg.Build(zap.AddCaller())
}
