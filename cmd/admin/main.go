package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	_AuthorRepo "github.com/semka95/authors/author/repository"
	"github.com/semka95/authors/cmd"
	"github.com/semka95/authors/store"
	"github.com/semka95/authors/validation"
)

const usage = "usage: admin migrate|seed|status"

func main() {
	// Logging
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Println("can't create logger: ", err)
		os.Exit(1)
	}

	if err := run(os.Args[1:], os.Stdout, logger); err != nil {
		logger.Error("shutting down, error: ", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
	_ = logger.Sync()
}

func run(args []string, out io.Writer, logger *zap.Logger) error {
	if len(args) != 1 {
		return errors.New(usage)
	}
	switch args[0] {
	case "migrate", "seed", "status":
	default:
		return fmt.Errorf("unknown command %q, %s", args[0], usage)
	}

	configPath, err := cmd.ConfigPath("")
	if err != nil {
		return err
	}

	v, err := validation.NewAppValidator()
	if err != nil {
		return err
	}

	cfg, err := cmd.AppConfig(configPath, v, logger)
	if err != nil {
		return err
	}
	if err = v.Check(cfg.MongoConfig); err != nil {
		return fmt.Errorf("mongo config is not valid: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.AdminTimeout())
	defer cancel()

	client, err := store.Open(ctx, cfg.MongoConfig, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Error("mongodb client disconnect error: ", zap.Error(err))
		}
	}()

	switch args[0] {
	case "migrate":
		err = store.Migrate(client, cfg.MongoConfig.Name)
	case "seed":
		err = seed(ctx, client.Database(cfg.MongoConfig.Name), v, logger)
	case "status":
		err = status(ctx, client.Database(cfg.MongoConfig.Name), out)
	}

	return err
}

func seed(ctx context.Context, db *mongo.Database, v *validation.AppValidator, logger *zap.Logger) error {
	ar, err := _AuthorRepo.NewFixtureAuthorRepository(_AuthorRepo.Fixture(), v, logger, nil)
	if err != nil {
		return err
	}

	res, err := store.Publish(ctx, db, ar.List(ctx))
	if err != nil {
		return err
	}
	logger.Info("authors published",
		zap.Int64("inserted", res.Inserted),
		zap.Int64("updated", res.Updated),
	)

	return nil
}

func status(ctx context.Context, db *mongo.Database, out io.Writer) error {
	res, err := store.StatusCheck(ctx, db)
	if err != nil {
		return fmt.Errorf("status check failed: %w", err)
	}

	data, err := bson.MarshalExtJSONIndent(*res, false, false, "", "  ")
	if err != nil {
		return fmt.Errorf("can't encode status: %w", err)
	}

	_, err = fmt.Fprintln(out, string(data))
	return err
}
