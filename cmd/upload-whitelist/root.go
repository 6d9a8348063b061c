package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ArowuTest/voting-whitelist-loader/internal/config"
	mongorepo "github.com/ArowuTest/voting-whitelist-loader/internal/repositories/mongodb"
	"github.com/ArowuTest/voting-whitelist-loader/internal/utils"
	"github.com/ArowuTest/voting-whitelist-loader/pkg/mongodb"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "upload-whitelist",
		Short:         "Upload Aadhaar numbers to MongoDB",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runUpload,
	}

	flags := cmd.Flags()
	flags.String("file", "", "Path to CSV file containing Aadhaar numbers")
	flags.String("db", config.GetEnv("MONGODB_URI", config.DefaultMongoURI), "MongoDB connection string")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func runUpload(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}

	logger := newLogger(cmd, cfg.LogLevel)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	connectCtx, cancel := context.WithTimeout(ctx, cfg.MongoDB.ConnectTimeout)
	defer cancel()

	client, err := mongodb.NewClient(connectCtx, cfg.MongoDB.URI)
	if err != nil {
		return errors.Wrap(err, "failed to connect to MongoDB")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Warnf("Error disconnecting from MongoDB: %v", err)
		}
	}()
	logger.Infof("Connected to MongoDB database %s", cfg.MongoDB.Database)

	repo := mongorepo.NewWhitelistRepository(client.Database(cfg.MongoDB.Database), cfg.Whitelist.Collection)

	indexCtx, cancelIndex := context.WithTimeout(ctx, cfg.MongoDB.OperationTimeout)
	defer cancelIndex()
	if err := repo.EnsureIndexes(indexCtx); err != nil {
		// Upserts stay correct without the index; only concurrent loaders lose the guarantee.
		logger.Warnf("Could not ensure whitelist index: %v", err)
	}

	importer := utils.NewWhitelistImporter(repo, cfg.Whitelist.Column, cfg.MongoDB.OperationTimeout, logger)
	if _, err := importer.ImportFile(ctx, cfg.Whitelist.File); err != nil {
		return errors.Wrap(err, "failed to process CSV file")
	}
	return nil
}

func newLogger(cmd *cobra.Command, level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(cmd.OutOrStdout())
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logger.Warnf("Unknown log level %q, using info", level)
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)
	return logger
}

// Execute runs the command and exits non-zero on fatal errors.
func Execute() {
	// Missing .env is fine, the environment may already be set.
	_ = godotenv.Load()

	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(cmd.OutOrStdout(), err.Error())
		os.Exit(1)
	}
}
