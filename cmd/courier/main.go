package main

import (
	"context"
	"os"

	"github.com/Samir-atra/courtesy-agent/internal/channel"
	courierconfig "github.com/Samir-atra/courtesy-agent/internal/config"
	"github.com/Samir-atra/courtesy-agent/internal/contacts"
	"github.com/Samir-atra/courtesy-agent/internal/dispatch"
	"github.com/Samir-atra/courtesy-agent/internal/generate"
	"github.com/Samir-atra/courtesy-agent/internal/outreach"
	"github.com/Samir-atra/courtesy-agent/pkg/config"
	"github.com/Samir-atra/courtesy-agent/pkg/database"
	"github.com/Samir-atra/courtesy-agent/pkg/email"
	"github.com/Samir-atra/courtesy-agent/pkg/llm"
	"github.com/Samir-atra/courtesy-agent/pkg/logging"
	"github.com/Samir-atra/courtesy-agent/pkg/version"
)

func main() {
	// Setup logger
	logger := logging.NewLoggerWithService("courier")

	// Load environment variables
	config.LoadEnv(logger)

	logger.WithFields(logging.Fields{
		"version": version.Version,
		"commit":  version.GetShortCommit(),
	}).Info("Starting Courier (courtesy message dispatcher)")

	cfg := courierconfig.LoadConfig()
	ctx := context.Background()

	provider, err := llm.NewProvider(llm.Config{
		Provider:  cfg.LLMProvider,
		APIKey:    cfg.LLMAPIKey,
		APIURL:    cfg.LLMAPIURL,
		MaxTokens: cfg.LLMMaxTokens,
	})
	if err != nil {
		logger.WithError(err).Fatal("Failed to create LLM provider")
	}

	generator := generate.New(generate.Config{
		Provider:       provider,
		Candidates:     cfg.ModelCandidates,
		QuotaCooldown:  cfg.QuotaCooldown,
		RetryBudget:    cfg.RetryBudget,
		PromptTemplate: cfg.PromptTemplate,
		SenderName:     cfg.SenderName,
		Logger:         logger,
	})

	var sender channel.EmailSender
	if cfg.SMTPHost != "" {
		sender = email.NewSender(email.Config{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			User:     cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			From:     cfg.SenderEmail,
			FromName: cfg.SenderName,
		})
	} else if !cfg.SimulateEmail {
		logger.Warn("SMTP_HOST not set - email deliveries will fail with no_transport")
	}

	adapters := map[contacts.Platform]channel.Adapter{
		contacts.PlatformEmail: channel.NewEmailAdapter(channel.EmailAdapterConfig{
			Sender:   sender,
			Simulate: cfg.SimulateEmail,
			Logger:   logger,
		}),
		contacts.PlatformNetwork: channel.NewNetworkAdapter(logger),
	}

	var journal dispatch.Journal
	var store *outreach.SQLStore
	if cfg.DatabaseURL != "" {
		dbConfig := database.DefaultConfig()
		dbConfig.URL = cfg.DatabaseURL
		db := database.MustConnect(dbConfig, logger)
		defer func() { _ = db.Close() }()

		store = outreach.NewStore(db)
		if err := store.EnsureSchema(ctx); err != nil {
			logger.WithError(err).Fatal("Failed to prepare outreach journal")
		}
		journal = store
	} else {
		logger.Debug("DATABASE_URL not set - outreach journal disabled")
	}

	list, err := contacts.LoadCSV(cfg.ContactsFile)
	if err != nil {
		logger.WithError(err).Fatal("Failed to load contacts")
	}
	if len(list) == 0 {
		logger.WithField("file", cfg.ContactsFile).Warn("Contact list is empty, nothing to do")
	}

	dispatcher := dispatch.New(dispatch.Config{
		Generator:      generator,
		Adapters:       adapters,
		Journal:        journal,
		Logger:         logger,
		MessageContext: cfg.MessageContext,
		StopOnError:    cfg.StopOnError,
		Pacing:         cfg.SendPacing,
	})

	report := dispatcher.Run(ctx, list)

	if store != nil {
		if count, err := store.CountForRun(ctx, report.RunID); err != nil {
			logger.WithError(err).Warn("Failed to count journaled outcomes")
		} else {
			logger.WithFields(logging.Fields{
				"run_id":    report.RunID,
				"journaled": count,
			}).Info("Outcomes journaled")
		}
	}

	logger.WithFields(logging.Fields{
		"run_id":    report.RunID,
		"delivered": report.Delivered,
		"simulated": report.Simulated,
		"failed":    report.Failed,
		"aborted":   report.Aborted,
	}).Info("Run summary")

	if !report.Clean() {
		os.Exit(1)
	}
}
