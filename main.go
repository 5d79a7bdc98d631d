package main

import (
	"context"

	"assignment-bot/internal"
	"assignment-bot/internal/apiclient"
	"assignment-bot/internal/apperror"
	"assignment-bot/internal/services"
	"assignment-bot/internal/web"
	"assignment-bot/internal/web/routes"
	"assignment-bot/internal/workflow"

	"github.com/google/go-github/v68/github"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	_ "time/tzdata"
)

func initializeGithubClient(ctx context.Context, config internal.Configuration, logger *zap.Logger) *github.Client {
	client, err := services.NewGitHubClient(config.GithubAPIURL, config.GithubToken, config.GithubUserAgent)
	if err != nil {
		logger.Fatal("failed to build GitHub client", zap.Error(err))
	}

	user, _, err := client.Users.Get(ctx, "")
	if err != nil {
		logger.Warn("failed to authenticate with GitHub API", zap.Error(err))
		return client
	}
	logger.Info("authenticated with GitHub API", zap.String("username", user.GetLogin()))

	return client
}

func main() {
	// A missing .env file is fine; the process environment is used as is.
	_ = godotenv.Load()

	config, err := internal.LoadConfiguration()
	logger := internal.NewLogger(config.LogLevel, config.LogFormat)
	defer logger.Sync()
	if err != nil {
		if apperror.KindOf(err) != apperror.KindConfiguration {
			logger.Fatal("failed to load configuration", zap.Error(err))
		}
		// Serve anyway; every webhook answers 500 until the settings exist.
		logger.Error("incomplete configuration", zap.Strings("missing", config.Missing()))
	}
	logger.Info("starting server")

	ctx := context.Background()
	githubClient := initializeGithubClient(ctx, config, logger)

	api := apiclient.New(map[apiclient.Service]string{
		apiclient.Calendly: config.CalendlyAPIURL,
		apiclient.ClickUp:  config.ClickUpAPIURL,
	})

	repos := services.NewGitHubService(githubClient, config.GithubOrg, config.GithubTemplateRepo)
	scheduler := services.NewCalendlyService(api, config.CalendlyToken, config.CalendlyUserURI)
	tasks := services.NewClickUpService(api, services.ClickUpOptions{
		Token:       config.ClickUpToken,
		ListID:      config.ClickUpListID,
		RepoFieldID: config.ClickUpRepoFieldID,
		PRFieldID:   config.ClickUpPRFieldID,
	})

	e := web.NewServer(logger, config.Missing())
	routes.CreateRoutes(e, &routes.WebhookController{
		Forms:         workflow.NewFormSubmission(repos, scheduler, tasks),
		Reviews:       workflow.NewReviewRequest(repos, tasks, config.GithubReviewerID),
		WebhookSecret: []byte(config.GithubWebhookSecret),
	})

	logger.Info("server started", zap.String("port", config.Port))
	if err := e.Start(":" + config.Port); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
