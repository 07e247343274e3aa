package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/slack-go/slack"
)

func main() {
	config := loadConfig()

	// Initialize logger with configured level
	SetLogLevel(config.LogLevel)

	if config.SlackBotToken == "" {
		Fatal("SLACK_BOT_TOKEN is required")
	}
	if config.LinearAPIKey == "" {
		Fatal("LINEAR_API_KEY is required")
	}
	if config.LinearTeamID == "" {
		Fatal("LINEAR_TEAM_ID is required")
	}

	components, err := loadComponents(config.ComponentsFile)
	if err != nil {
		Fatal("Failed to load component catalog: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup Redis client for SlackLiner confirmations, if configured
	var rdb *redis.Client
	if config.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     config.RedisAddr,
			Password: config.RedisPassword,
			DB:       0,
		})
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			Fatal("Failed to connect to Redis: %v", err)
		}
		Info("Connected to Redis")
	}

	// Setup Slack client
	slackClient := slack.New(config.SlackBotToken)

	bridge := NewBridge(
		config,
		components,
		NewSlackGateway(slackClient),
		NewLinearClient(config.LinearURL, config.LinearAPIKey, config.LinearTeamID, config.LinearBaseLabelID),
		rdb,
	)

	server := &http.Server{
		Addr:    config.ListenAddr,
		Handler: bridge.Router(),
	}

	go func() {
		Info("SlashVibeLinear listening on %s", config.ListenAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			Fatal("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	Info("Shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		Error("Error during shutdown: %v", err)
	}
}
