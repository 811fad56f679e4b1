package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"

	"chat-relay/domain"
	"chat-relay/infrastructure/ws"
	"chat-relay/moderation"
	"chat-relay/observability"
	"chat-relay/repositories"
	"chat-relay/runtime"
	"chat-relay/runtime/workers"
	"chat-relay/services"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, manages the server lifecycle, and centralizes error reporting.
// This pattern is preferred over calling os.Exit or panic directly because:
// 1. It ensures all 'defer' statements (like database cleanup) are executed before the program exits.
// 2. It improves testability by decoupling the initialization logic from the main entry point.
// 3. It provides a structured way to handle graceful shutdowns for the gateway and background workers.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Database (BadgerDB)
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.INFO))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	messageRepository := repositories.NewMessageRepository(db, log, config.LimitMessages)
	groupRepository := repositories.NewGroupRepository(db)
	userDirectory := repositories.NewUserDirectory(db)

	if config.SeedFilepath != "" {
		if err = seed(config.SeedFilepath, groupRepository, userDirectory); err != nil {
			return fmt.Errorf("seeding failed: %w", err)
		}
	}

	// 3. Routing state, delivery pipeline, supervision
	metrics := &observability.DeliveryMetrics{}
	registry := runtime.NewRegistry()
	rooms := runtime.NewRooms()
	delivery := runtime.NewDelivery(log, registry, rooms, messageRepository,
		metrics, config.NumberOfDeliveryWorkers, config.BufferSize)

	supervisor := workers.NewSupervisor(log, config.RestartInterval)
	supervisor.Add(delivery.Workers()...)
	supervisor.Add(workers.NewReporter(log, metrics, config.MetricInterval))

	moderator, err := buildModerator(config, log)
	if err != nil {
		return fmt.Errorf("moderation setup failed: %w", err)
	}

	chatService := services.NewChatService(log, registry, rooms, delivery,
		messageRepository, groupRepository, userDirectory, moderator, metrics)

	// 4. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go supervisor.Run(ctx)

	// 5. Websocket gateway
	gateway := ws.NewGateway(log, chatService, []byte(config.TokenSecret), config.ConnectionBufferSize)
	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	server := &http.Server{Addr: address, Handler: gateway.Handler()}

	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting websocket gateway", "address", address, "at", time.Now().UTC())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("gateway error: %w", err)
		}
	}()

	// 6. Wait for Stop or Error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err := <-errChan:
		return err
	}

	// 7. Final Cleanup
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = server.Shutdown(shutdownCtx)
	supervisor.Stop()
	log.Info("Program stopped cleanly")

	return nil
}

// buildModerator loads the banned word list when one is configured.
// No word list means moderation is disabled.
func buildModerator(config Config, log *slog.Logger) (*moderation.Moderator, error) {
	if config.ModerationWordsFilepath == "" {
		return nil, nil
	}

	content, err := os.ReadFile(config.ModerationWordsFilepath)
	if err != nil {
		return nil, err
	}
	var words []string
	for _, line := range strings.Split(string(content), "\n") {
		if word := strings.TrimSpace(line); word != "" {
			words = append(words, word)
		}
	}

	replacement, err := characterRune(config.ModerationCharReplacement)
	if err != nil {
		return nil, err
	}
	moderator, err := moderation.NewModerator(words, replacement, log)
	if err != nil {
		return nil, err
	}
	return &moderator, nil
}

func characterRune(str string) (rune, error) {
	r := []rune(str)
	if len(r) != 1 {
		return 0, fmt.Errorf(
			"MODERATION_CHARACTER_REPLACEMENT must be a single character, got %q",
			str,
		)
	}
	return r[0], nil
}

// seedFile is a development fixture: users for the directory and groups with
// their rosters. Production data comes from the external collaborators.
type seedFile struct {
	Users  []repositories.User `json:"users"`
	Groups []struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Members []struct {
			ID          string `json:"id"`
			DisplayName string `json:"display_name"`
		} `json:"members"`
	} `json:"groups"`
}

func seed(path string, groups repositories.IGroupRepository, users repositories.IUserDirectory) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var fixture seedFile
	if err = json.Unmarshal(content, &fixture); err != nil {
		return err
	}

	for _, user := range fixture.Users {
		if err = users.UpsertUser(user); err != nil {
			return err
		}
	}
	for _, group := range fixture.Groups {
		members := make([]domain.Member, 0, len(group.Members))
		for _, m := range group.Members {
			members = append(members, domain.Member{ID: m.ID, DisplayName: m.DisplayName})
		}
		if err = groups.UpsertGroup(repositories.NewGroup(group.ID, group.Name, members)); err != nil {
			return err
		}
	}
	return nil
}
