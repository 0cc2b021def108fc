package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/mtnworks/gt-client/internal/adapters/httpapi"
	identityenv "github.com/mtnworks/gt-client/internal/adapters/identity/env"
	tomlinv "github.com/mtnworks/gt-client/internal/adapters/inventory/toml"
	filecache "github.com/mtnworks/gt-client/internal/adapters/tokencache/file"
	"github.com/mtnworks/gt-client/internal/application"
	"github.com/mtnworks/gt-client/internal/ports"
	"github.com/mtnworks/gt-client/pkg/logger"
)

type app struct {
	config    appConfig
	session   *application.SessionService
	trade     *application.TradeService
	client    *httpapi.Client
	inventory ports.WorldInventory
}

type appConfig struct {
	ServerURL    string
	PlayerName   string
	PlayerHandle string
	AuthTicket   string
	LogLevel     string
	DataDir      string
}

func wireApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	if err := logger.Init(logger.Config{
		Level:      cfg.LogLevel,
		OutputFile: filepath.Join(cfg.DataDir, "logs", "gt.log"),
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     14,
		Compress:   true,
	}); err != nil {
		return nil, fmt.Errorf("wire logger: %w", err)
	}

	identity := identityenv.NewProvider(cfg.PlayerHandle, cfg.PlayerName, cfg.AuthTicket)
	cache := filecache.NewCache(filepath.Join(cfg.DataDir, "token.json"))

	client := httpapi.NewClient(cfg.ServerURL)
	session := application.NewSessionService(identity, cache, client, ports.SystemClock{}, ports.GoScheduler{})
	client.BindSession(session)

	inventory, err := tomlinv.NewStore(filepath.Join(cfg.DataDir, "inventory.toml"))
	if err != nil {
		return nil, fmt.Errorf("wire inventory store: %w", err)
	}

	return &app{
		config:    cfg,
		session:   session,
		trade:     application.NewTradeService(client, inventory),
		client:    client,
		inventory: inventory,
	}, nil
}

// loadConfig reads ~/.galactic-trade/config.toml when present and lets
// GT_-prefixed environment variables override it (GT_SERVER_URL,
// GT_PLAYER_NAME, GT_PLAYER_HANDLE, GT_AUTH_TICKET, GT_LOG_LEVEL).
func loadConfig() (appConfig, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return appConfig{}, fmt.Errorf("resolve home directory: %w", err)
	}
	dataDir := filepath.Join(homeDir, ".galactic-trade")

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(dataDir)
	v.SetEnvPrefix("GT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.url", "http://localhost:5000")
	v.SetDefault("player.name", "")
	v.SetDefault("player.handle", "")
	v.SetDefault("auth.ticket", "")
	v.SetDefault("log.level", "info")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return appConfig{}, fmt.Errorf("read config file: %w", err)
		}
	}

	return appConfig{
		ServerURL:    v.GetString("server.url"),
		PlayerName:   v.GetString("player.name"),
		PlayerHandle: v.GetString("player.handle"),
		AuthTicket:   v.GetString("auth.ticket"),
		LogLevel:     v.GetString("log.level"),
		DataDir:      dataDir,
	}, nil
}
