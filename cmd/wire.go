package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bnema/saveslots/internal/adapters/cloud"
	slotsrender "github.com/bnema/saveslots/internal/adapters/render/slots"
	tomlrepo "github.com/bnema/saveslots/internal/adapters/repo/toml"
	chainstore "github.com/bnema/saveslots/internal/adapters/storage/chain"
	filestore "github.com/bnema/saveslots/internal/adapters/storage/file"
	"github.com/bnema/saveslots/internal/application"
	"github.com/bnema/saveslots/internal/logging"
	"github.com/bnema/saveslots/internal/ports"
	"github.com/bnema/saveslots/internal/telemetry"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	configName = "config"
	configType = "toml"
	envPrefix  = "SAVESLOTS"

	localRootKey       = "storage.local.root"
	cloudBaseURLKey    = "cloud.base_url"
	cloudTokenKey      = "cloud.token"
	cloudTimeoutKey    = "cloud.timeout"
	logLevelKey        = "log.level"
	logDevelopmentKey  = "log.development"
	defaultLocalFolder = "local"
)

type app struct {
	logger   *zap.Logger
	metrics  *telemetry.Metrics
	deps     application.Dependencies
	renderer func([]application.Slot, slotsrender.RenderOptions) (string, error)
	newID    func() string
	now      func() time.Time
}

func wireApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(logging.Config{
		Level:       cfg.GetString(logLevelKey),
		Development: cfg.GetBool(logDevelopmentKey),
	})
	if err != nil {
		return nil, fmt.Errorf("wire logger: %w", err)
	}

	metrics, err := telemetry.NewMetrics(prometheus.NewRegistry())
	if err != nil {
		return nil, fmt.Errorf("wire metrics: %w", err)
	}

	profile, err := tomlrepo.NewProfileRepository(cfg)
	if err != nil {
		return nil, fmt.Errorf("wire profile repository: %w", err)
	}

	loadouts, err := tomlrepo.NewLoadoutCatalog(cfg)
	if err != nil {
		return nil, fmt.Errorf("wire loadout catalog: %w", err)
	}

	local := filestore.NewStore(cfg.GetString(localRootKey))
	remote, source, err := wireRemote(cfg, local)
	if err != nil {
		return nil, err
	}

	return &app{
		logger:  logger,
		metrics: metrics,
		deps: application.Dependencies{
			Profile:  profile,
			Remote:   remote,
			Local:    local,
			Loadouts: loadouts,
			Clock:    ports.SystemClock{},
			Location: time.Local,
			Source:   source,
		},
		renderer: slotsrender.Render,
		newID:    uuid.NewString,
		now:      time.Now,
	}, nil
}

// wireRemote returns the remote target and the store the coordinator reads.
// Without a cloud endpoint the remote blob lives next to the local mirror.
func wireRemote(cfg *viper.Viper, local *filestore.Store) (ports.BlobStore, ports.BlobStore, error) {
	baseURL := cfg.GetString(cloudBaseURLKey)
	if baseURL == "" {
		return local, local, nil
	}

	remote, err := cloud.NewStore(cloud.Config{
		BaseURL: baseURL,
		Token:   cfg.GetString(cloudTokenKey),
		Timeout: cfg.GetDuration(cloudTimeoutKey),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("wire cloud store: %w", err)
	}

	source, err := chainstore.NewStoreChecked(remote, local, chainstore.KeyMap{
		application.RemoteSessionsKey: application.LocalSessionsKey,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("wire session source: %w", err)
	}

	return remote, source, nil
}

func loadConfig() (*viper.Viper, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}
	configDir := filepath.Join(homeDir, tomlrepo.ConfigDir)

	cfg := viper.New()
	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(configDir)
	cfg.SetEnvPrefix(envPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	cfg.SetDefault(localRootKey, filepath.Join(configDir, defaultLocalFolder))
	cfg.SetDefault(cloudTimeoutKey, "30s")
	cfg.SetDefault(logLevelKey, "warn")
	cfg.SetDefault(logDevelopmentKey, false)

	if err := cfg.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	return cfg, nil
}

// open builds the components for one run and waits for the registry to be
// seeded, the same way the game does on login.
func (a *app) open(ctx context.Context) (*application.SaveSlots, error) {
	slots := application.NewSaveSlots(a.deps,
		application.WithLogger(a.logger),
		application.WithMetrics(a.metrics),
	)

	result, err := slots.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialize preserved sessions: %w", err)
	}
	a.logger.Debug("preserved sessions initialized",
		zap.String("source", result.Source),
		zap.Int("slots", result.Slots))

	return slots, nil
}
