package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"curator/internal/assetindex"
	"curator/internal/config"
	"curator/internal/contentful"
	"curator/internal/locale"
	"curator/internal/logging"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		c.config, c.configErr = config.Load(path)
	})
	return c.config, c.configErr
}

// runtime bundles the shared collaborators of one migration run: logger,
// API clients, and the asset index.
type runtime struct {
	cfg     *config.Config
	logger  *slog.Logger
	mgmt    *contentful.Management
	preview *contentful.Preview
	index   *assetindex.Index
}

func (c *commandContext) newRuntime() (*runtime, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if err := locale.Validate(); err != nil {
		return nil, err
	}

	logger, err := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	logger = logger.With(logging.String("run_id", uuid.NewString()))

	apiCfg := contentful.Config{
		SpaceID:       cfg.Contentful.SpaceID,
		EnvironmentID: cfg.Contentful.EnvironmentID,
		CMAToken:      cfg.Contentful.CMAToken,
		CPAToken:      cfg.Contentful.CPAToken,
		ManagementURL: cfg.Contentful.ManagementURL,
		PreviewURL:    cfg.Contentful.PreviewURL,
	}
	preview := contentful.NewPreview(apiCfg)

	return &runtime{
		cfg:     cfg,
		logger:  logger,
		mgmt:    contentful.NewManagement(apiCfg, logger),
		preview: preview,
		index:   assetindex.New(cfg.Cache.AssetIDsPath, preview, logger),
	}, nil
}

// acquireRunLock takes the advisory lock guarding the asset index. Two
// concurrent runs could both pass the contains check for a never-before-seen
// uid and upload it twice, so only one process may migrate at a time.
func (r *runtime) acquireRunLock() (release func(), err error) {
	lock := flock.New(r.cfg.Cache.AssetIDsPath + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("another curator run holds %s", lock.Path())
	}
	return func() {
		if err := lock.Unlock(); err != nil {
			r.logger.Warn("release run lock", logging.Error(err))
		}
	}, nil
}
