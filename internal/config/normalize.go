package config

import (
	"fmt"
	"os"
	"strings"
)

// Environment variables that override file values. The predecessor tooling
// was entirely env-driven, so operators expect secrets to come from the
// environment rather than living in a config file.
const (
	envDatabaseURL = "CURATOR_PG_URL"
	envCMAToken    = "CURATOR_CMA_TOKEN"
	envCPAToken    = "CURATOR_CPA_TOKEN"
	envImageServer = "CURATOR_IMAGE_SERVER"
)

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(envDatabaseURL)); v != "" {
		c.Source.DatabaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv(envCMAToken)); v != "" {
		c.Contentful.CMAToken = v
	}
	if v := strings.TrimSpace(os.Getenv(envCPAToken)); v != "" {
		c.Contentful.CPAToken = v
	}
	if v := strings.TrimSpace(os.Getenv(envImageServer)); v != "" {
		c.Images.ServerURL = v
	}
}

func (c *Config) normalize() error {
	c.Source.DatabaseURL = strings.TrimSpace(c.Source.DatabaseURL)
	c.Contentful.SpaceID = strings.TrimSpace(c.Contentful.SpaceID)
	c.Contentful.EnvironmentID = strings.TrimSpace(c.Contentful.EnvironmentID)
	c.Contentful.CMAToken = strings.TrimSpace(c.Contentful.CMAToken)
	c.Contentful.CPAToken = strings.TrimSpace(c.Contentful.CPAToken)
	c.Contentful.ManagementURL = strings.TrimRight(strings.TrimSpace(c.Contentful.ManagementURL), "/")
	c.Contentful.PreviewURL = strings.TrimRight(strings.TrimSpace(c.Contentful.PreviewURL), "/")
	c.Images.ServerURL = strings.TrimSpace(c.Images.ServerURL)

	expanded, err := expandPath(c.Cache.AssetIDsPath)
	if err != nil {
		return fmt.Errorf("cache.asset_ids_path: %w", err)
	}
	c.Cache.AssetIDsPath = expanded
	return nil
}
