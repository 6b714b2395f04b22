package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateSource(); err != nil {
		return err
	}
	if err := c.validateContentful(); err != nil {
		return err
	}
	if err := c.validateImages(); err != nil {
		return err
	}
	if c.Cache.AssetIDsPath == "" {
		return errors.New("cache.asset_ids_path must be set")
	}
	return nil
}

func (c *Config) validateSource() error {
	if c.Source.DatabaseURL == "" {
		return fmt.Errorf("source.database_url is required. Set %s or edit the config file (create with 'curator config init')", envDatabaseURL)
	}
	return nil
}

func (c *Config) validateContentful() error {
	if c.Contentful.SpaceID == "" {
		return errors.New("contentful.space_id must be set")
	}
	if c.Contentful.EnvironmentID == "" {
		return errors.New("contentful.environment_id must be set")
	}
	if c.Contentful.CMAToken == "" {
		return fmt.Errorf("contentful.cma_token is required. Set %s or edit the config file", envCMAToken)
	}
	if c.Contentful.CPAToken == "" {
		return fmt.Errorf("contentful.cpa_token is required. Set %s or edit the config file", envCPAToken)
	}
	return nil
}

func (c *Config) validateImages() error {
	if c.Images.ServerURL == "" {
		return fmt.Errorf("images.server_url is required. Set %s or edit the config file", envImageServer)
	}
	if _, err := url.Parse(c.Images.ServerURL); err != nil {
		return fmt.Errorf("images.server_url is not a valid URL: %w", err)
	}
	return nil
}
