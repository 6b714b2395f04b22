package config

const (
	defaultEnvironmentID = "master"
	defaultManagementURL = "https://api.contentful.com"
	defaultPreviewURL    = "https://preview.contentful.com"
	defaultAssetIDsPath  = "~/.cache/curator/assetIds.json"
	defaultLogLevel      = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Contentful: Contentful{
			EnvironmentID: defaultEnvironmentID,
			ManagementURL: defaultManagementURL,
			PreviewURL:    defaultPreviewURL,
		},
		Cache: Cache{
			AssetIDsPath: defaultAssetIDsPath,
		},
		Logging: Logging{
			Level: defaultLogLevel,
		},
	}
}
