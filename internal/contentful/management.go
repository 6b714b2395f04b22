package contentful

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"curator/internal/identity"
	"curator/internal/logging"
)

// Management talks to the Contentful Management API: asset creation and
// publishing, entry lookup, update, and publishing.
type Management struct {
	api    apiClient
	logger *slog.Logger

	processPollInterval time.Duration
	processPollAttempts int
}

// NewManagement builds a management client from the shared config.
func NewManagement(cfg Config, logger *slog.Logger) *Management {
	base := strings.TrimRight(cfg.ManagementURL, "/")
	if base == "" {
		base = defaultManagementURL
	}
	return &Management{
		api: apiClient{
			baseURL: base,
			token:   cfg.CMAToken,
			space:   cfg.SpaceID,
			env:     cfg.EnvironmentID,
			client:  cfg.httpClient(),
		},
		logger:              logging.NewComponentLogger(logger, "contentful"),
		processPollInterval: time.Second,
		processPollAttempts: 30,
	}
}

// GetAsset fetches one asset by id.
func (m *Management) GetAsset(ctx context.Context, id identity.AssetID) (*Asset, error) {
	var asset Asset
	path := m.api.environmentPath("/assets/" + url.PathEscape(string(id)))
	if err := m.api.doJSON(ctx, http.MethodGet, path, nil, 0, nil, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

// CreateAssetWithID creates an asset under a client-chosen id. The id must
// match the deterministic derivation so future runs find it in the index.
func (m *Management) CreateAssetWithID(ctx context.Context, id identity.AssetID, fields AssetFields) (*Asset, error) {
	var asset Asset
	path := m.api.environmentPath("/assets/" + url.PathEscape(string(id)))
	body := struct {
		Fields AssetFields `json:"fields"`
	}{Fields: fields}
	if err := m.api.doJSON(ctx, http.MethodPut, path, nil, 0, body, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

// ProcessAssetForAllLocales asks the platform to ingest the upload for every
// locale present on the asset's file field, then waits until processing has
// produced a served URL for each of them.
func (m *Management) ProcessAssetForAllLocales(ctx context.Context, asset *Asset) (*Asset, error) {
	locales := make([]string, 0, len(asset.Fields.File))
	for loc := range asset.Fields.File {
		locales = append(locales, loc)
	}
	if len(locales) == 0 {
		return nil, fmt.Errorf("asset %s has no file locales to process", asset.Sys.ID)
	}

	for _, loc := range locales {
		path := m.api.environmentPath(fmt.Sprintf("/assets/%s/files/%s/process", url.PathEscape(asset.Sys.ID), url.PathEscape(loc)))
		if err := m.api.doJSON(ctx, http.MethodPut, path, nil, asset.Sys.Version, nil, nil); err != nil {
			return nil, fmt.Errorf("process asset %s locale %s: %w", asset.Sys.ID, loc, err)
		}
	}
	return m.waitProcessed(ctx, identity.AssetID(asset.Sys.ID), locales)
}

// waitProcessed polls the asset until every locale's file has a URL.
// Processing is asynchronous on the platform side.
func (m *Management) waitProcessed(ctx context.Context, id identity.AssetID, locales []string) (*Asset, error) {
	for attempt := 0; attempt < m.processPollAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(m.processPollInterval):
			}
		}
		asset, err := m.GetAsset(ctx, id)
		if err != nil {
			return nil, err
		}
		if allProcessed(asset, locales) {
			return asset, nil
		}
		m.logger.Debug("asset still processing",
			logging.String("asset_id", string(id)),
			logging.Int("attempt", attempt+1))
	}
	return nil, fmt.Errorf("asset %s still processing after %d checks", id, m.processPollAttempts)
}

func allProcessed(asset *Asset, locales []string) bool {
	for _, loc := range locales {
		if asset.Fields.File[loc].URL == "" {
			return false
		}
	}
	return true
}

// PublishAsset publishes a processed asset.
func (m *Management) PublishAsset(ctx context.Context, asset *Asset) (*Asset, error) {
	var published Asset
	path := m.api.environmentPath("/assets/" + url.PathEscape(asset.Sys.ID) + "/published")
	if err := m.api.doJSON(ctx, http.MethodPut, path, nil, asset.Sys.Version, nil, &published); err != nil {
		return nil, err
	}
	return &published, nil
}

// EntryByIdentifier looks up the single entry of the given content type whose
// identifier field matches. The lookup locale only scopes the query; the
// match itself is locale independent. No match returns (nil, nil): the
// migration only updates pre-existing entries.
func (m *Management) EntryByIdentifier(ctx context.Context, contentType, locale, identifier string) (*Entry, error) {
	query := url.Values{}
	query.Set("content_type", contentType)
	query.Set("locale", locale)
	query.Set("fields.identifier", identifier)
	query.Set("limit", strconv.Itoa(1))

	var collection entryCollection
	if err := m.api.doJSON(ctx, http.MethodGet, m.api.environmentPath("/entries"), query, 0, nil, &collection); err != nil {
		return nil, err
	}
	if len(collection.Items) == 0 {
		return nil, nil
	}
	entry := collection.Items[0]
	return &entry, nil
}

// UpdateEntry writes the entry's fields back under its current version.
func (m *Management) UpdateEntry(ctx context.Context, entry *Entry) (*Entry, error) {
	var updated Entry
	path := m.api.environmentPath("/entries/" + url.PathEscape(entry.Sys.ID))
	body := struct {
		Fields map[string]map[string]any `json:"fields"`
	}{Fields: entry.Fields}
	if err := m.api.doJSON(ctx, http.MethodPut, path, nil, entry.Sys.Version, body, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// PublishEntry publishes an updated entry.
func (m *Management) PublishEntry(ctx context.Context, entry *Entry) (*Entry, error) {
	var published Entry
	path := m.api.environmentPath("/entries/" + url.PathEscape(entry.Sys.ID) + "/published")
	if err := m.api.doJSON(ctx, http.MethodPut, path, nil, entry.Sys.Version, nil, &published); err != nil {
		return nil, err
	}
	return &published, nil
}
