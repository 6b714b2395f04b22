package contentful

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"curator/internal/identity"
)

// Preview talks to the Contentful Preview API, which sees unpublished assets.
// The asset index refresh goes through here so draft uploads still count as
// existing.
type Preview struct {
	api apiClient
}

// NewPreview builds a preview client from the shared config.
func NewPreview(cfg Config) *Preview {
	base := strings.TrimRight(cfg.PreviewURL, "/")
	if base == "" {
		base = defaultPreviewURL
	}
	return &Preview{
		api: apiClient{
			baseURL: base,
			token:   cfg.CPAToken,
			space:   cfg.SpaceID,
			env:     cfg.EnvironmentID,
			client:  cfg.httpClient(),
		},
	}
}

// ListAssetIDs returns one page of asset ids.
func (p *Preview) ListAssetIDs(ctx context.Context, limit, skip int) ([]identity.AssetID, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("skip", strconv.Itoa(skip))

	var collection assetCollection
	if err := p.api.doJSON(ctx, http.MethodGet, p.api.environmentPath("/assets"), query, 0, nil, &collection); err != nil {
		return nil, err
	}

	ids := make([]identity.AssetID, 0, len(collection.Items))
	for _, item := range collection.Items {
		ids = append(ids, identity.AssetID(item.Sys.ID))
	}
	return ids, nil
}
