package images

import (
	"context"
	"log/slog"
	"net/url"

	"curator/internal/alchemy"
	"curator/internal/contentful"
	"curator/internal/identity"
	"curator/internal/locale"
	"curator/internal/logging"
	"curator/internal/migrate"
)

// Assets without a title are rejected at publish time; titles longer than the
// platform's short-text limit are rejected at creation.
const maxTitleLength = 255

// AssetWriter is the slice of the management API the migrator needs.
type AssetWriter interface {
	CreateAssetWithID(ctx context.Context, id identity.AssetID, fields contentful.AssetFields) (*contentful.Asset, error)
	ProcessAssetForAllLocales(ctx context.Context, asset *contentful.Asset) (*contentful.Asset, error)
	PublishAsset(ctx context.Context, asset *contentful.Asset) (*contentful.Asset, error)
}

// Membership answers whether an asset id already exists remotely.
type Membership interface {
	Contains(ctx context.Context, id identity.AssetID) (bool, error)
}

// Migrator uploads source pictures as Contentful assets, skipping ids the
// index already knows.
type Migrator struct {
	index       Membership
	assets      AssetWriter
	imageServer string
	logger      *slog.Logger
}

// NewMigrator wires a migrator. imageServer is the base URL of the endpoint
// that serves source images by uid.
func NewMigrator(index Membership, assets AssetWriter, imageServer string, logger *slog.Logger) *Migrator {
	return &Migrator{
		index:       index,
		assets:      assets,
		imageServer: imageServer,
		logger:      logging.NewComponentLogger(logger, "images"),
	}
}

// Migrate processes one picture row. Remote write failures are captured on
// the returned outcome; the returned error is non-nil only for fatal
// conditions (an index that cannot be loaded).
func (m *Migrator) Migrate(ctx context.Context, picture alchemy.PictureRow) (migrate.Outcome, error) {
	assetID := identity.ForUID(picture.UID)

	exists, err := m.index.Contains(ctx, assetID)
	if err != nil {
		return migrate.Outcome{}, err
	}
	if exists {
		m.logger.Info("asset already exists",
			logging.String("uid", picture.UID),
			logging.String("asset_id", string(assetID)))
		return migrate.Outcome{Subject: picture.UID, Status: migrate.StatusExists, Detail: string(assetID)}, nil
	}

	asset, err := m.assets.CreateAssetWithID(ctx, assetID, m.assetFields(picture))
	if err != nil {
		return m.failed(picture, "create asset", err), nil
	}
	processed, err := m.assets.ProcessAssetForAllLocales(ctx, asset)
	if err != nil {
		return m.failed(picture, "process asset", err), nil
	}
	if _, err := m.assets.PublishAsset(ctx, processed); err != nil {
		return m.failed(picture, "publish asset", err), nil
	}

	m.logger.Info("asset created",
		logging.String("uid", picture.UID),
		logging.String("asset_id", string(assetID)))
	return migrate.Outcome{Subject: picture.UID, Status: migrate.StatusPublished, Detail: string(assetID)}, nil
}

// assetFields builds the creation payload. The title falls back to the file
// name because the platform refuses to publish untitled assets.
func (m *Migrator) assetFields(picture alchemy.PictureRow) contentful.AssetFields {
	title := picture.Title
	if title == "" {
		title = picture.FileName
	}
	if len(title) > maxTitleLength {
		title = title[:maxTitleLength]
	}

	var contentType string
	if picture.Format != "" {
		contentType = "image/" + picture.Format
	}

	return contentful.AssetFields{
		Title: map[string]string{locale.Default: title},
		File: map[string]contentful.FileField{
			locale.Default: {
				ContentType: contentType,
				FileName:    picture.FileName,
				Upload:      m.imageServer + url.QueryEscape(picture.UID),
			},
		},
	}
}

func (m *Migrator) failed(picture alchemy.PictureRow, operation string, err error) migrate.Outcome {
	wrapped := migrate.Wrap(migrate.ErrRemote, "images", picture.UID, operation, err)
	m.logger.Error("picture migration failed",
		logging.String("uid", picture.UID),
		logging.Error(err))
	return migrate.Outcome{Subject: picture.UID, Status: migrate.StatusFailed, Detail: operation, Err: wrapped}
}
