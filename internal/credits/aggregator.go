package credits

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"curator/internal/alchemy"
	"curator/internal/contentful"
	"curator/internal/identity"
	"curator/internal/locale"
	"curator/internal/logging"
	"curator/internal/migrate"
	"curator/internal/richtext"
)

// EntryContentType is the Contentful content type holding exhibition pages.
const EntryContentType = "exhibitionPage"

const creditsField = "credits"

// EssenceSource resolves typed content fragments from the relational store.
type EssenceSource interface {
	FetchEssence(ctx context.Context, ref alchemy.EssenceRef) (*alchemy.EssenceData, error)
}

// Platform is the slice of the management API the aggregator needs.
type Platform interface {
	EntryByIdentifier(ctx context.Context, contentType, locale, identifier string) (*contentful.Entry, error)
	UpdateEntry(ctx context.Context, entry *contentful.Entry) (*contentful.Entry, error)
	PublishEntry(ctx context.Context, entry *contentful.Entry) (*contentful.Entry, error)
	GetAsset(ctx context.Context, id identity.AssetID) (*contentful.Asset, error)
}

// Membership answers whether an asset id already exists remotely.
type Membership interface {
	Contains(ctx context.Context, id identity.AssetID) (bool, error)
}

// Document is one exhibition's credit content: the document key and, per
// source locale, the page essences in authored order.
type Document struct {
	Key     string
	Locales map[string][]alchemy.EssenceRef
}

// Aggregator folds credit page rows into locale-keyed markdown documents and
// pushes them onto pre-existing remote entries.
type Aggregator struct {
	source EssenceSource
	remote Platform
	index  Membership
	conv   *richtext.Converter
	logger *slog.Logger
}

// NewAggregator wires an aggregator.
func NewAggregator(source EssenceSource, remote Platform, index Membership, conv *richtext.Converter, logger *slog.Logger) *Aggregator {
	return &Aggregator{
		source: source,
		remote: remote,
		index:  index,
		conv:   conv,
		logger: logging.NewComponentLogger(logger, "credits"),
	}
}

// GroupPages groups page rows by document key and source locale. The document
// key is the first path segment of the page urlname; deeper segments carry no
// meaning for grouping. Documents come back sorted by key so runs are
// reproducible.
func GroupPages(rows []alchemy.PageRow) []Document {
	byKey := make(map[string]map[string][]alchemy.EssenceRef)
	for _, row := range rows {
		key := documentKey(row.URLName)
		if byKey[key] == nil {
			byKey[key] = make(map[string][]alchemy.EssenceRef)
		}
		byKey[key][row.LanguageCode] = row.Essences
	}

	keys := make([]string, 0, len(byKey))
	for key := range byKey {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	docs := make([]Document, 0, len(keys))
	for _, key := range keys {
		docs = append(docs, Document{Key: key, Locales: byKey[key]})
	}
	return docs
}

func documentKey(urlname string) string {
	if i := strings.IndexByte(urlname, '/'); i >= 0 {
		return urlname[:i]
	}
	return urlname
}

// Assemble renders the given essences, in order, into one markdown string.
// Fragments with no stored value contribute nothing. A picture whose asset
// has not been migrated yet renders as the empty string rather than a broken
// reference.
func (a *Aggregator) Assemble(ctx context.Context, refs []alchemy.EssenceRef) (string, error) {
	var b strings.Builder
	for _, ref := range refs {
		data, err := a.source.FetchEssence(ctx, ref)
		if err != nil {
			return "", err
		}
		if data == nil {
			continue
		}

		switch data.Type {
		case alchemy.EssenceText:
			b.WriteString("## " + data.Value + "\n")
		case alchemy.EssenceRichText:
			converted, err := a.conv.Convert(data.Value)
			if err != nil {
				return "", fmt.Errorf("essence %d: %w", ref.ID, err)
			}
			b.WriteString(converted)
		case alchemy.EssencePicture:
			embed, err := a.pictureEmbed(ctx, data.Value)
			if err != nil {
				return "", err
			}
			b.WriteString(embed)
		default:
			return "", migrate.Wrap(migrate.ErrSchema, "credits", "", fmt.Sprintf("unknown essence type %q", data.Type), nil)
		}
	}
	return b.String(), nil
}

// pictureEmbed renders a markdown image for a migrated picture, or nothing at
// all when the picture has not been uploaded yet.
func (a *Aggregator) pictureEmbed(ctx context.Context, uid string) (string, error) {
	assetID := identity.ForUID(uid)
	exists, err := a.index.Contains(ctx, assetID)
	if err != nil {
		return "", err
	}
	if !exists {
		a.logger.Debug("credited picture not migrated, omitting embed",
			logging.String("uid", uid),
			logging.String("asset_id", string(assetID)))
		return "", nil
	}

	asset, err := a.remote.GetAsset(ctx, assetID)
	if err != nil {
		return "", fmt.Errorf("get asset %s: %w", assetID, err)
	}
	return a.conv.ImageEmbed(asset.Fields.File[locale.Default].URL)
}

// Publish assembles every locale of a document and merges the results into
// the matching remote entry's credits field, then updates and publishes it.
//
// A document with no matching entry is skipped: this migration updates
// pre-existing entries, it never creates them. Remote write failures land on
// the outcome; only schema and configuration violations return an error.
func (a *Aggregator) Publish(ctx context.Context, doc Document) (migrate.Outcome, error) {
	a.logger.Info("publishing credits", logging.String("document", doc.Key))

	entry, err := a.remote.EntryByIdentifier(ctx, EntryContentType, locale.Default, doc.Key)
	if err != nil {
		return a.failed(doc.Key, "find entry", err), nil
	}
	if entry == nil {
		a.logger.Warn("no matching entry, skipping document", logging.String("document", doc.Key))
		return migrate.Outcome{Subject: doc.Key, Status: migrate.StatusSkipped, Detail: "no matching entry"}, nil
	}

	sourceLocales := make([]string, 0, len(doc.Locales))
	for code := range doc.Locales {
		sourceLocales = append(sourceLocales, code)
	}
	sort.Strings(sourceLocales)

	if entry.Fields == nil {
		entry.Fields = make(map[string]map[string]any)
	}
	if entry.Fields[creditsField] == nil {
		entry.Fields[creditsField] = make(map[string]any)
	}

	for _, code := range sourceLocales {
		target, err := locale.Resolve(code)
		if err != nil {
			return migrate.Outcome{}, err
		}
		assembled, err := a.Assemble(ctx, doc.Locales[code])
		if err != nil {
			if migrate.Fatal(err) {
				return migrate.Outcome{}, err
			}
			return a.failed(doc.Key, "assemble "+code, err), nil
		}
		a.logger.Info("assembled locale",
			logging.String("document", doc.Key),
			logging.String("source_locale", code),
			logging.String("target_locale", target))
		entry.Fields[creditsField][target] = assembled
	}

	updated, err := a.remote.UpdateEntry(ctx, entry)
	if err != nil {
		return a.failed(doc.Key, "update entry", err), nil
	}
	if _, err := a.remote.PublishEntry(ctx, updated); err != nil {
		return a.failed(doc.Key, "publish entry", err), nil
	}

	return migrate.Outcome{
		Subject: doc.Key,
		Status:  migrate.StatusPublished,
		Detail:  strings.Join(sourceLocales, ","),
	}, nil
}

func (a *Aggregator) failed(key, operation string, err error) migrate.Outcome {
	wrapped := migrate.Wrap(migrate.ErrRemote, "credits", key, operation, err)
	a.logger.Error("credit document failed",
		logging.String("document", key),
		logging.Error(err))
	return migrate.Outcome{Subject: key, Status: migrate.StatusFailed, Detail: operation, Err: wrapped}
}
