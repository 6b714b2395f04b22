package credits

import (
	"context"
	"errors"
	"strings"
	"testing"

	"curator/internal/alchemy"
	"curator/internal/contentful"
	"curator/internal/identity"
	"curator/internal/migrate"
	"curator/internal/richtext"
)

type fakeSource struct {
	values map[alchemy.EssenceRef]*alchemy.EssenceData
	err    error
}

func (f *fakeSource) FetchEssence(_ context.Context, ref alchemy.EssenceRef) (*alchemy.EssenceData, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.values[ref], nil
}

type fakeIndex struct {
	ids map[identity.AssetID]struct{}
}

func (f *fakeIndex) Contains(_ context.Context, id identity.AssetID) (bool, error) {
	_, ok := f.ids[id]
	return ok, nil
}

type fakePlatform struct {
	entries    map[string]*contentful.Entry
	assets     map[identity.AssetID]*contentful.Asset
	lookupErr  error
	updateErr  error
	publishErr error
	updated    *contentful.Entry
	published  *contentful.Entry
}

func (f *fakePlatform) EntryByIdentifier(_ context.Context, _, _, identifier string) (*contentful.Entry, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	return f.entries[identifier], nil
}

func (f *fakePlatform) UpdateEntry(_ context.Context, entry *contentful.Entry) (*contentful.Entry, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.updated = entry
	return entry, nil
}

func (f *fakePlatform) PublishEntry(_ context.Context, entry *contentful.Entry) (*contentful.Entry, error) {
	if f.publishErr != nil {
		return nil, f.publishErr
	}
	f.published = entry
	return entry, nil
}

func (f *fakePlatform) GetAsset(_ context.Context, id identity.AssetID) (*contentful.Asset, error) {
	asset, ok := f.assets[id]
	if !ok {
		return nil, errors.New("asset not found")
	}
	return asset, nil
}

func newTestAggregator(source *fakeSource, remote *fakePlatform, index *fakeIndex) *Aggregator {
	if index == nil {
		index = &fakeIndex{ids: map[identity.AssetID]struct{}{}}
	}
	return NewAggregator(source, remote, index, richtext.NewConverter(), nil)
}

func TestAssemblePreservesOrder(t *testing.T) {
	refs := []alchemy.EssenceRef{
		{Type: alchemy.EssenceText, ID: 1},
		{Type: alchemy.EssenceRichText, ID: 2},
		{Type: alchemy.EssenceText, ID: 3},
	}
	source := &fakeSource{values: map[alchemy.EssenceRef]*alchemy.EssenceData{
		refs[0]: {Type: alchemy.EssenceText, Value: "A"},
		refs[1]: {Type: alchemy.EssenceRichText, Value: "<i>b</i>"},
		refs[2]: {Type: alchemy.EssenceText, Value: "C"},
	}}
	agg := newTestAggregator(source, &fakePlatform{}, nil)

	got, err := agg.Assemble(context.Background(), refs)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}

	converted, err := richtext.NewConverter().Convert("<i>b</i>")
	if err != nil {
		t.Fatal(err)
	}
	want := "## A\n" + converted + "## C\n"
	if got != want {
		t.Errorf("Assemble = %q, want %q", got, want)
	}
}

func TestAssembleDropsEmptyValues(t *testing.T) {
	refs := []alchemy.EssenceRef{
		{Type: alchemy.EssenceText, ID: 1},
		{Type: alchemy.EssenceText, ID: 2},
	}
	// Ref 1 resolves to nothing (empty stored value); only ref 2 renders.
	source := &fakeSource{values: map[alchemy.EssenceRef]*alchemy.EssenceData{
		refs[1]: {Type: alchemy.EssenceText, Value: "Kept"},
	}}
	agg := newTestAggregator(source, &fakePlatform{}, nil)

	got, err := agg.Assemble(context.Background(), refs)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	if got != "## Kept\n" {
		t.Errorf("Assemble = %q, want only the non-empty fragment", got)
	}
}

func TestAssembleUnmigratedPictureRendersNothing(t *testing.T) {
	ref := alchemy.EssenceRef{Type: alchemy.EssencePicture, ID: 5}
	source := &fakeSource{values: map[alchemy.EssenceRef]*alchemy.EssenceData{
		ref: {Type: alchemy.EssencePicture, Value: "not-migrated-uid"},
	}}
	agg := newTestAggregator(source, &fakePlatform{}, nil)

	got, err := agg.Assemble(context.Background(), []alchemy.EssenceRef{ref})
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	if got != "" {
		t.Errorf("unmigrated picture rendered %q, want empty string", got)
	}
}

func TestAssembleMigratedPictureEmbeds(t *testing.T) {
	const uid = "migrated-uid"
	assetID := identity.ForUID(uid)

	ref := alchemy.EssenceRef{Type: alchemy.EssencePicture, ID: 5}
	source := &fakeSource{values: map[alchemy.EssenceRef]*alchemy.EssenceData{
		ref: {Type: alchemy.EssencePicture, Value: uid},
	}}
	remote := &fakePlatform{assets: map[identity.AssetID]*contentful.Asset{
		assetID: {
			Sys: contentful.Sys{ID: string(assetID)},
			Fields: contentful.AssetFields{
				File: map[string]contentful.FileField{
					"en-GB": {URL: "//images.example/sunset.jpg"},
				},
			},
		},
	}}
	index := &fakeIndex{ids: map[identity.AssetID]struct{}{assetID: {}}}
	agg := newTestAggregator(source, remote, index)

	got, err := agg.Assemble(context.Background(), []alchemy.EssenceRef{ref})
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	if !strings.Contains(got, "https://images.example/sunset.jpg") {
		t.Errorf("embed missing asset URL: %q", got)
	}
}

func TestAssembleUnknownTypeIsFatal(t *testing.T) {
	ref := alchemy.EssenceRef{Type: alchemy.EssenceText, ID: 1}
	source := &fakeSource{values: map[alchemy.EssenceRef]*alchemy.EssenceData{
		ref: {Type: alchemy.EssenceUnknown, Value: "???"},
	}}
	agg := newTestAggregator(source, &fakePlatform{}, nil)

	_, err := agg.Assemble(context.Background(), []alchemy.EssenceRef{ref})
	if err == nil {
		t.Fatal("expected error for unknown essence type")
	}
	if !migrate.Fatal(err) {
		t.Errorf("unknown type should be fatal, got %v", err)
	}
}

func TestGroupPages(t *testing.T) {
	rows := []alchemy.PageRow{
		{URLName: "venice/credits", LanguageCode: "de", Essences: []alchemy.EssenceRef{{Type: alchemy.EssenceText, ID: 1}}},
		{URLName: "venice/credits", LanguageCode: "en", Essences: []alchemy.EssenceRef{{Type: alchemy.EssenceText, ID: 2}}},
		{URLName: "rome", LanguageCode: "en", Essences: []alchemy.EssenceRef{{Type: alchemy.EssenceText, ID: 3}}},
	}
	docs := GroupPages(rows)
	if len(docs) != 2 {
		t.Fatalf("grouped into %d documents, want 2", len(docs))
	}
	if docs[0].Key != "rome" || docs[1].Key != "venice" {
		t.Errorf("document keys = %q, %q; want rome, venice", docs[0].Key, docs[1].Key)
	}
	venice := docs[1]
	if len(venice.Locales) != 2 {
		t.Errorf("venice has %d locales, want 2", len(venice.Locales))
	}
	if venice.Locales["de"][0].ID != 1 || venice.Locales["en"][0].ID != 2 {
		t.Errorf("locale essence assignment wrong: %+v", venice.Locales)
	}
}

func TestPublishSkipsWhenNoEntryMatches(t *testing.T) {
	agg := newTestAggregator(&fakeSource{}, &fakePlatform{}, nil)

	outcome, err := agg.Publish(context.Background(), Document{
		Key:     "ghost",
		Locales: map[string][]alchemy.EssenceRef{"en": nil},
	})
	if err != nil {
		t.Fatalf("Publish returned error for missing entry: %v", err)
	}
	if outcome.Status != migrate.StatusSkipped {
		t.Errorf("status = %s, want skipped", outcome.Status)
	}
}

func TestPublishMergesLocalesAdditively(t *testing.T) {
	ref := alchemy.EssenceRef{Type: alchemy.EssenceText, ID: 1}
	source := &fakeSource{values: map[alchemy.EssenceRef]*alchemy.EssenceData{
		ref: {Type: alchemy.EssenceText, Value: "Dank"},
	}}
	remote := &fakePlatform{entries: map[string]*contentful.Entry{
		"venice": {
			Sys: contentful.Sys{ID: "entry1", Version: 3},
			Fields: map[string]map[string]any{
				"identifier": {"en-GB": "venice"},
				"credits":    {"fi-FI": "existing finnish credits"},
			},
		},
	}}
	agg := newTestAggregator(source, remote, nil)

	outcome, err := agg.Publish(context.Background(), Document{
		Key:     "venice",
		Locales: map[string][]alchemy.EssenceRef{"de": {ref}},
	})
	if err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	if outcome.Status != migrate.StatusPublished {
		t.Fatalf("status = %s, want published", outcome.Status)
	}
	if remote.published == nil {
		t.Fatal("entry was not published")
	}
	creditsMap := remote.updated.Fields["credits"]
	if creditsMap["de-DE"] != "## Dank\n" {
		t.Errorf("de-DE credits = %v", creditsMap["de-DE"])
	}
	if creditsMap["fi-FI"] != "existing finnish credits" {
		t.Error("merge clobbered an existing locale key")
	}
	if remote.updated.Fields["identifier"]["en-GB"] != "venice" {
		t.Error("merge clobbered an unrelated field")
	}
}

func TestPublishUnmappedLocaleIsFatal(t *testing.T) {
	remote := &fakePlatform{entries: map[string]*contentful.Entry{
		"venice": {Sys: contentful.Sys{ID: "entry1"}},
	}}
	agg := newTestAggregator(&fakeSource{}, remote, nil)

	_, err := agg.Publish(context.Background(), Document{
		Key:     "venice",
		Locales: map[string][]alchemy.EssenceRef{"xx": nil},
	})
	if err == nil {
		t.Fatal("expected fatal error for unmapped locale")
	}
	if !errors.Is(err, migrate.ErrConfiguration) {
		t.Errorf("error = %v, want ErrConfiguration marker", err)
	}
}

func TestPublishFailureIsRecoverable(t *testing.T) {
	ref := alchemy.EssenceRef{Type: alchemy.EssenceText, ID: 1}
	source := &fakeSource{values: map[alchemy.EssenceRef]*alchemy.EssenceData{
		ref: {Type: alchemy.EssenceText, Value: "Dank"},
	}}
	remote := &fakePlatform{
		entries: map[string]*contentful.Entry{
			"venice": {Sys: contentful.Sys{ID: "entry1"}},
		},
		publishErr: errors.New("version mismatch"),
	}
	agg := newTestAggregator(source, remote, nil)

	outcome, err := agg.Publish(context.Background(), Document{
		Key:     "venice",
		Locales: map[string][]alchemy.EssenceRef{"de": {ref}},
	})
	if err != nil {
		t.Fatalf("publish failure must not propagate, got %v", err)
	}
	if outcome.Status != migrate.StatusFailed {
		t.Errorf("status = %s, want failed", outcome.Status)
	}
	if !errors.Is(outcome.Err, migrate.ErrRemote) {
		t.Errorf("outcome error = %v, want ErrRemote marker", outcome.Err)
	}
}
