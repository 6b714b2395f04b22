package assetindex

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"curator/internal/identity"
	"curator/internal/logging"
)

// PageSize is the number of assets requested per remote listing page.
const PageSize = 100

// Lister enumerates asset ids on the remote platform one page at a time.
type Lister interface {
	ListAssetIDs(ctx context.Context, limit, skip int) ([]identity.AssetID, error)
}

// Index holds the set of asset ids known to exist on the remote platform.
//
// The set is loaded at most once per process and is read-only afterwards.
// Assets created later in the same run are deliberately not folded back in:
// the caller that created an asset must not re-check the id it just chose.
type Index struct {
	path   string
	lister Lister
	logger *slog.Logger

	loadOnce sync.Once
	loadErr  error
	ids      map[identity.AssetID]struct{}
}

// New creates an index backed by the cache artifact at path and the given
// remote lister.
func New(path string, lister Lister, logger *slog.Logger) *Index {
	return &Index{
		path:   path,
		lister: lister,
		logger: logging.NewComponentLogger(logger, "assetindex"),
	}
}

// Load returns the asset id set, reading the cache artifact when present and
// well formed and falling back to a full remote refresh otherwise. The load
// happens exactly once per process; later calls return the same set.
func (x *Index) Load(ctx context.Context) ([]identity.AssetID, error) {
	x.loadOnce.Do(func() {
		ids, fromCache, err := x.loadOnceLocked(ctx)
		if err != nil {
			x.loadErr = err
			return
		}
		x.ids = toSet(ids)
		source := "remote"
		if fromCache {
			source = "cache"
		}
		x.logger.Info("asset index loaded",
			logging.String("source", source),
			logging.Int("assets", len(x.ids)))
	})
	if x.loadErr != nil {
		return nil, x.loadErr
	}
	return x.sorted(), nil
}

func (x *Index) loadOnceLocked(ctx context.Context) ([]identity.AssetID, bool, error) {
	ids, err := x.readCache()
	if err == nil {
		return ids, true, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		x.logger.Warn("asset id cache unreadable, refreshing from remote", logging.Error(err))
	}
	ids, err = x.RefreshFromRemote(ctx)
	if err != nil {
		return nil, false, err
	}
	return ids, false, nil
}

// RefreshFromRemote pages through the remote asset listing, accumulating ids
// until an empty page signals the end. There is no retry here: a transient
// listing failure propagates so the caller can fail fast.
func (x *Index) RefreshFromRemote(ctx context.Context) ([]identity.AssetID, error) {
	var ids []identity.AssetID
	for skip := 0; ; skip += PageSize {
		page, err := x.lister.ListAssetIDs(ctx, PageSize, skip)
		if err != nil {
			return nil, fmt.Errorf("list assets at offset %d: %w", skip, err)
		}
		if len(page) == 0 {
			break
		}
		ids = append(ids, page...)
	}
	return ids, nil
}

// Persist overwrites the cache artifact with the given id set.
func (x *Index) Persist(ids []identity.AssetID) error {
	if x.path == "" {
		return errors.New("assetindex: no cache path configured")
	}
	if err := os.MkdirAll(filepath.Dir(x.path), 0o755); err != nil {
		return fmt.Errorf("ensure cache dir: %w", err)
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("encode asset id cache: %w", err)
	}
	tmp := x.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write asset id cache: %w", err)
	}
	if err := os.Rename(tmp, x.path); err != nil {
		return fmt.Errorf("replace asset id cache: %w", err)
	}
	return nil
}

// Contains reports whether the id is already present on the remote platform,
// loading the index first if this is the first membership check.
func (x *Index) Contains(ctx context.Context, id identity.AssetID) (bool, error) {
	if _, err := x.Load(ctx); err != nil {
		return false, err
	}
	_, ok := x.ids[id]
	return ok, nil
}

func (x *Index) readCache() ([]identity.AssetID, error) {
	if x.path == "" {
		return nil, fs.ErrNotExist
	}
	data, err := os.ReadFile(x.path)
	if err != nil {
		return nil, err
	}
	var ids []identity.AssetID
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("decode cache %s: %w", x.path, err)
	}
	return ids, nil
}

func (x *Index) sorted() []identity.AssetID {
	out := make([]identity.AssetID, 0, len(x.ids))
	for id := range x.ids {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func toSet(ids []identity.AssetID) map[identity.AssetID]struct{} {
	set := make(map[identity.AssetID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
