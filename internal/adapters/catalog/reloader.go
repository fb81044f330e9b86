package catalog

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/mindfulchat/mindfulchat-go/internal/domain/ports"
)

// Reloader watches a resource seed file and reloads the catalog when the
// file is written or recreated. Edits to the seed JSON show up without a
// restart; a broken file leaves the current catalog untouched.
type Reloader struct {
	watcher *fsnotify.Watcher
	catalog ports.ResourceCatalog
	path    string
	logger  *zap.Logger
}

// NewReloader creates a reloader for the seed file at path.
func NewReloader(catalog ports.ResourceCatalog, path string, logger *zap.Logger) (*Reloader, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reloader{
		watcher: w,
		catalog: catalog,
		path:    path,
		logger:  logger,
	}, nil
}

// Run watches until ctx is cancelled. The parent directory is watched
// because editors often replace files rather than writing in place.
func (r *Reloader) Run(ctx context.Context) error {
	if err := r.watcher.Add(filepath.Dir(r.path)); err != nil {
		return err
	}
	defer r.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-r.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(r.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			r.reload(ctx)
		case err, ok := <-r.watcher.Errors:
			if !ok {
				return nil
			}
			r.logger.Warn("resource seed watcher error", zap.Error(err))
		}
	}
}

func (r *Reloader) reload(ctx context.Context) {
	resources, err := LoadSeedFile(r.path)
	if err != nil {
		r.logger.Warn("ignoring unreadable resource seed file",
			zap.String("path", r.path), zap.Error(err))
		return
	}
	if err := r.catalog.ReplaceAll(ctx, resources); err != nil {
		r.logger.Error("reloading resource catalog failed", zap.Error(err))
		return
	}
	r.logger.Info("resource catalog reloaded",
		zap.String("path", r.path), zap.Int("resources", len(resources)))
}
