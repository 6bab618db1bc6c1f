package blob

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// watchDebounce agrupa ráfagas de eventos (create + write + rename) en una sola notificación.
const watchDebounce = 150 * time.Millisecond

// Watch observa el archivo de key y llama a onChange cuando otro proceso lo
// reescribe. Se vigila el directorio porque el rename atómico cambia el inodo.
// Bloquea hasta que ctx se cancele.
func (f *FileStore) Watch(ctx context.Context, key string, log zerolog.Logger, onChange func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("blob: crear watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(f.dir); err != nil {
		return fmt.Errorf("blob: vigilar %s: %w", f.dir, err)
	}
	target := filepath.Clean(f.Path(key))

	var timer *time.Timer
	fire := make(chan struct{}, 1)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(watchDebounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})
		case <-fire:
			onChange()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Str("dir", f.dir).Msg("error del watcher de blobs")
		}
	}
}
