package blog

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"

	xlog "github.com/Zachkp/devfolio/internal/log"
)

const reloadDebounce = 300 * time.Millisecond

// Watch reloads the store whenever a post file changes, until ctx is done.
// Bursts of events (editors often write several times) trigger one reload.
func (s *Store) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(s.dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", s.dir, err)
	}

	go func() {
		defer watcher.Close()

		var timer *time.Timer
		defer func() {
			if timer != nil {
				timer.Stop()
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !isPostFile(event.Name) {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
					!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
					continue
				}
				s.logger.Debug().Str(xlog.FieldFile, event.Name).Str("op", event.Op.String()).Msg("change detected")
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(reloadDebounce, func() {
					if err := s.Reload(); err != nil {
						s.logger.Error().Err(err).Msg("reload failed, keeping previous posts")
					}
				})
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.logger.Warn().Err(err).Msg("watcher error")
			}
		}
	}()
	return nil
}
