package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/accelctl/accelctl/internal/pkg/logger"
	"github.com/fsnotify/fsnotify"
)

// DetectConfigChanges signals whenever the config file or a preset in
// the config tree is written to.
func DetectConfigChanges(ctx context.Context) <-chan bool {
	var change = make(chan bool)

	go func() {
		defer close(change)
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return
		}

		go func() {
			<-ctx.Done()
			err := watcher.Close()
			if err != nil {
				log.Info(fmt.Sprintf("closing watcher failed: %v", err), logger.Warning)
			}
		}()

		for _, path := range []string{
			configDir,
			filepath.Join(configDir, "presets"),
		} {
			err = watcher.Add(path)
		}

		for event := range watcher.Events {
			if event.Op != fsnotify.Write {
				continue
			}

			name := strings.ToLower(event.Name)
			if strings.HasSuffix(name, ".config") ||
				strings.HasSuffix(name, ".yml") || strings.HasSuffix(name, ".yaml") {
				log.Info(fmt.Sprintf("config change detected: %s", event.Name), logger.Debug)
				change <- true
			}
		}
	}()

	return change
}
