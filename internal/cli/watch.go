// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// watch.go - Re-run a comparison whenever either input file changes.

package cli

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/jeranaias/recipes/internal/config"
	"github.com/jeranaias/recipes/internal/render"
)

// watchMeld prints the comparison, then watches both files and reprints
// on changes until interrupted. Events are debounced because editors
// typically emit several events per save.
func watchMeld(srcPath, tgtPath string, format render.Format) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("cannot start watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the parent directories: editors that save via rename would
	// otherwise drop the watch on the first write.
	watched := map[string]bool{}
	for _, p := range []string{srcPath, tgtPath} {
		dir := filepath.Dir(p)
		if !watched[dir] {
			if err := watcher.Add(dir); err != nil {
				return fmt.Errorf("cannot watch %s: %w", dir, err)
			}
			watched[dir] = true
		}
	}

	srcAbs, _ := filepath.Abs(srcPath)
	tgtAbs, _ := filepath.Abs(tgtPath)
	isInput := func(name string) bool {
		abs, err := filepath.Abs(name)
		return err == nil && (abs == srcAbs || abs == tgtAbs)
	}

	rerun := func() {
		out, err := meldOnce(srcPath, tgtPath, format)
		if err != nil {
			fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+err.Error())
			return
		}
		fmt.Println(out)
		fmt.Println(MutedStyle.Render(fmt.Sprintf("[%s] watching %s, %s (ctrl-c to stop)",
			time.Now().Format("15:04:05"), srcPath, tgtPath)))
	}
	rerun()

	debounce := time.Duration(config.Global().Meld.WatchDebounceMs) * time.Millisecond
	var timer *time.Timer
	pending := make(chan struct{}, 1)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isInput(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})
		case <-pending:
			rerun()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintln(os.Stderr, ErrorStyle.Render("Watch error: ")+err.Error())
		case <-interrupt:
			return nil
		}
	}
}
