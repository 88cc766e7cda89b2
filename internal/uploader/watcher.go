// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package uploader handles document ingestion into the RAG backend.
package uploader

import (
	"context"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"
)

// debounceInterval is how long a dropped file must be quiet before it is
// considered fully written and eligible for upload.
const debounceInterval = 500 * time.Millisecond

// DropWatcher watches a drop directory and uploads new documents
// automatically.
type DropWatcher struct {
	dir      string
	uploader *Uploader
	onResult func(*Result, error)

	watcher *fsnotify.Watcher
	limiter *rate.Limiter
	mu      sync.Mutex
	pending map[string]time.Time
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewDropWatcher creates a watcher for dir. onResult is invoked for each
// upload batch (from the watcher goroutine).
func NewDropWatcher(dir string, up *Uploader, onResult func(*Result, error)) (*DropWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &DropWatcher{
		dir:      dir,
		uploader: up,
		onResult: onResult,
		watcher:  watcher,
		// One batch every two seconds at most; a burst of drops becomes
		// one larger batch instead of many requests.
		limiter: rate.NewLimiter(rate.Every(2*time.Second), 1),
		pending: make(map[string]time.Time),
		ctx:     ctx,
		cancel:  cancel,
	}, nil
}

// Watch starts watching the drop directory.
func (dw *DropWatcher) Watch() error {
	if err := dw.watcher.Add(dw.dir); err != nil {
		return err
	}
	go dw.processEvents()
	go dw.processPending()
	return nil
}

// Close stops watching and releases resources.
func (dw *DropWatcher) Close() error {
	dw.cancel()
	return dw.watcher.Close()
}

// processEvents records supported-file events for debounced upload.
func (dw *DropWatcher) processEvents() {
	for {
		select {
		case <-dw.ctx.Done():
			return

		case event, ok := <-dw.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if !IsSupported(event.Name) {
				continue
			}
			dw.mu.Lock()
			dw.pending[event.Name] = time.Now()
			dw.mu.Unlock()

		case _, ok := <-dw.watcher.Errors:
			if !ok {
				return
			}
			// Watch errors are non-fatal; the next event still arrives
			// or the watcher channel closes.
		}
	}
}

// processPending batches quiet files and uploads them.
func (dw *DropWatcher) processPending() {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-dw.ctx.Done():
			return

		case <-ticker.C:
			now := time.Now()

			dw.mu.Lock()
			var batch []string
			for path, changed := range dw.pending {
				if now.Sub(changed) >= debounceInterval {
					batch = append(batch, path)
					delete(dw.pending, path)
				}
			}
			dw.mu.Unlock()

			if len(batch) == 0 {
				continue
			}
			if err := dw.limiter.Wait(dw.ctx); err != nil {
				return
			}
			result, err := dw.uploader.Send(dw.ctx, batch)
			if dw.onResult != nil {
				dw.onResult(result, err)
			}
		}
	}
}
