package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/kerbaras/pokedex/pkg/integrations"
	"github.com/kerbaras/pokedex/pkg/sources"
)

// ExportProgress reports one step of a field guide export. Name is empty for
// steps that concern the whole guide.
type ExportProgress struct {
	Name    string
	Current int
	Total   int
	Status  string // "fetching", "fetched", "building", "complete", "error"
	Path    string
	Error   error
}

// Exporter builds an EPUB field guide from a list of names, fetching details
// and sprites concurrently.
type Exporter struct {
	source       sources.Catalog
	images       *ImageFetcher
	log          *slog.Logger
	concurrency  int
	progressChan chan ExportProgress

	mu     sync.RWMutex
	closed bool
}

func NewExporter(source sources.Catalog, images *ImageFetcher, log *slog.Logger) *Exporter {
	if log == nil {
		log = slog.Default()
	}
	return &Exporter{
		source:       source,
		images:       images,
		log:          log,
		concurrency:  3,
		progressChan: make(chan ExportProgress, 100),
	}
}

// Progress returns the channel export steps are reported on. Updates are
// dropped when nobody reads it.
func (e *Exporter) Progress() <-chan ExportProgress {
	return e.progressChan
}

// Export writes title.epub into outputDir. Entries that fail to load are
// skipped; the export only fails when none could be loaded.
func (e *Exporter) Export(ctx context.Context, outputDir, title string, names []string) (string, error) {
	if len(names) == 0 {
		return "", fmt.Errorf("nothing to export")
	}

	// updates nobody read belong to an earlier export
	e.discardProgress()

	total := len(names)
	pages := make([]integrations.GuidePage, total)

	var wg sync.WaitGroup
	var done atomic.Int32
	semaphore := make(chan struct{}, e.concurrency)
	errorChan := make(chan error, total)

	for i, name := range names {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			e.sendProgress(ExportProgress{Name: name, Current: int(done.Load()), Total: total, Status: "fetching"})

			page, err := e.fetchPage(ctx, name)
			n := int(done.Add(1))
			if err != nil {
				errorChan <- fmt.Errorf("%s: %w", name, err)
				e.sendProgress(ExportProgress{Name: name, Current: n, Total: total, Status: "error", Error: err})
				return
			}
			pages[i] = page
			e.sendProgress(ExportProgress{Name: name, Current: n, Total: total, Status: "fetched"})
		}(i, name)
	}

	wg.Wait()
	close(errorChan)

	var exportErrors []error
	for err := range errorChan {
		exportErrors = append(exportErrors, err)
	}

	loaded := make([]integrations.GuidePage, 0, total)
	for _, p := range pages {
		if p.Detail != nil {
			loaded = append(loaded, p)
		}
	}
	if len(loaded) == 0 {
		err := fmt.Errorf("no entries could be exported: %w", errors.Join(exportErrors...))
		e.sendProgress(ExportProgress{Total: total, Status: "error", Error: err})
		return "", err
	}
	if len(exportErrors) > 0 {
		e.log.Warn("field guide is partial", "skipped", len(exportErrors), "error", errors.Join(exportErrors...))
	}

	e.sendProgress(ExportProgress{Current: total, Total: total, Status: "building"})

	path, err := integrations.NewFieldGuide(outputDir).Build(title, loaded)
	if err != nil {
		e.sendProgress(ExportProgress{Total: total, Status: "error", Error: err})
		return "", fmt.Errorf("failed to build field guide: %w", err)
	}

	e.log.Info("field guide exported", "path", path, "entries", len(loaded))
	e.sendProgress(ExportProgress{Current: total, Total: total, Status: "complete", Path: path})
	return path, nil
}

func (e *Exporter) fetchPage(ctx context.Context, name string) (integrations.GuidePage, error) {
	detail, err := e.source.GetDetail(ctx, name)
	if err != nil {
		return integrations.GuidePage{}, err
	}

	page := integrations.GuidePage{Detail: detail}
	if detail.Image != "" && e.images != nil {
		// a missing sprite does not drop the page
		sprite, err := e.images.Fetch(ctx, detail.Image)
		if err != nil {
			e.log.Debug("sprite unavailable", "name", name, "error", err)
		} else {
			page.Sprite = sprite
		}
	}
	return page, nil
}

func (e *Exporter) discardProgress() {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed {
		return
	}
	for {
		select {
		case <-e.progressChan:
		default:
			return
		}
	}
}

// sendProgress sends a progress update (non-blocking)
func (e *Exporter) sendProgress(progress ExportProgress) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed {
		return
	}
	select {
	case e.progressChan <- progress:
	default:
	}
}

func (e *Exporter) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.closed {
		e.closed = true
		close(e.progressChan)
	}
}
