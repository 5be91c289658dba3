package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/kerbaras/pokedex/pkg/catalog"
	"github.com/kerbaras/pokedex/pkg/config"
	"github.com/kerbaras/pokedex/pkg/data"
	"github.com/kerbaras/pokedex/pkg/integrations"
	"github.com/kerbaras/pokedex/pkg/notify"
	"github.com/kerbaras/pokedex/pkg/sources"
	"golang.org/x/time/rate"
)

const GuideTitle = "Pokédex Favorites"

// Store is the local persistence the controller needs.
type Store interface {
	catalog.FavoriteStore
	catalog.StatsStore
	ListFavorites(ctx context.Context) ([]*data.Favorite, error)
	GetStats(ctx context.Context) (*data.Stats, error)
	Close() error
}

// Dependencies are the collaborators of a PokedexController. Nil Notifier
// and Log fall back to no-op implementations.
type Dependencies struct {
	Source   sources.Catalog
	Store    Store
	Notifier notify.Dispatcher
	Images   *ImageFetcher
	PageSize int
	Log      *slog.Logger
}

// PokedexController is the single entry point used by both the CLI and the
// TUI. It owns the favorite toggler and the event bus behind it.
type PokedexController struct {
	source   sources.Catalog
	store    Store
	notifier notify.Dispatcher
	images   *ImageFetcher
	exporter *Exporter
	toggler  *catalog.FavoriteToggler
	bus      *catalog.Bus
	criteria *catalog.CriteriaStore
	pageSize int
	log      *slog.Logger

	mu      sync.RWMutex
	entries []data.Entry
	loaded  bool
}

func New(deps Dependencies) *PokedexController {
	log := deps.Log
	if log == nil {
		log = slog.Default()
	}
	notifier := deps.Notifier
	if notifier == nil {
		notifier = notify.Noop{}
	}
	images := deps.Images
	if images == nil {
		images = NewImageFetcher(nil, nil)
	}
	pageSize := deps.PageSize
	if pageSize <= 0 {
		pageSize = 151
	}

	bus := catalog.NewBus(16, log)
	bus.Subscribe(catalog.NotifyOnFavorite(notifier))
	bus.Subscribe(catalog.CountFavorites(deps.Store, log))

	permission := notifier.RequestPermission()
	log.Debug("notification permission", "permission", permission)

	return &PokedexController{
		source:   deps.Source,
		store:    deps.Store,
		notifier: notifier,
		images:   images,
		exporter: NewExporter(deps.Source, images, log),
		toggler:  catalog.NewFavoriteToggler(deps.Store, bus, log),
		bus:      bus,
		criteria: catalog.NewCriteriaStore(),
		pageSize: pageSize,
		log:      log,
	}
}

// NewPokedexController wires the production dependencies described by cfg.
func NewPokedexController(cfg *config.Config, log *slog.Logger) (*PokedexController, error) {
	repo, err := data.OpenRepository(cfg.Store.Driver, cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open favorites store: %w", err)
	}

	client := &http.Client{Timeout: cfg.Catalog.Timeout}
	source := sources.NewGraphQLPokedex(cfg.Catalog.Endpoint,
		sources.WithHTTPClient(client),
		sources.WithTimeout(cfg.Catalog.Timeout),
		sources.WithRateLimit(cfg.Catalog.RateLimit, cfg.Catalog.RateBurst),
		sources.WithCacheSize(cfg.Catalog.CacheSize),
		sources.WithLogger(log),
	)

	var limiter *rate.Limiter
	if cfg.Catalog.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.Catalog.RateLimit), max(cfg.Catalog.RateBurst, 1))
	}

	return New(Dependencies{
		Source:   source,
		Store:    repo,
		Notifier: notify.NewDesktop(cfg.Notifications.Enabled, log),
		Images:   NewImageFetcher(client, limiter),
		PageSize: cfg.Catalog.PageSize,
		Log:      log,
	}), nil
}

// ListEntries fetches the catalog page and remembers it for Search, Types
// and Suggest.
func (c *PokedexController) ListEntries(ctx context.Context) ([]data.Entry, error) {
	entries, err := c.source.ListEntries(ctx, c.pageSize)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries = entries
	c.loaded = true
	c.mu.Unlock()

	// stars in the list come from the toggler's display state
	favorites, err := c.store.ListFavorites(ctx)
	if err != nil {
		c.log.Warn("could not preload favorites", "error", err)
	}
	for _, f := range favorites {
		c.toggler.Load(ctx, f.Name)
	}

	c.log.Info("catalog loaded", "entries", len(entries))
	return entries, nil
}

func (c *PokedexController) cachedEntries(ctx context.Context) ([]data.Entry, error) {
	c.mu.RLock()
	entries, loaded := c.entries, c.loaded
	c.mu.RUnlock()
	if loaded {
		return entries, nil
	}
	return c.ListEntries(ctx)
}

// Search filters the catalog page by criteria.
func (c *PokedexController) Search(ctx context.Context, criteria catalog.Criteria) ([]data.Entry, error) {
	entries, err := c.cachedEntries(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Filter(entries, criteria), nil
}

// Types lists the type labels present in the catalog page.
func (c *PokedexController) Types(ctx context.Context) ([]string, error) {
	entries, err := c.cachedEntries(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Types(entries), nil
}

// Suggest proposes names close to term from the last loaded page.
func (c *PokedexController) Suggest(term string, limit int) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return catalog.Suggest(c.entries, term, limit)
}

// GetDetail fetches the record for name and loads its favorite flag.
func (c *PokedexController) GetDetail(ctx context.Context, name string) (*data.Detail, error) {
	detail, err := c.source.GetDetail(ctx, name)
	if err != nil {
		return nil, err
	}
	c.toggler.Load(ctx, detail.Name)
	return detail, nil
}

func (c *PokedexController) LoadFavorite(ctx context.Context, name string) bool {
	return c.toggler.Load(ctx, name)
}

func (c *PokedexController) IsFavorited(name string) bool {
	return c.toggler.IsFavorited(name)
}

// ToggleFavorite flips the flag for name. On a *catalog.PersistenceError the
// returned state is the unchanged one.
func (c *PokedexController) ToggleFavorite(ctx context.Context, name string) (bool, error) {
	return c.toggler.Toggle(ctx, name)
}

// ToggleFavoriteByName resolves name through the catalog and toggles the
// entry's own name, so the key matches the one the details screen writes.
// An unknown name returns the catalog's *sources.NotFoundError and changes
// nothing.
func (c *PokedexController) ToggleFavoriteByName(ctx context.Context, name string) (string, bool, error) {
	detail, err := c.source.GetDetail(ctx, name)
	if err != nil {
		return "", false, err
	}
	favorited, err := c.toggler.Toggle(ctx, detail.Name)
	return detail.Name, favorited, err
}

func (c *PokedexController) Favorites(ctx context.Context) ([]*data.Favorite, error) {
	favorites, err := c.store.ListFavorites(ctx)
	if err != nil {
		return nil, &catalog.PersistenceError{Op: "list", Err: err}
	}
	return favorites, nil
}

func (c *PokedexController) Stats(ctx context.Context) (*data.Stats, error) {
	stats, err := c.store.GetStats(ctx)
	if err != nil {
		return nil, &catalog.PersistenceError{Op: "stats", Err: err}
	}
	return stats, nil
}

// Criteria is the filter state shared between screens.
func (c *PokedexController) Criteria() *catalog.CriteriaStore {
	return c.criteria
}

// Sprite fetches imageURL and renders it into at most width x height cells.
func (c *PokedexController) Sprite(ctx context.Context, imageURL string, width, height int) (string, error) {
	img, err := c.images.Fetch(ctx, imageURL)
	if err != nil {
		return "", err
	}
	return integrations.NewSpriteRenderer(width, height).RenderData(img.Content)
}

// ExportFavorites writes a field guide of every favorited entry into
// outputDir and returns the file path.
func (c *PokedexController) ExportFavorites(ctx context.Context, outputDir string) (string, error) {
	favorites, err := c.Favorites(ctx)
	if err != nil {
		return "", err
	}
	if len(favorites) == 0 {
		return "", fmt.Errorf("no favorites to export")
	}

	names := make([]string, len(favorites))
	for i, f := range favorites {
		names[i] = f.Name
	}
	return c.exporter.Export(ctx, outputDir, GuideTitle, names)
}

func (c *PokedexController) ExportProgress() <-chan ExportProgress {
	return c.exporter.Progress()
}

func (c *PokedexController) NotificationPermission() notify.Permission {
	return c.notifier.RequestPermission()
}

// Close drains pending favorite events and releases the store.
func (c *PokedexController) Close() error {
	c.bus.Close()
	c.exporter.Close()
	if w, ok := c.notifier.(interface{ Wait() }); ok {
		w.Wait()
	}
	if c.store != nil {
		return c.store.Close()
	}
	return nil
}
