package sources

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/kerbaras/pokedex/pkg/data"
	"github.com/kerbaras/pokedex/pkg/utils"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

const DefaultEndpoint = "https://graphql-pokemon2.vercel.app"

const listQuery = `query getPokemons($first: Int!) {
  pokemons(first: $first) { id number name image types }
}`

const detailQuery = `query getPokemon($name: String) {
  pokemon(name: $name) {
    id number name image types classification maxCP maxHP resistant weaknesses
    weight { minimum maximum }
    height { minimum maximum }
    evolutions { id number name image types }
  }
}`

// ordinal accepts both "001" and 1 on the wire.
type ordinal int

func (o *ordinal) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*o = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("invalid number %s: %w", b, err)
	}
	*o = ordinal(n)
	return nil
}

type Pokemon struct {
	ID     string   `json:"id"`
	Number ordinal  `json:"number"`
	Name   string   `json:"name"`
	Image  string   `json:"image"`
	Types  []string `json:"types"`
}

func (p *Pokemon) ToEntry() data.Entry {
	types := p.Types
	if types == nil {
		types = []string{}
	}
	return data.Entry{
		ID:     p.ID,
		Name:   p.Name,
		Number: int(p.Number),
		Image:  p.Image,
		Types:  types,
	}
}

type dimension struct {
	Minimum string `json:"minimum"`
	Maximum string `json:"maximum"`
}

type PokemonDetail struct {
	Pokemon
	Classification string    `json:"classification"`
	MaxCP          int       `json:"maxCP"`
	MaxHP          int       `json:"maxHP"`
	Resistant      []string  `json:"resistant"`
	Weaknesses     []string  `json:"weaknesses"`
	Weight         dimension `json:"weight"`
	Height         dimension `json:"height"`
	Evolutions     []Pokemon `json:"evolutions"`
}

func (p *PokemonDetail) ToDetail() *data.Detail {
	evolutions := make([]data.Entry, len(p.Evolutions))
	for i := range p.Evolutions {
		evolutions[i] = p.Evolutions[i].ToEntry()
	}
	return &data.Detail{
		Entry:          p.Pokemon.ToEntry(),
		Classification: p.Classification,
		Resistant:      p.Resistant,
		Weaknesses:     p.Weaknesses,
		Height:         data.Range{Minimum: p.Height.Minimum, Maximum: p.Height.Maximum},
		Weight:         data.Range{Minimum: p.Weight.Minimum, Maximum: p.Weight.Maximum},
		MaxCP:          p.MaxCP,
		MaxHP:          p.MaxHP,
		Evolutions:     evolutions,
	}
}

// GraphQLPokedex reads the catalog from a graphql-pokemon compatible endpoint.
// Detail records are kept in a small LRU and concurrent lookups of the same
// name share one request.
type GraphQLPokedex struct {
	api     *utils.API
	client  *http.Client
	limiter *rate.Limiter
	timeout time.Duration
	cache   *lru.Cache
	group   singleflight.Group
	log     *slog.Logger
}

type Option func(*GraphQLPokedex)

func WithHTTPClient(client *http.Client) Option {
	return func(g *GraphQLPokedex) { g.client = client }
}

// WithRateLimit caps outgoing requests per second. rps <= 0 disables the limit.
func WithRateLimit(rps float64, burst int) Option {
	return func(g *GraphQLPokedex) {
		if rps <= 0 {
			g.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		g.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

func WithTimeout(d time.Duration) Option {
	return func(g *GraphQLPokedex) { g.timeout = d }
}

// WithCacheSize sets the number of detail records kept. size <= 0 disables caching.
func WithCacheSize(size int) Option {
	return func(g *GraphQLPokedex) {
		if size <= 0 {
			g.cache = nil
			return
		}
		g.cache, _ = lru.New(size)
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(g *GraphQLPokedex) { g.log = log }
}

func NewGraphQLPokedex(endpoint string, opts ...Option) *GraphQLPokedex {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	cache, _ := lru.New(64)
	g := &GraphQLPokedex{
		client:  http.DefaultClient,
		limiter: rate.NewLimiter(rate.Limit(5), 5),
		timeout: 10 * time.Second,
		cache:   cache,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.api = utils.NewAPI(endpoint, g.client)
	return g
}

func (g *GraphQLPokedex) query(ctx context.Context, op, query string, vars map[string]any, v any) error {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return &FetchError{Op: op, Err: err}
		}
	}

	start := time.Now()
	if err := g.api.Query(ctx, query, vars, v); err != nil {
		g.log.Warn("catalog query failed", "op", op, "error", err, "elapsed", time.Since(start))
		return &FetchError{Op: op, Err: err}
	}
	g.log.Debug("catalog query", "op", op, "elapsed", time.Since(start))
	return nil
}

// ListEntries fetches the first n entries, in server order.
func (g *GraphQLPokedex) ListEntries(ctx context.Context, first int) ([]data.Entry, error) {
	if first <= 0 {
		return nil, fmt.Errorf("page size must be positive, got %d", first)
	}

	var resp struct {
		Pokemons []Pokemon `json:"pokemons"`
	}
	if err := g.query(ctx, "list", listQuery, map[string]any{"first": first}, &resp); err != nil {
		return nil, err
	}

	out := make([]data.Entry, len(resp.Pokemons))
	for i := range resp.Pokemons {
		out[i] = resp.Pokemons[i].ToEntry()
	}
	return out, nil
}

// GetDetail fetches the full record for name. A null result yields a
// *NotFoundError, which is never cached.
func (g *GraphQLPokedex) GetDetail(ctx context.Context, name string) (*data.Detail, error) {
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if g.cache != nil {
		if cached, ok := g.cache.Get(name); ok {
			return cached.(*data.Detail), nil
		}
	}

	v, err, _ := g.group.Do(name, func() (any, error) {
		var resp struct {
			Pokemon *PokemonDetail `json:"pokemon"`
		}
		if err := g.query(ctx, "detail", detailQuery, map[string]any{"name": name}, &resp); err != nil {
			return nil, err
		}
		if resp.Pokemon == nil {
			return nil, &NotFoundError{Name: name}
		}
		detail := resp.Pokemon.ToDetail()
		if g.cache != nil {
			g.cache.Add(name, detail)
		}
		return detail, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*data.Detail), nil
}
