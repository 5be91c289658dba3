package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kerbaras/pokedex/pkg/notify"
)

const FavoriteNotificationTitle = "⭐ New favorite!"

func FavoriteNotificationBody(name string) string {
	return fmt.Sprintf("%s was added to your favorites", name)
}

// NotifyOnFavorite sends a notification for every transition into favorited.
func NotifyOnFavorite(d notify.Dispatcher) func(FavoriteEvent) {
	return func(evt FavoriteEvent) {
		if !evt.Favorited {
			return
		}
		d.Send(FavoriteNotificationTitle, FavoriteNotificationBody(evt.Name))
	}
}

type StatsStore interface {
	IncrementFavoriteCount(ctx context.Context) error
}

// CountFavorites bumps the favorites counter for every transition into
// favorited.
func CountFavorites(store StatsStore, log *slog.Logger) func(FavoriteEvent) {
	return func(evt FavoriteEvent) {
		if !evt.Favorited {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.IncrementFavoriteCount(ctx); err != nil {
			log.Warn("failed to update favorite stats", "event", evt.ID, "error", err)
		}
	}
}
