package statistics

import (
	"encoding/json"
	"log"
	"time"

	"github.com/unfake-app/unfake/app/repository"
	"github.com/unfake-app/unfake/internal/pkg/cache"
)

const (
	CacheKeyTopRaters = "statistics:raters:top"
	CacheExpiration   = 30 * time.Minute

	// The original leaderboard shows the three busiest raters.
	TopRaterCount = 3
)

// UpdateTopRatersCache recomputes the top-rater snapshot and stores it in
// the cache as JSON.
func UpdateTopRatersCache() error {
	raters, err := repository.GetGlobalRepositories().User.TopRaters(TopRaterCount)
	if err != nil {
		log.Printf("Error computing top raters: %v", err)
		return err
	}

	data, err := json.Marshal(raters)
	if err != nil {
		return err
	}

	if err := cache.Set(CacheKeyTopRaters, string(data), CacheExpiration); err != nil {
		log.Printf("Error caching top raters: %v", err)
		return err
	}

	return nil
}

// GetTopRaters returns the cached top-rater snapshot, falling back to the
// database and refreshing the cache on a miss.
func GetTopRaters() []repository.TopRater {
	val, err := cache.Get(CacheKeyTopRaters)
	if err == nil {
		var raters []repository.TopRater
		if err := json.Unmarshal([]byte(val), &raters); err == nil {
			return raters
		}
	}

	raters, err := repository.GetGlobalRepositories().User.TopRaters(TopRaterCount)
	if err != nil {
		log.Printf("Error loading top raters: %v", err)
		return nil
	}

	if data, err := json.Marshal(raters); err == nil {
		if err := cache.Set(CacheKeyTopRaters, string(data), CacheExpiration); err != nil {
			log.Printf("Error caching top raters: %v", err)
		}
	}

	return raters
}
