package pantry

import (
	"fmt"
	"math"
	"time"

	domain "github.com/jpmardones/despensa/pkg/types"
)

const expiringSoonWindow = 3 * 24 * time.Hour

// Classify buckets an estimated expiry relative to now. An entry
// expiring exactly now is already expired; the expiring-soon window is
// inclusive at three days.
func Classify(estimatedExpiry, now time.Time) domain.Freshness {
	until := estimatedExpiry.Sub(now)
	switch {
	case until <= 0:
		return domain.FreshnessExpired
	case until <= expiringSoonWindow:
		return domain.FreshnessExpiringSoon
	default:
		return domain.FreshnessFresh
	}
}

// FormatRelativeExpiry renders an expiry as a short Spanish phrase
// ("hoy", "en 3 días", "hace 2 días").
func FormatRelativeExpiry(estimatedExpiry, now time.Time) string {
	days := int(math.Round(estimatedExpiry.Sub(now).Hours() / 24))

	switch {
	case days == 0:
		return "hoy"
	case days == 1:
		return "mañana"
	case days == -1:
		return "ayer"
	case days > 0:
		return fmt.Sprintf("en %d días", days)
	default:
		return fmt.Sprintf("hace %d días", -days)
	}
}
