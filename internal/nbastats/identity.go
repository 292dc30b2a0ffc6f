package nbastats

import "math/rand"

// Identity is one set of request headers presented to the stats API.
// Rotating among a fixed pool reduces fingerprint-based blocking; it is
// cosmetic, not a correctness mechanism.
type Identity struct {
	UserAgent      string
	Referer        string
	AcceptLanguage string
}

var defaultIdentities = []Identity{
	{
		UserAgent:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
		Referer:        "https://www.nba.com/",
		AcceptLanguage: "en-US,en;q=0.9",
	},
	{
		UserAgent:      "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36",
		Referer:        "https://www.nba.com/stats/",
		AcceptLanguage: "en-US,en;q=0.8",
	},
	{
		UserAgent:      "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36",
		Referer:        "https://www.nba.com/stats/players/",
		AcceptLanguage: "en-US,en;q=0.9",
	},
	{
		UserAgent:      "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.3 Safari/605.1.15",
		Referer:        "https://www.nba.com/",
		AcceptLanguage: "en-US,en;q=0.7",
	},
}

// headers returns the full header set for this identity, including the
// static headers the stats API expects from browser traffic.
func (id Identity) headers() map[string]string {
	return map[string]string{
		"User-Agent":         id.UserAgent,
		"Referer":            id.Referer,
		"Accept-Language":    id.AcceptLanguage,
		"Accept":             "application/json, text/plain, */*",
		"Origin":             "https://www.nba.com",
		"x-nba-stats-origin": "stats",
		"x-nba-stats-token":  "true",
	}
}

func pickIdentity(pool []Identity) Identity {
	if len(pool) == 0 {
		pool = defaultIdentities
	}
	return pool[rand.Intn(len(pool))]
}
