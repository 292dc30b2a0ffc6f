package nbastats

import "strconv"

// Endpoint paths under the stats API base URL.
const (
	EndpointTeamYears      = "commonteamyears"
	EndpointAllPlayers     = "commonallplayers"
	EndpointPlayerInfo     = "commonplayerinfo"
	EndpointPlayerStats    = "leaguedashplayerstats"
	EndpointShotLocations  = "leaguedashplayershotlocations"
	EndpointPlayerTracking = "leaguedashptstats"
	EndpointTeamStats      = "leaguedashteamstats"
)

// Result set names within the responses we consume.
const (
	ResultSetTeamYears     = "TeamYears"
	ResultSetAllPlayers    = "CommonAllPlayers"
	ResultSetPlayerInfo    = "CommonPlayerInfo"
	ResultSetLeagueDash    = "LeagueDashPlayerStats"
	ResultSetShotLocations = "ShotLocations"
	ResultSetPtStats       = "LeagueDashPtStats"
	ResultSetTeamStats     = "LeagueDashTeamStats"
)

// PtMeasureType values for the player tracking endpoint.
const (
	PtMeasureDrives     = "Drives"
	PtMeasureCatchShoot = "CatchShoot"
	PtMeasurePullUp     = "PullUpShot"
)

const (
	leagueNBA         = "00"
	seasonTypeRegular = "Regular Season"
	perModePerGame    = "PerGame"
)

// SeasonParams returns the baseline query parameters shared by the
// per-season league dashboard endpoints.
func SeasonParams(season string) map[string]string {
	return map[string]string{
		"LeagueID":   leagueNBA,
		"Season":     season,
		"SeasonType": seasonTypeRegular,
		"PerMode":    perModePerGame,
	}
}

// LeagueDashParams returns parameters for leaguedashplayerstats or
// leaguedashteamstats with the given measure type (Base, Advanced).
func LeagueDashParams(season, measureType string) map[string]string {
	p := SeasonParams(season)
	p["MeasureType"] = measureType
	return p
}

// ShotLocationParams returns parameters for the by-zone shot location
// dashboard, the endpoint with two-level headers.
func ShotLocationParams(season string) map[string]string {
	p := SeasonParams(season)
	p["MeasureType"] = "Base"
	p["DistanceRange"] = "By Zone"
	return p
}

// TrackingParams returns parameters for leaguedashptstats with the given
// PtMeasureType.
func TrackingParams(season, ptMeasureType string) map[string]string {
	p := SeasonParams(season)
	delete(p, "MeasureType")
	p["PtMeasureType"] = ptMeasureType
	p["PlayerOrTeam"] = "Player"
	return p
}

// AllPlayersParams returns parameters for the season roster index.
func AllPlayersParams(season string) map[string]string {
	return map[string]string{
		"LeagueID":            leagueNBA,
		"Season":              season,
		"IsOnlyCurrentSeason": "1",
	}
}

// PlayerInfoParams returns parameters for one player's bio record.
func PlayerInfoParams(playerID int64) map[string]string {
	return map[string]string{
		"PlayerID": strconv.FormatInt(playerID, 10),
		"LeagueID": leagueNBA,
	}
}
