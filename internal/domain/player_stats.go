package domain

// PlayerSeasonRawStats holds one player's traditional per-game box-score
// numbers for one season, upserted on (player_id, season, team_id).
// ThreePointAttemptRate is derived by the step layer (fg3a / fga), not
// reported by the API.
type PlayerSeasonRawStats struct {
	PlayerID              int64   `gorm:"column:player_id;primaryKey;autoIncrement:false" json:"player_id"`
	Season                string  `gorm:"column:season;primaryKey" json:"season"`
	TeamID                int64   `gorm:"column:team_id;primaryKey;autoIncrement:false" json:"team_id"`
	PlayerName            string  `gorm:"column:player_name" json:"player_name"`
	TeamAbbreviation      string  `gorm:"column:team_abbreviation" json:"team_abbreviation"`
	Age                   float64 `gorm:"column:age" json:"age"`
	GamesPlayed           int     `gorm:"column:games_played" json:"games_played"`
	Wins                  int     `gorm:"column:w" json:"w"`
	Losses                int     `gorm:"column:l" json:"l"`
	Minutes               float64 `gorm:"column:minutes" json:"minutes"`
	FGM                   float64 `gorm:"column:fgm" json:"fgm"`
	FGA                   float64 `gorm:"column:fga" json:"fga"`
	FGPct                 float64 `gorm:"column:fg_pct" json:"fg_pct"`
	FG3M                  float64 `gorm:"column:fg3m" json:"fg3m"`
	FG3A                  float64 `gorm:"column:fg3a" json:"fg3a"`
	FG3Pct                float64 `gorm:"column:fg3_pct" json:"fg3_pct"`
	FTM                   float64 `gorm:"column:ftm" json:"ftm"`
	FTA                   float64 `gorm:"column:fta" json:"fta"`
	FTPct                 float64 `gorm:"column:ft_pct" json:"ft_pct"`
	OffRebounds           float64 `gorm:"column:oreb" json:"oreb"`
	DefRebounds           float64 `gorm:"column:dreb" json:"dreb"`
	Rebounds              float64 `gorm:"column:rebounds" json:"rebounds"`
	Assists               float64 `gorm:"column:assists" json:"assists"`
	Turnovers             float64 `gorm:"column:turnovers" json:"turnovers"`
	Steals                float64 `gorm:"column:steals" json:"steals"`
	Blocks                float64 `gorm:"column:blocks" json:"blocks"`
	Fouls                 float64 `gorm:"column:pf" json:"pf"`
	Points                float64 `gorm:"column:points" json:"points"`
	PlusMinus             float64 `gorm:"column:plus_minus" json:"plus_minus"`
	ThreePointAttemptRate float64 `gorm:"column:three_point_attempt_rate" json:"three_point_attempt_rate"`
}

// TableName returns the database table name for PlayerSeasonRawStats.
func (PlayerSeasonRawStats) TableName() string {
	return "player_season_raw_stats"
}

// PlayerSeasonAdvancedStats holds one player's advanced efficiency
// metrics for one season, upserted on (player_id, season, team_id).
type PlayerSeasonAdvancedStats struct {
	PlayerID         int64   `gorm:"column:player_id;primaryKey;autoIncrement:false" json:"player_id"`
	Season           string  `gorm:"column:season;primaryKey" json:"season"`
	TeamID           int64   `gorm:"column:team_id;primaryKey;autoIncrement:false" json:"team_id"`
	PlayerName       string  `gorm:"column:player_name" json:"player_name"`
	TeamAbbreviation string  `gorm:"column:team_abbreviation" json:"team_abbreviation"`
	Age              float64 `gorm:"column:age" json:"age"`
	GamesPlayed      int     `gorm:"column:games_played" json:"games_played"`
	Minutes          float64 `gorm:"column:minutes" json:"minutes"`
	OffRating        float64 `gorm:"column:off_rating" json:"off_rating"`
	DefRating        float64 `gorm:"column:def_rating" json:"def_rating"`
	NetRating        float64 `gorm:"column:net_rating" json:"net_rating"`
	AssistPct        float64 `gorm:"column:ast_pct" json:"ast_pct"`
	AssistToTurnover float64 `gorm:"column:ast_to" json:"ast_to"`
	AssistRatio      float64 `gorm:"column:ast_ratio" json:"ast_ratio"`
	OffReboundPct    float64 `gorm:"column:oreb_pct" json:"oreb_pct"`
	DefReboundPct    float64 `gorm:"column:dreb_pct" json:"dreb_pct"`
	ReboundPct       float64 `gorm:"column:reb_pct" json:"reb_pct"`
	TeamTurnoverPct  float64 `gorm:"column:tm_tov_pct" json:"tm_tov_pct"`
	EffectiveFGPct   float64 `gorm:"column:efg_pct" json:"efg_pct"`
	TrueShootingPct  float64 `gorm:"column:ts_pct" json:"ts_pct"`
	UsagePct         float64 `gorm:"column:usg_pct" json:"usg_pct"`
	Pace             float64 `gorm:"column:pace" json:"pace"`
	PIE              float64 `gorm:"column:pie" json:"pie"`
}

// TableName returns the database table name for PlayerSeasonAdvancedStats.
func (PlayerSeasonAdvancedStats) TableName() string {
	return "player_season_advanced_stats"
}
