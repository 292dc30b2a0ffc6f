package domain

// Team represents one NBA franchise as reported by the team index
// endpoint. Teams are season-independent; the per-season numbers live in
// TeamSeasonStats.
type Team struct {
	TeamID       int64  `gorm:"column:team_id;primaryKey;autoIncrement:false" json:"team_id"`
	LeagueID     string `gorm:"column:league_id" json:"league_id"`
	Abbreviation string `gorm:"column:abbreviation;index" json:"abbreviation"`
	MinYear      string `gorm:"column:min_year" json:"min_year"`
	MaxYear      string `gorm:"column:max_year" json:"max_year"`
}

// TableName returns the database table name for Team.
func (Team) TableName() string {
	return "teams"
}

// TeamSeasonStats holds one team's aggregate box-score numbers for one
// season, upserted on (team_id, season).
type TeamSeasonStats struct {
	TeamID      int64   `gorm:"column:team_id;primaryKey;autoIncrement:false" json:"team_id"`
	Season      string  `gorm:"column:season;primaryKey" json:"season"`
	TeamName    string  `gorm:"column:team_name" json:"team_name"`
	GamesPlayed int     `gorm:"column:games_played" json:"games_played"`
	Wins        int     `gorm:"column:w" json:"w"`
	Losses      int     `gorm:"column:l" json:"l"`
	WinPct      float64 `gorm:"column:w_pct" json:"w_pct"`
	Minutes     float64 `gorm:"column:minutes" json:"minutes"`
	FGM         float64 `gorm:"column:fgm" json:"fgm"`
	FGA         float64 `gorm:"column:fga" json:"fga"`
	FGPct       float64 `gorm:"column:fg_pct" json:"fg_pct"`
	FG3M        float64 `gorm:"column:fg3m" json:"fg3m"`
	FG3A        float64 `gorm:"column:fg3a" json:"fg3a"`
	FG3Pct      float64 `gorm:"column:fg3_pct" json:"fg3_pct"`
	FTM         float64 `gorm:"column:ftm" json:"ftm"`
	FTA         float64 `gorm:"column:fta" json:"fta"`
	FTPct       float64 `gorm:"column:ft_pct" json:"ft_pct"`
	OffRebounds float64 `gorm:"column:oreb" json:"oreb"`
	DefRebounds float64 `gorm:"column:dreb" json:"dreb"`
	Rebounds    float64 `gorm:"column:rebounds" json:"rebounds"`
	Assists     float64 `gorm:"column:assists" json:"assists"`
	Turnovers   float64 `gorm:"column:turnovers" json:"turnovers"`
	Steals      float64 `gorm:"column:steals" json:"steals"`
	Blocks      float64 `gorm:"column:blocks" json:"blocks"`
	Fouls       float64 `gorm:"column:pf" json:"pf"`
	Points      float64 `gorm:"column:points" json:"points"`
	PlusMinus   float64 `gorm:"column:plus_minus" json:"plus_minus"`
}

// TableName returns the database table name for TeamSeasonStats.
func (TeamSeasonStats) TableName() string {
	return "team_season_stats"
}
