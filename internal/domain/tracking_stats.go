package domain

// Player tracking tables, one per PtMeasureType. The upstream endpoint
// returns a different column set per measure type, so each measure gets
// its own table rather than a sparse shared one. All are upserted on
// (player_id, season, team_id).

// PlayerTrackingDrives holds per-game drive numbers for one player season.
type PlayerTrackingDrives struct {
	PlayerID         int64   `gorm:"column:player_id;primaryKey;autoIncrement:false" json:"player_id"`
	Season           string  `gorm:"column:season;primaryKey" json:"season"`
	TeamID           int64   `gorm:"column:team_id;primaryKey;autoIncrement:false" json:"team_id"`
	PlayerName       string  `gorm:"column:player_name" json:"player_name"`
	TeamAbbreviation string  `gorm:"column:team_abbreviation" json:"team_abbreviation"`
	GamesPlayed      int     `gorm:"column:games_played" json:"games_played"`
	Minutes          float64 `gorm:"column:minutes" json:"minutes"`
	Drives           float64 `gorm:"column:drives" json:"drives"`
	DriveFGM         float64 `gorm:"column:drive_fgm" json:"drive_fgm"`
	DriveFGA         float64 `gorm:"column:drive_fga" json:"drive_fga"`
	DriveFGPct       float64 `gorm:"column:drive_fg_pct" json:"drive_fg_pct"`
	DriveFTM         float64 `gorm:"column:drive_ftm" json:"drive_ftm"`
	DriveFTA         float64 `gorm:"column:drive_fta" json:"drive_fta"`
	DriveFTPct       float64 `gorm:"column:drive_ft_pct" json:"drive_ft_pct"`
	DrivePoints      float64 `gorm:"column:drive_pts" json:"drive_pts"`
	DrivePasses      float64 `gorm:"column:drive_passes" json:"drive_passes"`
	DriveAssists     float64 `gorm:"column:drive_ast" json:"drive_ast"`
	DriveTurnovers   float64 `gorm:"column:drive_tov" json:"drive_tov"`
	DriveFouls       float64 `gorm:"column:drive_pf" json:"drive_pf"`
}

// TableName returns the database table name for PlayerTrackingDrives.
func (PlayerTrackingDrives) TableName() string {
	return "player_tracking_drives"
}

// PlayerTrackingCatchShoot holds per-game catch-and-shoot numbers for one
// player season.
type PlayerTrackingCatchShoot struct {
	PlayerID           int64   `gorm:"column:player_id;primaryKey;autoIncrement:false" json:"player_id"`
	Season             string  `gorm:"column:season;primaryKey" json:"season"`
	TeamID             int64   `gorm:"column:team_id;primaryKey;autoIncrement:false" json:"team_id"`
	PlayerName         string  `gorm:"column:player_name" json:"player_name"`
	TeamAbbreviation   string  `gorm:"column:team_abbreviation" json:"team_abbreviation"`
	GamesPlayed        int     `gorm:"column:games_played" json:"games_played"`
	Minutes            float64 `gorm:"column:minutes" json:"minutes"`
	CatchShootFGM      float64 `gorm:"column:catch_shoot_fgm" json:"catch_shoot_fgm"`
	CatchShootFGA      float64 `gorm:"column:catch_shoot_fga" json:"catch_shoot_fga"`
	CatchShootFGPct    float64 `gorm:"column:catch_shoot_fg_pct" json:"catch_shoot_fg_pct"`
	CatchShootPoints   float64 `gorm:"column:catch_shoot_pts" json:"catch_shoot_pts"`
	CatchShootFG3M     float64 `gorm:"column:catch_shoot_fg3m" json:"catch_shoot_fg3m"`
	CatchShootFG3A     float64 `gorm:"column:catch_shoot_fg3a" json:"catch_shoot_fg3a"`
	CatchShootFG3Pct   float64 `gorm:"column:catch_shoot_fg3_pct" json:"catch_shoot_fg3_pct"`
	CatchShootEffFGPct float64 `gorm:"column:catch_shoot_efg_pct" json:"catch_shoot_efg_pct"`
}

// TableName returns the database table name for PlayerTrackingCatchShoot.
func (PlayerTrackingCatchShoot) TableName() string {
	return "player_tracking_catch_shoot"
}

// PlayerTrackingPullUp holds per-game pull-up shooting numbers for one
// player season.
type PlayerTrackingPullUp struct {
	PlayerID         int64   `gorm:"column:player_id;primaryKey;autoIncrement:false" json:"player_id"`
	Season           string  `gorm:"column:season;primaryKey" json:"season"`
	TeamID           int64   `gorm:"column:team_id;primaryKey;autoIncrement:false" json:"team_id"`
	PlayerName       string  `gorm:"column:player_name" json:"player_name"`
	TeamAbbreviation string  `gorm:"column:team_abbreviation" json:"team_abbreviation"`
	GamesPlayed      int     `gorm:"column:games_played" json:"games_played"`
	Minutes          float64 `gorm:"column:minutes" json:"minutes"`
	PullUpFGM        float64 `gorm:"column:pull_up_fgm" json:"pull_up_fgm"`
	PullUpFGA        float64 `gorm:"column:pull_up_fga" json:"pull_up_fga"`
	PullUpFGPct      float64 `gorm:"column:pull_up_fg_pct" json:"pull_up_fg_pct"`
	PullUpPoints     float64 `gorm:"column:pull_up_pts" json:"pull_up_pts"`
	PullUpFG3M       float64 `gorm:"column:pull_up_fg3m" json:"pull_up_fg3m"`
	PullUpFG3A       float64 `gorm:"column:pull_up_fg3a" json:"pull_up_fg3a"`
	PullUpFG3Pct     float64 `gorm:"column:pull_up_fg3_pct" json:"pull_up_fg3_pct"`
	PullUpEffFGPct   float64 `gorm:"column:pull_up_efg_pct" json:"pull_up_efg_pct"`
}

// TableName returns the database table name for PlayerTrackingPullUp.
func (PlayerTrackingPullUp) TableName() string {
	return "player_tracking_pull_up"
}
