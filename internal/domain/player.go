package domain

// Player is one roster entry for one season, upserted on
// (player_id, season). Position starts empty and is backfilled by the
// player-positions ingestion step.
type Player struct {
	PlayerID         int64  `gorm:"column:player_id;primaryKey;autoIncrement:false" json:"player_id"`
	Season           string `gorm:"column:season;primaryKey" json:"season"`
	PlayerName       string `gorm:"column:player_name;index" json:"player_name"`
	TeamID           int64  `gorm:"column:team_id;index" json:"team_id"`
	TeamAbbreviation string `gorm:"column:team_abbreviation" json:"team_abbreviation"`
	FromYear         string `gorm:"column:from_year" json:"from_year"`
	ToYear           string `gorm:"column:to_year" json:"to_year"`
	Position         string `gorm:"column:position" json:"position"`
}

// TableName returns the database table name for Player.
func (Player) TableName() string {
	return "players"
}
