package domain

// PlayerShotLocations holds one player's shooting splits by court zone
// for one season, upserted on (player_id, season, team_id). Column names
// follow the {zone}_{metric} convention the categorized parser
// synthesizes from the two-level header response.
type PlayerShotLocations struct {
	PlayerID         int64   `gorm:"column:player_id;primaryKey;autoIncrement:false" json:"player_id"`
	Season           string  `gorm:"column:season;primaryKey" json:"season"`
	TeamID           int64   `gorm:"column:team_id;primaryKey;autoIncrement:false" json:"team_id"`
	PlayerName       string  `gorm:"column:player_name" json:"player_name"`
	TeamAbbreviation string  `gorm:"column:team_abbreviation" json:"team_abbreviation"`
	Age              float64 `gorm:"column:age" json:"age"`

	RestrictedAreaFGM   float64 `gorm:"column:restricted_area_fgm" json:"restricted_area_fgm"`
	RestrictedAreaFGA   float64 `gorm:"column:restricted_area_fga" json:"restricted_area_fga"`
	RestrictedAreaFGPct float64 `gorm:"column:restricted_area_fg_pct" json:"restricted_area_fg_pct"`

	InThePaintNonRaFGM   float64 `gorm:"column:in_the_paint_non_ra_fgm" json:"in_the_paint_non_ra_fgm"`
	InThePaintNonRaFGA   float64 `gorm:"column:in_the_paint_non_ra_fga" json:"in_the_paint_non_ra_fga"`
	InThePaintNonRaFGPct float64 `gorm:"column:in_the_paint_non_ra_fg_pct" json:"in_the_paint_non_ra_fg_pct"`

	MidRangeFGM   float64 `gorm:"column:mid_range_fgm" json:"mid_range_fgm"`
	MidRangeFGA   float64 `gorm:"column:mid_range_fga" json:"mid_range_fga"`
	MidRangeFGPct float64 `gorm:"column:mid_range_fg_pct" json:"mid_range_fg_pct"`

	LeftCorner3FGM   float64 `gorm:"column:left_corner_3_fgm" json:"left_corner_3_fgm"`
	LeftCorner3FGA   float64 `gorm:"column:left_corner_3_fga" json:"left_corner_3_fga"`
	LeftCorner3FGPct float64 `gorm:"column:left_corner_3_fg_pct" json:"left_corner_3_fg_pct"`

	RightCorner3FGM   float64 `gorm:"column:right_corner_3_fgm" json:"right_corner_3_fgm"`
	RightCorner3FGA   float64 `gorm:"column:right_corner_3_fga" json:"right_corner_3_fga"`
	RightCorner3FGPct float64 `gorm:"column:right_corner_3_fg_pct" json:"right_corner_3_fg_pct"`

	AboveTheBreak3FGM   float64 `gorm:"column:above_the_break_3_fgm" json:"above_the_break_3_fgm"`
	AboveTheBreak3FGA   float64 `gorm:"column:above_the_break_3_fga" json:"above_the_break_3_fga"`
	AboveTheBreak3FGPct float64 `gorm:"column:above_the_break_3_fg_pct" json:"above_the_break_3_fg_pct"`

	BackcourtFGM   float64 `gorm:"column:backcourt_fgm" json:"backcourt_fgm"`
	BackcourtFGA   float64 `gorm:"column:backcourt_fga" json:"backcourt_fga"`
	BackcourtFGPct float64 `gorm:"column:backcourt_fg_pct" json:"backcourt_fg_pct"`

	Corner3FGM   float64 `gorm:"column:corner_3_fgm" json:"corner_3_fgm"`
	Corner3FGA   float64 `gorm:"column:corner_3_fga" json:"corner_3_fga"`
	Corner3FGPct float64 `gorm:"column:corner_3_fg_pct" json:"corner_3_fg_pct"`
}

// TableName returns the database table name for PlayerShotLocations.
func (PlayerShotLocations) TableName() string {
	return "player_shot_locations"
}
