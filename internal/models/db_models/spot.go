package db_models

// Spot is a read-mostly cache row of a tourist spot sourced from the
// external tourism API. SourceID keeps the upstream content id so refreshes
// can upsert instead of duplicating.
type Spot struct {
	BaseModel
	Name       string
	Category   string
	Address    string
	Latitude   float64
	Longitude  float64
	CoinReward int
	SourceID   string `gorm:"uniqueIndex"`
}

func (Spot) TableName() string {
	return "spots"
}
