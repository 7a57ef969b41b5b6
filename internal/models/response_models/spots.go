package response_models

type Spot struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Category   string  `json:"category"`
	Address    string  `json:"address"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	CoinReward int     `json:"coinReward"`
}

type LoginResult struct {
	Token string `json:"token"`
}
