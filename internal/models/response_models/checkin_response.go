package response_models

type CheckInResult struct {
	CheckInID   string `json:"checkInId"`
	PhotoURL    string `json:"photoUrl"`
	CoinsEarned int    `json:"coinsEarned"`
}

type DuplicateCheck struct {
	AlreadyCheckedIn bool `json:"alreadyCheckedIn"`
}

type DemoState struct {
	TestModeEnabled     bool `json:"testModeEnabled"`
	BypassLocationCheck bool `json:"bypassLocationCheck"`
}
