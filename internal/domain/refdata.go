package domain

// Reference geography and theme tables. Read-mostly; events point at them but
// never own them.

type AutonomousCommunity struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type Province struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	CommunityName string `json:"community_name"`
}

type Municipality struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	ProvinceName string `json:"province_name"`
}

type Theme struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
