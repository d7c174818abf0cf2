package service

// PlayerInfo is returned when a player identifier is issued
type PlayerInfo struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CreateGameRequest carries what is needed to open a new lobby
type CreateGameRequest struct {
	HostID   int    `json:"host_id"`
	HostName string `json:"host_name"`
	Name     string `json:"name"`
}

// JoinGameRequest identifies the joining player
type JoinGameRequest struct {
	PlayerID   int    `json:"player_id"`
	PlayerName string `json:"player_name"`
}
