package models

// StoreStats summarizes row counts for the health endpoint
type StoreStats struct {
	Users  int64 `json:"users"`
	Orders int64 `json:"orders"`
}
