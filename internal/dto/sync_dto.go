package dto

// SyncResponse reports how many entries a sync operation touched.
type SyncResponse struct {
	Count int `json:"count"`
}
