package dto

import "time"

// SyncRequest disparo de una sincronización. AccountID puede venir vacío si
// está configurado en el servicio.
type SyncRequest struct {
	AccountID string `json:"account_id"`
}

// SyncResponse resultado de un intento exitoso (o vacío, si no había nada
// que sincronizar).
type SyncResponse struct {
	AttemptID   string    `json:"attempt_id"`
	SyncedCount int       `json:"synced_count"`
	FileID      string    `json:"file_id,omitempty"`
	LastSync    time.Time `json:"last_sync"`
}

// SyncStatusResponse estado actual del orquestador y del dirty set.
type SyncStatusResponse struct {
	State      string     `json:"state"`
	DirtyCount int        `json:"dirty_count"`
	DirtyIDs   []int64    `json:"dirty_ids"`
	LastSync   *time.Time `json:"last_sync,omitempty"`
}
