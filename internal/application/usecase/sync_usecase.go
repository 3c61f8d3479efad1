package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/inventario-sync/internal/application/dto"
	"github.com/jhoicas/inventario-sync/internal/domain"
	"github.com/jhoicas/inventario-sync/internal/domain/catalog"
	"github.com/jhoicas/inventario-sync/internal/domain/inventory"
	"github.com/jhoicas/inventario-sync/internal/infrastructure/deliverect"
	"github.com/jhoicas/inventario-sync/pkg/logger"
	"github.com/jhoicas/inventario-sync/pkg/metrics"
)

// SyncState estado del ciclo de sincronización.
type SyncState string

const (
	StateIdle           SyncState = "IDLE"
	StateCollecting     SyncState = "COLLECTING"
	StateFormatting     SyncState = "FORMATTING"
	StateRequestingSlot SyncState = "REQUESTING_SLOT"
	StateUploading      SyncState = "UPLOADING"
	StateCommitted      SyncState = "COMMITTED"
	StateFailed         SyncState = "FAILED"
)

// SyncConfig parámetros del operador para los intentos de sincronización.
type SyncConfig struct {
	AccountID   string // default; la solicitud puede sobreescribirlo
	CallbackURL string
	Location    string
}

// SyncUseCase orquestador del protocolo de carga en dos fases.
//
// Ciclo: IDLE -> COLLECTING -> FORMATTING -> REQUESTING_SLOT -> UPLOADING ->
// COMMITTED, o FAILED desde cualquiera de los estados que tocan red. Reglas:
//
//   - El snapshot del dirty set se toma una sola vez en COLLECTING; ediciones
//     posteriores nunca alteran el lote en vuelo.
//   - COMMITTED limpia exactamente los IDs del lote enviado y registra el
//     timestamp; IDs ensuciados después del snapshot quedan dirty.
//   - Cualquier fallo deja el dirty set intacto para que el mismo lote pueda
//     reintentarse. No hay retry interno.
//   - Solo un intento en vuelo: un segundo Sync concurrente se rechaza con
//     ErrSyncInProgress.
type SyncUseCase struct {
	store  *catalog.Store
	client deliverect.Client
	cfg    SyncConfig
	log    *logger.Logger

	mu       sync.Mutex
	syncing  bool
	state    SyncState
	lastSync *time.Time
}

// NewSyncUseCase construye el orquestador. log en nil usa un logger nop.
func NewSyncUseCase(store *catalog.Store, client deliverect.Client, cfg SyncConfig, log *logger.Logger) *SyncUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &SyncUseCase{
		store:  store,
		client: client,
		cfg:    cfg,
		log:    log,
		state:  StateIdle,
	}
}

// Status estado actual del orquestador y del dirty set.
func (uc *SyncUseCase) Status() *dto.SyncStatusResponse {
	uc.mu.Lock()
	state := uc.state
	lastSync := uc.lastSync
	uc.mu.Unlock()

	return &dto.SyncStatusResponse{
		State:      string(state),
		DirtyCount: uc.store.DirtyCount(),
		DirtyIDs:   uc.store.DirtyIDs(),
		LastSync:   lastSync,
	}
}

// Sync ejecuta un intento completo de sincronización sobre el snapshot actual
// del dirty set. accountID vacío cae al configurado; si ambos están vacíos
// falla con ErrMissingAccount sin tocar la red.
func (uc *SyncUseCase) Sync(ctx context.Context, accountID string) (*dto.SyncResponse, error) {
	if accountID == "" {
		accountID = uc.cfg.AccountID
	}
	if accountID == "" {
		return nil, domain.ErrMissingAccount
	}

	uc.mu.Lock()
	if uc.syncing {
		uc.mu.Unlock()
		metrics.SyncAttempts.WithLabelValues("rejected").Inc()
		return nil, domain.ErrSyncInProgress
	}
	uc.syncing = true
	uc.mu.Unlock()
	defer func() {
		uc.mu.Lock()
		uc.syncing = false
		uc.mu.Unlock()
	}()

	attemptID := uuid.NewString()
	zl := uc.log.With().Str("attempt_id", attemptID).Str("account_id", accountID).Logger()
	start := time.Now()

	uc.setState(zl, StateCollecting)
	ids, rows := uc.store.SnapshotDirty()
	if len(ids) == 0 {
		zl.Info().Msg("nada que sincronizar")
		uc.setState(zl, StateIdle)
		return &dto.SyncResponse{AttemptID: attemptID, SyncedCount: 0, LastSync: time.Now()}, nil
	}

	uc.setState(zl, StateFormatting)
	records := inventory.FormatUpload(rows, uc.cfg.Location)
	payload, err := inventory.WriteCSV(records)
	if err != nil {
		return nil, uc.fail(zl, err)
	}

	uc.setState(zl, StateRequestingSlot)
	slot, err := uc.client.RequestUploadSlot(ctx, accountID, uc.cfg.CallbackURL)
	if err != nil {
		return nil, uc.fail(zl, err)
	}

	uc.setState(zl, StateUploading)
	if err := uc.client.UploadPayload(ctx, payload, slot); err != nil {
		return nil, uc.fail(zl, err)
	}

	// Commit: se limpia exactamente el lote enviado, no el dirty set completo.
	uc.store.ClearDirtyBatch(ids)
	now := time.Now()
	uc.mu.Lock()
	uc.lastSync = &now
	uc.mu.Unlock()
	uc.setState(zl, StateCommitted)

	metrics.SyncAttempts.WithLabelValues("committed").Inc()
	metrics.SyncBatchSize.Observe(float64(len(ids)))
	metrics.SyncDuration.Observe(time.Since(start).Seconds())
	metrics.UploadedBytes.Add(float64(len(payload)))
	metrics.DirtyItems.Set(float64(uc.store.DirtyCount()))

	zl.Info().
		Int("synced", len(ids)).
		Str("file_id", slot.FileID).
		Dur("duration", time.Since(start)).
		Msg("sincronización completada")

	return &dto.SyncResponse{
		AttemptID:   attemptID,
		SyncedCount: len(ids),
		FileID:      slot.FileID,
		LastSync:    now,
	}, nil
}

func (uc *SyncUseCase) setState(zl zerolog.Logger, state SyncState) {
	uc.mu.Lock()
	uc.state = state
	uc.mu.Unlock()
	zl.Debug().Str("state", string(state)).Msg("transición de estado")
}

// fail marca FAILED y propaga el error. El dirty set no se toca: el mismo
// lote queda disponible para el próximo intento.
func (uc *SyncUseCase) fail(zl zerolog.Logger, err error) error {
	uc.setState(zl, StateFailed)
	metrics.SyncAttempts.WithLabelValues("failed").Inc()
	zl.Error().Err(err).Msg("sincronización fallida")
	return err
}
