package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SyncAttempts total de intentos de sincronización por resultado.
	// status: committed | failed | rejected (guard de un solo vuelo)
	SyncAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_sync_attempts_total",
		Help: "Total de intentos de sincronización de inventario por resultado",
	}, []string{"status"})

	// SyncBatchSize cantidad de filas enviadas por lote exitoso.
	SyncBatchSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "catalog_sync_batch_size",
		Help:    "Filas incluidas en cada lote de sincronización",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500},
	})

	// SyncDuration duración completa del intento (slot + upload).
	SyncDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "catalog_sync_duration_seconds",
		Help:    "Duración de los intentos de sincronización en segundos",
		Buckets: prometheus.DefBuckets,
	})

	// UploadedBytes bytes de CSV subidos al signed URL.
	UploadedBytes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_upload_bytes_total",
		Help: "Total de bytes de CSV subidos al servicio de catálogo",
	})

	// DirtyItems filas con ediciones locales pendientes de sync.
	// Es el indicador principal de atraso del operador.
	DirtyItems = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "catalog_dirty_items",
		Help: "Cantidad actual de filas modificadas sin sincronizar",
	})
)
