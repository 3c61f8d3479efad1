package deliverect

import "fmt"

// UpstreamError respuesta no-2xx de cualquiera de las dos llamadas remotas.
// Conserva el status y el cuerpo para diagnóstico; el lote queda dirty.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("deliverect: respuesta %d: %s", e.StatusCode, e.Body)
}

// TransportError fallo a nivel de red (timeout, conexión rechazada), distinto
// de una respuesta de error del servicio.
type TransportError struct {
	Op  string // "request_upload_slot" | "upload_payload"
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("deliverect: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
