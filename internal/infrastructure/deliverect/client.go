package deliverect

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultSlotTimeout   = 60 * time.Second
	defaultUploadTimeout = 300 * time.Second
)

// UploadSlot resultado del paso 1 del protocolo: una URL firmada de un solo
// uso, los headers a usar en el PUT posterior y un identificador opaco del
// archivo.
type UploadSlot struct {
	SignedURL string
	Headers   map[string]string
	FileID    string
}

// Client puerto de salida hacia el servicio de catálogo. La implementación
// concreta usa HTTP; para tests se puede inyectar un mock.
type Client interface {
	// RequestUploadSlot solicita una URL firmada de carga para la cuenta,
	// indicando el destino de callback.
	RequestUploadSlot(ctx context.Context, accountID, callbackURL string) (*UploadSlot, error)
	// UploadPayload sube los bytes del CSV al signed URL con los headers del slot.
	UploadPayload(ctx context.Context, payload []byte, slot *UploadSlot) error
}

// HTTPClient implementa Client contra la API de Deliverect.
//
// Usa dos http.Client separados: la solicitud del slot tiene un presupuesto
// corto, mientras que el PUT del CSV usa uno mayor porque el tamaño del lote
// y el procesamiento upstream pueden ser grandes. Ninguna de las dos
// operaciones reintenta internamente; la política de retry es del llamador.
type HTTPClient struct {
	baseURL      string
	auth         HeaderProvider
	slotClient   *http.Client
	uploadClient *http.Client
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient construye el cliente. Timeouts en cero o negativos caen a los
// valores por defecto (60 s para el slot, 300 s para la carga).
func NewHTTPClient(baseURL string, auth HeaderProvider, slotTimeout, uploadTimeout time.Duration) *HTTPClient {
	if slotTimeout <= 0 {
		slotTimeout = defaultSlotTimeout
	}
	if uploadTimeout <= 0 {
		uploadTimeout = defaultUploadTimeout
	}
	return &HTTPClient{
		baseURL:      baseURL,
		auth:         auth,
		slotClient:   &http.Client{Timeout: slotTimeout},
		uploadClient: &http.Client{Timeout: uploadTimeout},
	}
}

type slotRequest struct {
	CallbackURL string `json:"callbackUrl"`
}

type slotResponse struct {
	SignedURL string            `json:"signedUrl"`
	Headers   map[string]string `json:"headers"`
	FileID    string            `json:"fileId"`
}

// RequestUploadSlot ejecuta el paso 1:
// POST {base}/catalog/accounts/{accountID}/inventoryUploadUrl con los headers
// del HeaderProvider más Content-Type JSON. Respuesta no-2xx -> *UpstreamError;
// fallo de red -> *TransportError.
func (c *HTTPClient) RequestUploadSlot(ctx context.Context, accountID, callbackURL string) (*UploadSlot, error) {
	body, err := json.Marshal(slotRequest{CallbackURL: callbackURL})
	if err != nil {
		return nil, fmt.Errorf("serializar solicitud de slot: %w", err)
	}

	url := fmt.Sprintf("%s/catalog/accounts/%s/inventoryUploadUrl", c.baseURL, accountID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("construir solicitud de slot: %w", err)
	}

	authHeaders, err := c.auth.Headers(ctx)
	if err != nil {
		return nil, fmt.Errorf("obtener credenciales: %w", err)
	}
	for k, v := range authHeaders {
		req.Header.Set(k, v)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.slotClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "request_upload_slot", Err: err}
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var out slotResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("decodificar respuesta de slot: %w", err)
	}
	if out.SignedURL == "" {
		return nil, fmt.Errorf("respuesta de slot sin signedUrl")
	}
	headers := out.Headers
	if len(headers) == 0 {
		headers = map[string]string{"Content-Type": "text/csv"}
	}
	return &UploadSlot{
		SignedURL: out.SignedURL,
		Headers:   headers,
		FileID:    out.FileID,
	}, nil
}

// UploadPayload ejecuta el paso 2: PUT del CSV crudo al signed URL usando los
// headers devueltos en el paso 1. Respuesta no-2xx -> *UpstreamError; fallo de
// red -> *TransportError.
func (c *HTTPClient) UploadPayload(ctx context.Context, payload []byte, slot *UploadSlot) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, slot.SignedURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("construir solicitud de carga: %w", err)
	}
	for k, v := range slot.Headers {
		req.Header.Set(k, v)
	}

	resp, err := c.uploadClient.Do(req)
	if err != nil {
		return &TransportError{Op: "upload_payload", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		return &UpstreamError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}
	return nil
}
