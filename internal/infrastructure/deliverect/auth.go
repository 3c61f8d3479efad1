package deliverect

import "context"

// HeaderProvider colaborador de autenticación: entrega los headers de
// credenciales que exige el servicio de catálogo. Cómo se obtiene la
// credencial es asunto de la implementación; el cliente solo fusiona el
// resultado con los headers propios de cada llamada.
type HeaderProvider interface {
	Headers(ctx context.Context) (map[string]string, error)
}

// StaticTokenProvider HeaderProvider con un bearer token fijo tomado de la
// configuración.
type StaticTokenProvider struct {
	token string
}

// NewStaticTokenProvider construye el proveedor con el token dado.
func NewStaticTokenProvider(token string) *StaticTokenProvider {
	return &StaticTokenProvider{token: token}
}

// Headers devuelve el header Authorization con el token configurado.
func (p *StaticTokenProvider) Headers(_ context.Context) (map[string]string, error) {
	return map[string]string{"Authorization": "Bearer " + p.token}, nil
}
