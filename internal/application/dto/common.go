package dto

// ListRequest límite para listados de registros recientes.
type ListRequest struct {
	Limit int `query:"limit" validate:"min=0,max=500"`
}

// DefaultLimit aplica el valor por defecto si Limit es cero.
func (r *ListRequest) DefaultLimit() {
	if r.Limit <= 0 {
		r.Limit = 10
	}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
