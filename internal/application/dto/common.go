package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// IDRef referencia {id} usada en respuestas anidadas (store, role).
type IDRef struct {
	ID int64 `json:"id"`
}

// NewIDRef devuelve nil para ids ausentes.
func NewIDRef(id *int64) *IDRef {
	if id == nil {
		return nil
	}
	return &IDRef{ID: *id}
}
