package dto

// ErrorResponse respuesta de error uniforme de la API.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// PageResponse metadatos de paginación.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// MessageResponse respuesta simple con mensaje.
type MessageResponse struct {
	Message string `json:"message"`
}
