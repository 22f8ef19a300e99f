package dto

import "time"

// CreateCompanyRequest entrada para registrar una empresa.
type CreateCompanyRequest struct {
	Name    string `json:"nombre"`
	NIT     string `json:"nit"`
	Address string `json:"direccion"`
	Phone   string `json:"telefono"`
	Email   string `json:"email"`
}

// UpdateCompanyRequest actualización parcial de una empresa.
type UpdateCompanyRequest struct {
	Name    *string `json:"nombre"`
	Address *string `json:"direccion"`
	Phone   *string `json:"telefono"`
	Email   *string `json:"email"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"nombre"`
	NIT       string    `json:"nit"`
	Address   string    `json:"direccion"`
	Phone     string    `json:"telefono"`
	Email     string    `json:"email"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"fecha_creacion"`
	UpdatedAt time.Time `json:"fecha_actualizacion"`
}

// CompanyListResponse lista de empresas.
type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
	Total int               `json:"total"`
}
