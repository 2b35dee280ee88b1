package dto

type GuardarProveedorRequest struct {
	Rif         string  `json:"rif"          validate:"required,min=5"`
	RazonSocial string  `json:"razon_social" validate:"required,min=2"`
	Contacto    *string `json:"contacto"`
}

type ProveedorResponse struct {
	ID          string  `json:"id"`
	Rif         string  `json:"rif"`
	RazonSocial string  `json:"razon_social"`
	Contacto    *string `json:"contacto"`
	Activo      bool    `json:"activo"`
}

type CrearCategoriaRequest struct {
	Nombre string `json:"nombre" validate:"required,min=2"`
}

type CategoriaResponse struct {
	ID     string `json:"id"`
	Nombre string `json:"nombre"`
}
