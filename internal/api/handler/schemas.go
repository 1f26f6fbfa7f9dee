package handler

// deleteManyRequest carries the identifiers for a bulk delete.
type deleteManyRequest struct {
	IDs []string `json:"ids" validate:"required,min=1"`
}

// deleteManyResponse reports how many records a bulk delete removed.
// Non-matching ids are ignored, not errors.
type deleteManyResponse struct {
	DeletedCount int64 `json:"deletedCount"`
}
