package dto

// TokenizeResponse maps each field name to its issued token.
type TokenizeResponse struct {
	ID   string            `json:"id"`
	Data map[string]string `json:"data"`
}

// FieldResult is the per-field outcome of a detokenize request.
type FieldResult struct {
	Found bool   `json:"found"`
	Value string `json:"value"`
}

// DetokenizeResponse maps each field name to its resolution outcome.
type DetokenizeResponse struct {
	ID   string                 `json:"id"`
	Data map[string]FieldResult `json:"data"`
}
