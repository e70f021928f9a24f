package dtos

/*
ImportSummaryResponse reports a completed CSV import. Atomic is always false:
rows are applied one store round-trip at a time, so a crash mid-import leaves
the rows written so far in place.
*/
type ImportSummaryResponse struct {
	Inserted int  `json:"inserted"`
	Updated  int  `json:"updated"`
	Atomic   bool `json:"atomic"`
}

/*
RowErrorDTO is one rejected CSV data row (1-based, counting data rows only,
header excluded) with its per-field messages.
*/
type RowErrorDTO struct {
	Row    int             `json:"row"`
	Fields []FieldErrorDTO `json:"fields"`
}

type FieldErrorDTO struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
