package dtos

/*
PropertyNameAutocompleteRequest asks for the single best completion of a
partially typed property name. ExistingPropertyNames may be omitted, in which
case the server pulls the user's distinct property names itself.
*/
type PropertyNameAutocompleteRequest struct {
	PropertyNamePrefix    string   `json:"property_name_prefix" validate:"required"`
	ExistingPropertyNames []string `json:"existing_property_names,omitempty"`
}

type PropertyNameAutocompleteResponse struct {
	SuggestedPropertyName string  `json:"suggested_property_name"`
	ConfidenceScore       float64 `json:"confidence_score"`
}

/*
UnitNumberAutocompleteRequest asks for unit numbers the user might be typing
for a given property. Suggestions never stray outside ExistingUnitNumbers.
*/
type UnitNumberAutocompleteRequest struct {
	PropertyName        string   `json:"property_name" validate:"required"`
	UserInput           string   `json:"user_input" validate:"required"`
	ExistingUnitNumbers []string `json:"existing_unit_numbers,omitempty"`
}

type UnitNumberAutocompleteResponse struct {
	Suggestions []string `json:"suggestions"`
}
