package domain

// Country is reference data supplied by an external collaborator; the core
// only ever reads it.
type Country struct {
	CountryCode          string `json:"countryCode"`
	Name                 string `json:"name"`
	TelephoneCountryCode string `json:"telephoneCountryCode"`
}
