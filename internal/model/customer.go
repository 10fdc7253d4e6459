package model

// CustomerProfile is a read-only snapshot of a loyalty customer fetched by
// email. No copy is retained past the request that fetched it.
type CustomerProfile struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Points    int    `json:"points"`
	Credits   int    `json:"credits"`
	VIPTier   string `json:"vipTier,omitempty"`
}
