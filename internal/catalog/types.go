package catalog

// Record describes a single catalog entry in transport-friendly form.
// Listing responses omit some of the heavier fields; FetchItem returns
// the complete record.
type Record struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Climate       string `json:"climate"`
	Terrain       string `json:"terrain"`
	Population    string `json:"population"`
	Diameter      string `json:"diameter"`
	Gravity       string `json:"gravity"`
	OrbitalPeriod string `json:"orbitalPeriod"`
	Description   string `json:"description"`
}

// Portion is one fixed-width chunk of search results as served by the
// catalog API, together with the total number of matches for the term.
type Portion struct {
	Count   int
	Records []Record
}

// portionResponse mirrors the payload returned by /api/planets.
type portionResponse struct {
	Count   int      `json:"count"`
	Results []Record `json:"results"`
}
