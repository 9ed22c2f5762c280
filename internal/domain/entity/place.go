package entity

// Place is one candidate row returned by a forward-geocoding search.
// Candidates are transient: the client picks one to create a Stop and the
// rest are discarded.
type Place struct {
	ID        string // Provider-assigned feature id.
	Title     string // Best available display name for the feature.
	Longitude float64
	Latitude  float64
}
