package models

// Progress is the packed/total ratio of a set of items.
type Progress struct {
	Total  int `json:"total"`
	Packed int `json:"packed"`

	// Percentage is round(Packed/Total*100), or 0 when Total is 0.
	Percentage int `json:"percentage"`
}
