package entities

// RecommendationEntry maps a diagnosis label to stored treatment
// recommendation text. Entries are written once during the seed import and
// are lookup-only afterwards; labels are unique and case-sensitive.
type RecommendationEntry struct {
	ID    int64  `json:"id" db:"id"`
	Label string `json:"label" db:"label"`
	Text  string `json:"text" db:"text"`
}
