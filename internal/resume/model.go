package resume

// Parsed is the structured record extracted from raw resume text. Every
// field except RawText is derived by a deterministic line scan; a field the
// scan cannot detect simply stays empty.
type Parsed struct {
	Name       string   `json:"name"`
	Title      string   `json:"title"`
	Email      string   `json:"email"`
	Phone      string   `json:"phone"`
	Location   string   `json:"location"`
	Summary    string   `json:"summary"`
	Experience []string `json:"experience"`
	Education  []string `json:"education"`
	Skills     []string `json:"skills"`
	Languages  []string `json:"languages"`
	RawText    string   `json:"rawText"`
}
