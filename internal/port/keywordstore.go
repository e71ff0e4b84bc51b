package port

// KeywordStore answers case-insensitive substring queries over ingested
// review rows. Matches come back in row order; there is no ranking.
type KeywordStore interface {
	Search(query string) ([]string, error)
}
