package source

// Source names the candidate generator that contributed a movie to a result set.
type Source string

// Generator sources.
const (
	// Semantic is the pgvector neighbourhood of a seed title.
	Semantic Source = "semantic"
	Quality  Source = "quality"
	Lexical  Source = "lexical"
	Genre    Source = "genre"
	// LiveSemantic embeds the query text itself; optional.
	LiveSemantic Source = "live_semantic"
)

// IsValid checks if the source is one of the supported values.
func (s Source) IsValid() bool {
	switch s {
	case Semantic, Quality, Lexical, Genre, LiveSemantic:
		return true
	}
	return false
}
