package domain

// VectorConfig holds internal vectorization settings, not exposed to clients.
type VectorConfig struct {
	Model            string
	Dimensions       int
	DistanceMetric   string
	QueryInstruction string
}

// DefaultVectorConfig returns the configuration the catalog embeddings were built with
// (all-mpnet-base-v2, mean pooled and normalized, compared with pgvector cosine distance).
func DefaultVectorConfig() VectorConfig {
	return VectorConfig{
		Model:          "all-mpnet-base-v2",
		Dimensions:     768,
		DistanceMetric: "cosine",
	}
}

// KeyPrefix namespaces every cache key written by the service.
const KeyPrefix = "cinedex:"
