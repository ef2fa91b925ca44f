package embedding

// EmbeddingProvider defines the interface for generating text embeddings.
// Implementations are deterministic for a fixed model version; errors
// propagate to the caller untouched.
type EmbeddingProvider interface {
	Generate(text string, taskType string) (*EmbeddingResponse, error)
}

type EmbeddingResponseEmbedding struct {
	Values []float32
}

type EmbeddingResponse struct {
	Embedding EmbeddingResponseEmbedding
}
