package embedding

// Embedder converts free text into a numeric vector representation.
// Vectors are comparable only when produced by the same embedder and model.
type Embedder interface {
	Name() string
	Dimension() int
	Embed(text string) ([]float64, error)
}
