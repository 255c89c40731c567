package scorecard

// FieldResult is the outcome of one field extractor.
// A missing value always carries confidence 0.
type FieldResult[T any] struct {
	Value      T
	Found      bool
	Confidence float64
}

func found[T any](v T, conf float64) FieldResult[T] {
	return FieldResult[T]{Value: v, Found: true, Confidence: clampConfidence(conf)}
}

func missing[T any]() FieldResult[T] {
	return FieldResult[T]{}
}

// Ptr returns a pointer to the value, or nil when nothing was found.
func (r FieldResult[T]) Ptr() *T {
	if !r.Found {
		return nil
	}
	v := r.Value
	return &v
}

func clampConfidence(c float64) float64 {
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}
