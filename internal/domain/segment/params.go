package segment

// Params defines the input bounds enforced by the segmentation service.
// The checker itself accepts any input; these limits keep the work done per
// request predictable for callers exposed to untrusted input.
type Params struct {
	// MaxTextLength is the largest text, in bytes, accepted for a check
	MaxTextLength int

	// MaxWords is the largest number of words accepted in an inline dictionary
	MaxWords int

	// MaxWordLength is the longest single word, in bytes
	MaxWordLength int
}

// ParamsConfig allows overriding the default parameters when creating a new Params instance
type ParamsConfig struct {
	MaxTextLength int
	MaxWords      int
	MaxWordLength int
}

// NewDefaultParams creates a new Params instance with default values
func NewDefaultParams() *Params {
	return &Params{
		MaxTextLength: 4096,
		MaxWords:      10000,
		MaxWordLength: 256,
	}
}

// NewParams creates a new Params instance with custom configuration.
// Zero or negative fields keep their default value.
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.MaxTextLength > 0 {
		params.MaxTextLength = config.MaxTextLength
	}
	if config.MaxWords > 0 {
		params.MaxWords = config.MaxWords
	}
	if config.MaxWordLength > 0 {
		params.MaxWordLength = config.MaxWordLength
	}

	return params
}
