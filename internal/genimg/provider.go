package genimg

import "context"

// Provider is the core abstraction for reward image generation.
// The game treats it as opaque: subject name in, finished artwork out.
type Provider interface {
	// Generate produces one image for the given reward subject.
	// Implementations build their own prompt around the subject name.
	Generate(ctx context.Context, subjectName string) (*Image, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Image is a generated artifact ready for persistence.
type Image struct {
	// MIMEType is the image format, e.g. "image/png".
	MIMEType string

	// Data is the raw image bytes.
	Data []byte
}
