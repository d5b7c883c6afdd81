package genimg

import "fmt"

// BuildPrompt turns a reward subject into the art prompt shared by all
// providers, so the collectible set has one consistent look.
func BuildPrompt(subjectName string) string {
	return fmt.Sprintf(
		"A cheerful cartoon illustration of a %s for a children's collectible "+
			"card. Bright friendly colors, soft rounded shapes, simple clean "+
			"background, no text or lettering anywhere in the image.",
		subjectName,
	)
}
