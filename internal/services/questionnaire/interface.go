package questionnaire

import "context"

// Service defines the interface for the paged questionnaire
type Service interface {
	// GetPage returns the questions of the session's current page
	GetPage(ctx context.Context, input *GetPageInput) (*GetPageOutput, error)

	// SubmitPage validates and persists one answer per question on the
	// current page, then advances the page cursor
	SubmitPage(ctx context.Context, input *SubmitPageInput) (*SubmitPageOutput, error)
}
