package experiment

import "context"

// Service defines the interface for the experiment session flow
type Service interface {
	// StartSession ensures scratch state exists for a browser session
	// and stamps the session start time once
	StartSession(ctx context.Context, input *StartSessionInput) (*StartSessionOutput, error)

	// ViewInstructions gets or creates the player behind a session,
	// assigning an opponent category on first contact
	ViewInstructions(ctx context.Context, input *ViewInstructionsInput) (*ViewInstructionsOutput, error)

	// ResolveRound decides what must happen next: framing disclosure,
	// round introduction, questionnaire, or the no-opponent guard
	ResolveRound(ctx context.Context, input *ResolveRoundInput) (*ResolveRoundOutput, error)

	// FramingStatus reports the framing to disclose before the next round
	FramingStatus(ctx context.Context, input *FramingStatusInput) (*FramingStatusOutput, error)

	// AcknowledgeFraming records that the disclosure for the upcoming
	// round was read
	AcknowledgeFraming(ctx context.Context, input *AcknowledgeFramingInput) (*AcknowledgeFramingOutput, error)

	// CurrentOffer returns the round's offer, drawing and caching it on
	// first call
	CurrentOffer(ctx context.Context, input *CurrentOfferInput) (*CurrentOfferOutput, error)

	// SubmitDecision records the accept/reject decision for the current
	// round. Resubmissions after the round is recorded are ignored.
	SubmitDecision(ctx context.Context, input *SubmitDecisionInput) (*SubmitDecisionOutput, error)

	// EndRound returns the just-played round's outcome and releases the
	// opponent so the next resolution draws a fresh one
	EndRound(ctx context.Context, input *EndRoundInput) (*EndRoundOutput, error)

	// SubmitDemographic stores the demographic form answers
	SubmitDemographic(ctx context.Context, input *SubmitDemographicInput) (*SubmitDemographicOutput, error)

	// Complete issues the completion token, once
	Complete(ctx context.Context, input *CompleteInput) (*CompleteOutput, error)
}
