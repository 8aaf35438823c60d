package web

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/vera24m/ultimatum-game/internal/metrics"
	"github.com/vera24m/ultimatum-game/internal/services/experiment"
	"github.com/vera24m/ultimatum-game/internal/services/export"
	"github.com/vera24m/ultimatum-game/internal/services/questionnaire"
)

func (h *Handler) startGame(w http.ResponseWriter, r *http.Request) {
	if _, err := h.experimentService.StartSession(r.Context(), &experiment.StartSessionInput{
		SessionID: sessionID(r),
	}); err != nil {
		h.fail(w, r, err)
		return
	}

	h.render(w, "start.html", nil)
}

func (h *Handler) viewInstructions(w http.ResponseWriter, r *http.Request) {
	out, err := h.experimentService.ViewInstructions(r.Context(), &experiment.ViewInstructionsInput{
		SessionID: sessionID(r),
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if out.Created {
		metrics.ParticipantsCreated.WithLabelValues(string(out.KindID)).Inc()
	}

	h.render(w, "instructions.html", map[string]any{
		"KindName": out.KindName,
	})
}

func (h *Handler) startRound(w http.ResponseWriter, r *http.Request) {
	out, err := h.experimentService.ResolveRound(r.Context(), &experiment.ResolveRoundInput{
		SessionID: sessionID(r),
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	switch out.Phase {
	case experiment.PhaseFramingDisclosure:
		seeOther(w, r, "/framing")
	case experiment.PhaseQuestionnaire:
		seeOther(w, r, "/questionnaire")
	case experiment.PhaseNoOpponentCategory:
		seeOther(w, r, "/no-opponent-category")
	default:
		h.render(w, "start_round.html", map[string]any{
			"RoundNumber": out.RoundIndex,
			"Picture":     out.Opponent.Picture + ".jpg",
		})
	}
}

func (h *Handler) framingDisclosure(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("checked") != "" {
		if _, err := h.experimentService.AcknowledgeFraming(r.Context(), &experiment.AcknowledgeFramingInput{
			SessionID: sessionID(r),
		}); err != nil {
			h.fail(w, r, err)
			return
		}
		seeOther(w, r, "/round/start")
		return
	}

	out, err := h.experimentService.FramingStatus(r.Context(), &experiment.FramingStatusInput{
		SessionID: sessionID(r),
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.render(w, "framing.html", map[string]any{
		"Intentional": out.Intentional,
	})
}

func (h *Handler) noOpponentCategory(w http.ResponseWriter, r *http.Request) {
	h.render(w, "no_opponent.html", nil)
}

func (h *Handler) playRound(w http.ResponseWriter, r *http.Request) {
	h.renderPlayRound(w, r, "")
}

func (h *Handler) renderPlayRound(w http.ResponseWriter, r *http.Request, formError string) {
	out, err := h.experimentService.CurrentOffer(r.Context(), &experiment.CurrentOfferInput{
		SessionID: sessionID(r),
	})
	if err != nil {
		if errors.Is(err, experiment.ErrNoActiveRound) {
			// No opponent introduced yet; that must happen first.
			seeOther(w, r, "/round/start")
			return
		}
		h.fail(w, r, err)
		return
	}

	h.render(w, "play_round.html", map[string]any{
		"OpponentName":  "Opponent " + strconv.Itoa(out.RoundIndex),
		"Picture":       out.Opponent.Picture + ".jpg",
		"AmountOffered": out.AmountOffered,
		"AmountKept":    out.AmountKept,
		"Error":         formError,
	})
}

func (h *Handler) submitRound(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderPlayRound(w, r, "The submission could not be read.")
		return
	}

	var accepted bool
	switch r.PostFormValue("accepted") {
	case "accept":
		accepted = true
	case "reject":
		accepted = false
	default:
		h.renderPlayRound(w, r, "The offer must be accepted or rejected explicitly.")
		return
	}

	timeElapsed, err := strconv.ParseInt(r.PostFormValue("time_elapsed"), 10, 64)
	if err != nil || timeElapsed < 0 {
		timeElapsed = 0
	}

	out, err := h.experimentService.SubmitDecision(r.Context(), &experiment.SubmitDecisionInput{
		SessionID:     sessionID(r),
		Accepted:      accepted,
		TimeElapsedMs: timeElapsed,
	})
	if err != nil {
		if errors.Is(err, experiment.ErrNoActiveRound) {
			seeOther(w, r, "/round/start")
			return
		}
		h.fail(w, r, err)
		return
	}

	if !out.AlreadyRecorded {
		metrics.RoundsRecorded.Inc()
	}

	seeOther(w, r, "/round/end")
}

func (h *Handler) endRound(w http.ResponseWriter, r *http.Request) {
	out, err := h.experimentService.EndRound(r.Context(), &experiment.EndRoundInput{
		SessionID: sessionID(r),
	})
	if err != nil {
		if errors.Is(err, experiment.ErrNoActiveRound) {
			seeOther(w, r, "/round/start")
			return
		}
		h.fail(w, r, err)
		return
	}

	h.render(w, "end_round.html", map[string]any{
		"AmountOffered": out.AmountOffered,
		"Accepted":      out.Accepted,
	})
}

func (h *Handler) showQuestionnaire(w http.ResponseWriter, r *http.Request) {
	h.renderQuestionnaire(w, r, "")
}

func (h *Handler) renderQuestionnaire(w http.ResponseWriter, r *http.Request, formError string) {
	out, err := h.questionnaireService.GetPage(r.Context(), &questionnaire.GetPageInput{
		SessionID: sessionID(r),
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if out.Done {
		seeOther(w, r, "/demographic")
		return
	}

	h.render(w, "questionnaire.html", map[string]any{
		"Questions": out.Questions,
		"Error":     formError,
	})
}

func (h *Handler) submitQuestionnaire(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderQuestionnaire(w, r, "The submission could not be read.")
		return
	}

	selections := make(map[string]string, len(r.PostForm))
	for key := range r.PostForm {
		selections[key] = r.PostFormValue(key)
	}

	out, err := h.questionnaireService.SubmitPage(r.Context(), &questionnaire.SubmitPageInput{
		SessionID:  sessionID(r),
		Selections: selections,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if len(out.InvalidQuestionIDs) > 0 {
		h.renderQuestionnaire(w, r, "Please answer every question on this page.")
		return
	}

	if out.Finished {
		metrics.QuestionnairesCompleted.Inc()
		seeOther(w, r, "/demographic")
		return
	}

	seeOther(w, r, "/questionnaire")
}

func (h *Handler) showDemographic(w http.ResponseWriter, r *http.Request) {
	h.render(w, "demographic.html", map[string]any{
		"Age": "", "Hours": "", "Nationality": "",
	})
}

func (h *Handler) submitDemographic(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, "demographic.html", map[string]any{
			"Error": "The submission could not be read.",
		})
		return
	}

	ageValue := r.PostFormValue("age")
	hoursValue := r.PostFormValue("hours_a_day_you_spend_behind_a_computer")
	nationality := strings.TrimSpace(r.PostFormValue("nationality"))

	age, ageErr := strconv.Atoi(ageValue)
	hours, hoursErr := strconv.Atoi(hoursValue)

	var formError string
	switch {
	case ageErr != nil || age < 1 || age > 120:
		formError = "Please enter a valid age."
	case hoursErr != nil || hours < 0 || hours > 24:
		formError = "Please enter a valid number of hours."
	case nationality == "":
		formError = "Please enter your nationality."
	}

	if formError != "" {
		h.render(w, "demographic.html", map[string]any{
			"Error":       formError,
			"Age":         ageValue,
			"Hours":       hoursValue,
			"Nationality": nationality,
		})
		return
	}

	if _, err := h.experimentService.SubmitDemographic(r.Context(), &experiment.SubmitDemographicInput{
		SessionID:           sessionID(r),
		Age:                 age,
		HoursBehindComputer: hours,
		Nationality:         nationality,
	}); err != nil {
		h.fail(w, r, err)
		return
	}

	seeOther(w, r, "/complete")
}

func (h *Handler) complete(w http.ResponseWriter, r *http.Request) {
	out, err := h.experimentService.Complete(r.Context(), &experiment.CompleteInput{
		SessionID: sessionID(r),
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if out.Issued {
		metrics.ExperimentsCompleted.Inc()
	}

	h.render(w, "thankyou.html", map[string]any{
		"Token": out.Token,
	})
}

func (h *Handler) exportResults(w http.ResponseWriter, r *http.Request) {
	out, err := h.exportService.Results(r.Context(), &export.ResultsInput{})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="results.csv"`)
	w.Write(out.CSV)
}
