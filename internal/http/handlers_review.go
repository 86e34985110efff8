package http

import (
	"context"
	"errors"
	"net/http"

	"reviewdesk/internal/core"
	applog "reviewdesk/internal/log"
	"reviewdesk/internal/services"
)

// handleSummary renders the summary tiles partial.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}
	s.renderOrFail(w, r, "summary", newSummaryView(s.reviews.View().Summary))
}

// handleTabs renders the tab bar and the active partition.
func (s *Server) handleTabs(w http.ResponseWriter, r *http.Request) {
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}
	s.renderOrFail(w, r, "tabs", newTabsView(s.reviews.View(), ParseTab(r.URL.Query())))
}

// handleRejectDialog renders the comment prompt for one expense.
func (s *Server) handleRejectDialog(w http.ResponseWriter, r *http.Request) {
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}
	id := sanitizeInput(r.URL.Query().Get("id"))
	if id == "" {
		BadRequestError("Missing expense id").Write(w)
		return
	}
	e, ok := s.reviews.Expenses().Find(id)
	if !ok {
		NotFoundError("Expense not found").Write(w)
		return
	}
	s.renderOrFail(w, r, "reject_dialog", rejectDialogView{
		ID:           e.ID,
		EmployeeName: e.EmployeeName,
		Amount:       e.Amount.String(),
		Tab:          string(ParseTab(r.URL.Query())),
	})
}

func (s *Server) handleApprove(w http.ResponseWriter, r *http.Request) {
	s.handleReview(w, r, applog.OpApprove, func(ctx context.Context, f ReviewForm) (services.Outcome, error) {
		return s.reviews.Approve(ctx, f.ID)
	})
}

func (s *Server) handleReject(w http.ResponseWriter, r *http.Request) {
	s.handleReview(w, r, applog.OpReject, func(ctx context.Context, f ReviewForm) (services.Outcome, error) {
		return s.reviews.Reject(ctx, f.ID, f.Comment)
	})
}

// handleReview runs a review action and answers with the refreshed tabs
// partial plus the toast and refresh triggers.
func (s *Server) handleReview(w http.ResponseWriter, r *http.Request, op string, act func(context.Context, ReviewForm) (services.Outcome, error)) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	logger := applog.FromContext(r.Context())

	form, err := ParseReviewForm(r)
	if err != nil {
		logger.WarnContext(r.Context(), "Invalid review request",
			applog.FieldOperation, op,
			applog.FieldError, err,
			applog.FieldErrorType, applog.ErrorTypeValidation)
		if errors.Is(err, ErrBodyTooLarge) {
			PayloadTooLargeError("Request too large").TriggerErrorNotification("Request too large").Write(w)
			return
		}
		BadRequestError("Invalid review request").TriggerErrorNotification("Invalid review request").Write(w)
		return
	}

	out, err := act(r.Context(), form)
	switch {
	case errors.Is(err, core.ErrNotFound):
		NotFoundError("Expense not found").TriggerErrorNotification("Expense not found").Write(w)
		return
	case err != nil:
		logger.ErrorContext(r.Context(), "Review action failed",
			applog.FieldOperation, op,
			applog.FieldExpenseID, form.ID,
			applog.FieldError, err)
		InternalServerError("Review failed").Write(w)
		return
	}

	if s.templates == nil {
		InternalServerError("Templates not loaded").Write(w)
		return
	}
	body, err := s.render("tabs", newTabsView(s.reviews.View(), form.Tab))
	if err != nil {
		logger.ErrorContext(r.Context(), "Template execution failed", applog.FieldError, err, "template", "tabs")
		InternalServerError("Rendering failed").Write(w)
		return
	}

	resp := NewHTMXResponse().Body(body).Header("Content-Type", "text/html; charset=utf-8")
	if out.Result.Changed {
		resp.TriggerExpenseReviewed(out.Result.Expense.ID, string(out.Result.Expense.Status))
	}
	if out.Notification != nil {
		resp.TriggerToast(*out.Notification)
	}
	resp.Write(w)
}
