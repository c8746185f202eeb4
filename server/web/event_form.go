package web

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Ming119/CSIE5210-Web-Team24-Final/internal/xtime"
	"github.com/Ming119/CSIE5210-Web-Team24-Final/server/auth"
	"github.com/Ming119/CSIE5210-Web-Team24-Final/server/clubapi"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// EventForm is the activity create/edit form as submitted. Dates stay strings
// here so invalid input round-trips back into the form unchanged.
type EventForm struct {
	Name              string `validate:"required,max=100"`
	Description       string `validate:"max=1000"`
	Fee               int    `validate:"min=0"`
	Quota             int    `validate:"min=0"`
	Status            string `validate:"oneof=planning open closed completed cancelled"`
	StartDate         string `validate:"required"`
	EndDate           string `validate:"required"`
	PaymentStartDate  string
	PaymentEndDate    string
	CashEnabled       bool
	CashRemark        string `validate:"max=200"`
	BankEnabled       bool
	BankName          string `validate:"max=100"`
	BankAccountNumber string `validate:"max=50"`
	BankAccountName   string `validate:"max=100"`
	IsPublic          bool
}

type EventFormVars struct {
	Viewer    Viewer
	ClubID    int
	ClubName  string
	Editing   bool
	EventID   int
	Form      EventForm
	Statuses  []string
	FormError string
}

var eventStatuses = []string{
	clubapi.EventStatusPlanning,
	clubapi.EventStatusOpen,
	clubapi.EventStatusClosed,
	clubapi.EventStatusCompleted,
	clubapi.EventStatusCancelled,
}

func defaultEventForm() EventForm {
	today := xtime.Today()
	return EventForm{
		Status:    clubapi.EventStatusPlanning,
		StartDate: today.String(),
		EndDate:   today.AddDays(30).String(),
	}
}

func eventFormFromEvent(event *clubapi.Event) EventForm {
	form := EventForm{
		Name:        event.Name,
		Description: event.Description,
		Fee:         event.Fee,
		Quota:       event.Quota,
		Status:      event.Status,
		StartDate:   event.StartDate.String(),
		EndDate:     event.EndDate.String(),
		CashEnabled: event.PaymentMethods.Cash.Enabled,
		CashRemark:  event.PaymentMethods.Cash.Remark,
		BankEnabled: event.PaymentMethods.BankTransfer.Enabled,
		IsPublic:    event.IsPublic,
	}
	if event.HasPaymentWindow() {
		form.PaymentStartDate = event.PaymentStartDate.String()
		form.PaymentEndDate = event.PaymentEndDate.String()
	}
	form.BankName = event.PaymentMethods.BankTransfer.Bank
	form.BankAccountNumber = event.PaymentMethods.BankTransfer.AccountNumber
	form.BankAccountName = event.PaymentMethods.BankTransfer.AccountName
	return form
}

func eventFormFromRequest(r *http.Request) EventForm {
	return EventForm{
		Name:              strings.TrimSpace(r.FormValue("name")),
		Description:       strings.TrimSpace(r.FormValue("description")),
		Fee:               formInt(r, "fee"),
		Quota:             formInt(r, "quota"),
		Status:            r.FormValue("status"),
		StartDate:         r.FormValue("start_date"),
		EndDate:           r.FormValue("end_date"),
		PaymentStartDate:  r.FormValue("payment_start_date"),
		PaymentEndDate:    r.FormValue("payment_end_date"),
		CashEnabled:       r.FormValue("cash_enabled") != "",
		CashRemark:        strings.TrimSpace(r.FormValue("cash_remark")),
		BankEnabled:       r.FormValue("bank_enabled") != "",
		BankName:          strings.TrimSpace(r.FormValue("bank_name")),
		BankAccountNumber: strings.TrimSpace(r.FormValue("bank_account_number")),
		BankAccountName:   strings.TrimSpace(r.FormValue("bank_account_name")),
		IsPublic:          r.FormValue("is_public") != "",
	}
}

// validateEventForm runs the struct rules plus the cross-field date checks and
// returns the wire draft when everything holds.
func validateEventForm(form EventForm) (clubapi.EventDraft, string) {
	var draft clubapi.EventDraft

	if err := validate.Struct(form); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return draft, eventFieldError(verrs[0])
		}
		return draft, "The form contains invalid values."
	}

	start, err := xtime.ParseDate(form.StartDate)
	if err != nil {
		return draft, "Start date must be a valid date."
	}
	end, err := xtime.ParseDate(form.EndDate)
	if err != nil {
		return draft, "End date must be a valid date."
	}
	if !start.Before(end) {
		return draft, "Start date must be before the end date."
	}

	var payStart, payEnd xtime.Date
	if form.PaymentStartDate != "" || form.PaymentEndDate != "" {
		if form.PaymentStartDate == "" || form.PaymentEndDate == "" {
			return draft, "Payment start and end dates must be set together."
		}
		if payStart, err = xtime.ParseDate(form.PaymentStartDate); err != nil {
			return draft, "Payment start date must be a valid date."
		}
		if payEnd, err = xtime.ParseDate(form.PaymentEndDate); err != nil {
			return draft, "Payment end date must be a valid date."
		}
		if !payStart.Before(payEnd) {
			return draft, "Payment start date must be before the payment end date."
		}
	}

	if form.Fee > 0 && !form.CashEnabled && !form.BankEnabled {
		return draft, "A paid activity needs at least one payment method."
	}
	if form.BankEnabled && (form.BankName == "" || form.BankAccountNumber == "") {
		return draft, "Bank transfer needs a bank name and an account number."
	}

	draft = clubapi.EventDraft{
		Name:             form.Name,
		Description:      form.Description,
		Fee:              form.Fee,
		Quota:            form.Quota,
		Status:           form.Status,
		StartDate:        start,
		EndDate:          end,
		PaymentStartDate: payStart,
		PaymentEndDate:   payEnd,
		PaymentMethods: clubapi.PaymentMethods{
			Cash: clubapi.CashPayment{
				Enabled: form.CashEnabled,
				Remark:  form.CashRemark,
			},
			BankTransfer: clubapi.BankTransferPayment{
				Enabled:       form.BankEnabled,
				Bank:          form.BankName,
				AccountNumber: form.BankAccountNumber,
				AccountName:   form.BankAccountName,
			},
		},
		IsPublic: form.IsPublic,
	}
	return draft, ""
}

func eventFieldError(fe validator.FieldError) string {
	switch fe.Field() {
	case "Name":
		if fe.Tag() == "required" {
			return "Activity name must not be empty."
		}
		return "Activity name must be at most 100 characters."
	case "Description":
		return "Description must be at most 1000 characters."
	case "Fee":
		return "Fee must not be negative."
	case "Quota":
		return "Quota must not be negative."
	case "Status":
		return "Invalid activity status."
	case "StartDate", "EndDate":
		return "Start and end dates are required."
	case "CashRemark":
		return "Cash payment remark must be at most 200 characters."
	default:
		return "The form contains invalid values."
	}
}

// requireManager loads the club and rejects viewers without a manager role.
func (h *handler) requireManager(w http.ResponseWriter, r *http.Request, clubID int) (*clubapi.Club, bool) {
	ctx := r.Context()
	session := auth.GetSession(r)
	viewer := viewerFromSession(session)

	club, err := h.Client.GetClub(ctx, session.AccessToken, clubID)
	if err != nil {
		if errors.Is(err, clubapi.ErrNotFound) {
			h.NotFound(w, r)
			return nil, false
		}
		if errors.Is(err, clubapi.ErrUnauthorized) {
			h.expireSession(w, r)
			h.forceLogin(w, r)
			return nil, false
		}
		slog.ErrorContext(ctx, "Failed to fetch club", slog.Int("club_id", clubID), slog.Any("err", err))
		h.renderError(w, r, http.StatusInternalServerError, viewer, "Failed to load club details. Please try again later.")
		return nil, false
	}

	if role := clubapi.DeriveRole(club.Members, session.UserID); !role.IsManager {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return nil, false
	}
	return club, true
}

func (h *handler) NewEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session := auth.GetSession(r)

	clubID, ok := pathID(r, "club_id")
	if !ok {
		h.NotFound(w, r)
		return
	}

	club, ok := h.requireManager(w, r, clubID)
	if !ok {
		return
	}

	if err := h.Templates().ExecuteTemplate(w, "event_form.gohtml", EventFormVars{
		Viewer:   viewerFromSession(session),
		ClubID:   club.ID,
		ClubName: club.Name,
		Form:     defaultEventForm(),
		Statuses: eventStatuses,
	}); err != nil {
		slog.ErrorContext(ctx, "Failed to render event form template", slog.Any("err", err))
	}
}

func (h *handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session := auth.GetSession(r)

	clubID, ok := pathID(r, "club_id")
	if !ok {
		h.NotFound(w, r)
		return
	}

	club, ok := h.requireManager(w, r, clubID)
	if !ok {
		return
	}

	form := eventFormFromRequest(r)
	draft, formError := validateEventForm(form)

	if formError == "" {
		event, err := h.Client.CreateEvent(ctx, session.AccessToken, clubID, draft)
		if err != nil {
			slog.ErrorContext(ctx, "Failed to create event", slog.Int("club_id", clubID), slog.Any("err", err))
			formError = "Failed to create the activity. Please try again later."
		} else {
			http.Redirect(w, r, fmt.Sprintf("/clubs/%d/events/%d", clubID, event.ID), http.StatusFound)
			return
		}
	}

	w.WriteHeader(http.StatusUnprocessableEntity)
	if err := h.Templates().ExecuteTemplate(w, "event_form.gohtml", EventFormVars{
		Viewer:    viewerFromSession(session),
		ClubID:    club.ID,
		ClubName:  club.Name,
		Form:      form,
		Statuses:  eventStatuses,
		FormError: formError,
	}); err != nil {
		slog.ErrorContext(ctx, "Failed to render event form template", slog.Any("err", err))
	}
}

func (h *handler) EditEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session := auth.GetSession(r)
	viewer := viewerFromSession(session)

	clubID, ok := pathID(r, "club_id")
	if !ok {
		h.NotFound(w, r)
		return
	}
	eventID, ok := pathID(r, "event_id")
	if !ok {
		h.NotFound(w, r)
		return
	}

	club, ok := h.requireManager(w, r, clubID)
	if !ok {
		return
	}

	event, err := h.Client.GetEvent(ctx, session.AccessToken, clubID, eventID)
	if err != nil {
		if errors.Is(err, clubapi.ErrNotFound) {
			h.NotFound(w, r)
			return
		}
		slog.ErrorContext(ctx, "Failed to fetch event", slog.Int("event_id", eventID), slog.Any("err", err))
		h.renderError(w, r, http.StatusInternalServerError, viewer, "Failed to load the activity. Please try again later.")
		return
	}

	if err = h.Templates().ExecuteTemplate(w, "event_form.gohtml", EventFormVars{
		Viewer:   viewer,
		ClubID:   club.ID,
		ClubName: club.Name,
		Editing:  true,
		EventID:  event.ID,
		Form:     eventFormFromEvent(event),
		Statuses: eventStatuses,
	}); err != nil {
		slog.ErrorContext(ctx, "Failed to render event form template", slog.Any("err", err))
	}
}

func (h *handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session := auth.GetSession(r)

	clubID, ok := pathID(r, "club_id")
	if !ok {
		h.NotFound(w, r)
		return
	}
	eventID, ok := pathID(r, "event_id")
	if !ok {
		h.NotFound(w, r)
		return
	}

	club, ok := h.requireManager(w, r, clubID)
	if !ok {
		return
	}

	form := eventFormFromRequest(r)
	draft, formError := validateEventForm(form)

	if formError == "" {
		if _, err := h.Client.UpdateEvent(ctx, session.AccessToken, clubID, eventID, draft); err != nil {
			slog.ErrorContext(ctx, "Failed to update event", slog.Int("event_id", eventID), slog.Any("err", err))
			formError = "Failed to save the activity. Please try again later."
		} else {
			http.Redirect(w, r, fmt.Sprintf("/clubs/%d/events/%d", clubID, eventID), http.StatusFound)
			return
		}
	}

	w.WriteHeader(http.StatusUnprocessableEntity)
	if err := h.Templates().ExecuteTemplate(w, "event_form.gohtml", EventFormVars{
		Viewer:    viewerFromSession(session),
		ClubID:    club.ID,
		ClubName:  club.Name,
		Editing:   true,
		EventID:   eventID,
		Form:      form,
		Statuses:  eventStatuses,
		FormError: formError,
	}); err != nil {
		slog.ErrorContext(ctx, "Failed to render event form template", slog.Any("err", err))
	}
}
