package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/dsmelov/calendar-backend/internal/model"
	"github.com/dsmelov/calendar-backend/internal/pkg/validator"
)

func (a *Api) createEventHandler(w http.ResponseWriter, r *http.Request) {
	callerID, ok := a.callerID(r)
	if !ok {
		a.serverErrorResponse(w, r, errCantRetrieveID)
		return
	}

	req := &struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		From        dateTime `json:"from"`
		To          dateTime `json:"to"`
		Recurrence  int      `json:"recurrence"`
	}{}

	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	from, to := time.Time(req.From), time.Time(req.To)
	recurrence := model.Recurrence(req.Recurrence)

	v := validator.New()
	v.Check(len(req.Title) != 0, "title", "title must be provided")
	v.Check(!from.IsZero(), "from", "from must be provided")
	v.Check(!to.IsZero(), "to", "to must be provided")
	v.Check(to.IsZero() || !to.Before(from), "to", "end must not be before start")
	v.Check(recurrence.Valid(), "recurrence", "unknown recurrence code")

	if !v.Valid() {
		a.failedValidationResponse(w, r, v.Errors)
		return
	}

	event, err := a.calendarService.CreateEvent(r.Context(), &model.EventCreate{
		Title:       req.Title,
		Description: req.Description,
		From:        from,
		To:          to,
		Recurrence:  recurrence,
		OrganizerID: callerID,
	})
	if err != nil {
		a.domainErrorResponse(w, r, fmt.Errorf("create event: %w", err))
		return
	}

	resp, err := mapToEventResp(event)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	if err := a.writeJSON(w, http.StatusCreated, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

// importEventHandler takes a full event snapshot, id included, and
// upserts it: a fresh id creates the event, a resident id merges into
// it (scalars overwritten, rosters unioned).
func (a *Api) importEventHandler(w http.ResponseWriter, r *http.Request) {
	callerID, ok := a.callerID(r)
	if !ok {
		a.serverErrorResponse(w, r, errCantRetrieveID)
		return
	}

	req := &struct {
		ID           int64    `json:"id"`
		Title        string   `json:"title"`
		Description  string   `json:"description"`
		From         dateTime `json:"from"`
		To           dateTime `json:"to"`
		Recurrence   int      `json:"recurrence"`
		Participants []int64  `json:"participants"`
	}{}

	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	from, to := time.Time(req.From), time.Time(req.To)
	recurrence := model.Recurrence(req.Recurrence)

	v := validator.New()
	v.Check(req.ID > 0, "id", "id must be provided")
	v.Check(len(req.Title) != 0, "title", "title must be provided")
	v.Check(!from.IsZero(), "from", "from must be provided")
	v.Check(!to.IsZero(), "to", "to must be provided")
	v.Check(to.IsZero() || !to.Before(from), "to", "end must not be before start")
	v.Check(recurrence.Valid(), "recurrence", "unknown recurrence code")

	if !v.Valid() {
		a.failedValidationResponse(w, r, v.Errors)
		return
	}

	event, err := a.calendarService.ImportEvent(r.Context(), callerID, &model.Event{
		ID:           req.ID,
		Participants: req.Participants,
		EventCreate: model.EventCreate{
			Title:       req.Title,
			Description: req.Description,
			From:        from,
			To:          to,
			Recurrence:  recurrence,
			OrganizerID: callerID,
		},
	})
	if err != nil {
		a.domainErrorResponse(w, r, err)
		return
	}

	resp, err := mapToEventResp(event)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) getEventHandler(w http.ResponseWriter, r *http.Request) {
	id, err := eventIDParam(r)
	if err != nil {
		a.notFoundResponse(w, r)
		return
	}

	event, err := a.calendarService.EventByID(r.Context(), id)
	if err != nil {
		a.domainErrorResponse(w, r, fmt.Errorf("get event: %w", err))
		return
	}

	resp, err := mapToEventResp(event)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) updateEventHandler(w http.ResponseWriter, r *http.Request) {
	callerID, ok := a.callerID(r)
	if !ok {
		a.serverErrorResponse(w, r, errCantRetrieveID)
		return
	}

	id, err := eventIDParam(r)
	if err != nil {
		a.notFoundResponse(w, r)
		return
	}

	req := &struct {
		Title        *string   `json:"title"`
		Description  *string   `json:"description"`
		From         *dateTime `json:"from"`
		To           *dateTime `json:"to"`
		Recurrence   *int      `json:"recurrence"`
		Participants []string  `json:"participants"`
	}{}

	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	if req.Title != nil {
		v.Check(len(*req.Title) != 0, "title", "title must not be empty")
	}
	if req.Recurrence != nil {
		v.Check(model.Recurrence(*req.Recurrence).Valid(), "recurrence", "unknown recurrence code")
	}

	participantIDs, unknown, err := a.resolveUsernames(r.Context(), req.Participants)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}
	for username, msg := range unknown {
		v.AddError(username, msg)
	}

	if !v.Valid() {
		a.failedValidationResponse(w, r, v.Errors)
		return
	}

	update := &model.EventUpdate{
		Title:        req.Title,
		Description:  req.Description,
		Participants: participantIDs,
	}
	if req.From != nil {
		from := time.Time(*req.From)
		update.From = &from
	}
	if req.To != nil {
		to := time.Time(*req.To)
		update.To = &to
	}
	if req.Recurrence != nil {
		rec := model.Recurrence(*req.Recurrence)
		update.Recurrence = &rec
	}

	event, err := a.calendarService.UpdateEvent(r.Context(), callerID, id, update)
	if err != nil {
		a.domainErrorResponse(w, r, err)
		return
	}

	resp, err := mapToEventResp(event)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) deleteEventHandler(w http.ResponseWriter, r *http.Request) {
	callerID, ok := a.callerID(r)
	if !ok {
		a.serverErrorResponse(w, r, errCantRetrieveID)
		return
	}

	id, err := eventIDParam(r)
	if err != nil {
		a.notFoundResponse(w, r)
		return
	}

	if err := a.calendarService.DeleteEvent(r.Context(), callerID, id); err != nil {
		a.domainErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (a *Api) getEventsInRangeHandler(w http.ResponseWriter, r *http.Request) {
	callerID, ok := a.callerID(r)
	if !ok {
		a.serverErrorResponse(w, r, errCantRetrieveID)
		return
	}

	from, to, err := parseRangeQuery(r)
	if err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	days, err := a.calendarService.EventsInRange(r.Context(), callerID, from, to)
	if err != nil {
		a.domainErrorResponse(w, r, err)
		return
	}

	a.writeDaySchedules(w, r, days)
}

func (a *Api) getTodayEventsHandler(w http.ResponseWriter, r *http.Request) {
	callerID, ok := a.callerID(r)
	if !ok {
		a.serverErrorResponse(w, r, errCantRetrieveID)
		return
	}

	days, err := a.calendarService.DayEvents(r.Context(), callerID, time.Now().UTC())
	if err != nil {
		a.domainErrorResponse(w, r, err)
		return
	}

	a.writeDaySchedules(w, r, days)
}

func (a *Api) getUpcomingEventsHandler(w http.ResponseWriter, r *http.Request) {
	callerID, ok := a.callerID(r)
	if !ok {
		a.serverErrorResponse(w, r, errCantRetrieveID)
		return
	}

	days, err := a.calendarService.ComingEvents(r.Context(), callerID, time.Now().UTC())
	if err != nil {
		a.domainErrorResponse(w, r, err)
		return
	}

	a.writeDaySchedules(w, r, days)
}

func (a *Api) writeDaySchedules(w http.ResponseWriter, r *http.Request, days []model.DaySchedule) {
	resp, err := mapSlice(days, mapToDayScheduleResp)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func parseRangeQuery(r *http.Request) (from, to time.Time, err error) {
	v := r.URL.Query().Get("from")
	if v == "" {
		return from, to, fmt.Errorf("from must be provided")
	}
	from, err = time.Parse(dateTimeFormat, v)
	if err != nil {
		return from, to, fmt.Errorf("invalid time format: %w", err)
	}

	v = r.URL.Query().Get("to")
	if v == "" {
		return from, to, fmt.Errorf("to must be provided")
	}
	to, err = time.Parse(dateTimeFormat, v)
	if err != nil {
		return from, to, fmt.Errorf("invalid time format: %w", err)
	}

	return from, to, nil
}
