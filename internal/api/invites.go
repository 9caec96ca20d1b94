package api

import (
	"net/http"

	"github.com/dsmelov/calendar-backend/internal/pkg/validator"
)

func (a *Api) inviteHandler(w http.ResponseWriter, r *http.Request) {
	callerID, ok := a.callerID(r)
	if !ok {
		a.serverErrorResponse(w, r, errCantRetrieveID)
		return
	}

	eventID, err := eventIDParam(r)
	if err != nil {
		a.notFoundResponse(w, r)
		return
	}

	req := &struct {
		Usernames []string `json:"usernames"`
	}{}

	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	v.Check(len(req.Usernames) != 0, "usernames", "usernames must be provided")

	userIDs, unknown, err := a.resolveUsernames(r.Context(), req.Usernames)
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

	if err := a.invitesService.Invite(r.Context(), callerID, eventID, userIDs); err != nil {
		a.domainErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (a *Api) removeParticipantsHandler(w http.ResponseWriter, r *http.Request) {
	callerID, ok := a.callerID(r)
	if !ok {
		a.serverErrorResponse(w, r, errCantRetrieveID)
		return
	}

	eventID, err := eventIDParam(r)
	if err != nil {
		a.notFoundResponse(w, r)
		return
	}

	req := &struct {
		Usernames []string `json:"usernames"`
	}{}

	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	v.Check(len(req.Usernames) != 0, "usernames", "usernames must be provided")

	userIDs, unknown, err := a.resolveUsernames(r.Context(), req.Usernames)
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

	if err := a.invitesService.RemoveParticipants(r.Context(), callerID, eventID, userIDs); err != nil {
		a.domainErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (a *Api) leaveEventHandler(w http.ResponseWriter, r *http.Request) {
	callerID, ok := a.callerID(r)
	if !ok {
		a.serverErrorResponse(w, r, errCantRetrieveID)
		return
	}

	eventID, err := eventIDParam(r)
	if err != nil {
		a.notFoundResponse(w, r)
		return
	}

	if err := a.invitesService.Leave(r.Context(), callerID, eventID); err != nil {
		a.domainErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (a *Api) getPendingInvitesHandler(w http.ResponseWriter, r *http.Request) {
	callerID, ok := a.callerID(r)
	if !ok {
		a.serverErrorResponse(w, r, errCantRetrieveID)
		return
	}

	events, err := a.invitesService.Pending(r.Context(), callerID)
	if err != nil {
		a.domainErrorResponse(w, r, err)
		return
	}

	resp, err := mapSlice(events, mapToEventResp)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) acceptInviteHandler(w http.ResponseWriter, r *http.Request) {
	callerID, ok := a.callerID(r)
	if !ok {
		a.serverErrorResponse(w, r, errCantRetrieveID)
		return
	}

	eventID, err := eventIDParam(r)
	if err != nil {
		a.notFoundResponse(w, r)
		return
	}

	if err := a.invitesService.Accept(r.Context(), callerID, eventID); err != nil {
		a.domainErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (a *Api) declineInviteHandler(w http.ResponseWriter, r *http.Request) {
	callerID, ok := a.callerID(r)
	if !ok {
		a.serverErrorResponse(w, r, errCantRetrieveID)
		return
	}

	eventID, err := eventIDParam(r)
	if err != nil {
		a.notFoundResponse(w, r)
		return
	}

	if err := a.invitesService.Decline(r.Context(), callerID, eventID); err != nil {
		a.domainErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
