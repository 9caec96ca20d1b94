package api

import (
	"net/http"

	"github.com/dsmelov/calendar-backend/internal/model"
)

type notificationResp struct {
	ID      int64  `json:"id"`
	EventID int64  `json:"event_id"`
	Message string `json:"message"`
}

func mapToNotificationResp(n *model.Notification) (*notificationResp, error) {
	return &notificationResp{
		ID:      n.ID,
		EventID: n.EventID,
		Message: n.Message,
	}, nil
}

func (a *Api) getNotificationsHandler(w http.ResponseWriter, r *http.Request) {
	callerID, ok := a.callerID(r)
	if !ok {
		a.serverErrorResponse(w, r, errCantRetrieveID)
		return
	}

	notifications, err := a.notificationsService.DrainUnread(r.Context(), callerID)
	if err != nil {
		a.domainErrorResponse(w, r, err)
		return
	}

	resp, err := mapSlice(notifications, mapToNotificationResp)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}
