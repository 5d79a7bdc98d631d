package services

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"assignment-bot/internal/apiclient"
	"assignment-bot/internal/apperror"
	"assignment-bot/internal/domain"
)

type CalendlyService struct {
	api     *apiclient.Client
	token   string
	userURI string
}

func NewCalendlyService(api *apiclient.Client, token, userURI string) *CalendlyService {
	return &CalendlyService{api: api, token: token, userURI: userURI}
}

type scheduledEvent struct {
	URI       string    `json:"uri"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

type scheduledEventsResponse struct {
	Collection []scheduledEvent `json:"collection"`
}

// LatestEventByInvitee returns the most recent active event booked by email
// with the configured user.
func (s *CalendlyService) LatestEventByInvitee(ctx context.Context, email string) (domain.ScheduledEventInfo, error) {
	query := url.Values{}
	query.Set("invitee_email", email)
	query.Set("status", "active")
	query.Set("sort", "start_time:desc")
	query.Set("user", s.userURI)

	var resp scheduledEventsResponse
	err := s.api.Do(ctx, apiclient.Calendly, apiclient.Request{
		Method: http.MethodGet,
		Path:   "/scheduled_events?" + query.Encode(),
		Header: http.Header{
			"Content-Type":  []string{"application/json"},
			"Authorization": []string{"Bearer " + s.token},
		},
	}, &resp)
	if err != nil {
		return domain.ScheduledEventInfo{}, err
	}

	if len(resp.Collection) == 0 {
		return domain.ScheduledEventInfo{}, apperror.Parsing(nil, "no active scheduled event for %s", email)
	}
	event := resp.Collection[0]
	return domain.ScheduledEventInfo{URI: event.URI, StartTime: event.StartTime}, nil
}
