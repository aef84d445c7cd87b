package api

import (
	"context"
	"fmt"
	"net/url"
)

// IncidentsService exposes the incident endpoints.
type IncidentsService struct {
	client *Client
}

// NewIncidentsService creates the incidents facade.
func NewIncidentsService(c *Client) *IncidentsService {
	return &IncidentsService{client: c}
}

// List fetches the authenticated user's incidents.
func (s *IncidentsService) List(ctx context.Context) Result[[]Incident] {
	var out []Incident
	if err := s.client.Get(ctx, "incidents/", &out); err != nil {
		return Failure[[]Incident](errorPayload(err, "Failed to fetch incidents"))
	}
	return Success(out)
}

// Create reports a new incident. Priority defaults to MEDIUM server-side
// when omitted.
func (s *IncidentsService) Create(ctx context.Context, inc IncidentCreate) Result[Incident] {
	if p := validatePayload(inc); p != nil {
		return Failure[Incident](p)
	}
	var out Incident
	if err := s.client.Post(ctx, "incidents/", inc, &out); err != nil {
		return Failure[Incident](errorPayload(err, "Failed to create incident"))
	}
	return Success(out)
}

// Get fetches a single incident by its numeric ID.
func (s *IncidentsService) Get(ctx context.Context, id int64) Result[Incident] {
	var out Incident
	if err := s.client.Get(ctx, fmt.Sprintf("incidents/%d/", id), &out); err != nil {
		return Failure[Incident](errorPayload(err, "Failed to fetch incident"))
	}
	return Success(out)
}

// Update edits an open incident. The backend rejects edits to closed
// incidents; callers can check Editable first to avoid the round trip.
func (s *IncidentsService) Update(ctx context.Context, id int64, upd IncidentUpdate) Result[Incident] {
	if p := validatePayload(upd); p != nil {
		return Failure[Incident](p)
	}
	var out Incident
	if err := s.client.Put(ctx, fmt.Sprintf("incidents/%d/", id), upd, &out); err != nil {
		return Failure[Incident](errorPayload(err, "Failed to update incident"))
	}
	return Success(out)
}

// Delete removes an incident.
func (s *IncidentsService) Delete(ctx context.Context, id int64) Result[struct{}] {
	if err := s.client.Delete(ctx, fmt.Sprintf("incidents/%d/", id)); err != nil {
		return Failure[struct{}](errorPayload(err, "Failed to delete incident"))
	}
	return Success(struct{}{})
}

// Search looks up an incident by its public incident ID (e.g. RMG123452026).
// The backend returns a single entity; it is wrapped in a one-element slice
// so search and list results can be consumed uniformly.
func (s *IncidentsService) Search(ctx context.Context, incidentID string) Result[[]Incident] {
	q := url.Values{"incident_id": {incidentID}}
	var out Incident
	if err := s.client.Get(ctx, "incidents/search/?"+q.Encode(), &out); err != nil {
		return Failure[[]Incident](errorPayload(err, "Search failed"))
	}
	return Success([]Incident{out})
}

// Stats fetches per-user incident statistics.
func (s *IncidentsService) Stats(ctx context.Context) Result[Stats] {
	var out Stats
	if err := s.client.Get(ctx, "incidents/stats/", &out); err != nil {
		return Failure[Stats](errorPayload(err, "Failed to fetch stats"))
	}
	return Success(out)
}

// Close transitions an incident to CLOSED.
func (s *IncidentsService) Close(ctx context.Context, id int64) Result[Incident] {
	var out Incident
	if err := s.client.Post(ctx, fmt.Sprintf("incidents/%d/close/", id), nil, &out); err != nil {
		return Failure[Incident](errorPayload(err, "Failed to close incident"))
	}
	return Success(out)
}
