package testutil

import (
	"net/http"
	"time"

	id "github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/domain"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/requestcontext"
)

// WithVolunteer sets the authenticated volunteer on the request, the way the
// auth middleware does after validating a bearer token.
func WithVolunteer(req *http.Request, volunteerID id.VolunteerID) *http.Request {
	return req.WithContext(requestcontext.WithVolunteerID(req.Context(), volunteerID))
}

// WithAdmin sets the authenticated volunteer and the admin claim.
func WithAdmin(req *http.Request, volunteerID id.VolunteerID) *http.Request {
	ctx := requestcontext.WithVolunteerID(req.Context(), volunteerID)
	ctx = requestcontext.WithAdmin(ctx, true)
	return req.WithContext(ctx)
}

// WithRequestTime pins the request clock.
func WithRequestTime(req *http.Request, t time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), t))
}

// WithRequestID sets the request id the logging middleware would assign.
func WithRequestID(req *http.Request, requestID string) *http.Request {
	return req.WithContext(requestcontext.WithRequestID(req.Context(), requestID))
}
