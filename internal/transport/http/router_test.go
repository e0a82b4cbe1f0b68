package httptransport

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	jwttoken "github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/jwt_token"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/registration"
	registrationAdapters "github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/registration/adapters"
	registrationHandler "github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/registration/handler"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/training/catalog"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/training/completion"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/training/models"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/training/progression"
	volunteerHandler "github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/volunteer/handler"
	vmodels "github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/volunteer/models"
	volunteerService "github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/volunteer/service"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/volunteer/store"
	id "github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/domain"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/platform/middleware/request"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/testutil"
)

type RouterSuite struct {
	suite.Suite
	router  http.Handler
	jwt     *jwttoken.JWTService
	cat     *catalog.Catalog
	store   *store.InMemory
	healthy bool
	now     time.Time
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	cat, err := catalog.LoadDefault()
	s.Require().NoError(err)
	s.cat = cat
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	resolver := completion.New(cat)
	machine := progression.New(resolver)

	s.store = store.NewInMemory()
	volunteers := volunteerService.New(s.store, machine, volunteerService.WithLogger(logger))
	registrations := registration.NewService(registration.NewValidator(resolver, machine),
		registrationAdapters.NewVolunteerAdapter(volunteers), registration.WithLogger(logger))

	s.jwt = jwttoken.NewJWTService("test-signing-key", "hmc-volunteer-portal", "hmc-clearance")
	s.healthy = true
	s.now = time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	s.router = NewRouter(Dependencies{
		Logger:       logger,
		Validator:    jwttoken.NewMiddlewareValidator(s.jwt),
		Registration: registrationHandler.New(registrations, logger),
		Volunteers:   volunteerHandler.New(volunteers, logger),
		Checks: map[string]HealthCheck{
			"store": func(context.Context) error {
				if !s.healthy {
					return errors.New("unreachable")
				}
				return nil
			},
		},
		Clock: func() time.Time { return s.now },
	})
}

func (s *RouterSuite) seed(units ...models.UnitID) id.VolunteerID {
	v, err := vmodels.NewImported(id.NewVolunteerID(), "Ana Ruiz", id.NewVolunteerID().String()+"@example.org",
		"core_volunteer", vmodels.Availability{}, s.now)
	s.Require().NoError(err)
	v.Training.Completed = units
	s.Require().NoError(s.store.Create(context.Background(), v))
	return v.ID
}

func (s *RouterSuite) do(method, path, body string, volunteerID id.VolunteerID, admin bool) *httptest.ResponseRecorder {
	req := testutil.NewRequestWithBody(s.T(), method, path, body)
	if !volunteerID.IsNil() {
		token, err := s.jwt.GenerateAccessToken(volunteerID, admin, time.Hour)
		s.Require().NoError(err)
		req = testutil.WithBearer(req, token)
	}
	return testutil.DoRequest(s.router, req)
}

func (s *RouterSuite) TestHealthz() {
	w := s.do(http.MethodGet, "/healthz", "", id.VolunteerID{}, false)
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"status":"ok","checks":{"store":"ok"}}`, w.Body.String())
	s.NotEmpty(w.Header().Get(request.HeaderRequestID))

	s.healthy = false
	w = s.do(http.MethodGet, "/healthz", "", id.VolunteerID{}, false)
	s.Equal(http.StatusServiceUnavailable, w.Code)
	s.JSONEq(`{"status":"degraded","checks":{"store":"unreachable"}}`, w.Body.String())
}

func (s *RouterSuite) TestAuthentication() {
	volunteerID := s.seed()

	s.Run("missing token", func() {
		w := s.do(http.MethodGet, "/volunteers/"+volunteerID.String()+"/gates", "", id.VolunteerID{}, false)
		testutil.AssertStatusAndError(s.T(), w, http.StatusUnauthorized, "unauthorized")
	})

	s.Run("another volunteer's clearance", func() {
		w := s.do(http.MethodGet, "/volunteers/"+volunteerID.String()+"/clearance", "", s.seed(), false)
		testutil.AssertStatusAndError(s.T(), w, http.StatusForbidden, "forbidden")
	})

	s.Run("own gates", func() {
		w := s.do(http.MethodGet, "/volunteers/"+volunteerID.String()+"/gates", "", volunteerID, false)
		s.Equal(http.StatusOK, w.Code)
		s.Contains(w.Body.String(), `"can_deploy_core":false`)
	})

	s.Run("import requires the admin claim", func() {
		body := `{"volunteers":[{"name":"Ben","email":"ben@example.org","role":"core_volunteer"}]}`
		w := s.do(http.MethodPost, "/admin/volunteers/import", body, volunteerID, false)
		s.Equal(http.StatusForbidden, w.Code)

		w = s.do(http.MethodPost, "/admin/volunteers/import", body, volunteerID, true)
		s.Equal(http.StatusOK, w.Code)
		s.Contains(w.Body.String(), `"imported":1`)
	})
}

// A volunteer finishes the last baseline unit and can then register for a
// core-only event.
func (s *RouterSuite) TestCompletionThenRegistration() {
	all := append(s.cat.TierUnits(models.TierOrientation), s.cat.TierUnits(models.TierBaseline)...)
	volunteerID := s.seed(all[:len(all)-1]...)
	validate := `{"event":{"event_type":"community_tabling","date":"2026-05-16"}}`

	w := s.do(http.MethodPost, "/registrations/validate", validate, volunteerID, false)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `"can_register":false`)
	s.Contains(w.Body.String(), `"core_volunteer_required"`)

	w = s.do(http.MethodPost, "/volunteers/"+volunteerID.String()+"/completions",
		`{"unit_id":"`+string(all[len(all)-1])+`"}`, volunteerID, false)
	s.Require().Equal(http.StatusCreated, w.Code)
	completion := testutil.UnmarshalResponse[volunteerHandler.CompletionResponse](s.T(), w)
	s.True(completion.Promoted)
	s.Require().NotNil(completion.Promotion)

	w = s.do(http.MethodPost, "/registrations/validate", validate, volunteerID, false)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `"can_register":true`)
	// Imported profiles start with a pending background check.
	s.Contains(w.Body.String(), `"background_check_not_verified"`)
}

func (s *RouterSuite) TestUnknownUnit() {
	volunteerID := s.seed()
	w := s.do(http.MethodPost, "/volunteers/"+volunteerID.String()+"/completions",
		`{"unit_id":"no_such_unit"}`, volunteerID, false)
	testutil.AssertStatusAndError(s.T(), w, http.StatusBadRequest, "validation_error")
}

func TestImportedVolunteerClearance(t *testing.T) {
	s := new(RouterSuite)
	s.SetT(t)
	s.SetupTest()
	admin := id.NewVolunteerID()

	testutil.Given(t, "an admin imports a new volunteer", func(t *testing.T) {
		w := s.do(http.MethodPost, "/admin/volunteers/import",
			`{"volunteers":[{"name":"Cleo Park","email":"Cleo.Park@Example.org","role":"core_volunteer"}]}`, admin, true)
		imported := testutil.UnmarshalResponse[volunteerHandler.ImportResponse](t, w)
		require.Len(t, imported.Outcomes, 1)
		require.Empty(t, imported.Outcomes[0].Error)
		volunteerID, err := id.ParseVolunteerID(imported.Outcomes[0].VolunteerID)
		require.NoError(t, err)

		testutil.When(t, "the volunteer reads their clearance", func(t *testing.T) {
			w := s.do(http.MethodGet, "/volunteers/"+volunteerID.String()+"/clearance", "", volunteerID, false)
			require.Equal(t, http.StatusOK, w.Code)
			clearance := testutil.UnmarshalResponse[volunteerHandler.ClearanceResponse](t, w)

			testutil.Then(t, "nothing is complete and the background check is pending", func(t *testing.T) {
				assert.False(t, clearance.CoreVolunteer)
				assert.False(t, clearance.Gates.CanDeployCore)
				assert.NotEmpty(t, clearance.NextRequired)
				assert.Equal(t, "pending", clearance.BackgroundCheck)
			})
		})
	})
}
