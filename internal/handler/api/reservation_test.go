//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"stayhub/internal/handler/api"
	resdto "stayhub/internal/handler/dto/response"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/usecase/queries"
	"stayhub/tests/common/builder"
	"stayhub/tests/common/httptest"
	commandsmock "stayhub/tests/mock/commands"
	queriesmock "stayhub/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReservationHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockReservationCommands
	mockQueries  *queriesmock.MockReservationQueries
	handler      *api.ReservationHandler
	authUserID   uuid.UUID
}

func (s *ReservationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockReservationCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockReservationQueries(s.mockCtrl)
	s.handler = api.NewReservationHandler(s.mockCommands, s.mockQueries)
	s.authUserID = uuid.New()

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"code": "unauthorized", "message": "Unauthorized"}})
			return
		}
		c.Set("user_id", s.authUserID)
		c.Set("user_role", "user")
		c.Next()
	}

	s.router.POST("/reservations", authMiddleware, s.handler.CreateReservation)
	s.router.GET("/reservations", authMiddleware, s.handler.ListReservations)
	s.router.GET("/reservations/:id", authMiddleware, s.handler.GetReservation)
	s.router.POST("/reservations/:id/approve", authMiddleware, s.handler.ApproveReservation)
	s.router.POST("/reservations/:id/reject", authMiddleware, s.handler.RejectReservation)
	s.router.POST("/reservations/:id/confirm", authMiddleware, s.handler.ConfirmReservation)
	s.router.POST("/reservations/:id/cancel", authMiddleware, s.handler.CancelReservation)
}

func (s *ReservationHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReservationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReservationHandlerTestSuite))
}

func (s *ReservationHandlerTestSuite) TestCreateReservation() {
	url := "/reservations"
	reqBody := builder.NewReservationBuilder().BuildCreateRequestDTO()

	s.Run("success: returns 201 with the created reservation", func() {
		view := builder.NewReservationBuilder().WithTenantID(s.authUserID).BuildView()
		s.mockCommands.EXPECT().Request(gomock.Any(), gomock.Any(), s.authUserID).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var body resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(view.ID, body.ID)
		s.Equal(view.Code, body.Code)
		s.Equal("REQUESTED", body.Status)
		s.Equal(3, body.Nights)
	})

	s.Run("error: 400 on missing required fields", func() {
		cases := []map[string]any{
			{"start_date": "2026-03-10", "end_date": "2026-03-13", "guests": 2},
			{"property_id": uuid.New(), "end_date": "2026-03-13", "guests": 2},
			{"property_id": uuid.New(), "start_date": "2026-03-10", "guests": 2},
			{"property_id": uuid.New(), "start_date": "2026-03-10", "end_date": "2026-03-13"},
			{"property_id": uuid.New(), "start_date": "2026-03-10", "end_date": "2026-03-13", "guests": 0},
		}
		for _, body := range cases {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "invalid_request")
		}
	})

	s.Run("error: 409 when the dates are taken", func() {
		// The usecase layer hands back marked errors, not bare sentinels;
		// the mapping must see through the wrapping.
		wrapped := errs.Mark(errs.New("exclusion constraint violated"), errs.ErrDatesUnavailable)
		s.mockCommands.EXPECT().Request(gomock.Any(), gomock.Any(), s.authUserID).
			Return(nil, wrapped).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "dates_unavailable")
	})

	s.Run("error: 400 when booking own property", func() {
		s.mockCommands.EXPECT().Request(gomock.Any(), gomock.Any(), s.authUserID).
			Return(nil, errs.ErrOwnPropertyBooking).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "own_property")
	})

	s.Run("error: 404 on unknown property", func() {
		s.mockCommands.EXPECT().Request(gomock.Any(), gomock.Any(), s.authUserID).
			Return(nil, errs.ErrPropertyNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "property_not_found")
	})

	s.Run("error: 401 without token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "unauthorized")
	})
}

func (s *ReservationHandlerTestSuite) TestGetReservation() {
	s.Run("success: returns the reservation", func() {
		view := builder.NewReservationBuilder().WithTenantID(s.authUserID).BuildView()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.authUserID, view.ID).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/"+view.ID.String(), nil, "bearer-token")

		var body resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(view.ID, body.ID)
	})

	s.Run("error: 400 on malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/not-a-uuid", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "invalid_id")
	})

	s.Run("error: 404 for strangers", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.authUserID, id).
			Return(nil, errs.ErrReservationNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/"+id.String(), nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "reservation_not_found")
	})
}

func (s *ReservationHandlerTestSuite) TestListReservations() {
	s.Run("success: returns items and next cursor", func() {
		items := []*queries.ReservationListItem{
			builder.NewReservationBuilder().BuildListItem(),
			builder.NewReservationBuilder().BuildListItem(),
		}
		next := &queries.Cursor{After: "opaque-cursor"}
		s.mockQueries.EXPECT().ListByTenant(gomock.Any(), s.authUserID, gomock.Nil(), 0).
			Return(items, next, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations", nil, "bearer-token")

		var body resdto.ReservationListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body.Items, 2)
		s.Equal("opaque-cursor", body.NextCursor)
	})

	s.Run("success: forwards cursor and limit", func() {
		s.mockQueries.EXPECT().ListByTenant(gomock.Any(), s.authUserID, &queries.Cursor{After: "abc"}, 50).
			Return(nil, nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations?after=abc&limit=50", nil, "bearer-token")

		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 on non-numeric limit", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations?limit=abc", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "invalid_cursor")
	})
}

func (s *ReservationHandlerTestSuite) TestApproveReservation() {
	id := uuid.New()

	s.Run("success: 204", func() {
		s.mockCommands.EXPECT().Approve(gomock.Any(), id, s.authUserID).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/reservations/"+id.String()+"/approve", nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 409 when no longer pending", func() {
		s.mockCommands.EXPECT().Approve(gomock.Any(), id, s.authUserID).
			Return(errs.ErrInvalidTransition).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/reservations/"+id.String()+"/approve", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "invalid_transition")
	})

	s.Run("error: 404 for non-owner", func() {
		s.mockCommands.EXPECT().Approve(gomock.Any(), id, s.authUserID).
			Return(errs.ErrNotReservationParty).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/reservations/"+id.String()+"/approve", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "reservation_not_found")
	})
}

func (s *ReservationHandlerTestSuite) TestRejectReservation() {
	id := uuid.New()

	s.Run("success: 204 with reason", func() {
		s.mockCommands.EXPECT().Reject(gomock.Any(), id, s.authUserID, "dates blocked").
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/reservations/"+id.String()+"/reject",
			map[string]any{"reason": "dates blocked"}, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 400 without reason", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/reservations/"+id.String()+"/reject",
			map[string]any{}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "invalid_request")
	})
}

func (s *ReservationHandlerTestSuite) TestConfirmReservation() {
	id := uuid.New()

	s.Run("success: 204", func() {
		s.mockCommands.EXPECT().Confirm(gomock.Any(), id, s.authUserID).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/reservations/"+id.String()+"/confirm", nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 409 before payment", func() {
		s.mockCommands.EXPECT().Confirm(gomock.Any(), id, s.authUserID).
			Return(errs.ErrInvalidTransition).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/reservations/"+id.String()+"/confirm", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "invalid_transition")
	})
}

func (s *ReservationHandlerTestSuite) TestCancelReservation() {
	id := uuid.New()

	s.Run("success: 204 with reason", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), id, s.authUserID, "plans changed").
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/reservations/"+id.String()+"/cancel",
			map[string]any{"reason": "plans changed"}, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 409 when already cancelled", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), id, s.authUserID, "again").
			Return(errs.ErrInvalidTransition).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/reservations/"+id.String()+"/cancel",
			map[string]any{"reason": "again"}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "invalid_transition")
	})
}
