//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"stayhub/internal/handler/api"
	resdto "stayhub/internal/handler/dto/response"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/usecase/commands"
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

type PaymentHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockPaymentCommands
	mockQueries  *queriesmock.MockPaymentQueries
	handler      *api.PaymentHandler
	authUserID   uuid.UUID
}

func (s *PaymentHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockPaymentCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockPaymentQueries(s.mockCtrl)
	s.handler = api.NewPaymentHandler(s.mockCommands, s.mockQueries)
	s.authUserID = uuid.New()

	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"code": "unauthorized", "message": "Unauthorized"}})
			return
		}
		c.Set("user_id", s.authUserID)
		c.Set("user_role", "user")
		c.Next()
	}

	s.router.POST("/reservations/:id/checkout", authMiddleware, s.handler.StartCheckout)
	s.router.GET("/reservations/:id/payments", authMiddleware, s.handler.ListReservationPayments)
	s.router.POST("/payments/webhook", s.handler.Webhook)
	s.router.GET("/payments/verify", authMiddleware, s.handler.VerifyPayment)
	s.router.GET("/payments/:id", authMiddleware, s.handler.GetPayment)
	s.router.POST("/payments/:id/cancel", authMiddleware, s.handler.CancelPayment)
	s.router.POST("/payments/:id/refund", authMiddleware, s.handler.RefundPayment)
}

func (s *PaymentHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestPaymentHandlerSuite(t *testing.T) {
	suite.Run(t, new(PaymentHandlerTestSuite))
}

func (s *PaymentHandlerTestSuite) TestStartCheckout() {
	reservationID := uuid.New()
	url := "/reservations/" + reservationID.String() + "/checkout"

	s.Run("success: 201 with the session redirect", func() {
		result := &commands.CheckoutResult{
			PaymentID:   uuid.New(),
			SessionID:   "cs_test123",
			RedirectURL: "https://pay.example.com/pay/cs_test123",
		}
		s.mockCommands.EXPECT().StartCheckout(gomock.Any(), reservationID, s.authUserID).
			Return(result, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")

		var body resdto.CheckoutResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(result.PaymentID, body.PaymentID)
		s.Equal("cs_test123", body.SessionID)
		s.Equal(result.RedirectURL, body.RedirectURL)
	})

	s.Run("error: 409 when not awaiting payment", func() {
		s.mockCommands.EXPECT().StartCheckout(gomock.Any(), reservationID, s.authUserID).
			Return(nil, errs.ErrInvalidTransition).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "invalid_transition")
	})

	s.Run("error: 409 when already paid", func() {
		s.mockCommands.EXPECT().StartCheckout(gomock.Any(), reservationID, s.authUserID).
			Return(nil, errs.ErrAlreadyPaid).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "already_paid")
	})

	s.Run("error: 502 when the provider is down", func() {
		s.mockCommands.EXPECT().StartCheckout(gomock.Any(), reservationID, s.authUserID).
			Return(nil, errs.ErrCheckoutUnavailable).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadGateway, "checkout_unavailable")
	})
}

func (s *PaymentHandlerTestSuite) TestWebhook() {
	url := "/payments/webhook"

	s.Run("success: acks completion", func() {
		s.mockCommands.EXPECT().HandleProviderNotification(gomock.Any(), "cs_abc", "pi_987").
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"session_id": "cs_abc", "external_payment_id": "pi_987", "event_type": "checkout.completed"}, "")

		var body map[string]string
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("ok", body["status"])
	})

	s.Run("malformed payload still acks 200", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"event_type": "x"}, "")

		var body map[string]string
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("ignored", body["status"])
	})

	s.Run("handler failure still acks 200", func() {
		s.mockCommands.EXPECT().HandleProviderNotification(gomock.Any(), "cs_abc", "").
			Return(errs.ErrPaymentSessionUnknown).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"session_id": "cs_abc"}, "")

		var body map[string]string
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("error", body["status"])
	})
}

func (s *PaymentHandlerTestSuite) TestVerifyPayment() {
	s.Run("success: returns the synced payment", func() {
		view := builder.NewPaymentBuilder().AsCompleted("pi_987").BuildView()
		s.mockCommands.EXPECT().VerifyAndSync(gomock.Any(), s.authUserID, view.SessionID).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/payments/verify?session_id="+view.SessionID, nil, "bearer-token")

		var body resdto.PaymentResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(view.ID, body.ID)
		s.Equal("COMPLETED", body.Status)
	})

	s.Run("error: 400 without session_id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/payments/verify", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "invalid_request")
	})

	s.Run("error: 404 on unknown session", func() {
		s.mockCommands.EXPECT().VerifyAndSync(gomock.Any(), s.authUserID, "cs_nope").
			Return(nil, errs.ErrPaymentSessionUnknown).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/payments/verify?session_id=cs_nope", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "payment_not_found")
	})
}

func (s *PaymentHandlerTestSuite) TestGetPayment() {
	s.Run("success", func() {
		view := builder.NewPaymentBuilder().WithPayerID(s.authUserID).BuildView()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.authUserID, view.ID).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/payments/"+view.ID.String(), nil, "bearer-token")

		var body resdto.PaymentResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(view.ID, body.ID)
	})

	s.Run("error: 404 for strangers", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.authUserID, id).
			Return(nil, errs.ErrPaymentNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/payments/"+id.String(), nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "payment_not_found")
	})
}

func (s *PaymentHandlerTestSuite) TestListReservationPayments() {
	reservationID := uuid.New()

	s.Run("success: returns every attempt", func() {
		views := []*queries.PaymentView{
			builder.NewPaymentBuilder().WithReservationID(reservationID).AsCompleted("pi_987").BuildView(),
			builder.NewPaymentBuilder().WithReservationID(reservationID).BuildView(),
		}
		s.mockQueries.EXPECT().ListByReservation(gomock.Any(), s.authUserID, reservationID).
			Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/"+reservationID.String()+"/payments", nil, "bearer-token")

		var body []*resdto.PaymentResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body, 2)
		s.Equal("COMPLETED", body[0].Status)
	})

	s.Run("error: 404 for strangers", func() {
		s.mockQueries.EXPECT().ListByReservation(gomock.Any(), s.authUserID, reservationID).
			Return(nil, errs.ErrReservationNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/"+reservationID.String()+"/payments", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "reservation_not_found")
	})
}

func (s *PaymentHandlerTestSuite) TestCancelPayment() {
	id := uuid.New()

	s.Run("success: 204", func() {
		s.mockCommands.EXPECT().CancelPayment(gomock.Any(), id, s.authUserID).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/payments/"+id.String()+"/cancel", nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 409 when no longer pending", func() {
		s.mockCommands.EXPECT().CancelPayment(gomock.Any(), id, s.authUserID).
			Return(errs.ErrPaymentNotPending).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/payments/"+id.String()+"/cancel", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "payment_not_pending")
	})
}

func (s *PaymentHandlerTestSuite) TestRefundPayment() {
	id := uuid.New()
	url := "/payments/" + id.String() + "/refund"

	s.Run("success: 204 with reason", func() {
		s.mockCommands.EXPECT().RefundPayment(gomock.Any(), id, s.authUserID, "stay cancelled").
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"reason": "stay cancelled"}, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 400 without reason", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "invalid_request")
	})

	s.Run("error: 409 when not completed", func() {
		s.mockCommands.EXPECT().RefundPayment(gomock.Any(), id, s.authUserID, "late refund").
			Return(errs.ErrPaymentNotCompleted).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"reason": "late refund"}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "payment_not_completed")
	})
}
