package server

import (
	"errors"
	"net/http"

	"github.com/Sabyy027/hostel-core/internal/bookingflow"
	checkoutdomain "github.com/Sabyy027/hostel-core/internal/checkout/domain"
	checkoutservice "github.com/Sabyy027/hostel-core/internal/checkout/service"
	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
)

type createOrderRequest struct {
	Subject  string `json:"subject"`
	TargetID string `json:"target_id"`
	PlanID   string `json:"plan_id"`
}

// CreateCheckoutOrder opens a gateway order for any checkout subject. Room
// bookings take their target from the student's flow, which must have the
// profile submitted; dues and amenities name their target directly.
func (s *Server) CreateCheckoutOrder(c *gin.Context) {
	studentID, ok := studentFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	subject := checkoutdomain.SubjectType(req.Subject)
	switch subject {
	case checkoutdomain.SubjectRoomBooking:
		s.createRoomOrder(c, studentID)
	case checkoutdomain.SubjectInvoiceDue, checkoutdomain.SubjectAmenity:
		targetID, err := snowflake.ParseString(req.TargetID)
		if err != nil {
			AbortWithError(c, invalidRequestError())
			return
		}
		intent, err := s.checkoutSvc.CreateOrder(c.Request.Context(), checkoutservice.CreateOrderRequest{
			StudentID: studentID,
			Subject:   subject,
			TargetID:  targetID,
		})
		if err != nil {
			AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, intent)
	default:
		AbortWithError(c, checkoutdomain.ErrUnknownSubject)
	}
}

func (s *Server) createRoomOrder(c *gin.Context, studentID snowflake.ID) {
	ctx := c.Request.Context()

	flow, err := s.flows.Get(ctx, studentID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if flow.State != bookingflow.StateProfileSubmitted {
		AbortWithError(c, &bookingflow.InvalidTransitionError{From: flow.State, Op: "initiate payment"})
		return
	}
	planID := flow.PlanID

	intent, err := s.checkoutSvc.CreateOrder(ctx, checkoutservice.CreateOrderRequest{
		StudentID: studentID,
		Subject:   checkoutdomain.SubjectRoomBooking,
		TargetID:  flow.RoomID,
		PlanID:    &planID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	err = s.flows.Mutate(ctx, studentID, func(f *bookingflow.Flow) error {
		return f.InitiatePayment(intent.GatewayOrderID, intent.Amount)
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, intent)
}

type verifyRequest struct {
	OrderID   string `json:"order_id"`
	PaymentID string `json:"payment_id"`
	Signature string `json:"signature"`
}

// VerifyPayment closes the checkout protocol: the client reports the widget
// outcome, the server trusts only the gateway signature.
func (s *Server) VerifyPayment(c *gin.Context) {
	studentID, ok := studentFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if req.OrderID == "" || req.PaymentID == "" || req.Signature == "" {
		AbortWithError(c, invalidRequestError())
		return
	}

	ctx := c.Request.Context()

	flow, err := s.flows.Get(ctx, studentID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	confirmation, err := s.checkoutSvc.VerifyAndConfirm(ctx, checkoutservice.VerifyRequest{
		StudentID:      studentID,
		GatewayOrderID: req.OrderID,
		PaymentID:      req.PaymentID,
		Signature:      req.Signature,
		Resident:       flow.Resident,
	})
	if err != nil {
		s.failFlowForRoomOrder(c, studentID, req.OrderID, err)
		AbortWithError(c, err)
		return
	}

	if confirmation.Subject == checkoutdomain.SubjectRoomBooking {
		_ = s.flows.Mutate(ctx, studentID, func(f *bookingflow.Flow) error {
			if f.State == bookingflow.StatePaymentInitiated && f.GatewayOrderID == req.OrderID {
				return f.Confirm()
			}
			return nil
		})
		// The booking row is now the durable record. Drop the flow so the
		// next access re-queries the gate and lands on AlreadyBooked.
		s.flows.Drop(studentID)
	}

	c.JSON(http.StatusOK, confirmation)
}

// failFlowForRoomOrder moves a room-booking flow into PaymentFailed when
// the failed verification belongs to its current order. Gateway timeouts
// are not routed here; they leave the flow waiting.
func (s *Server) failFlowForRoomOrder(c *gin.Context, studentID snowflake.ID, orderID string, cause error) {
	if !errors.Is(cause, checkoutdomain.ErrVerificationFailed) &&
		!errors.Is(cause, checkoutdomain.ErrReconciliationRequired) &&
		!errors.Is(cause, checkoutdomain.ErrOrderExpired) &&
		!errors.Is(cause, checkoutdomain.ErrOrderUnclaimable) {
		return
	}
	_ = s.flows.Mutate(c.Request.Context(), studentID, func(f *bookingflow.Flow) error {
		if f.State == bookingflow.StatePaymentInitiated && f.GatewayOrderID == orderID {
			return f.Fail(cause.Error())
		}
		return nil
	})
}
