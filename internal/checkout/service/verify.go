package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingdomain "github.com/Sabyy027/hostel-core/internal/booking/domain"
	"github.com/Sabyy027/hostel-core/internal/checkout/domain"
	"github.com/Sabyy027/hostel-core/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// errConcurrentConfirm aborts the confirm transaction when another verify
// call won the paid CAS first.
var errConcurrentConfirm = errors.New("concurrent_confirm")

type VerifyRequest struct {
	StudentID      snowflake.ID
	GatewayOrderID string
	PaymentID      string
	Signature      string
	Resident       *bookingdomain.ResidentDetails
}

// VerifyAndConfirm bridges the untrusted client-reported "payment
// succeeded" signal with gateway-verifiable truth. It is idempotent on the
// gateway order id: a replay with the same payment returns the stored
// confirmation without new rows.
func (s *Service) VerifyAndConfirm(ctx context.Context, req VerifyRequest) (*domain.Confirmation, error) {
	release, _ := s.limiter.LockOrder(ctx, req.GatewayOrderID)
	defer release()

	order, err := s.repo.FindByGatewayOrderID(ctx, s.db, req.GatewayOrderID)
	if err != nil {
		return nil, err
	}
	if order == nil || order.StudentID != req.StudentID {
		return nil, domain.ErrOrderNotFound
	}

	if !s.gateway.VerifySignature(req.GatewayOrderID, req.PaymentID, req.Signature) {
		s.metrics.RecordSignatureFailure()
		s.metrics.RecordVerification("signature_mismatch")
		// Distinct from ordinary failures: a mismatch here is either a
		// buggy client or someone trying to mint a booking without paying.
		s.log.Warn("payment signature mismatch",
			zap.String("event", "signature_mismatch"),
			zap.String("gateway_order_id", req.GatewayOrderID),
			zap.String("payment_id", req.PaymentID),
			zap.Int64("student_id", int64(req.StudentID)),
		)
		if _, err := s.repo.MarkFailed(ctx, s.db, order.ID); err != nil {
			s.log.Error("failed to mark order failed", zap.Error(err))
		}
		return nil, domain.ErrVerificationFailed
	}

	subject, ok := s.registry.Get(order.Subject)
	if !ok {
		return nil, domain.ErrUnknownSubject
	}

	switch order.Status {
	case domain.OrderStatusPaid:
		return s.replay(ctx, subject, order, req)
	case domain.OrderStatusFailed:
		return nil, s.flagUnclaimable(ctx, order, req, domain.FlagReasonOrderUnclaimable)
	case domain.OrderStatusExpired:
		return nil, s.flagUnclaimable(ctx, order, req, domain.FlagReasonOrderExpired)
	}

	if s.clock.Now().After(order.ExpiresAt) {
		if _, err := s.repo.MarkExpired(ctx, s.db, order.ID); err != nil {
			return nil, err
		}
		return nil, s.flagUnclaimable(ctx, order, req, domain.FlagReasonOrderExpired)
	}

	confirmReq := domain.ConfirmRequest{
		StudentID: req.StudentID,
		TargetID:  order.TargetID,
		PlanID:    order.PlanID,
		Resident:  req.Resident,
	}

	// Double-submit from two tabs: the target is already satisfied, the
	// payment captured against this order is surplus. Return the existing
	// record and flag the order for manual follow-up.
	if existing, satisfied, err := subject.AlreadySatisfied(ctx, s.db, confirmReq); err != nil {
		return nil, err
	} else if satisfied {
		if _, err := s.repo.MarkFailed(ctx, s.db, order.ID); err != nil {
			return nil, err
		}
		s.raiseFlag(ctx, order, req.PaymentID, domain.FlagReasonAlreadySatisfied)
		s.metrics.RecordVerification("already_satisfied")
		return existing, nil
	}

	var confirmation *domain.Confirmation
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		conf, err := subject.Confirm(ctx, tx, order, confirmReq)
		if err != nil {
			return err
		}
		won, err := s.repo.MarkPaid(ctx, tx, order.ID, req.PaymentID, conf.RecordID)
		if err != nil {
			return err
		}
		if !won {
			return errConcurrentConfirm
		}
		confirmation = conf
		return nil
	})

	switch {
	case txErr == nil:
		s.metrics.RecordVerification("confirmed")
		s.log.Info("payment verified and confirmed",
			zap.String("gateway_order_id", order.GatewayOrderID),
			zap.String("subject", string(order.Subject)),
			zap.Int64("record_id", int64(confirmation.RecordID)),
		)
		return confirmation, nil

	case errors.Is(txErr, errConcurrentConfirm):
		// Another verify call for this order committed first; serve its
		// result.
		latest, err := s.repo.FindByGatewayOrderID(ctx, s.db, req.GatewayOrderID)
		if err != nil {
			return nil, err
		}
		if latest != nil && latest.Status == domain.OrderStatusPaid {
			return s.replay(ctx, subject, latest, req)
		}
		return nil, domain.ErrConflict

	default:
		// Signature was valid, so the gateway captured the payment, but
		// the confirmation could not be recorded. Money moved without a
		// record: never silently dropped.
		s.raiseFlag(ctx, order, req.PaymentID, domain.FlagReasonConfirmFailed)
		if _, err := s.repo.MarkFailed(ctx, s.db, order.ID); err != nil {
			s.log.Error("failed to mark order failed", zap.Error(err))
		}
		s.metrics.RecordVerification("reconciliation_required")
		s.log.Error("payment captured but confirmation failed",
			zap.String("gateway_order_id", order.GatewayOrderID),
			zap.String("payment_id", req.PaymentID),
			zap.Error(txErr),
		)
		return nil, fmt.Errorf("%w: %v", domain.ErrReconciliationRequired, txErr)
	}
}

// replay serves an idempotent repeat of an already-confirmed order.
func (s *Service) replay(ctx context.Context, subject domain.Subject, order *domain.Order, req VerifyRequest) (*domain.Confirmation, error) {
	if order.ConfirmationID == nil {
		return nil, domain.ErrOrderNotFound
	}
	if order.PaymentID != nil && *order.PaymentID != req.PaymentID {
		// Same order, different captured payment: the gateway charged
		// twice. The original confirmation stands; the second capture
		// needs a refund.
		s.raiseFlag(ctx, order, req.PaymentID, domain.FlagReasonDuplicatePayment)
	}
	s.metrics.RecordVerification("replay")
	return subject.Lookup(ctx, s.db, *order.ConfirmationID)
}

// flagUnclaimable handles a valid signature arriving for an order that can
// no longer be claimed. The gateway may have captured, so this is a
// reconciliation case, not a plain error. The metric label and the error
// follow the reason: an expired order and a previously failed one are
// different failure classes.
func (s *Service) flagUnclaimable(ctx context.Context, order *domain.Order, req VerifyRequest, reason string) error {
	s.raiseFlag(ctx, order, req.PaymentID, reason)
	s.metrics.RecordVerification(reason)
	if reason == domain.FlagReasonOrderUnclaimable {
		return domain.ErrOrderUnclaimable
	}
	return domain.ErrOrderExpired
}

func (s *Service) raiseFlag(ctx context.Context, order *domain.Order, paymentID, reason string) {
	flag := &domain.ReconciliationFlag{
		ID:             s.genID.Generate(),
		OrderID:        order.ID,
		GatewayOrderID: order.GatewayOrderID,
		PaymentID:      paymentID,
		Reason:         reason,
		CreatedAt:      s.clock.Now().UTC(),
	}
	if err := s.repo.InsertFlag(ctx, s.db, flag); err != nil {
		s.log.Error("failed to record reconciliation flag",
			zap.String("gateway_order_id", order.GatewayOrderID),
			zap.String("reason", reason),
			zap.Error(err),
		)
		return
	}
	s.metrics.RecordReconciliationFlag(reason)
	s.log.Error("reconciliation required",
		zap.String("event", "reconciliation_flag"),
		zap.String("gateway_order_id", order.GatewayOrderID),
		zap.String("payment_id", paymentID),
		zap.String("reason", reason),
	)
}

// ExpireStaleOrders sweeps created orders past their deadline. Orders
// never hold rooms, so expiry releases nothing; it only closes the
// verification window.
func (s *Service) ExpireStaleOrders(ctx context.Context) (int64, error) {
	n, err := s.repo.ExpireOlderThan(ctx, s.db, s.clock.Now().UTC())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.metrics.RecordOrdersExpired(int(n))
		s.log.Info("expired stale orders", zap.Int64("count", n))
	}
	return n, nil
}

// OpenFlags pages unresolved reconciliation cases for operators, newest
// first. A nil cursor starts from the top.
func (s *Service) OpenFlags(ctx context.Context, before *pagination.Cursor, pageSize int) ([]domain.ReconciliationFlag, *pagination.PageInfo, error) {
	limit := pagination.Pagination{PageSize: pageSize}.Limit()
	flags, err := s.repo.ListOpenFlags(ctx, s.db, before, limit)
	if err != nil {
		return nil, nil, err
	}

	info, flags := pagination.BuildPage(flags, limit, func(f domain.ReconciliationFlag) pagination.Cursor {
		return pagination.Cursor{
			ID:        f.ID.String(),
			CreatedAt: f.CreatedAt.Format(time.RFC3339Nano),
		}
	})
	return flags, info, nil
}
