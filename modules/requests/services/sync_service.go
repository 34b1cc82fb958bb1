package services

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/requesthub/requesthub/modules/requests/domain/aggregates/request"
	"github.com/requesthub/requesthub/modules/requests/infrastructure/linear"
	"github.com/requesthub/requesthub/pkg/eventbus"
)

// SyncOutcome describes how a tracker notification was resolved. All
// outcomes except a returned error are success at the transport boundary;
// the webhook contract intentionally does not distinguish "matched and
// updated" from "understood but irrelevant".
type SyncOutcome string

const (
	// SyncIgnored: irrelevant event type/action, or no request is mapped
	// to the notification's issue id.
	SyncIgnored SyncOutcome = "ignored"
	// SyncNoOp: a request matched but its status is preserved, either
	// because the state label maps to nothing or because the mapped status
	// equals the current one. No write, no broadcast.
	SyncNoOp SyncOutcome = "noop"
	// SyncCompleted: the new status was persisted and a status-change
	// event was published.
	SyncCompleted SyncOutcome = "completed"
)

// SyncService ingests tracker notifications and keeps request status in
// sync. Invocations run concurrently across notifications; each performs a
// single scoped read-then-write on one record. Concurrent notifications for
// the same issue may race and the last write wins.
type SyncService struct {
	repo      request.Repository
	publisher eventbus.EventBus
	logger    *logrus.Logger
}

func NewSyncService(repo request.Repository, publisher eventbus.EventBus, logger *logrus.Logger) *SyncService {
	return &SyncService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// ProcessNotification runs the synchronization pipeline for one verified
// notification: relevance gate, request lookup, status mapping, conditional
// persist, broadcast. Side effects happen strictly in persist-then-publish
// order so a viewer never observes a broadcast for a status that is not yet
// durably recorded. A returned error means the store write failed; the
// method is safe to re-run on the same notification.
func (s *SyncService) ProcessNotification(ctx context.Context, n linear.Notification) (SyncOutcome, error) {
	if !n.IsRelevant() {
		return SyncIgnored, nil
	}

	issueID := n.IssueID()
	if issueID == "" {
		return SyncIgnored, nil
	}

	entity, err := s.repo.GetByExternalIssueID(ctx, issueID)
	if err != nil {
		if errors.Is(err, request.ErrNotFound) {
			// The tracker may contain issues unrelated to this system;
			// an unmapped issue is benign traffic, not an error.
			return SyncIgnored, nil
		}
		return "", err
	}

	newStatus, ok := request.MapExternalState(n.StateLabel())
	if !ok || newStatus == entity.Status() {
		return SyncNoOp, nil
	}

	if err := s.repo.UpdateStatus(ctx, entity.ID(), newStatus); err != nil {
		return "", err
	}

	s.logger.WithFields(logrus.Fields{
		"requestId": entity.ID(),
		"issueId":   issueID,
		"oldStatus": entity.Status(),
		"newStatus": newStatus,
	}).Info("request status synchronized from tracker")

	// Broadcast is best-effort: the store is already the source of truth,
	// so fan-out failures are logged downstream and never escalate.
	s.publisher.Publish(&request.StatusChangedEvent{
		RequestID: entity.ID(),
		NewStatus: newStatus,
	})

	return SyncCompleted, nil
}
