package service

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/MKhiriev/go-card-sync/internal/adapter"
	"github.com/MKhiriev/go-card-sync/models"
)

const (
	retryBaseDelay = 1 * time.Second
	retryMaxDelay  = 30 * time.Second

	budgetLow    = 1
	budgetNormal = 3
	budgetHigh   = 5
)

type retryController struct{}

// NewRetryController constructs the backoff/retry controller. It is
// stateless: budgets are fixed per priority and the backoff schedule is
// rebuilt per invocation so concurrent operations never share timer state.
func NewRetryController() RetryController {
	return &retryController{}
}

// Budget implements RetryController.
func (c *retryController) Budget(priority models.OperationPriority) int {
	switch priority {
	case models.PriorityHigh:
		return budgetHigh
	case models.PriorityLow:
		return budgetLow
	default:
		return budgetNormal
	}
}

// Do implements RetryController. Transport errors are retried with
// exponential backoff until the priority budget is exhausted; application
// rejections are marked permanent and surface on the first attempt.
func (c *retryController) Do(ctx context.Context, priority models.OperationPriority, op func(ctx context.Context) error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = retryBaseDelay
	b.MaxInterval = retryMaxDelay

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		if opErr := op(ctx); opErr != nil {
			if adapter.IsTransport(opErr) {
				return struct{}{}, opErr
			}
			return struct{}{}, backoff.Permanent(opErr)
		}
		return struct{}{}, nil
	},
		backoff.WithBackOff(b),
		backoff.WithMaxTries(uint(c.Budget(priority))),
	)

	return err
}
