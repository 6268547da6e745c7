// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-card-sync/internal/adapter"
	"github.com/MKhiriev/go-card-sync/models"
)

func TestRetryController_Budgets(t *testing.T) {
	c := NewRetryController()

	assert.Equal(t, 1, c.Budget(models.PriorityLow))
	assert.Equal(t, 3, c.Budget(models.PriorityNormal))
	assert.Equal(t, 5, c.Budget(models.PriorityHigh))
	assert.Equal(t, 3, c.Budget(models.OperationPriority("unknown")))
}

func TestRetryController_SuccessFirstTry(t *testing.T) {
	c := NewRetryController()

	attempts := 0
	err := c.Do(context.Background(), models.PriorityNormal, func(context.Context) error {
		attempts++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, attempts)
}

func TestRetryController_PermanentErrorNotRetried(t *testing.T) {
	c := NewRetryController()

	rejected := fmt.Errorf("%w: http 409: stale version", adapter.ErrRejected)
	attempts := 0
	err := c.Do(context.Background(), models.PriorityHigh, func(context.Context) error {
		attempts++
		return rejected
	})

	require.ErrorIs(t, err, adapter.ErrRejected)
	// отказ приложения — не транспортная ошибка, повторов нет
	assert.Equal(t, 1, attempts)
}

func TestRetryController_TransportErrorExhaustsBudget(t *testing.T) {
	c := NewRetryController()

	transport := fmt.Errorf("%w: connection refused", adapter.ErrTransport)
	attempts := 0
	err := c.Do(context.Background(), models.PriorityLow, func(context.Context) error {
		attempts++
		return transport
	})

	require.ErrorIs(t, err, adapter.ErrTransport)
	assert.Equal(t, 1, attempts) // budget low = 1
}

func TestRetryController_ContextCancelled(t *testing.T) {
	c := NewRetryController()

	ctx, cancel := context.WithCancel(context.Background())

	transport := fmt.Errorf("%w: connection refused", adapter.ErrTransport)
	err := c.Do(ctx, models.PriorityNormal, func(context.Context) error {
		cancel()
		return transport
	})

	assert.True(t, errors.Is(err, context.Canceled) || errors.Is(err, adapter.ErrTransport))
}
