package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	clientsDomain "github.com/healthdesk/healthinfo/internal/clients/domain"
	"github.com/healthdesk/healthinfo/internal/metrics"
)

// clientUseCaseWithMetrics decorates ClientUseCase with metrics instrumentation.
type clientUseCaseWithMetrics struct {
	next    ClientUseCase
	metrics metrics.BusinessMetrics
}

// NewClientUseCaseWithMetrics wraps a ClientUseCase with metrics recording.
func NewClientUseCaseWithMetrics(useCase ClientUseCase, m metrics.BusinessMetrics) ClientUseCase {
	return &clientUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// record emits the operation counter and duration histogram for one call.
func (c *clientUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "clients", operation, status)
	c.metrics.RecordDuration(ctx, "clients", operation, time.Since(start), status)
}

func (c *clientUseCaseWithMetrics) Create(
	ctx context.Context,
	input *clientsDomain.CreateClientInput,
) (*clientsDomain.Client, error) {
	start := time.Now()
	client, err := c.next.Create(ctx, input)
	c.record(ctx, "create", start, err)
	return client, err
}

func (c *clientUseCaseWithMetrics) Get(ctx context.Context, clientID uuid.UUID) (*clientsDomain.Client, error) {
	start := time.Now()
	client, err := c.next.Get(ctx, clientID)
	c.record(ctx, "get", start, err)
	return client, err
}

func (c *clientUseCaseWithMetrics) List(ctx context.Context, offset, limit int) ([]*clientsDomain.Client, error) {
	start := time.Now()
	clients, err := c.next.List(ctx, offset, limit)
	c.record(ctx, "list", start, err)
	return clients, err
}

func (c *clientUseCaseWithMetrics) Search(ctx context.Context, query string) ([]*clientsDomain.Client, error) {
	start := time.Now()
	clients, err := c.next.Search(ctx, query)
	c.record(ctx, "search", start, err)
	return clients, err
}

func (c *clientUseCaseWithMetrics) Update(
	ctx context.Context,
	clientID uuid.UUID,
	input *clientsDomain.UpdateClientInput,
) (*clientsDomain.Client, error) {
	start := time.Now()
	client, err := c.next.Update(ctx, clientID, input)
	c.record(ctx, "update", start, err)
	return client, err
}

func (c *clientUseCaseWithMetrics) Delete(ctx context.Context, clientID uuid.UUID) error {
	start := time.Now()
	err := c.next.Delete(ctx, clientID)
	c.record(ctx, "delete", start, err)
	return err
}
