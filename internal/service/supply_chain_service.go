package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"supply-chain-cli/internal/apperrors"
	"supply-chain-cli/internal/entity"
	"supply-chain-cli/internal/events"
)

// NotifyTimeout bounds how long a committed write waits on the optional
// integrations before its success is reported.
const NotifyTimeout = 2 * time.Second

// Store is the database side of the service.
type Store interface {
	RunReport(ctx context.Context, report entity.Report) (*entity.ResultSet, error)
	CreateOrder(ctx context.Context, order entity.NewOrder) error
	UpdateUnitsInStock(ctx context.Context, update entity.StockUpdate) error
	Close() error
}

// Publisher announces committed writes to other systems.
type Publisher interface {
	Publish(ctx context.Context, event entity.Event) error
}

// Recorder appends committed writes to an audit trail.
type Recorder interface {
	Record(ctx context.Context, event entity.Event) error
}

// SupplyChainService runs reports and write operations and reports failures
// as ErrConnection or ErrQueryExecution.
type SupplyChainService struct {
	store     Store
	publisher Publisher
	recorder  Recorder
	logger    zerolog.Logger
	now       func() time.Time

	notifyTimeout time.Duration
}

// NewSupplyChainService creates a new instance of SupplyChainService.
// publisher and recorder may be nil when those integrations are disabled.
func NewSupplyChainService(store Store, publisher Publisher, recorder Recorder, logger zerolog.Logger) *SupplyChainService {
	return &SupplyChainService{
		store:     store,
		publisher: publisher,
		recorder:  recorder,
		logger:    logger,
		now:       time.Now,

		notifyTimeout: NotifyTimeout,
	}
}

// RunReport executes one of the fixed read-only reports.
func (s *SupplyChainService) RunReport(ctx context.Context, report entity.Report) (*entity.ResultSet, error) {
	result, err := s.store.RunReport(ctx, report)
	if err != nil {
		err = apperrors.Classify("running report "+report.String(), err)
		s.logger.Error().Err(err).Str("report", report.String()).Msg("Error executing report")
		return nil, err
	}

	s.logger.Debug().Str("report", report.String()).Int("rows", len(result.Rows)).Msg("Report executed")
	return result, nil
}

// CreateOrder calls new_order and, once committed, announces the order.
func (s *SupplyChainService) CreateOrder(ctx context.Context, order entity.NewOrder) error {
	if err := s.store.CreateOrder(ctx, order); err != nil {
		err = apperrors.Classify("calling new_order", err)
		s.logger.Error().Err(err).Int("customer_id", order.CustomerID).Msg("Error creating order")
		return err
	}

	s.logger.Info().Int("customer_id", order.CustomerID).Int("product_id", order.ProductID).Msg("Order created")
	s.notify(ctx, events.OrderCreated(order, s.now()))
	return nil
}

// UpdateUnitsInStock calls update_units_in_stock and, once committed,
// announces the change.
func (s *SupplyChainService) UpdateUnitsInStock(ctx context.Context, update entity.StockUpdate) error {
	if err := s.store.UpdateUnitsInStock(ctx, update); err != nil {
		err = apperrors.Classify("calling update_units_in_stock", err)
		s.logger.Error().Err(err).Int("product_id", update.ProductID).Msg("Error updating units in stock")
		return err
	}

	s.logger.Info().Int("product_id", update.ProductID).Int("units_in_stock", update.UnitsInStock).Msg("Units in stock updated")
	s.notify(ctx, events.StockUpdated(update, s.now()))
	return nil
}

// Close releases the database connection.
func (s *SupplyChainService) Close() error {
	return s.store.Close()
}

// notify fans a committed write out to the optional integrations. The write
// already succeeded, so failures here are only logged. Each integration gets
// its own notifyTimeout.
func (s *SupplyChainService) notify(ctx context.Context, event entity.Event) {
	if s.publisher != nil {
		if err := s.withTimeout(ctx, event, s.publisher.Publish); err != nil {
			s.logger.Warn().Err(err).Str("event", event.Type).Msg("Error publishing event")
		}
	}
	if s.recorder != nil {
		if err := s.withTimeout(ctx, event, s.recorder.Record); err != nil {
			s.logger.Warn().Err(err).Str("event", event.Type).Msg("Error recording audit entry")
		}
	}
}

func (s *SupplyChainService) withTimeout(ctx context.Context, event entity.Event, send func(context.Context, entity.Event) error) error {
	ctx, cancel := context.WithTimeout(ctx, s.notifyTimeout)
	defer cancel()
	return send(ctx, event)
}
