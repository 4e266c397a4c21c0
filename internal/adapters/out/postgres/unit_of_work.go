// Package postgres provides the GORM-based Unit of Work together with the
// database bootstrap (driver selection and schema migrations).
//
// A unit of work wraps one database transaction. Repositories obtained from
// it write through that transaction and register every aggregate they touch.
// Once the transaction commits, the unit of work drains the domain events
// recorded on those aggregates and hands them to the configured publisher.
// A rollback discards both the writes and the pending events, so an
// uncommitted mutation never becomes visible to subscribers.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db, publisher, logger)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	if err := uow.OrderRepository().Update(ctx, o); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Each UnitOfWork instance belongs to a single goroutine; concurrent
// operations create their own instances from the shared factory.
package postgres

import (
	"context"
	"log/slog"

	"fueldelivery/internal/adapters/out/postgres/messagerepo"
	"fueldelivery/internal/adapters/out/postgres/orderrepo"
	"fueldelivery/internal/core/domain/model/kernel"
	"fueldelivery/internal/core/ports"

	"gorm.io/gorm"
)

// eventSource is implemented by aggregates that buffer domain events.
type eventSource interface {
	PullDomainEvents() []kernel.DomainEvent
}

// trackedAggregate represents an aggregate modified during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool
// and one event publisher.
type GormUnitOfWorkFactory struct {
	db        *gorm.DB
	publisher ports.DomainEventPublisher
	logger    *slog.Logger
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
// publisher may be nil, in which case committed events are dropped.
func NewGormUnitOfWorkFactory(
	db *gorm.DB,
	publisher ports.DomainEventPublisher,
	logger *slog.Logger,
) *GormUnitOfWorkFactory {
	if logger == nil {
		logger = slog.Default()
	}
	return &GormUnitOfWorkFactory{
		db:        db,
		publisher: publisher,
		logger:    logger.With("component", "unit_of_work"),
	}
}

// Create produces a new UnitOfWork instance with its own transaction state
// and aggregate tracking.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		publisher:         f.publisher,
		logger:            f.logger,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and publishes the
// domain events of the aggregates it saved after a successful commit.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	publisher         ports.DomainEventPublisher
	logger            *slog.Logger
	trackedAggregates []trackedAggregate
}

// Begin initiates a new database transaction for the unit of work.
// Multiple calls to Begin on the same instance do not nest.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit finalizes the transaction and then publishes the events recorded on
// every tracked aggregate. Publishing errors are logged and never returned:
// the write has already happened.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		uow.trackedAggregates = uow.trackedAggregates[:0]
		return err
	}

	uow.publishTrackedEvents(ctx)
	return nil
}

// Rollback discards the transaction and everything tracked within it.
// Calling Rollback after Commit returns gorm.ErrInvalidTransaction, which
// makes `defer uow.Rollback(ctx)` safe.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	uow.trackedAggregates = uow.trackedAggregates[:0]
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// OrderRepository provides access to order persistence within the unit of work.
// Without an active transaction it uses the main connection.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// MessageRepository provides access to chat message persistence within the unit of work.
func (uow *GormUnitOfWork) MessageRepository() ports.MessageRepository {
	return messagerepo.NewGormMessageRepository(uow.conn(), uow)
}

// TrackAggregate registers an aggregate written within this unit of work.
// Called by repositories after a successful Add or Update.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) publishTrackedEvents(ctx context.Context) {
	tracked := uow.trackedAggregates
	uow.trackedAggregates = make([]trackedAggregate, 0)

	var events []kernel.DomainEvent
	for _, t := range tracked {
		source, ok := t.Aggregate.(eventSource)
		if !ok {
			continue
		}
		events = append(events, source.PullDomainEvents()...)
	}

	if len(events) == 0 || uow.publisher == nil {
		return
	}

	if err := uow.publisher.Publish(ctx, events...); err != nil {
		uow.logger.ErrorContext(ctx, "failed to publish domain events",
			"events", len(events),
			"error", err,
		)
	}
}
