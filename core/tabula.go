// Package core ties the tabula components together: a Provider abstraction
// over tabular sources and a Dataset that wraps a loaded frame with a query
// processor, structured logging and lifecycle events.
package core

import (
	"context"
	"time"

	"github.com/asaidimu/go-events"
	"github.com/asaidimu/go-tabula/core/frame"
	"github.com/asaidimu/go-tabula/core/query"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Provider loads a tabular source into a frame. Implementations exist for
// CSV files and URLs and for SQLite tables; a Dataset is agnostic to which
// provider produced its frame.
type Provider interface {
	Load(ctx context.Context, source string) (*frame.Frame, error)
}

// EventCallback is invoked for every event a subscription matches.
type EventCallback func(ctx context.Context, event DatasetEvent) error

// Dataset binds a loaded frame to an id, a query processor and an event
// bus. The underlying frame is immutable; queries produce new frames.
type Dataset struct {
	id        string
	source    string
	frame     *frame.Frame
	processor *query.Processor
	bus       *events.TypedEventBus[DatasetEvent]
	logger    *zap.Logger
}

// Open loads a source through the given provider and wraps the result in a
// Dataset. Load events are emitted on the dataset's bus; subscribers
// attached after Open only see later events.
func Open(ctx context.Context, provider Provider, source string, logger *zap.Logger) (*Dataset, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	bus, err := events.NewTypedEventBus[DatasetEvent](events.DefaultConfig())
	if err != nil {
		return nil, err
	}

	d := &Dataset{
		id:        uuid.New().String(),
		source:    source,
		processor: query.NewProcessor(logger),
		bus:       bus,
		logger:    logger,
	}

	f, err := d.withEventEmission("load", source,
		DatasetLoadStart, DatasetLoadSuccess, DatasetLoadFailed,
		func() (*frame.Frame, error) {
			return provider.Load(ctx, source)
		})
	if err != nil {
		return nil, err
	}
	d.frame = f
	nrow, ncol := f.Dims()
	logger.Info("Opened dataset",
		zap.String("id", d.id),
		zap.String("source", source),
		zap.Int("rows", nrow),
		zap.Int("cols", ncol))
	return d, nil
}

// ID returns the dataset's unique identifier.
func (d *Dataset) ID() string { return d.id }

// Source returns the source the dataset was loaded from.
func (d *Dataset) Source() string { return d.source }

// Frame returns the dataset's frame. The frame is immutable and safe to
// share.
func (d *Dataset) Frame() *frame.Frame { return d.frame }

// Processor returns the dataset's query processor, for registering custom
// compute or predicate functions.
func (d *Dataset) Processor() *query.Processor { return d.processor }

// Query applies a query to the dataset's frame, emitting query lifecycle
// events, and returns the resulting new frame.
func (d *Dataset) Query(q query.Query) (*frame.Frame, error) {
	return d.withEventEmission("query", d.source,
		DatasetQueryStart, DatasetQuerySuccess, DatasetQueryFailed,
		func() (*frame.Frame, error) {
			return d.processor.Apply(d.frame, q)
		})
}

// Subscribe registers a callback for a dataset event type and returns an
// unsubscribe function.
func (d *Dataset) Subscribe(t DatasetEventType, cb EventCallback) func() {
	return d.bus.Subscribe(string(t), cb)
}

// withEventEmission wraps an operation with start, success, and failure
// events.
func (d *Dataset) withEventEmission(
	operation string,
	source string,
	startEventType, successEventType, failedEventType DatasetEventType,
	fn func() (*frame.Frame, error),
) (*frame.Frame, error) {
	startTime := time.Now()
	d.emitEvent(createEvent(startEventType, d.id, source, operation, 0, 0, nil, startTime))

	result, err := fn()
	if err != nil {
		errStr := err.Error()
		d.emitEvent(createEvent(failedEventType, d.id, source, operation, 0, 0, &errStr, startTime))
		return nil, err
	}

	nrow, ncol := result.Dims()
	d.emitEvent(createEvent(successEventType, d.id, source, operation, nrow, ncol, nil, startTime))
	return result, nil
}

func (d *Dataset) emitEvent(event DatasetEvent) {
	if d.bus != nil {
		d.bus.Emit(string(event.Type), event)
	}
}
