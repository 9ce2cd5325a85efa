package loki

import (
	"context"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

// Reader is the part of *kafka.Reader the shipper uses. Messages must come from a
// consumer group so CommitMessages is meaningful.
type Reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
}

// Pusher sends a batch of entries to Loki.
type Pusher interface {
	Push(ctx context.Context, entries ...Entry) error
}

// Shipper moves relay events from Kafka to Loki in batches. A batch is committed only
// after Loki accepted it, so delivery is at least once.
type Shipper struct {
	reader Reader
	pusher Pusher
	log    logrus.FieldLogger

	batchSize   int
	flushEvery  time.Duration
	pushTimeout time.Duration
	retryBase   time.Duration
	retryMax    time.Duration
	now         func() time.Time
}

// ShipperOption configures a Shipper.
type ShipperOption func(*Shipper)

// WithBatch flushes after size messages or every interval, whichever comes first.
func WithBatch(size int, interval time.Duration) ShipperOption {
	return func(s *Shipper) {
		if size > 0 {
			s.batchSize = size
		}
		if interval > 0 {
			s.flushEvery = interval
		}
	}
}

// WithRetry bounds the backoff between failed pushes of the same batch.
func WithRetry(base, max time.Duration) ShipperOption {
	return func(s *Shipper) {
		if base > 0 {
			s.retryBase = base
		}
		if max >= base {
			s.retryMax = max
		}
	}
}

// NewShipper returns a shipper reading from reader and pushing to pusher. log may be nil.
func NewShipper(reader Reader, pusher Pusher, log logrus.FieldLogger, opts ...ShipperOption) *Shipper {
	if log == nil {
		log = logrus.StandardLogger()
	}
	s := &Shipper{
		reader:      reader,
		pusher:      pusher,
		log:         log,
		batchSize:   100,
		flushEvery:  time.Second,
		pushTimeout: 10 * time.Second,
		retryBase:   500 * time.Millisecond,
		retryMax:    30 * time.Second,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run ships until ctx ends, then returns nil. A batch that is being retried when ctx
// ends stays uncommitted and is redelivered to the next consumer.
func (s *Shipper) Run(ctx context.Context) error {
	var (
		batch   []kafka.Message
		entries []Entry
		flushAt time.Time
	)
	for {
		if len(batch) == 0 {
			flushAt = s.now().Add(s.flushEvery)
		}
		fetchCtx, cancel := context.WithDeadline(ctx, flushAt)
		msg, err := s.reader.FetchMessage(fetchCtx)
		cancel()
		switch {
		case err == nil:
			batch = append(batch, msg)
			entries = append(entries, EntryFromEvent(msg.Value, s.now().UTC()))
			if len(batch) < s.batchSize {
				continue
			}
		case ctx.Err() != nil:
			return nil
		case errors.Is(err, context.DeadlineExceeded):
			if len(batch) == 0 {
				continue
			}
		default:
			s.log.WithError(err).Warn("loki: kafka fetch failed")
			if !s.sleep(ctx, s.retryBase) {
				return nil
			}
			continue
		}

		if !s.flush(ctx, batch, entries) {
			return nil
		}
		batch, entries = batch[:0], entries[:0]
	}
}

// flush pushes entries until Loki accepts them, then commits batch. It reports false
// when ctx ended first.
func (s *Shipper) flush(ctx context.Context, batch []kafka.Message, entries []Entry) bool {
	backoff := s.retryBase
	for attempt := 1; ; attempt++ {
		pushCtx, cancel := context.WithTimeout(ctx, s.pushTimeout)
		err := s.pusher.Push(pushCtx, entries...)
		cancel()
		if err == nil {
			break
		}
		if ctx.Err() != nil {
			return false
		}
		log := s.log.WithError(err).WithFields(logrus.Fields{"batch": len(batch), "attempt": attempt})
		if !Retryable(err) {
			// Loki rejected the payload itself; retrying cannot help.
			log.Error("loki: batch rejected, skipping")
			break
		}
		log.Warn("loki: push failed, retrying")
		if !s.sleep(ctx, backoff) {
			return false
		}
		backoff = min(backoff*2, s.retryMax)
	}

	if err := s.reader.CommitMessages(ctx, batch...); err != nil {
		if ctx.Err() != nil {
			return false
		}
		s.log.WithError(err).WithField("batch", len(batch)).Warn("loki: kafka commit failed")
	}
	last := batch[len(batch)-1]
	s.log.WithFields(logrus.Fields{"batch": len(batch), "partition": last.Partition, "offset": last.Offset}).Debug("loki: batch shipped")
	return true
}

func (s *Shipper) sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
