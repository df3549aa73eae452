package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Sequence names and their display formats.
const (
	SequenceInvoice = "invoice"
	SequenceStaff   = "staff"

	RedisSequenceKeyPrefix = "sequence:"

	sequenceTimeout = 5 * time.Second
)

var sequenceFormats = map[string]string{
	SequenceInvoice: "INV%04d",
	SequenceStaff:   "STAFF%04d",
}

// raiseToScript moves the counter up to ARGV[1] but never down, so a sync
// racing with live INCRs cannot hand out a number twice.
var raiseToScript = redis.NewScript(`
	local current = tonumber(redis.call('GET', KEYS[1]) or '0')
	local floor = tonumber(ARGV[1])
	if floor > current then
		redis.call('SET', KEYS[1], floor)
		return floor
	end
	return current
`)

// SequenceService issues human-readable numbers such as INV0001.
type SequenceService interface {
	Next(ctx context.Context, name string) (string, error)
}

// SequenceSource reports the highest number already persisted for a sequence.
type SequenceSource func(ctx context.Context) (int64, error)

type RedisSequenceService struct {
	redisClient *redis.Client
	log         *logrus.Logger
}

func NewSequenceService(redisClient *redis.Client, log *logrus.Logger) *RedisSequenceService {
	return &RedisSequenceService{redisClient: redisClient, log: log}
}

func sequenceKey(name string) string {
	return RedisSequenceKeyPrefix + name
}

// FormatSequence renders n using the display format of the named sequence.
func FormatSequence(name string, n int64) (string, error) {
	format, ok := sequenceFormats[name]
	if !ok {
		return "", fmt.Errorf("unknown sequence %q", name)
	}
	return fmt.Sprintf(format, n), nil
}

// Next atomically increments the sequence and returns its formatted value.
func (s *RedisSequenceService) Next(ctx context.Context, name string) (string, error) {
	if _, ok := sequenceFormats[name]; !ok {
		return "", fmt.Errorf("unknown sequence %q", name)
	}

	ctx, cancel := context.WithTimeout(ctx, sequenceTimeout)
	defer cancel()

	n, err := s.redisClient.Incr(ctx, sequenceKey(name)).Result()
	if err != nil {
		s.log.Warnf("Failed to increment sequence %s: %+v", name, err)
		return "", fmt.Errorf("incr sequence %s: %w", name, err)
	}
	return FormatSequence(name, n)
}

// SyncOnStartup raises every counter to the highest number already stored in
// the database. Call it before accepting traffic.
func (s *RedisSequenceService) SyncOnStartup(ctx context.Context, sources map[string]SequenceSource) error {
	s.log.Info("Starting sequence sync from database...")
	startTime := time.Now()

	if err := s.redisClient.Ping(ctx).Err(); err != nil {
		s.log.Warnf("Redis is not available, skipping sequence sync: %+v", err)
		return fmt.Errorf("redis ping failed: %w", err)
	}

	for name, source := range sources {
		highest, err := source(ctx)
		if err != nil {
			s.log.Errorf("Failed to read highest %s number: %+v", name, err)
			return fmt.Errorf("read highest %s number: %w", name, err)
		}

		value, err := raiseToScript.Run(ctx, s.redisClient, []string{sequenceKey(name)}, highest).Int64()
		if err != nil {
			s.log.Errorf("Failed to sync sequence %s: %+v", name, err)
			return fmt.Errorf("sync sequence %s: %w", name, err)
		}
		s.log.Debugf("Synced sequence %s: db=%d redis=%d", name, highest, value)
	}

	s.log.Infof("Sequence sync completed in %v", time.Since(startTime))
	return nil
}
