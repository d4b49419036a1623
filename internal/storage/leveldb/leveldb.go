package leveldb

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/dariasmyr/stopwatch/duration"
	"github.com/dariasmyr/stopwatch/internal/domain/models"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"
)

var (
	ErrLabelNotFound = errors.New("label not found")
	ErrInvalidLabel  = errors.New("invalid label")
	ErrCorruptSample = errors.New("corrupt sample")
)

const (
	samplePrefix  = "sample:"
	counterPrefix = "counter:"
	sampleSize    = 12
)

type Storage struct {
	db *leveldb.DB
	// mu serialises counter updates in SaveSample.
	mu sync.Mutex
}

func New(path string) (*Storage, error) {
	const op = "storage.leveldb.New"

	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{db: db}, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

// SaveSample appends c to the samples of label and returns its sequence number.
func (s *Storage) SaveSample(ctx context.Context, label string, c duration.Components) (uint64, error) {
	const op = "storage.leveldb.SaveSample"

	if err := validateLabel(label); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	counterKey := []byte(counterPrefix + label)

	s.mu.Lock()
	defer s.mu.Unlock()

	var lastSeq uint64
	raw, err := s.db.Get(counterKey, nil)
	switch {
	case err == nil:
		lastSeq, err = strconv.ParseUint(string(raw), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%s: counter %q: %w", op, label, err)
		}
	case errors.Is(err, leveldb.ErrNotFound):
	default:
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	seq := lastSeq + 1

	batch := new(leveldb.Batch)
	batch.Put(counterKey, []byte(strconv.FormatUint(seq, 10)))
	batch.Put(sampleKey(label, seq), encodeSample(c))

	if err := s.db.Write(batch, nil); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return seq, nil
}

// Samples returns the samples of label in the order they were saved.
func (s *Storage) Samples(ctx context.Context, label string) ([]models.Sample, error) {
	const op = "storage.leveldb.Samples"

	if err := validateLabel(label); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	iter := s.db.NewIterator(util.BytesPrefix([]byte(samplePrefix+label+":")), nil)
	defer iter.Release()

	var samples []models.Sample
	for iter.Next() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		seq, err := parseSeq(string(iter.Key()), label)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		secs, nanos, err := decodeSample(iter.Value())
		if err != nil {
			return nil, fmt.Errorf("%s: %s#%d: %w", op, label, seq, err)
		}

		samples = append(samples, models.Sample{Label: label, Seq: seq, Seconds: secs, Nanos: nanos})
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(samples) == 0 {
		return nil, fmt.Errorf("%s: %s: %w", op, label, ErrLabelNotFound)
	}

	return samples, nil
}

// Labels returns every label with stored samples, sorted.
func (s *Storage) Labels(ctx context.Context) ([]string, error) {
	const op = "storage.leveldb.Labels"

	iter := s.db.NewIterator(util.BytesPrefix([]byte(counterPrefix)), nil)
	defer iter.Release()

	var labels []string
	for iter.Next() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		labels = append(labels, strings.TrimPrefix(string(iter.Key()), counterPrefix))
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	sort.Strings(labels)

	return labels, nil
}

// DeleteLabel removes all samples of label together with its counter.
func (s *Storage) DeleteLabel(ctx context.Context, label string) error {
	const op = "storage.leveldb.DeleteLabel"

	if err := validateLabel(label); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	counterKey := []byte(counterPrefix + label)
	if ok, err := s.db.Has(counterKey, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	} else if !ok {
		return fmt.Errorf("%s: %s: %w", op, label, ErrLabelNotFound)
	}

	batch := new(leveldb.Batch)
	batch.Delete(counterKey)

	iter := s.db.NewIterator(util.BytesPrefix([]byte(samplePrefix+label+":")), nil)
	for iter.Next() {
		if err := ctx.Err(); err != nil {
			iter.Release()
			return fmt.Errorf("%s: %w", op, err)
		}
		batch.Delete(append([]byte(nil), iter.Key()...))
	}
	iter.Release()
	if err := iter.Error(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.db.Write(batch, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func validateLabel(label string) error {
	if label == "" || strings.Contains(label, ":") {
		return fmt.Errorf("%w: %q", ErrInvalidLabel, label)
	}
	return nil
}

// sampleKey zero pads seq so lexicographic order equals insertion order.
func sampleKey(label string, seq uint64) []byte {
	return []byte(fmt.Sprintf("%s%s:%020d", samplePrefix, label, seq))
}

func parseSeq(key, label string) (uint64, error) {
	raw := strings.TrimPrefix(key, samplePrefix+label+":")
	return strconv.ParseUint(raw, 10, 64)
}

func encodeSample(c duration.Components) []byte {
	buf := make([]byte, sampleSize)
	binary.BigEndian.PutUint64(buf[:8], c.Secs())
	binary.BigEndian.PutUint32(buf[8:], c.SubsecNanos())
	return buf
}

func decodeSample(b []byte) (uint64, uint32, error) {
	if len(b) != sampleSize {
		return 0, 0, fmt.Errorf("%w: %d bytes", ErrCorruptSample, len(b))
	}
	return binary.BigEndian.Uint64(b[:8]), binary.BigEndian.Uint32(b[8:]), nil
}
