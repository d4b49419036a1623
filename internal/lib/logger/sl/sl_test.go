package sl

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/dariasmyr/stopwatch/duration"
	"github.com/stretchr/testify/assert"
)

func TestErr(t *testing.T) {
	attr := Err(errors.New("boom"))
	assert.Equal(t, "error", attr.Key)
	assert.Equal(t, "boom", attr.Value.String())
}

func TestElapsed(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	log.Info("done", Elapsed("took", duration.Std(1500*time.Millisecond)))

	assert.Contains(t, buf.String(), "took=1.500s")
}
