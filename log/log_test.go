package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, Config{Level: int(slog.LevelWarn)})

	l.Info("dropped")
	assert.Zero(t, buf.Len())

	l.WarnContext(context.Background(), "registry reseeded", slog.Int("models_created", 3))
	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "registry reseeded", rec["msg"])
	assert.EqualValues(t, 3, rec["models_created"])
}
