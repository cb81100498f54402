package xlog_test

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/qdlog/pkg/observability/xlog"
)

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level xlog.Level
		want  string
	}{
		{xlog.LevelDebug, "DEBUG"},
		{xlog.LevelInfo, "INFO"},
		{xlog.LevelWarn, "WARN"},
		{xlog.LevelError, "ERROR"},
		{xlog.LevelOff, "OFF"},
		{xlog.Level(9), "Level(9)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.level.String())
	}
}

func TestLevel_NumericValues(t *testing.T) {
	assert.Equal(t, 0, int(xlog.LevelDebug))
	assert.Equal(t, 1, int(xlog.LevelInfo))
	assert.Equal(t, 2, int(xlog.LevelWarn))
	assert.Equal(t, 3, int(xlog.LevelError))
	assert.Equal(t, 4, int(xlog.LevelOff))
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    xlog.Level
		wantErr bool
	}{
		{"debug", xlog.LevelDebug, false},
		{"INFO", xlog.LevelInfo, false},
		{" warn ", xlog.LevelWarn, false},
		{"Warning", xlog.LevelWarn, false},
		{"error", xlog.LevelError, false},
		{"off", xlog.LevelOff, false},
		{"none", xlog.LevelOff, false},
		{"trace", xlog.LevelInfo, true},
		{"", xlog.LevelInfo, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := xlog.ParseLevel(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, xlog.ErrInvalidArgument))
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLevel_TextRoundTrip(t *testing.T) {
	for _, l := range []xlog.Level{xlog.LevelDebug, xlog.LevelInfo, xlog.LevelWarn, xlog.LevelError, xlog.LevelOff} {
		text, err := l.MarshalText()
		require.NoError(t, err)

		var got xlog.Level
		require.NoError(t, got.UnmarshalText(text))
		assert.Equal(t, l, got)
	}

	_, err := xlog.Level(-1).MarshalText()
	assert.ErrorIs(t, err, xlog.ErrInvalidArgument)

	var l xlog.Level
	assert.Error(t, l.UnmarshalText([]byte("verbose")))
}

func TestLevel_Slog(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, xlog.LevelDebug.SlogLevel())
	assert.Equal(t, slog.LevelError, xlog.LevelError.SlogLevel())
	assert.Greater(t, xlog.LevelOff.SlogLevel(), slog.LevelError)

	tests := []struct {
		in   slog.Level
		want xlog.Level
	}{
		{slog.LevelDebug - 4, xlog.LevelDebug},
		{slog.LevelDebug, xlog.LevelDebug},
		{slog.LevelInfo, xlog.LevelInfo},
		{slog.LevelInfo + 2, xlog.LevelInfo},
		{slog.LevelWarn, xlog.LevelWarn},
		{slog.LevelError, xlog.LevelError},
		{slog.LevelError + 8, xlog.LevelError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, xlog.LevelFromSlog(tt.in), "slog level %v", tt.in)
	}
}

func TestParseFormat(t *testing.T) {
	f, err := xlog.ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, xlog.FormatJSON, f)

	f, err = xlog.ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, xlog.FormatText, f)

	_, err = xlog.ParseFormat("xml")
	assert.ErrorIs(t, err, xlog.ErrInvalidArgument)

	var got xlog.Format
	require.NoError(t, got.UnmarshalText([]byte("json")))
	assert.Equal(t, xlog.FormatJSON, got)

	text, err := xlog.FormatText.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "text", string(text))

	assert.Equal(t, "Format(7)", xlog.Format(7).String())
	assert.False(t, xlog.Format(7).IsValid())
}
