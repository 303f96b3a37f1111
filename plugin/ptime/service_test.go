package ptime

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/hrygo/agendabot/internal/errors"
)

func newTestService(t *testing.T, opts ...Option) *Service {
	t.Helper()
	return NewService(StaticTimezone{Loc: saoPaulo(t)}, opts...)
}

func TestService_ResolveEventDateTime(t *testing.T) {
	svc := newTestService(t)
	ref := mondayRef(t)

	tests := []struct {
		name          string
		input         string
		wantISO       string
		wantReadable  string
		wantDefaulted bool
	}{
		{
			name:         "tomorrow with hour mark",
			input:        "reunião com João amanhã às 15h",
			wantISO:      "2024-06-11T15:00:00-03:00",
			wantReadable: "terça-feira, 11 de junho às 15:00",
		},
		{
			name:          "next weekday without time",
			input:         "consulta médica próxima sexta",
			wantISO:       "2024-06-21T09:00:00-03:00",
			wantReadable:  "sexta-feira, 21 de junho às 09:00",
			wantDefaulted: true,
		},
		{
			name:         "weekday with evening hour",
			input:        "jantar com a família sábado às 8 da noite",
			wantISO:      "2024-06-15T20:00:00-03:00",
			wantReadable: "sábado, 15 de junho às 20:00",
		},
		{
			name:         "today",
			input:        "Dentista hoje às 10:00",
			wantISO:      "2024-06-10T10:00:00-03:00",
			wantReadable: "segunda-feira, 10 de junho às 10:00",
		},
		{
			name:         "absolute date",
			input:        "natal 25/12 meia-noite",
			wantISO:      "2024-12-25T00:00:00-03:00",
			wantReadable: "quarta-feira, 25 de dezembro às 00:00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.ResolveEventDateTime(context.Background(), tt.input, "user-1", "", ref)
			require.NoError(t, err)
			assert.Equal(t, tt.wantISO, got.ISO)
			assert.Equal(t, tt.wantReadable, got.Readable)
			assert.Equal(t, "America/Sao_Paulo", got.Timezone)
			assert.Equal(t, tt.wantDefaulted, got.TimeDefaulted)
			assert.Empty(t, got.Warnings)
		})
	}
}

func TestService_NoDate(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.ResolveEventDateTime(context.Background(), "às 7 da noite", "user-1", "", mondayRef(t))
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeNoDateRecognized))
}

func TestService_EmptyUtterance(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.ResolveEventDateTime(context.Background(), "   ", "user-1", "", mondayRef(t))
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidArgument))
}

func TestService_ReadableRoundTrip(t *testing.T) {
	svc := newTestService(t)

	for _, input := range []string{
		"reunião com João amanhã às 15h",
		"consulta médica próxima sexta",
		"treino domingo às 6 da manhã",
	} {
		got, err := svc.ResolveEventDateTime(context.Background(), input, "user-1", "", mondayRef(t))
		require.NoError(t, err)

		readable, err := FormatBrazilianDateTime(got.ISO)
		require.NoError(t, err)
		assert.Equal(t, got.Readable, readable)
	}
}

func TestService_WithClock(t *testing.T) {
	fixed := mondayRef(t)
	svc := newTestService(t, WithClock(func() time.Time { return fixed }))

	got, err := svc.ResolveEventDateTime(context.Background(), "reunião amanhã às 15h", "user-1", "", time.Time{})
	require.NoError(t, err)
	assert.Equal(t, "2024-06-11T15:00:00-03:00", got.ISO)
}

func TestService_WithDefaultTime(t *testing.T) {
	svc := newTestService(t, WithDefaultTime(14, 30))

	got, err := svc.ResolveEventDateTime(context.Background(), "consulta amanhã", "user-1", "", mondayRef(t))
	require.NoError(t, err)
	assert.Equal(t, "2024-06-11T14:30:00-03:00", got.ISO)
	assert.True(t, got.TimeDefaulted)

	// Out of range is ignored.
	svc = newTestService(t, WithDefaultTime(25, 0))
	got, err = svc.ResolveEventDateTime(context.Background(), "consulta amanhã", "user-1", "", mondayRef(t))
	require.NoError(t, err)
	assert.Equal(t, "2024-06-11T09:00:00-03:00", got.ISO)
}

func TestService_ReferenceInOtherZone(t *testing.T) {
	svc := newTestService(t)

	// 01:00 UTC on Tuesday is still Monday evening in São Paulo.
	ref := time.Date(2024, 6, 11, 1, 0, 0, 0, time.UTC)
	got, err := svc.ResolveEventDateTime(context.Background(), "reunião amanhã às 15h", "user-1", "", ref)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-11T15:00:00-03:00", got.ISO)
}

func TestService_DSTTransitionKeepsWallClock(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	svc := NewService(StaticTimezone{Loc: ny})

	// Clocks spring forward on 2024-03-10.
	ref := time.Date(2024, 3, 9, 12, 0, 0, 0, ny)
	got, err := svc.ResolveEventDateTime(context.Background(), "reunião amanhã às 10:00", "user-1", "", ref)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-10T10:00:00-04:00", got.ISO)
	assert.Equal(t, "America/New_York", got.Timezone)
	assert.Empty(t, got.Warnings)
}

func TestService_DSTGapWarns(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	svc := NewService(StaticTimezone{Loc: ny})

	ref := time.Date(2024, 3, 9, 12, 0, 0, 0, ny)
	got, err := svc.ResolveEventDateTime(context.Background(), "reunião amanhã às 2:30", "user-1", "", ref)
	require.NoError(t, err)
	assert.NotEqual(t, 2, got.Time.Hour())
	require.Len(t, got.Warnings, 1)
	assert.Contains(t, got.Warnings[0], "não existe")
}

func TestService_Resolve(t *testing.T) {
	svc := newTestService(t)

	got, err := svc.Resolve(context.Background(), RawUtterance{
		Text:   "reunião com João amanhã às 15h",
		UserID: "user-1",
	}, mondayRef(t))
	require.NoError(t, err)
	assert.Equal(t, "reunião com João", got.Title)
	assert.Equal(t, "2024-06-11T15:00:00-03:00", got.DateTime.ISO)
}

func TestFormatBrazilianDateTime_Invalid(t *testing.T) {
	_, err := FormatBrazilianDateTime("amanhã")
	assert.Error(t, err)
}

func TestMockEventService(t *testing.T) {
	m := NewMockEventService()
	ref := time.Date(2024, 6, 10, 22, 0, 0, 0, time.UTC)

	got, err := m.Resolve(context.Background(), RawUtterance{Text: "qualquer coisa", UserID: "u"}, ref)
	require.NoError(t, err)
	assert.Equal(t, "qualquer coisa", got.Title)
	assert.Equal(t, "2024-06-11T09:00:00Z", got.DateTime.ISO)
	assert.Len(t, m.Calls(), 1)

	m.Err = apperrors.NoDateRecognized("x")
	_, err = m.ResolveEventDateTime(context.Background(), "x", "u", "", ref)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeNoDateRecognized))
}
