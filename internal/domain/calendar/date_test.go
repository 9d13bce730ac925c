package calendar_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ems-api/internal/domain/calendar"
)

func TestDateOf_UsaLaZonaDelInstante(t *testing.T) {
	bogota := time.FixedZone("COT", -5*3600)
	// 02:00 UTC del 11 de marzo sigue siendo 10 de marzo en Bogotá.
	instant := time.Date(2026, time.March, 11, 2, 0, 0, 0, time.UTC)

	assert.Equal(t, "2026-03-11", calendar.DateOf(instant).String())
	assert.Equal(t, "2026-03-10", calendar.DateOf(instant.In(bogota)).String())
}

func TestDate_MismoDiaDistintaHoraEsIgual(t *testing.T) {
	morning := time.Date(2026, time.March, 10, 8, 0, 0, 0, time.UTC)
	night := time.Date(2026, time.March, 10, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, calendar.DateOf(morning), calendar.DateOf(night))
}

func TestParse(t *testing.T) {
	d, err := calendar.Parse("2026-12-31")
	require.NoError(t, err)
	assert.Equal(t, calendar.Date{Year: 2026, Month: time.December, Day: 31}, d)

	_, err = calendar.Parse("31/12/2026")
	assert.Error(t, err)
}

func TestDate_JSON(t *testing.T) {
	in := struct {
		Date calendar.Date `json:"date"`
	}{Date: calendar.Date{Year: 2026, Month: time.January, Day: 5}}

	b, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2026-01-05"}`, string(b))

	var out struct {
		Date calendar.Date `json:"date"`
	}
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, in.Date, out.Date)

	assert.Error(t, json.Unmarshal([]byte(`{"date":"ayer"}`), &out))
}

func TestDate_Before(t *testing.T) {
	a := calendar.Date{Year: 2026, Month: time.January, Day: 31}
	b := calendar.Date{Year: 2026, Month: time.February, Day: 1}
	assert.True(t, a.Before(b))
	assert.False(t, b.Before(a))
	assert.False(t, a.Before(a))
	assert.True(t, calendar.Date{}.IsZero())
}
