package i18n_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/icsbenin/candidature/pkg/i18n"
)

func TestLocaleFormat_DateTime(t *testing.T) {
	t.Parallel()

	ts := time.Date(2024, time.March, 5, 14, 7, 9, 0, time.UTC)

	t.Run("default is en-US in UTC", func(t *testing.T) {
		t.Parallel()
		lf := i18n.NewLocaleFormat()

		require.Equal(t, "03/05/2024", lf.FormatDate(ts))
		require.Equal(t, "2:07:09 PM", lf.FormatTime(ts))
		require.Equal(t, "03/05/2024, 2:07:09 PM", lf.FormatDateTime(ts))
		require.Equal(t, time.UTC, lf.Location())
	})

	t.Run("fr-FR", func(t *testing.T) {
		t.Parallel()
		lf := i18n.FormatFrFR()

		require.Equal(t, "05/03/2024", lf.FormatDate(ts))
		require.Equal(t, "14:07:09", lf.FormatTime(ts))
		require.Equal(t, "05/03/2024 14:07:09", lf.FormatDateTime(ts))
	})

	t.Run("custom layouts", func(t *testing.T) {
		t.Parallel()
		lf := i18n.NewLocaleFormat(
			i18n.WithDateFormat("2006-01-02"),
			i18n.WithTimeFormat("15h04"),
			i18n.WithDateTimeFormat("2006-01-02 15h04"),
		)

		require.Equal(t, "2024-03-05", lf.FormatDate(ts))
		require.Equal(t, "14h07", lf.FormatTime(ts))
		require.Equal(t, "2024-03-05 14h07", lf.FormatDateTime(ts))
	})
}

func TestLocaleFormat_Location(t *testing.T) {
	t.Parallel()

	ts := time.Date(2024, time.March, 5, 23, 30, 0, 0, time.UTC)
	plusOne := time.FixedZone("WAT", 3600)

	t.Run("option", func(t *testing.T) {
		t.Parallel()
		lf := i18n.NewLocaleFormat(
			i18n.WithDateTimeFormat("02/01/2006 15:04:05"),
			i18n.WithLocation(plusOne),
		)
		require.Equal(t, "06/03/2024 00:30:00", lf.FormatDateTime(ts))
	})

	t.Run("In returns a copy", func(t *testing.T) {
		t.Parallel()
		base := i18n.FormatFrFR()
		shifted := base.In(plusOne)

		require.Equal(t, "05/03/2024 23:30:00", base.FormatDateTime(ts))
		require.Equal(t, "06/03/2024 00:30:00", shifted.FormatDateTime(ts))
	})

	t.Run("nil location ignored", func(t *testing.T) {
		t.Parallel()
		lf := i18n.NewLocaleFormat(i18n.WithLocation(nil)).In(nil)
		require.Equal(t, time.UTC, lf.Location())
	})
}

func TestForLanguage(t *testing.T) {
	t.Parallel()

	ts := time.Date(2024, time.March, 5, 14, 7, 9, 0, time.UTC)

	tests := map[string]string{
		"fr-FR":   "05/03/2024 14:07:09",
		"fr":      "05/03/2024 14:07:09",
		"en-US":   "03/05/2024, 2:07:09 PM",
		"en_GB":   "05/03/2024, 14:07:09",
		"de-DE":   "05.03.2024, 14:07:09",
		"unknown": "05/03/2024 14:07:09",
		"":        "05/03/2024 14:07:09",
	}
	for tag, want := range tests {
		require.Equal(t, want, i18n.ForLanguage(tag).FormatDateTime(ts), tag)
	}
}
