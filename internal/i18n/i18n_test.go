package i18n

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestT_AppName(t *testing.T) {
	l := MustNew(English)
	assert.Equal(t, "GrainAir", l.T("appName"))

	require.NoError(t, l.SetLanguage(Hindi))
	assert.Equal(t, "ग्रेनएयर", l.T("appName"))
}

func TestT_MissingKeyFallsBackToKey(t *testing.T) {
	for _, lang := range Languages() {
		l := MustNew(lang)
		assert.Equal(t, "doesNotExist", l.T("doesNotExist"), string(lang))
		assert.Equal(t, "", l.T(""), string(lang))
	}
}

func TestSetLanguage_Unsupported(t *testing.T) {
	l := MustNew(Hindi)

	err := l.SetLanguage("fr")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedLanguage))
	assert.Equal(t, Hindi, l.Language(), "language should be unchanged")
}

func TestSetLanguage_NotRetroactive(t *testing.T) {
	l := MustNew(English)
	rendered := l.T("cancel")

	require.NoError(t, l.SetLanguage(Hindi))
	assert.Equal(t, "Cancel", rendered)
	assert.Equal(t, "रद्द करें", l.T("cancel"))
}

func TestIndependentLocalizers(t *testing.T) {
	a := MustNew(English)
	b := MustNew(English)

	require.NoError(t, b.SetLanguage(Hindi))
	assert.Equal(t, English, a.Language())
	assert.Equal(t, "Forecast", a.T("forecast"))
	assert.Equal(t, "पूर्वानुमान", b.T("forecast"))
}

func TestUninitializedPanics(t *testing.T) {
	var nilLocalizer *Localizer
	assert.Panics(t, func() { nilLocalizer.T("appName") })

	var zero Localizer
	assert.Panics(t, func() { zero.T("appName") })
	assert.Panics(t, func() { MustNew("xx") })
}

func TestTablesShareVocabulary(t *testing.T) {
	en, ok := Table(English)
	require.True(t, ok)
	hi, ok := Table(Hindi)
	require.True(t, ok)

	require.Len(t, hi, len(en))
	for key := range en {
		assert.Contains(t, hi, key)
	}
	assert.Equal(t, Keys()[0], "airQuality")
}

func TestTable_ReturnsCopy(t *testing.T) {
	en, _ := Table(English)
	en["appName"] = "changed"

	assert.Equal(t, "GrainAir", MustNew(English).T("appName"))
}

func TestParseLanguage(t *testing.T) {
	lang, err := ParseLanguage("hi")
	require.NoError(t, err)
	assert.Equal(t, Hindi, lang)

	_, err = ParseLanguage("de")
	assert.ErrorIs(t, err, ErrUnsupportedLanguage)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "English", DisplayName(English))
	assert.Equal(t, "हिंदी", DisplayName(Hindi))
}

func TestFunc(t *testing.T) {
	l := MustNew(English)
	tr := l.Func()
	assert.Equal(t, "Submit Report", tr("submit"))

	require.NoError(t, l.SetLanguage(Hindi))
	assert.Equal(t, "रिपोर्ट जमा करें", tr("submit"), "bound translator follows the active language")
}
