package deck

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	serrors "github.com/focory-beep/sermon-slide-generator/core/errors"
)

const samplePlan = `title: 주일 예배
date: 2026년 10월 18일
order:
  - title: 찬양
  - title: 성경 봉독
    detail: 요한복음 3장
scriptures:
  - reference: 요 3:16-17
    translation: 개역개정
hymns:
  - id: 1
`

func TestParsePlan(t *testing.T) {
	p, err := ParsePlan(strings.NewReader(samplePlan))
	require.NoError(t, err)
	assert.Equal(t, "주일 예배", p.Title)
	require.Len(t, p.Order, 2)
	assert.Equal(t, "요한복음 3장", p.Order[1].Detail)
	require.Len(t, p.Scriptures, 1)
	assert.Equal(t, "요 3:16-17", p.Scriptures[0].Reference)
	assert.Equal(t, []HymnItem{{ID: 1}}, p.Hymns)
}

func TestParsePlanJSON(t *testing.T) {
	p, err := ParsePlan(strings.NewReader(`{"title": "수요 예배", "hymns": [{"id": 2}]}`))
	require.NoError(t, err)
	assert.Equal(t, "수요 예배", p.Title)
	assert.Equal(t, 2, p.Hymns[0].ID)
}

func TestParsePlanInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unknown field", "title: x\nsongs:\n  - id: 1\n"},
		{"bad yaml", "title: [unterminated\n"},
		{"negative max chars", "max_chars_per_slide: -1\n"},
		{"too many hymns", "hymns:\n" + strings.Repeat("  - id: 1\n", 101)},
		{"control character", "scriptures:\n  - reference: \"요 3:16\\u0007\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePlan(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, serrors.ErrInvalidInput)
		})
	}
}

func TestPlanValidateFieldNames(t *testing.T) {
	p := &Plan{Scriptures: []ScriptureItem{{Reference: "요 3:16"}, {Reference: "요 3:16\x07"}}}
	err := p.Validate()
	require.Error(t, err)

	var verr *serrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "scriptures[1].reference", verr.Field)

	p = &Plan{Hymns: make([]HymnItem, 101)}
	require.ErrorAs(t, p.Validate(), &verr)
	assert.Equal(t, "hymns", verr.Field)
	assert.Equal(t, "101", verr.Value)
	assert.Contains(t, verr.Message, "at most 100")

	p = &Plan{MaxChars: -5}
	require.ErrorAs(t, p.Validate(), &verr)
	assert.Equal(t, "max_chars_per_slide", verr.Field)
}

func TestParsePlanEmpty(t *testing.T) {
	p, err := ParsePlan(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, p.Scriptures)
}

func TestLoadPlan(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(samplePlan), 0o644))

	p, err := LoadPlan(path)
	require.NoError(t, err)
	assert.Len(t, p.Scriptures, 1)

	_, err = LoadPlan(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, serrors.ErrNotFound)
}

func TestPlanDefaults(t *testing.T) {
	now := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	p := (&Plan{}).withDefaults(now)
	assert.Equal(t, DefaultTitle, p.Title)
	assert.Equal(t, "2026년 10월 18일", p.Date)

	kept := (&Plan{Title: "성탄 예배", Date: "12월 25일"}).withDefaults(now)
	assert.Equal(t, "성탄 예배", kept.Title)
	assert.Equal(t, "12월 25일", kept.Date)
}
