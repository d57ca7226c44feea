package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestParseTimestamp_Layouts(t *testing.T) {
	want := time.Date(2025, 1, 15, 12, 0, 0, 123456000, time.UTC)
	for _, s := range []string{
		"2025-01-15T12:00:00.123456Z",
		"2025-01-15T14:00:00.123456+02:00",
		"2025-01-15T12:00:00.123456",
		"2025-01-15 12:00:00.123456",
	} {
		got, err := ParseTimestamp(s)
		require.NoError(t, err, s)
		assert.True(t, got.Equal(want), s)
		assert.Equal(t, time.UTC, got.Location())
	}

	_, err := ParseTimestamp("15/01/2025")
	assert.Error(t, err)
}

func TestTimestamp_NullAndEmpty(t *testing.T) {
	var ts Timestamp
	require.NoError(t, json.Unmarshal([]byte(`null`), &ts))
	assert.True(t, ts.IsZero())
	require.NoError(t, json.Unmarshal([]byte(`""`), &ts))
	assert.True(t, ts.IsZero())

	data, err := json.Marshal(Timestamp{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))

	var nilTS *Timestamp
	assert.True(t, nilTS.Value().IsZero())
	assert.Nil(t, NewTimestampPtr(time.Time{}))
}

func TestTimestamp_RoundTripPreservesInstant(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		sec := rapid.Int64Range(0, 4102444800).Draw(t, "sec")
		nsec := rapid.Int64Range(0, 999999999).Draw(t, "nsec")
		offset := rapid.IntRange(-12, 14).Draw(t, "offset")
		in := time.Unix(sec, nsec).In(time.FixedZone("z", offset*3600))

		data, err := json.Marshal(NewTimestamp(in))
		if err != nil {
			t.Fatal(err)
		}
		var out Timestamp
		if err := json.Unmarshal(data, &out); err != nil {
			t.Fatal(err)
		}
		if !out.Equal(in) {
			t.Fatalf("round trip changed instant: %v -> %v", in, out.Time)
		}
	})
}

func TestNormalize_UpdatedAtNeverBeforeCreatedAt(t *testing.T) {
	created := NewTimestamp(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	earlier := NewTimestampPtr(created.Add(-time.Hour))
	doc := &ProjectDocument{ID: "0190f3c1-7a2b-7c3d-8e4f-123456789abc", CreatedAt: created, UpdatedAt: earlier}

	require.NoError(t, doc.Normalize())
	assert.True(t, doc.UpdatedAt.Equal(created.Time))
	require.NotNil(t, doc.IsActive)
	assert.True(t, *doc.IsActive)
}

func TestTouch_NeverMovesBackwards(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		doc := &TeamMemberDocument{
			ID:        "0190f3c1-7a2b-7c3d-8e4f-123456789abc",
			CreatedAt: NewTimestamp(base),
		}
		if err := doc.Normalize(); err != nil {
			t.Fatal(err)
		}

		prev := doc.UpdatedAt.Time
		steps := rapid.SliceOfN(rapid.Int64Range(-3600, 3600), 1, 20).Draw(t, "steps")
		for _, s := range steps {
			doc.Touch(base.Add(time.Duration(s) * time.Second))
			if doc.UpdatedAt.Before(prev) {
				t.Fatalf("updated_at moved backwards: %v -> %v", prev, doc.UpdatedAt.Time)
			}
			if doc.UpdatedAt.Before(doc.CreatedAt.Time) {
				t.Fatalf("updated_at before created_at")
			}
			prev = doc.UpdatedAt.Time
		}
	})
}
