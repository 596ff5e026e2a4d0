package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"minimal", `{"version":1,"topics":[]}`, nil},
		{"full", `{"version":1,"topics":[{"id":"a","name":"A","cards":[{"id":"c","front":"f","back":"b"}]}],"progress":{"a":{"sessions":[{"date":"2024-01-01","scorePct":80,"confidence":4}]}}}`, nil},
		{"garbage", `{not json`, ErrInvalidJSON},
		{"empty", ``, ErrInvalidJSON},
		{"null", `null`, ErrInvalidFormat},
		{"array", `[1,2]`, ErrInvalidFormat},
		{"wrong version", `{"version":2,"topics":[]}`, ErrInvalidFormat},
		{"missing version", `{"topics":[]}`, ErrInvalidFormat},
		{"topics not array", `{"version":1,"topics":{}}`, ErrInvalidFormat},
		{"topic without id", `{"version":1,"topics":[{"name":"x"}]}`, ErrInvalidFormat},
		{"bad session types", `{"version":1,"topics":[],"progress":{"a":{"sessions":[{"date":5}]}}}`, ErrInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, err := Parse([]byte(tt.input))
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, st)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, Version, st.Version)
			assert.NotNil(t, st.Progress)
		})
	}
}

func TestParseDefaultsProgress(t *testing.T) {
	for _, input := range []string{
		`{"version":1,"topics":[]}`,
		`{"version":1,"topics":[],"progress":null}`,
		`{"version":1,"topics":[],"progress":"nope"}`,
		`{"version":1,"topics":[],"progress":[1]}`,
	} {
		st, err := Parse([]byte(input))
		require.NoError(t, err, input)
		assert.Empty(t, st.Progress, input)
		assert.NotNil(t, st.Progress, input)
	}
}

func TestParseNormalizesCards(t *testing.T) {
	st, err := Parse([]byte(`{"version":1,"topics":[{"id":"a","name":"A"}]}`))
	require.NoError(t, err)
	require.Len(t, st.Topics, 1)
	assert.NotNil(t, st.Topics[0].Cards)
}

func TestEncodeParseRoundTrip(t *testing.T) {
	s := Default()
	topic, err := s.AddTopic("Chemistry", "")
	require.NoError(t, err)
	_, err = s.AddCard(topic.ID, "H2O", "water")
	require.NoError(t, err)
	s.RecordSession(topic.ID, SessionRecord{Date: "2024-03-01", ScorePct: 70, Confidence: 2, Correct: 7, Total: 10, DurationSec: 65})

	for _, enc := range []func(*AppState) ([]byte, error){Encode, EncodeIndent} {
		b, err := enc(s)
		require.NoError(t, err)
		got, err := Parse(b)
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
}

func TestCheckVersion(t *testing.T) {
	assert.NoError(t, CheckVersion([]byte(`{"version":1}`)))
	assert.ErrorIs(t, CheckVersion([]byte(`{"version":2}`)), ErrInvalidFormat)
	assert.ErrorIs(t, CheckVersion([]byte(`{"version":"1"}`)), ErrInvalidFormat)
	assert.ErrorIs(t, CheckVersion([]byte(`null`)), ErrInvalidFormat)
	assert.ErrorIs(t, CheckVersion([]byte(`{`)), ErrInvalidJSON)
}
