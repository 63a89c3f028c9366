package util

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fadilmartias/cv-matcher/internal/model"
)

const wellFormedReply = `{"score":85,"summary":"s","strengths":"a","gaps":"b","suggestions":"c"}`

func TestStripCodeFence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: wellFormedReply, want: wellFormedReply},
		{name: "plain_with_whitespace", input: "\n  " + wellFormedReply + "  \n", want: wellFormedReply},
		{name: "json_tag", input: "```json\n" + wellFormedReply + "\n```", want: wellFormedReply},
		{name: "uppercase_tag", input: "```JSON\n" + wellFormedReply + "\n```", want: wellFormedReply},
		{name: "other_language_tag", input: "```javascript\n" + wellFormedReply + "\n```", want: wellFormedReply},
		{name: "no_tag", input: "```\n" + wellFormedReply + "\n```", want: wellFormedReply},
		{name: "no_newlines", input: "```json" + wellFormedReply + "```", want: wellFormedReply},
		{name: "padding_inside_fences", input: "```json  \n\n   " + wellFormedReply + "   \n\n```", want: wellFormedReply},
		{name: "crlf", input: "```json\r\n" + wellFormedReply + "\r\n```", want: wellFormedReply},
		{name: "outer_whitespace", input: "  \n```json\n" + wellFormedReply + "\n```\n  ", want: wellFormedReply},
		{name: "stray_leading_ticks", input: "``" + wellFormedReply, want: wellFormedReply},
		{name: "stray_trailing_tick", input: wellFormedReply + "`", want: wellFormedReply},
		{
			name:  "inline_backticks_kept",
			input: "```json\n{\"summary\":\"uses `go test` daily\"}\n```",
			want:  "{\"summary\":\"uses `go test` daily\"}",
		},
		{name: "unfenced_prose_untouched", input: "not json at all", want: "not json at all"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, StripCodeFence(tt.input))
		})
	}
}

func TestStripCodeFence_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		wellFormedReply,
		"```json\n" + wellFormedReply + "\n```",
		"```\n" + wellFormedReply + "\n```",
		"``" + wellFormedReply + "`",
	}
	for _, in := range inputs {
		once := StripCodeFence(in)
		assert.Equal(t, once, StripCodeFence(once), "input %q", in)
	}
}

func TestParseEvaluation_RoundTrip(t *testing.T) {
	t.Parallel()

	want := &model.EvaluationResult{Score: 85, Summary: "s", Strengths: "a", Gaps: "b", Suggestions: "c"}

	for _, in := range []string{
		wellFormedReply,
		"```json\n" + wellFormedReply + "\n```",
		"```\n" + wellFormedReply + "\n```",
	} {
		got, err := ParseEvaluation(in)
		require.NoError(t, err, "input %q", in)
		assert.Equal(t, want, got)
	}
}

func TestParseEvaluation_SecondPassMatchesFirst(t *testing.T) {
	t.Parallel()

	first, err := ParseEvaluation(wellFormedReply)
	require.NoError(t, err)
	second, err := ParseEvaluation(StripCodeFence(wellFormedReply))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestParseEvaluation_KeepsValuesVerbatim(t *testing.T) {
	t.Parallel()

	got, err := ParseEvaluation(`{"score":142.5,"summary":"  padded  ","strengths":"","gaps":"- a\n- b","suggestions":"x"}`)
	require.NoError(t, err)
	assert.Equal(t, 142.5, got.Score)
	assert.Equal(t, "  padded  ", got.Summary)
	assert.Equal(t, "", got.Strengths)
	assert.Equal(t, "- a\n- b", got.Gaps)
}

func TestParseEvaluation_Malformed(t *testing.T) {
	t.Parallel()

	for _, in := range []string{
		"",
		"I could not evaluate this CV.",
		`{"score":85,"summary":"s"`,
		"```json\n{score: 85}\n```",
		"```json\n" + wellFormedReply,
	} {
		_, err := ParseEvaluation(in)
		require.Error(t, err, "input %q", in)
		assert.ErrorIs(t, err, ErrMalformedJSON)
		assert.NotErrorIs(t, err, ErrIncompleteAnalysis)
	}
}

func TestParseEvaluation_Incomplete(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		fields []string
	}{
		{name: "missing_score", input: `{"summary":"s","strengths":"a","gaps":"b","suggestions":"c"}`, fields: []string{"score"}},
		{name: "missing_summary", input: `{"score":1,"strengths":"a","gaps":"b","suggestions":"c"}`, fields: []string{"summary"}},
		{name: "missing_strengths", input: `{"score":1,"summary":"s","gaps":"b","suggestions":"c"}`, fields: []string{"strengths"}},
		{name: "missing_gaps", input: `{"score":1,"summary":"s","strengths":"a","suggestions":"c"}`, fields: []string{"gaps"}},
		{name: "missing_suggestions", input: `{"score":1,"summary":"s","strengths":"a","gaps":"b"}`, fields: []string{"suggestions"}},
		{name: "score_as_string", input: `{"score":"85","summary":"s","strengths":"a","gaps":"b","suggestions":"c"}`, fields: []string{"score"}},
		{name: "null_summary", input: `{"score":85,"summary":null,"strengths":"a","gaps":"b","suggestions":"c"}`, fields: []string{"summary"}},
		{name: "array_gaps", input: `{"score":85,"summary":"s","strengths":"a","gaps":["b"],"suggestions":"c"}`, fields: []string{"gaps"}},
		{name: "empty_object", input: `{}`, fields: []string{"score", "summary", "strengths", "gaps", "suggestions"}},
		{name: "json_null", input: `null`, fields: []string{"$"}},
		{name: "json_array", input: `[` + wellFormedReply + `]`, fields: []string{"$"}},
		{name: "json_number", input: `85`, fields: []string{"$"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseEvaluation(tt.input)
			require.Error(t, err)
			assert.Nil(t, got)
			assert.ErrorIs(t, err, ErrIncompleteAnalysis)
			assert.NotErrorIs(t, err, ErrMalformedJSON)

			var shapeErr *ShapeError
			require.True(t, errors.As(err, &shapeErr))
			fields := make([]string, 0, len(shapeErr.Violations))
			for _, v := range shapeErr.Violations {
				fields = append(fields, v.Field)
			}
			assert.Equal(t, tt.fields, fields)
		})
	}
}
