package filter

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type charge struct {
	ID          string    `json:"id"`
	Amount      string    `json:"amount"`
	Status      string    `json:"status"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

func sampleCharges() []charge {
	now := time.Now().UTC()
	return []charge{
		{ID: "c1", Amount: "1000", Status: "pending", Description: "Coffee", CreatedAt: now},
		{ID: "c2", Amount: "250000", Status: "completed", Description: "Game pass", CreatedAt: now.AddDate(0, 0, -10)},
		{ID: "c3", Amount: "5000", Status: "expired", Description: "coffee refill", CreatedAt: now.AddDate(0, 0, -40)},
	}
}

func ids(items []charge) []string {
	out := make([]string, 0, len(items))
	for _, c := range items {
		out = append(out, c.ID)
	}
	return out
}

func TestApply(t *testing.T) {
	compiler := NewExprCompiler()

	tests := []struct {
		name       string
		expression string
		want       []string
	}{
		{name: "status equality", expression: `status == "completed"`, want: []string{"c2"}},
		{name: "amount as number", expression: `num(amount) >= 5000`, want: []string{"c2", "c3"}},
		{name: "amount in sats", expression: `sats(amount) > 100`, want: []string{"c2"}},
		{name: "case insensitive contains", expression: `lower(description) contains "coffee"`, want: []string{"c1", "c3"}},
		{name: "age in days", expression: `daysSince(createdAt) > 30`, want: []string{"c3"}},
		{name: "membership", expression: `status in ["pending", "expired"]`, want: []string{"c1", "c3"}},
		{name: "missing field is nil", expression: `internalId == nil`, want: []string{"c1", "c2", "c3"}},
		{name: "negation", expression: `not (lower(description) startsWith "game")`, want: []string{"c1", "c3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := compiler.Compile(tt.expression)
			require.NoError(t, err)

			got, err := Apply(f, sampleCharges())
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestApplyNilFilter(t *testing.T) {
	got, err := Apply[charge](nil, sampleCharges())
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestCompileErrors(t *testing.T) {
	compiler := NewExprCompiler()

	tests := []struct {
		name       string
		expression string
	}{
		{name: "empty", expression: "   "},
		{name: "syntax", expression: `status == `},
		{name: "not boolean", expression: `num(amount) + 1`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := compiler.Compile(tt.expression)
			var compErr *CompilationError
			require.True(t, errors.As(err, &compErr))
			assert.Contains(t, err.Error(), "compilation error")
		})
	}
}

func TestEvaluationError(t *testing.T) {
	f, err := NewExprCompiler().Compile(`amount > 5`)
	require.NoError(t, err)

	_, err = f.Evaluate(Record{"id": "c9", "amount": "1000"})
	var evalErr *EvaluationError
	require.True(t, errors.As(err, &evalErr))
	assert.Equal(t, "c9", evalErr.RecordID)
	assert.Contains(t, err.Error(), "c9")
}

func TestCompilerCache(t *testing.T) {
	compiler := NewExprCompiler(WithCache(2))

	first, err := compiler.Compile(`status == "a"`)
	require.NoError(t, err)
	again, err := compiler.Compile(`  status == "a"  `)
	require.NoError(t, err)
	assert.Same(t, first, again)
	assert.Equal(t, 1, compiler.Size())

	_, err = compiler.Compile(`status == "b"`)
	require.NoError(t, err)
	_, err = compiler.Compile(`status == "c"`)
	require.NoError(t, err)
	assert.Equal(t, 2, compiler.Size())

	compiler.Clear()
	assert.Zero(t, compiler.Size())
}

func TestCustomFunctions(t *testing.T) {
	compiler := NewExprCompiler(WithCustomFunctions(map[string]any{
		"isBig": func(v any) bool { return toFloat(v) > 100000 },
	}))

	f, err := compiler.Compile(`isBig(amount)`)
	require.NoError(t, err)

	got, err := Apply(f, sampleCharges())
	require.NoError(t, err)
	assert.Equal(t, []string{"c2"}, ids(got))
}

func TestToRecord(t *testing.T) {
	rec, err := ToRecord(charge{ID: "x", Amount: "1"})
	require.NoError(t, err)
	assert.Equal(t, "x", rec["id"])

	_, err = ToRecord([]string{"not", "an", "object"})
	assert.Error(t, err)

	in := Record{"id": "y"}
	out, err := ToRecord(in)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestManager(t *testing.T) {
	m := NewManager()

	require.NoError(t, m.RegisterFilters(map[string]string{
		"settled": `status == "completed"`,
		"old":     `daysSince(createdAt) > 30`,
	}))
	assert.Equal(t, []string{"old", "settled"}, m.ListFilters())

	err := m.RegisterFilters(map[string]string{"broken": `status ==`})
	assert.ErrorContains(t, err, "broken")
	assert.Len(t, m.ListFilters(), 2)

	preset, err := m.Resolve("settled")
	require.NoError(t, err)
	assert.Equal(t, `status == "completed"`, preset.Expression())

	adhoc, err := m.Resolve(`status == "pending"`)
	require.NoError(t, err)
	got, err := Apply(adhoc, sampleCharges())
	require.NoError(t, err)
	assert.Equal(t, []string{"c1"}, ids(got))

	none, err := m.Resolve("")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, 1500.0, toFloat("1500"))
	assert.Equal(t, 2.5, toFloat(2.5))
	assert.Zero(t, toFloat("abc"))
	assert.Zero(t, toFloat(nil))

	assert.True(t, parseTime("nope").IsZero())
	assert.Equal(t, 2023, parseTime("2023-05-01T10:00:00.123Z").Year())
}
