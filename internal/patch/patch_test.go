package patch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Age       int       `json:"age"`
	Tags      []string  `json:"tags"`
	Nested    nested    `json:"nested"`
	CreatedAt time.Time `json:"createdAt"`
}

type nested struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

func TestApplyMergesTopLevelKeys(t *testing.T) {
	created := time.Date(2024, 8, 15, 0, 0, 0, 0, time.UTC)
	r := record{ID: "r1", Name: "Alex", Age: 28, Tags: []string{"a"}, Nested: nested{Min: 1, Max: 2}, CreatedAt: created}

	applied, err := Apply(&r, []byte(`{"age": 30, "tags": ["x","y"], "nested": {"max": 9}, "id": "evil", "createdAt": "2000-01-01T00:00:00Z"}`), "id", "createdAt")
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"age", "tags", "nested"}, applied)
	assert.Equal(t, "r1", r.ID)
	assert.Equal(t, created, r.CreatedAt)
	assert.Equal(t, "Alex", r.Name)
	assert.Equal(t, 30, r.Age)
	assert.Equal(t, []string{"x", "y"}, r.Tags)
	// whole-value replacement, like an object spread
	assert.Equal(t, nested{Max: 9}, r.Nested)
}

func TestApplyRejectsBadBodies(t *testing.T) {
	r := record{Name: "Alex"}

	_, err := Apply(&r, []byte(`{"age":`))
	assert.ErrorIs(t, err, ErrInvalidPatch)

	_, err = Apply(&r, []byte(`[1,2]`))
	assert.ErrorIs(t, err, ErrInvalidPatch)

	_, err = Apply(&r, []byte(`{"age":"thirty"}`))
	assert.ErrorIs(t, err, ErrInvalidPatch)
}

func TestApplyUnknownKeysAreHarmless(t *testing.T) {
	r := record{Name: "Alex"}
	_, err := Apply(&r, []byte(`{"favourite.colour":"blue"}`))
	require.NoError(t, err)
	assert.Equal(t, "Alex", r.Name)
}

func TestApplyEmptyKeyIsInvalid(t *testing.T) {
	r := record{Name: "Alex"}

	_, err := Apply(&r, []byte(`{"":1}`))
	assert.ErrorIs(t, err, ErrInvalidPatch)
	assert.Equal(t, "Alex", r.Name)
}
