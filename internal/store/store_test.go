package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"certmatch-service/internal/resolve/model"
)

func TestStoreCreateGet(t *testing.T) {
	st := New(time.Hour)
	b := st.Create()
	require.NotEmpty(t, b.ID)
	require.NotNil(t, b.Table)

	got, ok := st.Get(b.ID)
	require.True(t, ok)
	assert.Same(t, b, got)

	_, ok = st.Get("missing")
	assert.False(t, ok)
}

func TestBatchAddCandidatesUnique(t *testing.T) {
	st := New(time.Hour)
	b := st.Create()

	dups := b.AddCandidates([]model.CandidateDocument{
		{Filename: "a.pdf", Content: []byte("a")},
		{Filename: "b.pdf", Content: []byte("b")},
	})
	assert.Empty(t, dups)

	// повтор не затирает уже загруженное содержимое
	dups = b.AddCandidates([]model.CandidateDocument{
		{Filename: "a.pdf", Content: []byte("other")},
		{Filename: "c.pdf", Content: []byte("c")},
	})
	assert.Equal(t, []string{"a.pdf"}, dups)

	doc, ok := b.Candidate("a.pdf")
	require.True(t, ok)
	assert.Equal(t, []byte("a"), doc.Content)

	_, candidates, _ := b.Inputs()
	assert.Len(t, candidates, 3)
}

func TestBatchRecipientLookup(t *testing.T) {
	st := New(time.Hour)
	b := st.Create()
	b.SetRecipients([]model.Recipient{
		{Index: 0, Fields: map[string]string{"Name": "John"}},
		{Index: 1, Fields: map[string]string{"Name": "Jane"}, Skipped: true},
	}, "Name")

	rec, ok := b.Recipient(1)
	require.True(t, ok)
	assert.True(t, rec.Skipped)

	_, ok = b.Recipient(7)
	assert.False(t, ok)

	recipients, _, nameField := b.Inputs()
	assert.Len(t, recipients, 2)
	assert.Equal(t, "Name", nameField)
}
