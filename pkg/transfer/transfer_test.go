package transfer_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/templatewing/pkg/templates"
	"github.com/dmitrymomot/templatewing/pkg/transfer"
)

func TestExport(t *testing.T) {
	t.Parallel()

	store := templates.NewMemoryStore(
		templates.Template{ID: "a", Name: "A", Body: "<p>a</p>"},
		templates.Template{ID: "b", Name: "B", Body: "<p>b</p>"},
	)
	now := time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)

	doc, err := transfer.Export(context.Background(), store, now)
	require.NoError(t, err)
	assert.Equal(t, transfer.FormatVersion, doc.Version)
	assert.Equal(t, now, doc.ExportedAt)
	require.Len(t, doc.Templates, 2)
	assert.Equal(t, "a", doc.Templates[0].ID)

	var buf bytes.Buffer
	require.NoError(t, transfer.Write(&buf, doc))

	var raw map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	assert.Equal(t, "1.3", raw["version"])
	assert.Contains(t, raw, "exportedAt")
	assert.Len(t, raw["templates"], 2)
}

func TestImport_RoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	src := templates.NewMemoryStore(
		templates.Template{
			ID:          "sig",
			Name:        "Signature",
			Body:        "<p>Best</p>",
			To:          []string{"a@example.com"},
			Attachments: []templates.Attachment{{ID: "att", Name: "a.txt", MimeType: "text/plain", Data: "aGk="}},
		},
		templates.Template{ID: "letter", Name: "Letter", Body: "<p>Hi</p>{{templateid:sig}}"},
	)
	require.NoError(t, src.TrackUsage(ctx, "sig", time.Now()))

	doc, err := transfer.Export(ctx, src, time.Now())
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, transfer.Write(&buf, doc))

	dst := templates.NewMemoryStore()
	report, err := transfer.Import(ctx, dst, &buf, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Imported)
	assert.Zero(t, report.Skipped)
	assert.Empty(t, report.Failed)

	list, err := dst.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	sig, letter := list[0], list[1]
	assert.Equal(t, "Signature", sig.Name)
	assert.NotEqual(t, "sig", sig.ID)
	assert.Zero(t, sig.UsageCount)
	assert.Nil(t, sig.LastUsedAt)
	require.Len(t, sig.Attachments, 1)
	assert.NotEqual(t, "att", sig.Attachments[0].ID)
	assert.Equal(t, "aGk=", sig.Attachments[0].Data)

	assert.Equal(t, "<p>Hi</p>{{templateid:"+sig.ID+"}}", letter.Body)
}

func TestImport_SkipsEntriesWithoutName(t *testing.T) {
	t.Parallel()

	in := `{"version":"1.3","templates":[
		{"name":"Ok","body":"x"},
		{"body":"no name"},
		{"name":42},
		"not an object",
		{"name":"   "}
	]}`

	store := templates.NewMemoryStore()
	report, err := transfer.Import(context.Background(), store, strings.NewReader(in), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Imported)
	assert.Equal(t, 3, report.Skipped)
	assert.Equal(t, []string{"   "}, report.Failed)
}

func TestImport_KeepsUnknownIDReferences(t *testing.T) {
	t.Parallel()

	in := `{"templates":[{"id":"x","name":"X","body":"{{templateid:elsewhere}}"}]}`
	store := templates.NewMemoryStore()
	_, err := transfer.Import(context.Background(), store, strings.NewReader(in), nil)
	require.NoError(t, err)

	list, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "{{templateid:elsewhere}}", list[0].Body)
}

func TestImport_InvalidDocument(t *testing.T) {
	t.Parallel()

	for name, in := range map[string]string{
		"not json":        "nope",
		"missing list":    `{"version":"1.3"}`,
		"list wrong type": `{"templates":{}}`,
		"top level array": `[]`,
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := transfer.Import(context.Background(), templates.NewMemoryStore(), strings.NewReader(in), nil)
			assert.ErrorIs(t, err, transfer.ErrInvalidDocument)
		})
	}
}
