package embedregistry

import (
	"context"
	"embed"
	"testing"

	"github.com/skosovsky/promptvault"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

//go:embed testdata/prompts
var promptsFS embed.FS

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newRegistry(t *testing.T) *Registry {
	t.Helper()
	reg, err := New(promptsFS, "testdata/prompts")
	require.NoError(t, err)
	return reg
}

func TestEmbedRegistry_New_BadRoot(t *testing.T) {
	t.Parallel()
	_, err := New(promptsFS, "testdata/absent")
	require.Error(t, err)
}

func TestEmbedRegistry_ListDomains(t *testing.T) {
	t.Parallel()
	reg := newRegistry(t)
	domains, err := reg.ListDomains(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"customer_ops", "energy_systems"}, domains)
}

func TestEmbedRegistry_ListUseCases(t *testing.T) {
	t.Parallel()
	reg := newRegistry(t)
	useCases, err := reg.ListUseCases(context.Background(), "energy_systems")
	require.NoError(t, err)
	assert.Equal(t, []string{"maintenance_log", "technical_doc"}, useCases)
}

func TestEmbedRegistry_ListUseCases_SkipsUnversioned(t *testing.T) {
	t.Parallel()
	reg := newRegistry(t)
	// customer_ops also holds notes.md, which has no version suffix.
	useCases, err := reg.ListUseCases(context.Background(), "customer_ops")
	require.NoError(t, err)
	assert.Equal(t, []string{"email_response"}, useCases)
}

func TestEmbedRegistry_ListUseCases_UnknownDomain(t *testing.T) {
	t.Parallel()
	reg := newRegistry(t)
	useCases, err := reg.ListUseCases(context.Background(), "nonexistent")
	require.NoError(t, err)
	assert.Empty(t, useCases)
}

func TestEmbedRegistry_ListVersions(t *testing.T) {
	t.Parallel()
	reg := newRegistry(t)
	infos, err := reg.ListVersions(context.Background(), "energy_systems", "technical_doc")
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, promptvault.Version{Major: 2, Minor: 1}, infos[0].Version)
	assert.Equal(t, promptvault.Version{Major: 1, Minor: 0}, infos[1].Version)
	assert.Equal(t, "testdata/prompts/energy_systems/technical_doc_v2.1.md", infos[0].Path)
	assert.Positive(t, infos[0].Size)
}

func TestEmbedRegistry_GetLatest(t *testing.T) {
	t.Parallel()
	reg := newRegistry(t)
	rec, err := reg.GetLatest(context.Background(), "energy_systems", "technical_doc")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "energy_systems", rec.Domain)
	assert.Equal(t, "technical_doc", rec.UseCase)
	assert.Equal(t, promptvault.Version{Major: 2, Minor: 1}, rec.Version)
	assert.Contains(t, rec.Body, "Safety notes for field crews")
	title, ok := rec.Metadata.GetString("Title")
	assert.True(t, ok)
	assert.Equal(t, "Technical Documentation Generator", title)
	tags, ok := rec.Metadata.GetList("Tags")
	assert.True(t, ok)
	assert.Equal(t, []string{"documentation", "field-ops"}, tags)
}

func TestEmbedRegistry_GetLatest_NotFound(t *testing.T) {
	t.Parallel()
	reg := newRegistry(t)
	_, err := reg.GetLatest(context.Background(), "energy_systems", "unknown")
	require.Error(t, err)
	assert.ErrorIs(t, err, promptvault.ErrNotFound)
}

func TestEmbedRegistry_GetVersion(t *testing.T) {
	t.Parallel()
	reg := newRegistry(t)
	rec, err := reg.GetVersion(context.Background(), "energy_systems", "technical_doc", promptvault.Version{Major: 1, Minor: 0})
	require.NoError(t, err)
	assert.Equal(t, promptvault.Version{Major: 1, Minor: 0}, rec.Version)
	assert.Contains(t, rec.Body, "Keep it under 300 words")
}

func TestEmbedRegistry_GetVersion_NotFound(t *testing.T) {
	t.Parallel()
	reg := newRegistry(t)
	_, err := reg.GetVersion(context.Background(), "energy_systems", "technical_doc", promptvault.Version{Major: 9, Minor: 9})
	assert.ErrorIs(t, err, promptvault.ErrNotFound)
}

func TestEmbedRegistry_CloneIsolation(t *testing.T) {
	t.Parallel()
	reg := newRegistry(t)
	ctx := context.Background()
	rec1, err := reg.GetLatest(ctx, "energy_systems", "technical_doc")
	require.NoError(t, err)
	// Mutate the returned copy: the registry's master must not be affected.
	rec1.Metadata["Title"] = promptvault.StringValue("Mutated")
	tags, ok := rec1.Metadata.GetList("Tags")
	require.True(t, ok)
	tags[0] = "mutated"
	rec2, err := reg.GetLatest(ctx, "energy_systems", "technical_doc")
	require.NoError(t, err)
	title, _ := rec2.Metadata.GetString("Title")
	assert.Equal(t, "Technical Documentation Generator", title)
	tags2, _ := rec2.Metadata.GetList("Tags")
	assert.Equal(t, "documentation", tags2[0])
}

func TestEmbedRegistry_ContextCanceled(t *testing.T) {
	t.Parallel()
	reg := newRegistry(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := reg.GetLatest(ctx, "energy_systems", "technical_doc")
	assert.ErrorIs(t, err, context.Canceled)
}
