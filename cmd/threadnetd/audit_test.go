package main

import (
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/threadnet-protocol/threadnet-go/pkg/log"
)

func writeAuditFixture(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "audit.log")
	fl, err := log.NewFileLogger(path)
	require.NoError(t, err)

	fl.Log(log.DatasetEvent(log.ActionAdded, "dataset-1", "otbr"))
	fl.Log(log.DiscoveryEvent(log.ActionDiscovered, "e60fc7c186212ce5", "HA agent"))
	fl.Log(log.DatasetEvent(log.ActionDeleted, "dataset-1", ""))
	require.NoError(t, fl.Close())

	return path
}

func TestViewAuditLog(t *testing.T) {
	path := writeAuditFixture(t)

	var out strings.Builder
	require.NoError(t, viewAuditLog(path, log.Filter{}, &out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "ADDED")
	assert.Contains(t, lines[0], "dataset=dataset-1")
	assert.Contains(t, lines[0], "source=otbr")
	assert.Contains(t, lines[1], "DISCOVERED")
	assert.Contains(t, lines[1], "router=e60fc7c186212ce5")
	assert.Contains(t, lines[2], "DELETED")
}

func TestViewAuditLogFiltered(t *testing.T) {
	path := writeAuditFixture(t)

	category := log.CategoryDiscovery
	var out strings.Builder
	require.NoError(t, viewAuditLog(path, log.Filter{Category: &category}, &out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "DISCOVERY")
	assert.Contains(t, lines[0], `service="HA agent"`)
}

func TestViewAuditLogMissingFile(t *testing.T) {
	var out strings.Builder
	err := viewAuditLog(filepath.Join(t.TempDir(), "absent.log"), log.Filter{}, &out)
	assert.Error(t, err)
}

func TestParseCategoryFlag(t *testing.T) {
	c, err := parseCategoryFlag("dataset")
	require.NoError(t, err)
	assert.Equal(t, log.CategoryDataset, c)

	c, err = parseCategoryFlag("Discovery")
	require.NoError(t, err)
	assert.Equal(t, log.CategoryDiscovery, c)

	_, err = parseCategoryFlag("bogus")
	assert.Error(t, err)
}

func TestParseActionFlag(t *testing.T) {
	a, err := parseActionFlag("added")
	require.NoError(t, err)
	assert.Equal(t, log.ActionAdded, a)

	a, err = parseActionFlag("resolve_failed")
	require.NoError(t, err)
	assert.Equal(t, log.ActionResolveFailed, a)

	_, err = parseActionFlag("bogus")
	assert.Error(t, err)
}

func TestNewAuditLogger(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	// No path: events mirror to the operational logger only.
	audit, closeFn, err := newAuditLogger("", logger)
	require.NoError(t, err)
	defer closeFn()
	_, ok := audit.(*log.SlogAdapter)
	assert.True(t, ok)

	// With a path the file log joins the pipeline.
	path := filepath.Join(t.TempDir(), "audit.log")
	audit, closeFn, err = newAuditLogger(path, logger)
	require.NoError(t, err)
	_, ok = audit.(log.MultiLogger)
	assert.True(t, ok)

	audit.Log(log.DatasetEvent(log.ActionAdded, "dataset-1", "test"))
	closeFn()

	r, err := log.NewReader(path)
	require.NoError(t, err)
	defer r.Close()
	event, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "dataset-1", event.DatasetID)
}
