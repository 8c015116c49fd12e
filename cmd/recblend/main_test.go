package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/recblend/config"
	"github.com/rushteam/recblend/core"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Snapshot = config.SnapshotConfig{
		PersonalPath: writeFile(t, dir, "personal.csv", "user_id,item_id,rank\n1,10,1\n1,20,2\n"),
		PopularPath:  writeFile(t, dir, "popular.csv", "item_id,rank\n100,1\n200,2\n"),
		SimilarPath:  writeFile(t, dir, "similar.csv", "item_id_1,item_id_2,score\n10,11,0.9\n10,12,0.5\n"),
	}
	return cfg
}

func post(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, target, nil))
	return rec
}

func TestRunRecommendations(t *testing.T) {
	h, cleanup, err := runRecommendations(context.Background(), testConfig(t))
	require.NoError(t, err)
	defer cleanup()

	rec := post(t, h, "/recommendations_offline?user_id=1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"recs":[10,20]}`, rec.Body.String())

	rec = post(t, h, "/recommendations?user_id=2&k=1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"recs":[100]}`, rec.Body.String())
}

func TestRunRecommendations_CorruptSnapshot(t *testing.T) {
	cfg := testConfig(t)
	cfg.Snapshot.PopularPath = writeFile(t, t.TempDir(), "popular.csv", "item,rank\n1,1\n")

	_, _, err := runRecommendations(context.Background(), cfg)
	require.Error(t, err)
	assert.True(t, core.IsCorruptSnapshot(err))
}

func TestRunFeatures(t *testing.T) {
	h, cleanup, err := runFeatures(context.Background(), testConfig(t))
	require.NoError(t, err)
	defer cleanup()

	rec := post(t, h, "/similar_items?item_id=10&k=1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"item_id_2":[11],"score":[0.9]}`, rec.Body.String())
}

func TestRunEvents(t *testing.T) {
	h, cleanup, err := runEvents(context.Background(), config.Default())
	require.NoError(t, err)
	defer cleanup()

	require.Equal(t, http.StatusOK, post(t, h, "/put?user_id=1&item_id=5").Code)
	rec := post(t, h, "/get?user_id=1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"events":[5]}`, rec.Body.String())
}

func TestConfigCmd(t *testing.T) {
	t.Setenv("RECBLEND_ONLINE__EVENT_COUNT", "9")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"config"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "event_count: 9")
}

func TestServeCmd_InvalidConfig(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"serve"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "snapshot.personal_path")
}
