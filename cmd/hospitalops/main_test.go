package main

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"hospitalops/internal/config"
)

func TestMain(m *testing.M) {
	logger = zap.NewNop()
	os.Exit(m.Run())
}

func TestReadDirectory(t *testing.T) {
	dir, err := readDirectory(filepath.Join("testdata", "directory.yaml"), "")
	require.NoError(t, err)
	require.Len(t, dir.Hospitals, 3)
	assert.Equal(t, "Riverside General", dir.Hospitals[0].Name)
	assert.NotEmpty(t, dir.Hospitals[0].ID, "ids are derived for entries without one")

	_, err = readDirectory(filepath.Join("testdata", "directory.yaml"), "csv")
	assert.Error(t, err)

	_, err = readDirectory(filepath.Join("testdata", "missing.yaml"), "")
	assert.Error(t, err)
}

func TestRenderDirectory(t *testing.T) {
	dir, err := readDirectory(filepath.Join("testdata", "directory.yaml"), "")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, renderDirectory(&buf, dir, config.DefaultConfig(), 1400, 900))

	out := buf.String()
	assert.True(t, strings.HasPrefix(strings.TrimSpace(out), "<svg"), out)
	assert.Equal(t, 3, strings.Count(out, "<path"), "one connector per hospital")
	assert.Contains(t, out, "Hillcrest Medical")

	assert.Error(t, renderDirectory(io.Discard, dir, config.DefaultConfig(), 0, 900))
}

func TestApplyServeFlags(t *testing.T) {
	cfg := config.DefaultConfig()
	cmd := &cobra.Command{Use: "serve"}
	cmd.Flags().StringVar(&serveAddr, "addr", "", "")
	cmd.Flags().StringVar(&serveDB, "db", "", "")
	cmd.Flags().StringVar(&serveSeed, "seed", "", "")
	cmd.Flags().BoolVar(&serveWatch, "watch", false, "")
	require.NoError(t, cmd.Flags().Parse([]string{"--db", "/tmp/ops.db", "--watch"}))

	applyServeFlags(cmd, cfg)

	assert.Equal(t, config.DefaultAddr, cfg.Server.Addr, "unset flags keep config values")
	assert.Equal(t, "/tmp/ops.db", cfg.Database.Path)
	assert.True(t, cfg.Directory.Watch)
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	versionCmd.Run(versionCmd, nil)
	assert.Equal(t, "hospitalops dev\n", buf.String())
}

func TestServe(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Database.Path = ":memory:"
	cfg.Directory.SeedPath = filepath.Join("testdata", "directory.yaml")
	cfg.Server.ShutdownTimeout = config.Duration(5 * time.Second)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	base := "http://" + ln.Addr().String()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, cfg, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get(base + "/healthz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	resp, err := http.Get(base + "/")
	require.NoError(t, err)
	page, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(page), "Nearby hospitals")

	req, _ := http.NewRequest(http.MethodGet, base+"/api/inventory", nil)
	req.Header.Set("X-User-Id", "u1")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(base + "/metrics")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(body), "hospitalops_directory_seed_entries 3")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("serve did not stop")
	}
}
