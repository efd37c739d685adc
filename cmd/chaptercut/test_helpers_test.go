package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"chaptercut/internal/config"
	"chaptercut/internal/testsupport"
)

const stubFFmpeg = `#!/bin/sh
if [ "$1" = "-version" ]; then
  echo "ffmpeg version 7.1-stub"
  exit 0
fi
for last; do :; done
printf 'media' > "$last"
`

const stubFFprobe = `#!/bin/sh
if [ "$1" = "-version" ]; then
  echo "ffprobe version 7.1-stub"
  exit 0
fi
echo '{"streams":[{"index":0,"codec_type":"audio","codec_name":"mp3"}],"format":{"duration":"3600.5","tags":{"artist":"Inon Zur","date":"2010"}}}'
`

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
	media      string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t,
		testsupport.WithToolScripts(stubFFmpeg, stubFFprobe),
		testsupport.WithoutTagVerification(),
	)
	base := testsupport.BaseDir(cfg)
	t.Setenv("HOME", filepath.Join(base, "home"))
	t.Setenv("YT_API_KEY", "")
	t.Setenv("YOUTUBE_API_KEY", "")

	configPath := filepath.Join(base, "chaptercut.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{
		cfg:        cfg,
		configPath: configPath,
		baseDir:    base,
		media:      testsupport.WriteText(t, filepath.Join(base, "downloads", "Fallout Mix.mp3"), "media"),
	}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	encoded, err := cfg.Encode()
	if err != nil {
		t.Fatalf("encode config: %v", err)
	}
	testsupport.WriteText(t, path, encoded)
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(""))
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
