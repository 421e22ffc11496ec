package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/cvterm/pkg/config"
	"github.com/aretw0/cvterm/pkg/content"
)

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestLoadSettings(t *testing.T) {
	t.Run("Flags override file", func(t *testing.T) {
		cfg := writeFile(t, "settings.yaml", "prompt_region: ap-south-1\nlog_level: warn\n")

		s, err := loadSettings(Options{
			ConfigPath:  cfg,
			ContentPath: "resume.yaml",
			LogLevel:    "debug",
			RedisAddr:   "localhost:6379",
			SkipBoot:    true,
		})
		require.NoError(t, err)
		assert.Equal(t, "ap-south-1", s.PromptRegion)
		assert.Equal(t, "resume.yaml", s.Content)
		assert.Equal(t, "debug", s.LogLevel)
		assert.Equal(t, "localhost:6379", s.RedisAddr)
		assert.True(t, s.SkipBoot)
	})

	t.Run("Env file feeds CVTERM variables", func(t *testing.T) {
		t.Setenv("CVTERM_PROMPT_BRANCH", "")
		require.NoError(t, os.Unsetenv("CVTERM_PROMPT_BRANCH"))
		env := writeFile(t, ".env", "CVTERM_PROMPT_BRANCH=develop\n")

		s, err := loadSettings(Options{EnvFile: env})
		require.NoError(t, err)
		assert.Equal(t, "develop", s.PromptBranch)
	})

	t.Run("Missing env file is ignored", func(t *testing.T) {
		s, err := loadSettings(Options{EnvFile: filepath.Join(t.TempDir(), ".env")})
		require.NoError(t, err)
		assert.Equal(t, config.Defaults().ExitDelay, s.ExitDelay)
	})

	t.Run("Invalid settings", func(t *testing.T) {
		cfg := writeFile(t, "settings.yaml", "typing_min: 200ms\ntyping_max: 100ms\n")
		_, err := loadSettings(Options{ConfigPath: cfg})
		assert.ErrorIs(t, err, config.ErrInvalidSettings)
	})
}

func TestCreateLogger(t *testing.T) {
	t.Run("Writes JSON to the log file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cvterm.log")
		logger, closer, err := createLogger(Options{LogFile: path}, "debug", false)
		require.NoError(t, err)

		logger.Debug("hello", "command", "skills")
		require.NoError(t, closer.Close())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"msg":"hello"`)
		assert.Contains(t, string(data), `"command":"skills"`)
	})

	t.Run("Debug flag lowers the level", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cvterm.log")
		logger, closer, err := createLogger(Options{LogFile: path, Debug: true}, "error", false)
		require.NoError(t, err)
		defer closer.Close()
		assert.True(t, logger.Enabled(context.Background(), -4))
	})

	t.Run("Invalid level", func(t *testing.T) {
		_, _, err := createLogger(Options{}, "loud", true)
		assert.Error(t, err)
	})
}

func TestIsInterrupted(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"canceled", context.Canceled, true},
		{"wrapped canceled", fmt.Errorf("terminal view: %w", context.Canceled), true},
		{"program killed", fmt.Errorf("terminal view: %w", tea.ErrProgramKilled), true},
		{"ctrl+c", tea.ErrInterrupted, true},
		{"eof", io.EOF, true},
		{"other", errors.New("boom"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isInterrupted(tt.err))
		})
	}

	assert.NoError(t, handleExecutionError(context.Canceled))
	assert.EqualError(t, handleExecutionError(errors.New("boom")), "boom")
}

func TestLogCompletion(t *testing.T) {
	var buf bytes.Buffer
	logCompletion(&buf, context.Canceled, os.Interrupt)
	assert.Equal(t, "[CTRL+C]\n>>> Session interrupted.\n", buf.String())

	buf.Reset()
	logCompletion(&buf, context.Canceled, syscall.SIGTERM)
	assert.Contains(t, buf.String(), "Session terminated")

	buf.Reset()
	logCompletion(&buf, errors.New("boom"), nil)
	assert.Empty(t, buf.String())
}

func TestListCommands(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ListCommands(&buf, Options{}))

	out := buf.String()
	for _, name := range []string{"help", "whoami", "experience", "skills", "education", "contact", "projects", "clear", "exit"} {
		assert.Contains(t, out, name)
	}
}

func TestExec(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Exec(&buf, Options{}, "Skills"))
		assert.Contains(t, buf.String(), "❯ Skills\n")
	})

	t.Run("Not found", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Exec(&buf, Options{}, "sudo rm"))
		assert.Contains(t, buf.String(), "Command 'sudo rm' not found.")
		assert.Contains(t, buf.String(), "Type help to see available commands.")
	})

	t.Run("Bad content file", func(t *testing.T) {
		err := Exec(io.Discard, Options{ContentPath: filepath.Join(t.TempDir(), "missing.yaml")}, "help")
		assert.Error(t, err)
	})
}

func TestExportRaw(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, Options{}, true))
	assert.Contains(t, buf.String(), "# "+content.Default().Name)
}

func TestValidate(t *testing.T) {
	t.Run("Default resume", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Validate(&buf, filepath.Join("..", "..", "pkg", "content", "default.yaml")))
		assert.Contains(t, buf.String(), "is valid!")
	})

	t.Run("Broken resume", func(t *testing.T) {
		path := writeFile(t, "resume.yaml", "name: [unterminated\n")
		assert.Error(t, Validate(io.Discard, path))
	})
}

func TestStats(t *testing.T) {
	t.Run("In-memory counters start empty", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Stats(&buf, Options{}))
		assert.Contains(t, buf.String(), "No usage recorded yet.")
	})

	t.Run("Redis counters are shared", func(t *testing.T) {
		mr := miniredis.RunT(t)
		opts := Options{RedisAddr: mr.Addr()}

		require.NoError(t, Exec(io.Discard, opts, "skills"))
		require.NoError(t, Exec(io.Discard, opts, "skills"))
		require.NoError(t, Exec(io.Discard, opts, "whoami"))

		var buf bytes.Buffer
		require.NoError(t, Stats(&buf, opts))
		lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
		require.Len(t, lines, 2)
		assert.Contains(t, string(lines[0]), "skills")
		assert.Contains(t, string(lines[0]), "2")
		assert.Contains(t, string(lines[1]), "whoami")
	})

	t.Run("Usage file persists across runs", func(t *testing.T) {
		opts := Options{UsageFile: filepath.Join(t.TempDir(), "usage.json")}

		require.NoError(t, Exec(io.Discard, opts, "contact"))
		require.NoError(t, Exec(io.Discard, opts, "what"))

		var buf bytes.Buffer
		require.NoError(t, Stats(&buf, opts))
		assert.Contains(t, buf.String(), "contact")
		assert.Contains(t, buf.String(), "_not_found")
		assert.NotContains(t, buf.String(), "what")
	})

	t.Run("Unreachable Redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()

		start := time.Now()
		err := Stats(io.Discard, Options{RedisAddr: addr})
		assert.Error(t, err)
		assert.Less(t, time.Since(start), redisPingTimeout+time.Second)
	})
}

func TestGraph(t *testing.T) {
	mr := miniredis.RunT(t)
	opts := Options{RedisAddr: mr.Addr()}
	require.NoError(t, Exec(io.Discard, opts, "skills"))

	var buf bytes.Buffer
	require.NoError(t, Graph(&buf, opts, true))
	out := buf.String()
	assert.Contains(t, out, "graph TD")
	assert.Contains(t, out, "help --> whoami")
	assert.Contains(t, out, "class skills current;")
}

func TestSSEBaseURL(t *testing.T) {
	assert.Equal(t, "http://localhost:8081", sseBaseURL(":8081", ""))
	assert.Equal(t, "http://0.0.0.0:8081", sseBaseURL("0.0.0.0:8081", ""))
	assert.Equal(t, "https://cv.example.com", sseBaseURL(":8081", "https://cv.example.com"))
}
