package cvterm_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/cvterm"
	"github.com/aretw0/cvterm/pkg/config"
	"github.com/aretw0/cvterm/pkg/domain"
	"github.com/aretw0/cvterm/pkg/typing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var instant = typing.SleeperFunc(func(ctx context.Context, _ time.Duration) error { return ctx.Err() })

func fixedClock() time.Time {
	return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
}

func TestEngine_Boot(t *testing.T) {
	var commands []string
	hooks := domain.LifecycleHooks{
		OnCommand: func(_ context.Context, e *domain.CommandEvent) {
			if e.Typed {
				commands = append(commands, e.Command)
			}
		},
	}
	engine, err := cvterm.New(
		cvterm.WithSleeper(instant),
		cvterm.WithClock(fixedClock),
		cvterm.WithLifecycleHooks(hooks),
	)
	require.NoError(t, err)

	ctx := context.Background()
	s := engine.NewSession(ctx)
	defer s.Close()

	require.NoError(t, engine.Boot(ctx, s))

	entries := s.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, []string{"CV Terminal v0.1.0", "2026 Alex Rivera"}, []string{entries[0].Output[0].String(), entries[0].Output[1].String()})
	assert.Equal(t, "whoami", entries[1].Command)
	assert.Equal(t, "help", entries[2].Command)
	assert.Equal(t, domain.PhaseReady, s.Phase())
	assert.Equal(t, []string{"whoami", "help"}, commands)
}

func TestEngine_SkipBoot(t *testing.T) {
	settings := config.Defaults()
	settings.SkipBoot = true
	engine, err := cvterm.New(cvterm.WithSettings(settings))
	require.NoError(t, err)

	s := engine.NewSession(context.Background())
	defer s.Close()

	require.NoError(t, engine.Boot(context.Background(), s))
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, domain.PhaseReady, s.Phase())
}

func TestEngine_Run_IsStateless(t *testing.T) {
	engine, err := cvterm.New()
	require.NoError(t, err)

	res, err := engine.Run(context.Background(), "  Skills ")
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeFound, res.Outcome)
	require.NotNil(t, res.Entry)
	assert.Equal(t, "  Skills ", res.Entry.Command)

	res, err = engine.Run(context.Background(), "exit")
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeExit, res.Outcome)
	assert.Equal(t, 2*time.Second, res.TerminateAfter)
}

func TestEngine_ContentFromSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cv.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: Robin Example\n"), 0o644))

	settings := config.Defaults()
	settings.Content = path
	engine, err := cvterm.New(cvterm.WithSettings(settings), cvterm.WithClock(fixedClock))
	require.NoError(t, err)
	assert.Equal(t, "2026 Robin Example", engine.Banner()[1])

	settings.Content = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = cvterm.New(cvterm.WithSettings(settings))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestEngine_InvalidSettings(t *testing.T) {
	settings := config.Defaults()
	settings.TypingMax = 0
	_, err := cvterm.New(cvterm.WithSettings(settings))
	assert.ErrorIs(t, err, config.ErrInvalidSettings)
}

func TestEngine_BootScriptRejectsControlCommands(t *testing.T) {
	for _, cmd := range []string{"clear", " EXIT "} {
		settings := config.Defaults()
		settings.BootScript = []string{"whoami", cmd}
		_, err := cvterm.New(cvterm.WithSettings(settings))
		assert.ErrorIs(t, err, config.ErrInvalidSettings, cmd)
	}

	settings := config.Defaults()
	settings.BootScript = []string{"whoami", "blog"}
	_, err := cvterm.New(cvterm.WithSettings(settings))
	assert.NoError(t, err, "unknown boot commands type the not-found message")
}

func TestEngine_ResponsiveAfterPathologicalInput(t *testing.T) {
	engine, err := cvterm.New()
	require.NoError(t, err)
	s := engine.NewSession(context.Background())
	defer s.Close()

	inputs := []string{"", " ", "x", "\x00", "\x1b]8;;https://evil\x07", "<img src=x onerror=alert(1)>", "🚀🚀🚀", string(make([]byte, 65536))}
	for _, in := range inputs {
		assert.NotPanics(t, func() { _, _ = engine.Execute(context.Background(), s, in) })
	}

	res, err := engine.Execute(context.Background(), s, "help")
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeFound, res.Outcome)
}

func TestEngine_Markdown(t *testing.T) {
	engine, err := cvterm.New()
	require.NoError(t, err)
	md := engine.Markdown()
	assert.Contains(t, md, "# Alex Rivera")
	assert.Contains(t, md, "## Display technical skills")
}
