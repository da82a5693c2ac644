package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ocrhl/internal/adapters/driven/config/memory"
	"github.com/custodia-labs/ocrhl/internal/core/services"
)

func TestRootCmd_HasCommands(t *testing.T) {
	names := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}

	for _, want := range []string{"search", "image-url", "overlay", "annotations", "config", "version", "tui", "mcp", "history"} {
		assert.True(t, names[want], "missing command %s", want)
	}
}

func TestRootCmd_BootstrapReceivesConfigDir(t *testing.T) {
	SetServices(nil)
	defer func() {
		SetBootstrap(nil)
		SetServices(nil)
		resetFlags()
	}()

	var gotDir string
	SetBootstrap(func(dir string) (*Services, error) {
		gotDir = dir
		settings := services.NewSettingsService(memory.NewConfigStore(nil))
		return &Services{
			Search:   &mockSearchService{},
			Image:    services.NewImageService(settings),
			Settings: settings,
		}, nil
	})

	_, err := execute(t, "--config-dir", "/tmp/ocrhl-test", "config", "path")

	require.NoError(t, err)
	assert.Equal(t, "/tmp/ocrhl-test", gotDir)
	assert.NotNil(t, searchService)
}

func TestRootCmd_BootstrapError(t *testing.T) {
	SetServices(nil)
	defer func() {
		SetBootstrap(nil)
		resetFlags()
	}()

	SetBootstrap(func(string) (*Services, error) {
		return nil, errors.New("disk full")
	})

	_, err := execute(t, "config", "path")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "initialise: disk full")
}

func TestExecute_ClosesServicesOnce(t *testing.T) {
	defer func() {
		SetServices(nil)
		resetFlags()
		rootCmd.SetArgs(nil)
	}()

	closed := 0
	_, cleanup := setupTestServices()
	defer cleanup()
	closeServices = func() error {
		closed++
		return nil
	}

	rootCmd.SetArgs([]string{"version"})
	require.NoError(t, Execute())
	require.NoError(t, Execute())

	assert.Equal(t, 1, closed)
}

func TestExecute_CloseError(t *testing.T) {
	defer func() {
		SetServices(nil)
		resetFlags()
		rootCmd.SetArgs(nil)
	}()

	_, cleanup := setupTestServices()
	defer cleanup()
	closeServices = func() error {
		return errors.New("database locked")
	}

	rootCmd.SetArgs([]string{"version"})
	err := Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "close services: database locked")
	assert.Nil(t, closeServices)
}

func TestSetServices_InstallsCloseHook(t *testing.T) {
	defer SetServices(nil)

	SetServices(&Services{Close: func() error { return nil }})
	assert.NotNil(t, closeServices)

	SetServices(nil)
	assert.Nil(t, closeServices)
}

func TestStartConfigWatch_NoWatcher(t *testing.T) {
	SetServices(nil)

	stop := startConfigWatch(context.Background())
	stop()
}

func TestStartConfigWatch_StopCancelsWatch(t *testing.T) {
	started := make(chan struct{})
	SetServices(&Services{
		Watch: func(ctx context.Context) error {
			close(started)
			<-ctx.Done()
			return ctx.Err()
		},
	})
	defer SetServices(nil)

	stop := startConfigWatch(context.Background())
	<-started
	stop()
}
