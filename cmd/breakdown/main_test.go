package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/breakdown/internal/adapters/telemetry"
	"go.trai.ch/breakdown/internal/app"
	"go.trai.ch/breakdown/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestMain(m *testing.M) {
	os.Exit(testscript.RunMain(m, map[string]func() int{
		"breakdown": func() int {
			return run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr, provideComponents)
		},
	}))
}

func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata/script",
		Setup: func(env *testscript.Env) error {
			env.Setenv("NO_COLOR", "1")
			env.Setenv("BREAKDOWN_NAME", "")
			return nil
		},
	})
}

// TestRun_Version verifies that run returns 0 when the command succeeds.
func TestRun_Version(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockLogger := mocks.NewMockLogger(ctrl)

	application := app.New(mockLoader, mockLogger, telemetry.NewNoOpTracer(), nil, nil)
	provider := func(_ context.Context) (*app.Components, error) {
		return &app.Components{App: application, Logger: mockLogger}, nil
	}

	stdout := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, strings.NewReader(""), stdout, new(bytes.Buffer), provider)

	assert.Equal(t, 0, exitCode)
	assert.Contains(t, stdout.String(), "breakdown dev")
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, error) {
		return nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, strings.NewReader(""), new(bytes.Buffer), stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_ExecutionError verifies that command errors are logged and exit with 1.
func TestRun_ExecutionError(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockLogger := mocks.NewMockLogger(ctrl)

	mockLogger.EXPECT().Error(gomock.Any()).Times(1)

	application := app.New(mockLoader, mockLogger, telemetry.NewNoOpTracer(), nil, nil)
	provider := func(_ context.Context) (*app.Components, error) {
		return &app.Components{App: application, Logger: mockLogger}, nil
	}

	exitCode := run(context.Background(), []string{"generate", "only-one-arg"},
		strings.NewReader(""), new(bytes.Buffer), new(bytes.Buffer), provider)

	assert.Equal(t, 1, exitCode)
}
