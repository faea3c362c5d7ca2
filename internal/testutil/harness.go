// Package testutil provides a standardized harness for generation tests:
// fixture files are written into a temp directory, a full App run is
// executed against them, and the outcome is captured for assertions.
package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/scaffgo/internal/app"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of a generation test run.
type HarnessResult struct {
	OutputDir string
	LogOutput string
	Err       error
}

// GenerationInput describes one harness run. Files maps relative paths
// (under "blueprint/" or "templates/") to file content; Answers, when
// non-empty, is written verbatim as answers.yml; SetPairs are -set
// overrides.
type GenerationInput struct {
	Files    map[string]string
	Answers  string
	SetPairs []string
}

// RunGeneration executes a full generation run against fixture files in a
// fresh temp directory and returns the outcome.
func RunGeneration(t *testing.T, input GenerationInput) *HarnessResult {
	t.Helper()
	return RunGenerationWithContext(context.Background(), t, input)
}

// RunGenerationWithContext is RunGeneration with a caller-supplied context.
func RunGenerationWithContext(ctx context.Context, t *testing.T, input GenerationInput) *HarnessResult {
	t.Helper()

	tmpDir := t.TempDir()
	blueprintDir := filepath.Join(tmpDir, "blueprint")
	templatesDir := filepath.Join(tmpDir, "templates")
	outputDir := filepath.Join(tmpDir, "out")
	require.NoError(t, os.Mkdir(blueprintDir, 0o755))
	require.NoError(t, os.Mkdir(templatesDir, 0o755))

	for name, content := range input.Files {
		filePath := filepath.Join(tmpDir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0o755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0o644))
	}

	answersPath := ""
	if input.Answers != "" {
		answersPath = filepath.Join(tmpDir, "answers.yml")
		require.NoError(t, os.WriteFile(answersPath, []byte(input.Answers), 0o644))
	}

	config, err := app.NewConfig(app.Config{
		BlueprintPath: blueprintDir,
		TemplateRoot:  templatesDir,
		OutputPath:    outputDir,
		AnswersPath:   answersPath,
		SetPairs:      input.SetPairs,
		LogFormat:     "text",
		LogLevel:      "debug",
		Workers:       4,
	})
	require.NoError(t, err)

	logBuffer := &SafeBuffer{}
	runErr := app.NewApp(logBuffer, config).Generate(ctx)

	return &HarnessResult{
		OutputDir: outputDir,
		LogOutput: logBuffer.String(),
		Err:       runErr,
	}
}

// ReadOutput reads a generated file relative to the output directory.
func (r *HarnessResult) ReadOutput(t *testing.T, relPath string) string {
	t.Helper()
	content, err := os.ReadFile(filepath.Join(r.OutputDir, filepath.FromSlash(relPath)))
	require.NoError(t, err)
	return string(content)
}

// OutputExists reports whether a path exists under the output directory.
func (r *HarnessResult) OutputExists(relPath string) bool {
	_, err := os.Stat(filepath.Join(r.OutputDir, filepath.FromSlash(relPath)))
	return err == nil
}
