package chain

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/MaryanFarahsectionE/CPAN-212---LAB-2/pkg/models"
)

var testUser = models.UserRecord{ID: 1, Name: "John Doe"}

func fastSteps() []Step {
	return []Step{
		{Action: "login", Message: "User logged in successfully", DelayMS: 5},
		{Action: "fetch_data", Message: "User data fetched successfully", DelayMS: 5},
		{Action: "render", Message: "Page rendered successfully", DelayMS: 5},
	}
}

func TestDefaultStepsOrder(t *testing.T) {
	steps := DefaultSteps()
	require.Len(t, steps, 3)
	assert.Equal(t, "login", steps[0].Action)
	assert.Equal(t, "fetch_data", steps[1].Action)
	assert.Equal(t, "render", steps[2].Action)

	// 800 + 1200 + 600: a default run reports at least 2600ms.
	assert.Equal(t, 800, steps[0].DelayMS)
	assert.Equal(t, 1200, steps[1].DelayMS)
	assert.Equal(t, 600, steps[2].DelayMS)
}

func TestRunProducesOrderedResults(t *testing.T) {
	p := New(fastSteps(), testUser, zap.NewNop())

	res, err := p.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Steps, 3)

	for i, sr := range res.Steps {
		assert.Equal(t, i+1, sr.Step)
		assert.NotEmpty(t, sr.Timestamp)
	}
	assert.Equal(t, "login", res.Steps[0].Action)
	assert.Equal(t, "fetch_data", res.Steps[1].Action)
	assert.Equal(t, "render", res.Steps[2].Action)

	// Fixed-width ISO timestamps, so lexicographic order is chronological.
	assert.LessOrEqual(t, res.Steps[0].Timestamp, res.Steps[1].Timestamp)
	assert.LessOrEqual(t, res.Steps[1].Timestamp, res.Steps[2].Timestamp)

	assert.GreaterOrEqual(t, res.TotalTime, int64(15), "total must cover the summed delays")
}

func TestRunAttachesUserToFetchData(t *testing.T) {
	p := New(fastSteps(), testUser, zap.NewNop())

	res, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Nil(t, res.Steps[0].Data)
	assert.Equal(t, testUser, res.Steps[1].Data)
	assert.Nil(t, res.Steps[2].Data)
}

func TestRunContextCancelled(t *testing.T) {
	steps := []Step{{Action: "login", Message: "never finishes", DelayMS: 60000}}
	p := New(steps, testUser, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := p.Run(ctx)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadStepsYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "steps.yaml")
	data := "- action: login\n  message: Step one\n  delay_ms: 5\n- action: render\n  message: Step two\n  delay_ms: 10\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	steps, err := LoadSteps(path)
	require.NoError(t, err)
	require.Len(t, steps, 2)
	assert.Equal(t, "login", steps[0].Action)
	assert.Equal(t, 10, steps[1].DelayMS)
}

func TestLoadStepsJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "steps.json")
	data := `[{"action":"login","message":"Step one","delay_ms":5}]`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	steps, err := LoadSteps(path)
	require.NoError(t, err)
	require.Len(t, steps, 1)
	assert.Equal(t, "Step one", steps[0].Message)
}

func TestLoadStepsEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "steps.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	_, err := LoadSteps(path)
	assert.Error(t, err)
}

func TestLoadStepsMissingFile(t *testing.T) {
	_, err := LoadSteps(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
