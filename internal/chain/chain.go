// Package chain runs the sequential multi-step pipeline demo: each step
// waits its configured delay before producing a result, and the whole run
// reports total elapsed time.
package chain

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/MaryanFarahsectionE/CPAN-212---LAB-2/pkg/models"
)

var tracer = otel.Tracer("lab2/chain")

// Step describes one stage of the pipeline.
type Step struct {
	Action  string `yaml:"action" json:"action"`
	Message string `yaml:"message" json:"message"`
	DelayMS int    `yaml:"delay_ms" json:"delay_ms"`
}

func (s Step) delay() time.Duration {
	return time.Duration(s.DelayMS) * time.Millisecond
}

// DefaultSteps is the built-in login -> fetch_data -> render sequence.
func DefaultSteps() []Step {
	return []Step{
		{Action: "login", Message: "User logged in successfully", DelayMS: 800},
		{Action: "fetch_data", Message: "User data fetched successfully", DelayMS: 1200},
		{Action: "render", Message: "Page rendered successfully", DelayMS: 600},
	}
}

// LoadSteps reads a step list from a YAML or JSON file.
func LoadSteps(path string) ([]Step, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read chain steps: %w", err)
	}
	var steps []Step
	if yaml.Unmarshal(data, &steps) == nil && len(steps) > 0 {
		return steps, nil
	}
	steps = nil
	if json.Unmarshal(data, &steps) == nil && len(steps) > 0 {
		return steps, nil
	}
	return nil, fmt.Errorf("chain steps file %s holds no steps", path)
}

// StepResult is the outcome of a single completed step.
type StepResult struct {
	Step      int    `json:"step"`
	Action    string `json:"action"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
	Timestamp string `json:"timestamp"`
}

// Result aggregates every step outcome plus the wall-clock total in
// milliseconds.
type Result struct {
	Steps     []StepResult `json:"steps"`
	TotalTime int64        `json:"totalTime"`
}

// Pipeline executes a fixed step sequence for one user record.
type Pipeline struct {
	steps  []Step
	user   models.UserRecord
	logger *zap.Logger
}

func New(steps []Step, user models.UserRecord, logger *zap.Logger) *Pipeline {
	return &Pipeline{steps: steps, user: user, logger: logger}
}

// Run walks the steps in order. Each step sleeps its delay, then records a
// numbered result with a fresh timestamp; the fetch_data step also carries
// the user record. A cancelled context aborts the run mid-sequence.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	results := make([]StepResult, 0, len(p.steps))

	for i, step := range p.steps {
		stepCtx, span := tracer.Start(ctx, "chain."+step.Action,
			trace.WithAttributes(
				attribute.Int("chain.step", i+1),
				attribute.Int("chain.delay_ms", step.DelayMS),
			))

		select {
		case <-time.After(step.delay()):
		case <-stepCtx.Done():
			span.End()
			return nil, stepCtx.Err()
		}

		res := StepResult{
			Step:      i + 1,
			Action:    step.Action,
			Message:   step.Message,
			Timestamp: models.Timestamp(),
		}
		if step.Action == "fetch_data" {
			res.Data = p.user
		}
		results = append(results, res)

		p.logger.Debug("chain step complete",
			zap.Int("step", res.Step),
			zap.String("action", step.Action))
		span.End()
	}

	return &Result{Steps: results, TotalTime: time.Since(start).Milliseconds()}, nil
}
