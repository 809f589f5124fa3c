package model

import "fmt"

// Task action tags. Each tag maps to exactly one capability call.
const (
	ActionSearchProperties   = "search_properties"
	ActionEstimateRenovation = "estimate_renovation"
	ActionCompareProperties  = "compare_properties"
	ActionWebResearch        = "web_research"
	ActionAnalyzeMarketFit   = "analyze_market_fit"
	ActionRenderReport       = "render_report"
)

// Task is one step in a decomposed query. InputKeys name the outputs of
// earlier steps this task consumes; OutputKey is the name under which its
// own result is published.
type Task struct {
	Step        int      `json:"step"`
	Action      string   `json:"action"`
	Description string   `json:"description,omitempty"`
	Params      Params   `json:"params"`
	InputKeys   []string `json:"input_keys,omitempty"`
	OutputKey   string   `json:"output_key"`
}

// TaskGraph is an ordered, acyclic sequence of tasks executed strictly in
// step order. Every input key must reference the output of an earlier step.
type TaskGraph []Task

// Validate checks the structural invariants: the graph is non-empty and each
// task consumes only outputs published by strictly earlier steps.
func (g TaskGraph) Validate() error {
	if len(g) == 0 {
		return fmt.Errorf("task graph is empty")
	}
	published := make(map[string]int, len(g))
	for _, task := range g {
		for _, key := range task.InputKeys {
			step, ok := published[key]
			if !ok {
				return fmt.Errorf("step %d (%s): input %q is not published by any earlier step", task.Step, task.Action, key)
			}
			if step >= task.Step {
				return fmt.Errorf("step %d (%s): input %q is published by step %d, which is not earlier", task.Step, task.Action, key, step)
			}
		}
		if task.OutputKey != "" {
			published[task.OutputKey] = task.Step
		}
	}
	return nil
}

// FailedStep marks the first task whose declared input was never published.
type FailedStep struct {
	Step       int    `json:"step"`
	Action     string `json:"action"`
	MissingKey string `json:"missing_key"`
}

// TurnResult is the outcome of one fully executed (or halted) turn.
type TurnResult struct {
	TurnID     string         `json:"turn_id"`
	Intent     Intent         `json:"intent"`
	Params     Params         `json:"params"`
	Plan       TaskGraph      `json:"plan,omitempty"`
	Outputs    map[string]any `json:"outputs,omitempty"`
	FailedStep *FailedStep    `json:"failed_step,omitempty"`
	Response   string         `json:"response"`
}
