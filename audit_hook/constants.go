package audithook

// Action constants for audit events.
const (
	// Executor actions
	ActionExecutorStarted = "executor.started"
	ActionExecutorStopped = "executor.stopped"

	// Task actions
	ActionTaskScheduled = "task.scheduled"
	ActionTaskCanceled  = "task.canceled"

	// Run actions
	ActionRunStarted   = "run.started"
	ActionRunCompleted = "run.completed"
	ActionRunFailed    = "run.failed"
)

// Resource constants for audit events.
const (
	ResourceExecutor = "executor"
	ResourceTask     = "task"
	ResourceRun      = "run"
)

// Category constants for audit events.
const (
	CategoryLifecycle  = "lifecycle"
	CategoryScheduling = "scheduling"
	CategoryExecution  = "execution"
)

// Severity levels for audit events.
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityError    = "error"
	SeverityCritical = "critical"
)

// Outcome values for audit events.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)
