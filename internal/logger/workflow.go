package logger

import (
	"go.temporal.io/sdk/workflow"
	"go.uber.org/zap"
)

// workflowFields returns the identifying fields of the running workflow
func workflowFields(ctx workflow.Context) []zap.Field {
	info := workflow.GetInfo(ctx)
	if info == nil {
		return nil
	}
	return []zap.Field{
		zap.String("workflow_type", info.WorkflowType.Name),
		zap.String("workflow_id", info.WorkflowExecution.ID),
		zap.String("run_id", info.WorkflowExecution.RunID),
		zap.String("task_queue", info.TaskQueueName),
	}
}

// InfoWf logs an info message tagged with the workflow identity.
// Logging is suppressed while the workflow is replaying.
func InfoWf(ctx workflow.Context, msg string, fields ...zap.Field) {
	if workflow.IsReplaying(ctx) {
		return
	}
	log.Info(msg, append(workflowFields(ctx), fields...)...)
}

// WarnWf logs a warning tagged with the workflow identity
func WarnWf(ctx workflow.Context, msg string, fields ...zap.Field) {
	if workflow.IsReplaying(ctx) {
		return
	}
	log.Warn(msg, append(workflowFields(ctx), fields...)...)
}

// ErrorWf logs an error tagged with the workflow identity
func ErrorWf(ctx workflow.Context, err error, fields ...zap.Field) {
	if workflow.IsReplaying(ctx) {
		return
	}
	log.Error(errorMessage(err), append(workflowFields(ctx), fields...)...)
}
