package service

import (
	"context"
	"fmt"

	"dashboard-service/internal/domain"

	log "github.com/sirupsen/logrus"
)

type HistoryCreator interface {
	CreateEvent(ctx context.Context, req domain.CreateEventRequest) (*domain.HistoryEvent, error)
}

// Recorder emits well-formed history events for tracked domain actions.
// Emission is best-effort: a failed write is logged and swallowed, so audit
// loss never blocks the action that triggered it.
type Recorder struct {
	history HistoryCreator
}

func NewRecorder(history HistoryCreator) *Recorder {
	return &Recorder{history: history}
}

func (r *Recorder) record(ctx context.Context, req domain.CreateEventRequest) {
	if r == nil || r.history == nil {
		return
	}
	if _, err := r.history.CreateEvent(ctx, req); err != nil {
		log.WithError(err).WithField("event_type", req.Type).Warn("History event dropped, continuing")
	}
}

func (r *Recorder) WorkflowCreated(ctx context.Context, actor domain.Actor, wf *domain.Workflow) {
	r.record(ctx, domain.CreateEventRequest{
		Type:              domain.EventWorkflowCreated,
		Title:             "Workflow created",
		Description:       fmt.Sprintf("Workflow %q was created", wf.Name),
		UserID:            actor.ID,
		UserName:          actor.Name,
		Severity:          domain.SeveritySuccess,
		RelatedWorkflowID: wf.ID,
		Metadata:          map[string]interface{}{"workflowName": wf.Name},
	})
}

func (r *Recorder) WorkflowEdited(ctx context.Context, actor domain.Actor, wf *domain.Workflow) {
	r.record(ctx, domain.CreateEventRequest{
		Type:              domain.EventWorkflowEdited,
		Title:             "Workflow edited",
		Description:       fmt.Sprintf("Workflow %q was edited", wf.Name),
		UserID:            actor.ID,
		UserName:          actor.Name,
		RelatedWorkflowID: wf.ID,
		Metadata:          map[string]interface{}{"workflowName": wf.Name},
	})
}

func (r *Recorder) WorkflowDeleted(ctx context.Context, actor domain.Actor, workflowID, name string) {
	r.record(ctx, domain.CreateEventRequest{
		Type:              domain.EventWorkflowDeleted,
		Title:             "Workflow deleted",
		Description:       fmt.Sprintf("Workflow %q was deleted", name),
		UserID:            actor.ID,
		UserName:          actor.Name,
		Severity:          domain.SeverityWarning,
		RelatedWorkflowID: workflowID,
		Metadata:          map[string]interface{}{"workflowName": name},
	})
}

func (r *Recorder) TemplateUsed(ctx context.Context, actor domain.Actor, templateID, name string) {
	r.record(ctx, domain.CreateEventRequest{
		Type:              domain.EventTemplateUsed,
		Title:             "Template used",
		Description:       fmt.Sprintf("Template %q was used to start a task", name),
		UserID:            actor.ID,
		UserName:          actor.Name,
		RelatedTemplateID: templateID,
		Metadata:          map[string]interface{}{"templateName": name},
	})
}

// TaskExecuted records one finished run. durationMS is the run duration in
// milliseconds; workflowName may be empty when the run was ad hoc.
func (r *Recorder) TaskExecuted(ctx context.Context, actor domain.Actor, workflowID, taskID string, success bool, durationMS float64, workflowName string) {
	severity := domain.SeveritySuccess
	title := "Task completed"
	if !success {
		severity = domain.SeverityError
		title = "Task failed"
	}

	metadata := map[string]interface{}{"taskId": taskID}
	if workflowName != "" {
		metadata["workflowName"] = workflowName
	}

	r.record(ctx, domain.CreateEventRequest{
		Type:              domain.EventTaskExecuted,
		Title:             title,
		Description:       fmt.Sprintf("Task %s finished with status %s", taskID, severity),
		UserID:            actor.ID,
		UserName:          actor.Name,
		Severity:          severity,
		RelatedWorkflowID: workflowID,
		RelatedTaskID:     taskID,
		ExecutionTime:     &durationMS,
		Metadata:          metadata,
	})
}

func (r *Recorder) TaskStopped(ctx context.Context, actor domain.Actor, taskID string) {
	r.taskLifecycle(ctx, actor, domain.EventTaskStopped, "Task stopped", taskID)
}

func (r *Recorder) TaskPaused(ctx context.Context, actor domain.Actor, taskID string) {
	r.taskLifecycle(ctx, actor, domain.EventTaskPaused, "Task paused", taskID)
}

func (r *Recorder) TaskResumed(ctx context.Context, actor domain.Actor, taskID string) {
	r.taskLifecycle(ctx, actor, domain.EventTaskResumed, "Task resumed", taskID)
}

func (r *Recorder) taskLifecycle(ctx context.Context, actor domain.Actor, eventType, title, taskID string) {
	r.record(ctx, domain.CreateEventRequest{
		Type:          eventType,
		Title:         title,
		Description:   fmt.Sprintf("%s (task %s)", title, taskID),
		UserID:        actor.ID,
		UserName:      actor.Name,
		RelatedTaskID: taskID,
		Metadata:      map[string]interface{}{"taskId": taskID},
	})
}

func (r *Recorder) SettingsChanged(ctx context.Context, actor domain.Actor, section string) {
	r.record(ctx, domain.CreateEventRequest{
		Type:        domain.EventSettingsChanged,
		Title:       "Settings changed",
		Description: fmt.Sprintf("Settings section %q was changed", section),
		UserID:      actor.ID,
		UserName:    actor.Name,
		Metadata:    map[string]interface{}{"section": section},
	})
}

func (r *Recorder) UserLogin(ctx context.Context, actor domain.Actor) {
	r.record(ctx, domain.CreateEventRequest{
		Type:        domain.EventUserLogin,
		Title:       "User logged in",
		Description: fmt.Sprintf("User %s logged in", actor.Name),
		UserID:      actor.ID,
		UserName:    actor.Name,
	})
}

func (r *Recorder) UserLogout(ctx context.Context, actor domain.Actor) {
	r.record(ctx, domain.CreateEventRequest{
		Type:        domain.EventUserLogout,
		Title:       "User logged out",
		Description: fmt.Sprintf("User %s logged out", actor.Name),
		UserID:      actor.ID,
		UserName:    actor.Name,
	})
}

func (r *Recorder) CredentialAdded(ctx context.Context, actor domain.Actor, credentialID, name string) {
	r.credentialLifecycle(ctx, actor, domain.EventCredentialAdded, "Credential added", credentialID, name)
}

func (r *Recorder) CredentialUpdated(ctx context.Context, actor domain.Actor, credentialID, name string) {
	r.credentialLifecycle(ctx, actor, domain.EventCredentialUpdated, "Credential updated", credentialID, name)
}

func (r *Recorder) CredentialDeleted(ctx context.Context, actor domain.Actor, credentialID, name string) {
	r.credentialLifecycle(ctx, actor, domain.EventCredentialDeleted, "Credential deleted", credentialID, name)
}

func (r *Recorder) credentialLifecycle(ctx context.Context, actor domain.Actor, eventType, title, credentialID, name string) {
	r.record(ctx, domain.CreateEventRequest{
		Type:                eventType,
		Title:               title,
		Description:         fmt.Sprintf("%s: %q", title, name),
		UserID:              actor.ID,
		UserName:            actor.Name,
		RelatedCredentialID: credentialID,
		Metadata:            map[string]interface{}{"credentialName": name},
	})
}

func (r *Recorder) BrowserProfileCreated(ctx context.Context, actor domain.Actor, profileID, name string) {
	r.profileLifecycle(ctx, actor, domain.EventBrowserProfileCreated, "Browser profile created", profileID, name)
}

func (r *Recorder) BrowserProfileUpdated(ctx context.Context, actor domain.Actor, profileID, name string) {
	r.profileLifecycle(ctx, actor, domain.EventBrowserProfileUpdated, "Browser profile updated", profileID, name)
}

func (r *Recorder) BrowserProfileDeleted(ctx context.Context, actor domain.Actor, profileID, name string) {
	r.profileLifecycle(ctx, actor, domain.EventBrowserProfileDeleted, "Browser profile deleted", profileID, name)
}

func (r *Recorder) profileLifecycle(ctx context.Context, actor domain.Actor, eventType, title, profileID, name string) {
	r.record(ctx, domain.CreateEventRequest{
		Type:                    eventType,
		Title:                   title,
		Description:             fmt.Sprintf("%s: %q", title, name),
		UserID:                  actor.ID,
		UserName:                actor.Name,
		RelatedBrowserProfileID: profileID,
		Metadata:                map[string]interface{}{"profileName": name},
	})
}
