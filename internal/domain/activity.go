package domain

// Task activity event types
const (
	EventTypeTaskCreated       = "TASK_CREATED"
	EventTypeTaskUpdated       = "TASK_UPDATED"
	EventTypeTaskDeleted       = "TASK_DELETED"
	EventTypeProposalSubmitted = "PROPOSAL_SUBMITTED"
	EventTypeProposalWithdrawn = "PROPOSAL_WITHDRAWN"
	EventTypeProposalRejected  = "PROPOSAL_REJECTED"
	EventTypeProposalAccepted  = "PROPOSAL_ACCEPTED"
	EventTypeStatusChanged     = "STATUS_CHANGED"
	EventTypeTaskRated         = "TASK_RATED"
)

const ResourceTypeTask = "task"
