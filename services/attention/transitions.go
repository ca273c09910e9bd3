package attention

import "queuedesk/models"

type Action string

const (
	ActionAttend          Action = "attend"
	ActionSkip            Action = "skip"
	ActionReactivate      Action = "reactivate"
	ActionFinish          Action = "finish"
	ActionFinishCancelled Action = "finishCancelled"
	ActionCancel          Action = "cancel"
	ActionBulkCancel      Action = "bulkCancel"
)

var transitionMap = map[Action][]models.AttentionStatus{
	ActionAttend:          {models.AttentionPending, models.AttentionUserCancelled},
	ActionSkip:            {models.AttentionProcessing, models.AttentionReactivated},
	ActionReactivate:      {models.AttentionSkipped},
	ActionFinish:          {models.AttentionProcessing, models.AttentionReactivated},
	ActionFinishCancelled: {models.AttentionUserCancelled},
	ActionCancel:          {models.AttentionPending},
	ActionBulkCancel:      {models.AttentionPending, models.AttentionProcessing},
}

// ValidTransition reports whether action may run on a ticket in status from.
func ValidTransition(action Action, from models.AttentionStatus) bool {
	return models.ContainsStatus(transitionMap[action], from)
}

// IsTerminal reports whether status absorbs every action.
func IsTerminal(status models.AttentionStatus) bool {
	switch status {
	case models.AttentionTerminated, models.AttentionTerminatedReserveCancelled, models.AttentionCancelled:
		return true
	}
	return false
}
