package authz

import (
	"errors"

	"jobboard/model"
)

// Action is a tagged variant of everything a caller can do to a job.
// Keeping the role/ownership rules in one decision function stops the
// per-route checks from drifting apart.
type Action int

const (
	ActionRead Action = iota
	ActionCreate
	ActionUpdate
	ActionDelete
	ActionApply
	ActionListPosted
	ActionListApplied
)

var (
	ErrForbiddenRole = errors.New("role not allowed for this action")
	ErrNotOwner      = errors.New("not the owner of this job")
)

// Decide applies the decision table for one action. actor may be nil
// (anonymous). job is the currently stored document — ownership is
// never judged from request data.
func Decide(actor *model.User, action Action, job *model.Job) error {
	switch action {
	case ActionRead:
		return nil
	case ActionCreate, ActionListPosted:
		if actor == nil || actor.Role != model.RoleEmployer {
			return ErrForbiddenRole
		}
		return nil
	case ActionApply, ActionListApplied:
		if actor == nil || actor.Role != model.RoleJobseeker {
			return ErrForbiddenRole
		}
		return nil
	case ActionUpdate, ActionDelete:
		if actor == nil || actor.Role != model.RoleEmployer {
			return ErrForbiddenRole
		}
		if job == nil || job.PostedBy != actor.ID {
			return ErrNotOwner
		}
		return nil
	}
	return ErrForbiddenRole
}
