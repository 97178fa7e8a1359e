// Package policy is the single place role gating happens. Handlers and
// services ask for a Decision instead of comparing role strings themselves.
package policy

import "careclock-backend/internal/models"

// Decision is the outcome of an access check.
type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// CanStartShift gates clock-in. Careworkers only.
func CanStartShift(role string) Decision {
	if role != models.RoleCareworker {
		return deny("Only careworkers can create shifts")
	}
	return allow()
}

// CanEndShift gates clock-out. Careworkers only.
func CanEndShift(role string) Decision {
	if role != models.RoleCareworker {
		return deny("Only careworkers can update shifts")
	}
	return allow()
}

// CanEditShiftNote gates note edits: careworker role and shift ownership.
func CanEditShiftNote(role, callerID, shiftOwnerID string) Decision {
	if role != models.RoleCareworker {
		return deny("Only careworkers can update shifts")
	}
	if callerID != shiftOwnerID {
		return deny("You can only update your own shifts")
	}
	return allow()
}

// CanViewAllShifts gates the aggregate shift listing. Managers only.
func CanViewAllShifts(role string) Decision {
	if role != models.RoleManager {
		return deny("Only managers can access all shifts")
	}
	return allow()
}

// CanViewAllUsers gates the worker roster. Managers only.
func CanViewAllUsers(role string) Decision {
	if role != models.RoleManager {
		return deny("Only managers can access all users")
	}
	return allow()
}

// CanModifyLocation gates location update/delete: the creator, or any manager.
func CanModifyLocation(role, callerID, locationCreatorID string) Decision {
	if callerID == locationCreatorID || role == models.RoleManager {
		return allow()
	}
	return deny("Permission denied")
}

// CanChangeOwnRole is self-service for either role. There is deliberately no
// approval gate: a worker may switch themselves to MANAGER and back, matching
// the trust model of the source system.
func CanChangeOwnRole(role string) Decision {
	return allow()
}
