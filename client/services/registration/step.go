package registration

import (
	"github.com/lidofinance/ensreg/client/config"
	"github.com/lidofinance/ensreg/client/types"
)

// ResolveStep derives the protocol step of a record. It performs no I/O and
// depends on nothing but its arguments, so a restarted process resolves the
// same step from the same persisted record.
func ResolveStep(record *types.RegistrationRecord, elapsed types.ElapsedState, timing config.Timing) types.Step {
	// mode overrides never pass through the commit timing gate
	switch record.Mode {
	case types.ModeEdit:
		return types.StepEdit
	case types.ModeRenew:
		return types.StepRenew
	case types.ModeSetName:
		return types.StepSetName
	case types.ModeTransfer:
		return types.StepTransfer
	}

	if !record.HasCommitTransaction() {
		return types.StepCommit
	}

	// an unconfirmed commit has no meaningful elapsed time
	if record.ConfirmedAt() == nil || elapsed.SecondsSinceCommitConfirmed <= timing.ConfirmationPaddingSeconds {
		return types.StepWaitCommitConfirmation
	}

	if elapsed.SecondsSinceCommitConfirmed < timing.WaitWithPaddingSeconds || !elapsed.ReadyToRegister {
		return types.StepWaitProtocolInterval
	}

	return types.StepRegister
}
