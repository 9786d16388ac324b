package registration

import (
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/lidofinance/ensreg/client/config"
	"github.com/lidofinance/ensreg/client/types"
)

func confirmedRecord(hash common.Hash, confirmedAt time.Time) *types.RegistrationRecord {
	return &types.RegistrationRecord{
		Name:                         "alice.eth",
		Mode:                         types.ModeCreate,
		CommitTransactionHash:        &hash,
		CommitTransactionConfirmedAt: &confirmedAt,
		ConfirmedTransactionHash:     &hash,
	}
}

func TestResolveStep_ModeOverrides(t *testing.T) {
	req := require.New(t)
	timing := config.DefaultTiming()

	hash := common.HexToHash("0xabc")
	for mode, step := range map[types.Mode]types.Step{
		types.ModeEdit:     types.StepEdit,
		types.ModeRenew:    types.StepRenew,
		types.ModeSetName:  types.StepSetName,
		types.ModeTransfer: types.StepTransfer,
	} {
		record := confirmedRecord(hash, time.Now())
		record.Mode = mode

		// commit fields never matter for these modes
		req.Equal(step, ResolveStep(record, types.ElapsedState{}, timing), mode)
		req.Equal(step, ResolveStep(record, types.ElapsedState{SecondsSinceCommitConfirmed: 1000, ReadyToRegister: true}, timing), mode)

		record.CommitTransactionHash = nil
		req.Equal(step, ResolveStep(record, types.ElapsedState{}, timing), mode)
	}
}

func TestResolveStep_CommitGate(t *testing.T) {
	timing := config.DefaultTiming()
	hash := common.HexToHash("0xabc")

	pending := &types.RegistrationRecord{Name: "alice.eth", Mode: types.ModeCreate, CommitTransactionHash: &hash}

	testCases := []struct {
		name    string
		record  *types.RegistrationRecord
		elapsed types.ElapsedState
		step    types.Step
	}{
		{
			name:   "no_commit_hash",
			record: &types.RegistrationRecord{Name: "alice.eth", Mode: types.ModeCreate},
			step:   types.StepCommit,
		},
		{
			name:    "unconfirmed_commit",
			record:  pending,
			elapsed: types.ElapsedState{SecondsSinceCommitConfirmed: 100, ReadyToRegister: true},
			step:    types.StepWaitCommitConfirmation,
		},
		{
			name:    "within_confirmation_padding",
			record:  confirmedRecord(hash, time.Now()),
			elapsed: types.ElapsedState{SecondsSinceCommitConfirmed: timing.ConfirmationPaddingSeconds},
			step:    types.StepWaitCommitConfirmation,
		},
		{
			name:    "after_confirmation_padding",
			record:  confirmedRecord(hash, time.Now()),
			elapsed: types.ElapsedState{SecondsSinceCommitConfirmed: timing.ConfirmationPaddingSeconds + 1},
			step:    types.StepWaitProtocolInterval,
		},
		{
			name:    "time_gate_dominates_ready_flag",
			record:  confirmedRecord(hash, time.Now()),
			elapsed: types.ElapsedState{SecondsSinceCommitConfirmed: timing.WaitWithPaddingSeconds - 1, ReadyToRegister: true},
			step:    types.StepWaitProtocolInterval,
		},
		{
			name:    "elapsed_but_not_ready",
			record:  confirmedRecord(hash, time.Now()),
			elapsed: types.ElapsedState{SecondsSinceCommitConfirmed: timing.WaitWithPaddingSeconds + 100},
			step:    types.StepWaitProtocolInterval,
		},
		{
			name:    "elapsed_and_ready",
			record:  confirmedRecord(hash, time.Now()),
			elapsed: types.ElapsedState{SecondsSinceCommitConfirmed: timing.WaitWithPaddingSeconds, ReadyToRegister: true},
			step:    types.StepRegister,
		},
		{
			name: "confirmation_of_replaced_hash",
			record: func() *types.RegistrationRecord {
				record := confirmedRecord(hash, time.Now())
				replacement := common.HexToHash("0xdef")
				record.CommitTransactionHash = &replacement
				return record
			}(),
			elapsed: types.ElapsedState{SecondsSinceCommitConfirmed: 100, ReadyToRegister: true},
			step:    types.StepWaitCommitConfirmation,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.step, ResolveStep(tc.record, tc.elapsed, timing))
		})
	}
}

func TestResolveStep_IsPure(t *testing.T) {
	req := require.New(t)
	timing := config.DefaultTiming()

	record := confirmedRecord(common.HexToHash("0xabc"), time.Unix(1700000000, 0))
	elapsed := types.ElapsedState{SecondsSinceCommitConfirmed: 30}

	first := ResolveStep(record, elapsed, timing)
	for i := 0; i < 10; i++ {
		req.Equal(first, ResolveStep(record, elapsed, timing))
	}
	req.Equal(int64(30), elapsed.SecondsSinceCommitConfirmed)
}

func TestResolveStep_Scenarios(t *testing.T) {
	var (
		req    = require.New(t)
		now    = time.Now()
		hash   = common.HexToHash("0xabc")
		timing = config.Timing{
			MinWaitSeconds:             55,
			ConfirmationPaddingSeconds: 5,
			WaitWithPaddingSeconds:     60,
			ProviderLagPaddingSeconds:  150,
		}
	)

	// A: fresh record
	fresh := &types.RegistrationRecord{Name: "alice.eth", Mode: types.ModeCreate}
	req.Equal(types.StepCommit, ResolveStep(fresh, types.ElapsedState{}, timing))

	// B: commit broadcast, not mined yet
	pending := &types.RegistrationRecord{Name: "alice.eth", Mode: types.ModeCreate, CommitTransactionHash: &hash}
	req.Equal(types.StepWaitCommitConfirmation, ResolveStep(pending, types.ElapsedState{}, timing))

	// C: confirmed 10 seconds ago
	confirmedAt := now.Add(-10 * time.Second)
	record := confirmedRecord(hash, confirmedAt)
	elapsed := types.ElapsedState{SecondsSinceCommitConfirmed: elapsedSince(now, confirmedAt)}
	req.Equal(types.StepWaitProtocolInterval, ResolveStep(record, elapsed, timing))

	// D: confirmed 70 seconds ago and ready
	confirmedAt = now.Add(-70 * time.Second)
	record = confirmedRecord(hash, confirmedAt)
	elapsed = types.ElapsedState{SecondsSinceCommitConfirmed: elapsedSince(now, confirmedAt), ReadyToRegister: true}
	req.Equal(types.StepRegister, ResolveStep(record, elapsed, timing))
}
