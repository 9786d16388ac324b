package registration

import (
	"errors"
	"math/big"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/lidofinance/ensreg/client/modules/state"
	"github.com/lidofinance/ensreg/client/types"
	"github.com/lidofinance/ensreg/mocks/clientMocks"
)

func newTestRepo(t *testing.T) *BaseRegistrationRepo {
	t.Helper()

	stg, err := state.NewLevelDBState(t.TempDir()+"/ensreg_test_registrations", "test_topic")
	require.NoError(t, err)
	t.Cleanup(func() { stg.Close() })

	return NewRegistrationRepo(stg, "test_topic")
}

func TestSaveRecord(t *testing.T) {
	req := require.New(t)
	repo := newTestRepo(t)

	record := &types.RegistrationRecord{
		Name:           "alice.eth",
		Mode:           types.ModeCreate,
		ChangedRecords: types.Records{"url": "https://alice.example"},
		Duration:       31536000,
		CreatedAt:      time.Now().UTC(),
	}
	req.NoError(repo.SaveRecord(record))

	loaded, err := repo.GetRecord("alice.eth")
	req.NoError(err)
	req.Equal(record.Name, loaded.Name)
	req.Equal(record.Mode, loaded.Mode)
	req.Equal(record.ChangedRecords, loaded.ChangedRecords)
	req.False(loaded.HasCommitTransaction())

	err = repo.SaveRecord(record)
	req.ErrorIs(err, ErrRecordExists)

	_, err = repo.GetRecord("bob.eth")
	req.ErrorIs(err, ErrRecordNotFound)
}

func TestSaveCommitParameters(t *testing.T) {
	req := require.New(t)
	repo := newTestRepo(t)

	req.NoError(repo.SaveRecord(&types.RegistrationRecord{Name: "alice.eth", Mode: types.ModeCreate}))

	params := CommitParameters{
		Hash:         common.HexToHash("0x01"),
		Salt:         common.HexToHash("0x02"),
		LabelHash:    common.HexToHash("0x03"),
		Duration:     31536000,
		OwnerAddress: common.HexToAddress("0x04"),
		RentPrice:    big.NewInt(1000),
	}
	req.NoError(repo.SaveCommitParameters("alice.eth", params))

	loaded, err := repo.GetRecord("alice.eth")
	req.NoError(err)
	req.Equal(params.Hash, loaded.CommitHash())
	req.Equal(params.Salt, *loaded.Salt)
	req.Equal(params.LabelHash, *loaded.LabelHash)
	req.Equal(params.OwnerAddress, loaded.OwnerAddress)
	req.Equal(0, params.RentPrice.Cmp(loaded.RentPrice))
	req.Nil(loaded.ConfirmedAt())
}

func TestSetCommitConfirmedAt(t *testing.T) {
	req := require.New(t)
	repo := newTestRepo(t)

	hash := common.HexToHash("0x01")
	req.NoError(repo.SaveRecord(&types.RegistrationRecord{Name: "alice.eth", Mode: types.ModeCreate}))
	req.NoError(repo.SaveCommitParameters("alice.eth", CommitParameters{Hash: hash}))

	first := time.Unix(1700000000, 0)
	req.NoError(repo.SetCommitConfirmedAt("alice.eth", hash, first))

	// a second write for the same hash keeps the first timestamp
	req.NoError(repo.SetCommitConfirmedAt("alice.eth", hash, first.Add(time.Minute)))

	loaded, err := repo.GetRecord("alice.eth")
	req.NoError(err)
	req.NotNil(loaded.ConfirmedAt())
	req.True(first.Equal(*loaded.ConfirmedAt()))

	err = repo.SetCommitConfirmedAt("alice.eth", common.HexToHash("0x02"), first)
	req.ErrorIs(err, ErrStaleCommit)
}

func TestSetCommitTransactionHash(t *testing.T) {
	req := require.New(t)
	repo := newTestRepo(t)

	oldHash, newHash := common.HexToHash("0x01"), common.HexToHash("0x02")
	req.NoError(repo.SaveRecord(&types.RegistrationRecord{Name: "alice.eth", Mode: types.ModeCreate}))
	req.NoError(repo.SaveCommitParameters("alice.eth", CommitParameters{Hash: oldHash}))
	req.NoError(repo.SetCommitConfirmedAt("alice.eth", oldHash, time.Unix(1700000000, 0)))

	req.NoError(repo.SetCommitTransactionHash("alice.eth", oldHash, newHash))

	loaded, err := repo.GetRecord("alice.eth")
	req.NoError(err)
	req.Equal(newHash, loaded.CommitHash())
	// the timestamp belongs to the replaced hash
	req.Nil(loaded.ConfirmedAt())

	err = repo.SetCommitTransactionHash("alice.eth", oldHash, common.HexToHash("0x03"))
	req.ErrorIs(err, ErrStaleCommit)

	req.NoError(repo.SetCommitConfirmedAt("alice.eth", newHash, time.Unix(1700000100, 0)))
	loaded, err = repo.GetRecord("alice.eth")
	req.NoError(err)
	req.NotNil(loaded.ConfirmedAt())
	req.Equal(int64(1700000100), loaded.ConfirmedAt().Unix())
}

func TestListAndDeleteRecords(t *testing.T) {
	req := require.New(t)
	repo := newTestRepo(t)

	req.NoError(repo.SaveRecord(&types.RegistrationRecord{Name: "alice.eth", Mode: types.ModeCreate}))
	req.NoError(repo.SaveRecord(&types.RegistrationRecord{Name: "bob.eth", Mode: types.ModeRenew}))

	records, err := repo.ListRecords()
	req.NoError(err)
	req.Len(records, 2)

	req.NoError(repo.DeleteRecord("alice.eth"))

	records, err = repo.ListRecords()
	req.NoError(err)
	req.Len(records, 1)
	req.Equal("bob.eth", records[0].Name)

	_, err = repo.GetRecord("alice.eth")
	req.ErrorIs(err, ErrRecordNotFound)

	err = repo.DeleteRecord("alice.eth")
	req.ErrorIs(err, ErrRecordNotFound)

	// the archived copy stays in the state
	keys, err := repo.state.Keys(repo.archivePrefix)
	req.NoError(err)
	req.Len(keys, 1)
}

func TestStateErrors(t *testing.T) {
	var (
		req      = require.New(t)
		ctrl     = gomock.NewController(t)
		stg      = clientMocks.NewMockState(ctrl)
		repo     = NewRegistrationRepo(stg, "test_topic")
		diskFull = errors.New("disk full")
	)
	defer ctrl.Finish()

	stg.EXPECT().Get(gomock.Any()).Return(nil, diskFull)
	err := repo.SaveRecord(&types.RegistrationRecord{Name: "alice.eth"})
	req.ErrorIs(err, diskFull)
	req.NotErrorIs(err, ErrRecordExists)

	stg.EXPECT().Get(gomock.Any()).Return(nil, nil)
	stg.EXPECT().Set(gomock.Any(), gomock.Any()).Return(diskFull)
	req.ErrorIs(repo.SaveRecord(&types.RegistrationRecord{Name: "alice.eth"}), diskFull)

	stg.EXPECT().Keys(gomock.Any()).Return(nil, diskFull)
	_, err = repo.ListRecords()
	req.ErrorIs(err, diskFull)

	// the live key is kept when archiving fails
	stg.EXPECT().Get(gomock.Any()).Return([]byte(`{"name":"alice.eth"}`), nil)
	stg.EXPECT().Set(gomock.Any(), gomock.Any()).Return(diskFull)
	req.ErrorIs(repo.DeleteRecord("alice.eth"), diskFull)
}

// gatedState parks the first Set after arm until release is closed.
type gatedState struct {
	state.State
	armed   atomic.Bool
	entered chan struct{}
	release chan struct{}
}

func (s *gatedState) arm() {
	s.entered = make(chan struct{})
	s.release = make(chan struct{})
	s.armed.Store(true)
}

func (s *gatedState) Set(key string, value []byte) error {
	if s.armed.CompareAndSwap(true, false) {
		close(s.entered)
		<-s.release
	}
	return s.State.Set(key, value)
}

func newGatedRepo(t *testing.T) (*BaseRegistrationRepo, *gatedState) {
	t.Helper()

	stg, err := state.NewLevelDBState(t.TempDir()+"/ensreg_test_registrations", "test_topic")
	require.NoError(t, err)
	t.Cleanup(func() { stg.Close() })

	gated := &gatedState{State: stg}
	return NewRegistrationRepo(gated, "test_topic"), gated
}

func requireBlocked(t *testing.T, done <-chan error) {
	t.Helper()
	select {
	case err := <-done:
		require.FailNow(t, "write went through while another write held the record", "err: %v", err)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestConcurrentWritesAreSerialized(t *testing.T) {
	req := require.New(t)
	repo, gated := newGatedRepo(t)

	first, replacement := common.HexToHash("0x01"), common.HexToHash("0x02")
	confirmedAt := time.Unix(1700000000, 0).UTC()

	req.NoError(repo.SaveRecord(&types.RegistrationRecord{Name: "alice.eth", Mode: types.ModeCreate}))
	req.NoError(repo.SaveCommitParameters("alice.eth", CommitParameters{Hash: first}))

	gated.arm()
	confirmed := make(chan error, 1)
	go func() { confirmed <- repo.SetCommitConfirmedAt("alice.eth", first, confirmedAt) }()
	<-gated.entered

	replaced := make(chan error, 1)
	go func() { replaced <- repo.SetCommitTransactionHash("alice.eth", first, replacement) }()
	requireBlocked(t, replaced)

	close(gated.release)
	req.NoError(<-confirmed)
	req.NoError(<-replaced)

	// neither write is lost
	record, err := repo.GetRecord("alice.eth")
	req.NoError(err)
	req.Equal(replacement, record.CommitHash())
	req.NotNil(record.CommitTransactionConfirmedAt)
	req.True(confirmedAt.Equal(*record.CommitTransactionConfirmedAt))
	req.Equal(first, *record.ConfirmedTransactionHash)
}

func TestDeleteWaitsForUpdate(t *testing.T) {
	req := require.New(t)
	repo, gated := newGatedRepo(t)

	hash := common.HexToHash("0x01")
	req.NoError(repo.SaveRecord(&types.RegistrationRecord{Name: "alice.eth", Mode: types.ModeCreate}))
	req.NoError(repo.SaveCommitParameters("alice.eth", CommitParameters{Hash: hash}))

	gated.arm()
	confirmed := make(chan error, 1)
	go func() { confirmed <- repo.SetCommitConfirmedAt("alice.eth", hash, time.Now()) }()
	<-gated.entered

	deleted := make(chan error, 1)
	go func() { deleted <- repo.DeleteRecord("alice.eth") }()
	requireBlocked(t, deleted)

	close(gated.release)
	req.NoError(<-confirmed)
	req.NoError(<-deleted)

	// the archived record is not brought back by the earlier update
	_, err := repo.GetRecord("alice.eth")
	req.ErrorIs(err, ErrRecordNotFound)
	records, err := repo.ListRecords()
	req.NoError(err)
	req.Empty(records)
}
