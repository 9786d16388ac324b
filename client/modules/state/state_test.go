package state_test

import (
	"os"
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/lidofinance/ensreg/client/modules/state"

	"github.com/stretchr/testify/require"
)

func TestLevelDBState_SetGetDelete(t *testing.T) {
	var (
		req    = require.New(t)
		dbPath = t.TempDir() + "/ensreg_test_SetGet"
		topic  = "test_topic"
	)

	stg, err := state.NewLevelDBState(dbPath, topic)
	req.NoError(err)
	defer stg.Close()

	key := state.MakeCompositeKeyString(topic, "alice.eth")
	req.NoError(stg.Set(key, []byte("value")))

	value, err := stg.Get(key)
	req.NoError(err)
	req.Equal([]byte("value"), value)

	req.NoError(stg.Delete(key))
	value, err = stg.Get(key)
	req.NoError(err)
	req.Nil(value)

	// deleting a missing key is not an error
	req.NoError(stg.Delete(key))
}

func TestLevelDBState_Keys(t *testing.T) {
	var (
		req    = require.New(t)
		dbPath = t.TempDir() + "/ensreg_test_Keys"
	)

	stg, err := state.NewLevelDBState(dbPath, "topic")
	req.NoError(err)
	defer stg.Close()

	req.NoError(stg.Set("registrations_a.eth", []byte("1")))
	req.NoError(stg.Set("registrations_b.eth", []byte("2")))
	req.NoError(stg.Set("archived_registrations_c.eth", []byte("3")))

	keys, err := stg.Keys("registrations_")
	req.NoError(err)
	req.ElementsMatch([]string{"registrations_a.eth", "registrations_b.eth"}, keys)
}

func TestLevelDBState_Reset(t *testing.T) {
	var (
		req    = require.New(t)
		dbPath = "/tmp/ensreg_test_Reset"
		re     = regexp.MustCompile(dbPath + `_(?P<ts>\d+)`)
	)
	defer os.RemoveAll(dbPath)

	st, err := state.NewLevelDBState(dbPath, "test_topic")
	req.NoError(err)
	defer st.Close()

	req.NoError(st.Set("key", []byte("value")))

	timeBefore := time.Now().Unix()
	path, err := st.Reset("")
	timeAfter := time.Now().Unix()
	req.NoError(err)
	defer os.RemoveAll(path)

	submatches := re.FindStringSubmatch(path)
	req.Greater(len(submatches), 0)

	ts, err := strconv.Atoi(submatches[1])
	req.NoError(err)
	req.GreaterOrEqual(int64(ts), timeBefore)
	req.LessOrEqual(int64(ts), timeAfter)

	value, err := st.Get("key")
	req.NoError(err)
	req.Nil(value)
}
