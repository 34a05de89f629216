package draft

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdk/SBM-ReservationService/internal/domain"
)

const testTTL = 30 * time.Minute

func sampleDraft() *domain.Draft {
	return &domain.Draft{
		Token:      "b41c0d1e-9d3f-4a6e-8af1-2c7d5e901234",
		MenuID:     42,
		ResourceID: 7,
		Slot: domain.SlotSnapshot{
			SlotID:             "slot-1030",
			StartAt:            time.Date(2026, 3, 10, 10, 30, 0, 0, time.UTC),
			EndAt:              time.Date(2026, 3, 10, 11, 30, 0, 0, time.UTC),
			ServiceEndAt:       time.Date(2026, 3, 10, 11, 15, 0, 0, time.UTC),
			AssignableStaffIDs: []int64{7, 9},
		},
		IsStaffPreferred: true,
		Owner:            domain.DraftOwner{UserID: 100},
		Timezone:         "Europe/Moscow",
		CreatedAt:        time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
	}
}

func TestStore_Put(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := NewStore(client, testTTL)

	draft := sampleDraft()
	payload, err := json.Marshal(draft)
	require.NoError(t, err)

	mock.ExpectSet("sbm:draft:"+draft.Token, payload, testTTL).SetVal("OK")

	err = store.Put(context.Background(), draft)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Get(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := NewStore(client, testTTL)

	draft := sampleDraft()
	payload, err := json.Marshal(draft)
	require.NoError(t, err)

	mock.ExpectGet("sbm:draft:" + draft.Token).SetVal(string(payload))

	got, err := store.Get(context.Background(), draft.Token)
	require.NoError(t, err)
	assert.Equal(t, draft.MenuID, got.MenuID)
	assert.Equal(t, draft.ResourceID, got.ResourceID)
	assert.Equal(t, draft.Slot.SlotID, got.Slot.SlotID)
	assert.True(t, draft.Slot.StartAt.Equal(got.Slot.StartAt))
	assert.Equal(t, draft.Owner, got.Owner)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Get_NotFound(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := NewStore(client, testTTL)

	mock.ExpectGet("sbm:draft:missing").RedisNil()

	got, err := store.Get(context.Background(), "missing")
	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrDraftNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Update_KeepsTTL(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := NewStore(client, testTTL)

	draft := sampleDraft()
	draft.Owner = domain.DraftOwner{Key: "guest-abc"}
	payload, err := json.Marshal(draft)
	require.NoError(t, err)

	mock.ExpectSetXX("sbm:draft:"+draft.Token, payload, redis.KeepTTL).SetVal(true)

	err = store.Update(context.Background(), draft)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Update_Expired(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := NewStore(client, testTTL)

	draft := sampleDraft()
	payload, err := json.Marshal(draft)
	require.NoError(t, err)

	mock.ExpectSetXX("sbm:draft:"+draft.Token, payload, redis.KeepTTL).SetVal(false)

	err = store.Update(context.Background(), draft)
	assert.ErrorIs(t, err, ErrDraftNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Delete(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := NewStore(client, testTTL)

	mock.ExpectDel("sbm:draft:token-1").SetVal(1)

	err := store.Delete(context.Background(), "token-1")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Delete_NotFound(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := NewStore(client, testTTL)

	mock.ExpectDel("sbm:draft:gone").SetVal(0)

	err := store.Delete(context.Background(), "gone")
	assert.ErrorIs(t, err, ErrDraftNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
