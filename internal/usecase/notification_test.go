package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/polkiloo/qrorder/internal/domain/model"
	testhelpers "github.com/polkiloo/qrorder/internal/test"
)

func seedNotification(store *testhelpers.MemoryStore) model.Notification {
	n := model.Notification{
		ID:      uuid.New(),
		OrderID: uuid.New(),
		Type:    model.NotificationOrderConfirmed,
		Title:   confirmedTitle,
		Message: confirmedMessage,
	}
	store.NotificationRows = append(store.NotificationRows, n)
	return n
}

func TestNotificationUseCaseDeliver(t *testing.T) {
	store := testhelpers.NewMemoryStore()
	n := seedNotification(store)
	publisher := &testhelpers.PublisherStub{}
	uc := NewNotificationUseCase(store.Notifications(), publisher, testhelpers.DiscardLogger())

	claimed, err := uc.Claim(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, claimed, 1)

	require.NoError(t, uc.Deliver(context.Background(), claimed[0]))
	require.Equal(t, []uuid.UUID{n.ID}, publisher.Published())
	require.NotNil(t, store.NotificationsOf(n.OrderID)[0].DeliveredAt)

	claimed, err = uc.Claim(context.Background(), 10)
	require.NoError(t, err)
	require.Empty(t, claimed)
}

func TestNotificationUseCasePublishFailureKeepsRowPending(t *testing.T) {
	store := testhelpers.NewMemoryStore()
	n := seedNotification(store)
	publisher := &testhelpers.PublisherStub{Err: errors.New("broker down")}
	uc := NewNotificationUseCase(store.Notifications(), publisher, testhelpers.DiscardLogger())

	require.Error(t, uc.Deliver(context.Background(), n))
	require.Nil(t, store.NotificationsOf(n.OrderID)[0].DeliveredAt)
	require.Zero(t, store.CallCount("Notifications.MarkDelivered"))
}

func TestNotificationUseCaseMarkFailure(t *testing.T) {
	store := testhelpers.NewMemoryStore()
	n := seedNotification(store)
	store.FailOn["Notifications.MarkDelivered"] = errors.New("db down")
	uc := NewNotificationUseCase(store.Notifications(), &testhelpers.PublisherStub{}, testhelpers.DiscardLogger())

	err := uc.Deliver(context.Background(), n)
	require.Error(t, err)
	require.Contains(t, err.Error(), "db down")
}
