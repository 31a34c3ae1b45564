package repository

import (
	"sync"
	"testing"
	"time"

	"github.com/stpnv0/TravelBot/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestSessionStore_Get(t *testing.T) {
	store := NewSessionStore()

	sess := store.Get(1)

	assert.Equal(t, int64(1), sess.ChatID)
	assert.Equal(t, domain.StageIdle, sess.Stage)
	assert.Same(t, sess, store.Get(1))
	assert.NotSame(t, sess, store.Get(2))
}

func TestSessionStore_Reset(t *testing.T) {
	store := NewSessionStore()

	old := store.Get(1)
	old.Stage = domain.StageSelectingCity

	fresh := store.Reset(1)

	assert.NotSame(t, old, fresh)
	assert.Equal(t, domain.StageIdle, fresh.Stage)
	assert.Same(t, fresh, store.Get(1))
}

func TestSessionStore_Section(t *testing.T) {
	store := NewSessionStore()

	assert.Empty(t, store.Section(1))

	store.SetSection(1, "payment")
	assert.Equal(t, "payment", store.Section(1))

	// сброс сессии бронирования не трогает навигацию по разделам
	store.Reset(1)
	assert.Equal(t, "payment", store.Section(1))

	store.SetSection(1, "")
	assert.Empty(t, store.Section(1))
}

func TestSessionStore_SweepExpired(t *testing.T) {
	store := NewSessionStore()

	active := store.Get(1)
	active.Stage = domain.StageSelectingCity
	active.UpdatedAt = time.Now().UTC().Add(-time.Hour)

	recent := store.Get(2)
	recent.Stage = domain.StageSelectingCity
	recent.UpdatedAt = time.Now().UTC()

	idle := store.Get(3)
	idle.UpdatedAt = time.Now().UTC().Add(-time.Hour)

	expired := store.SweepExpired(30 * time.Minute)

	assert.Equal(t, []int64{1}, expired)
	assert.Equal(t, domain.StageIdle, store.Get(1).Stage)
	assert.Equal(t, domain.StageSelectingCity, store.Get(2).Stage)
	// неактивные сессии не считаются просроченными
	assert.Same(t, idle, store.Get(3))
}

func TestSessionStore_SweepExpired_SkipsHeldSession(t *testing.T) {
	store := NewSessionStore()

	sess := store.Get(1)
	sess.Stage = domain.StageSelectingCity
	sess.UpdatedAt = time.Now().UTC().Add(-time.Hour)

	// сессией владеет обработчик — подметание обязано её пропустить
	sess.Lock()
	assert.Empty(t, store.SweepExpired(30*time.Minute))
	assert.Same(t, sess, store.Get(1))
	sess.Unlock()

	assert.Equal(t, []int64{1}, store.SweepExpired(30*time.Minute))
	assert.NotSame(t, sess, store.Get(1))
}

func TestSessionStore_ConcurrentAccess(t *testing.T) {
	store := NewSessionStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(chatID int64) {
			defer wg.Done()
			store.Get(chatID)
			store.SetSection(chatID, "booking")
			store.Reset(chatID)
			store.SweepExpired(time.Minute)
		}(int64(i % 10))
	}
	wg.Wait()

	assert.Equal(t, 10, store.Len())
}
