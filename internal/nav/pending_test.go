package nav

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestWaiterReturnsWhenActivationEnds(t *testing.T) {
	defer goleak.VerifyNone(t)

	r := New(WithClock(clockwork.NewFakeClock()))
	r.Navigate(AIProcessing)
	p := r.Pending()

	result := make(chan bool, 1)
	go func() {
		_, ok := p.Await(context.Background())
		result <- ok
	}()

	r.Navigate(Dashboard)
	select {
	case ok := <-result:
		require.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("waiter still blocked after the activation was cancelled")
	}
}

func TestWaiterReturnsOnContextCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	r := New(WithClock(clockwork.NewFakeClock()))
	defer r.Close()
	r.Navigate(AIProcessing)
	p := r.Pending()

	ctx, cancel := context.WithCancel(context.Background())
	result := make(chan bool, 1)
	go func() {
		_, ok := p.Await(ctx)
		result <- ok
	}()
	cancel()

	select {
	case ok := <-result:
		require.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("waiter ignored context cancellation")
	}
	require.Equal(t, AIProcessing, r.State().Screen)
}

func TestWaiterDeliversExactlyOneAdvance(t *testing.T) {
	defer goleak.VerifyNone(t)

	clock := clockwork.NewFakeClock()
	r := New(WithClock(clock))
	defer r.Close()
	r.Navigate(AIProcessing)
	p := r.Pending()

	result := make(chan Advance, 1)
	go func() {
		if adv, ok := p.Await(context.Background()); ok {
			result <- adv
		}
		close(result)
	}()

	clock.Advance(3 * time.Second)
	var got []Advance
	for adv := range result {
		got = append(got, adv)
	}
	require.Len(t, got, 1)
	require.Equal(t, p.Activation(), got[0].Activation)
	require.True(t, r.Apply(got[0]))
	require.False(t, r.Apply(got[0]), "a token completes its activation only once")
	require.Equal(t, AIResult, r.State().Screen)
}

func TestRealClockTimerIsReleased(t *testing.T) {
	defer goleak.VerifyNone(t)

	r := New(WithDelay(time.Hour))
	r.Navigate(AIProcessing)
	p := r.Pending()
	r.Navigate(Map)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_, ok := p.Await(ctx)
	require.False(t, ok)
}
