package pool

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimerPool(t *testing.T) {
	assert := assert.New(t)

	t.Run("Get and Put", func(t *testing.T) {
		timer1 := GetTimer(10 * time.Millisecond)
		assert.NotNil(timer1)

		PutTimer(timer1)

		timer2 := GetTimer(20 * time.Millisecond)
		assert.NotNil(timer2)

		<-timer2.C // Wait for the timer to expire
		PutTimer(timer2)
	})

	t.Run("Reused timer fires with new duration", func(t *testing.T) {
		timer1 := GetTimer(1 * time.Hour)
		PutTimer(timer1)

		start := time.Now()
		timer2 := GetTimer(20 * time.Millisecond)
		<-timer2.C
		assert.Less(time.Since(start), 500*time.Millisecond)
		PutTimer(timer2)
	})

	t.Run("Put expired timer", func(t *testing.T) {
		timer := GetTimer(1 * time.Millisecond)
		time.Sleep(5 * time.Millisecond)
		// expired and unread; PutTimer must drain it
		PutTimer(timer)

		timer2 := GetTimer(10 * time.Millisecond)
		select {
		case <-timer2.C:
			t.Fatal("reused timer fired immediately")
		case <-time.After(2 * time.Millisecond):
		}
		PutTimer(timer2)
	})
}
