package utils

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGoSafe_RecoversPanic(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)
	GoSafe(func() {
		defer wg.Done()
		panic("boom")
	})
	wg.Wait()
}

func TestRecover(t *testing.T) {
	assert.NoError(t, Recover(nil))

	base := errors.New("bad input")
	err := Recover(base)
	assert.ErrorIs(t, err, base)
	assert.Equal(t, "panic: bad input", err.Error())

	assert.Equal(t, "panic: 42", Recover(42).Error())
}

func TestDates(t *testing.T) {
	assert.Equal(t, "05/03/2024 09:07", PrettyDate(time.Date(2024, 3, 5, 9, 7, 0, 0, time.UTC)))
	assert.Equal(t, time.UTC, TimeNowIn("Not/AZone").Location())
}
