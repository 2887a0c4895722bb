package usecase

import (
	"fmt"
	"math/rand/v2"
	"time"
)

const orderNumberAttempts = 5

// NumberGenerator produces human-readable order numbers.
type NumberGenerator func(now time.Time) string

// DateCodedNumber renders ORD<yyyymmdd><4 random digits>.
func DateCodedNumber(now time.Time) string {
	return fmt.Sprintf("ORD%s%04d", now.Format("20060102"), rand.IntN(10000))
}
