// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package badger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/moodshelf/storage"
)

const (
	conflictBaseDelay = time.Millisecond
	conflictMaxDelay  = 32 * time.Millisecond
)

// retryOnConflict reruns operation for as long as it fails with
// badger.ErrConflict. The delay between attempts starts at baseDelay and
// doubles up to maxDelay, jittered so that colliding writers spread out.
// Once ctx ends the conflict is reported as storage.ErrTransactionFailed.
func retryOnConflict(ctx context.Context, logger *slog.Logger, operation func() error, baseDelay, maxDelay time.Duration) error {
	delay := baseDelay
	for attempt := 1; ; attempt++ {
		err := operation()
		if !errors.Is(err, badger.ErrConflict) {
			if err == nil && attempt > 1 {
				logger.Debug("transaction committed after retry", "attempt", attempt)
			}
			return err
		}

		logger.Debug("transaction conflict, will retry", "attempt", attempt, "delay", delay)

		timer := time.NewTimer(jitter(delay))
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("%w after %d attempts: %w", storage.ErrTransactionFailed, attempt, ctx.Err())
		case <-timer.C:
		}

		delay = min(delay*2, maxDelay)
	}
}

// jitter picks a duration in [d/2, d].
func jitter(d time.Duration) time.Duration {
	half := d / 2
	return half + rand.N(half+1)
}
