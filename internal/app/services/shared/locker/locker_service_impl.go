package locker

import (
	"clinic-booking-service/internal/app/contracts"
	"clinic-booking-service/internal/pkg/constvars"
	"clinic-booking-service/internal/pkg/exceptions"
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	lockerServiceInstance contracts.LockerService
	onceLockerService     sync.Once
)

var errLockNotOwned = errors.New("lock is held by another owner")

// lockerService is a best effort mutual exclusion over redis SETNX. The lock
// value is a random token so only its owner can release it.
type lockerService struct {
	RedisRepository contracts.RedisRepository
	Log             *zap.Logger
}

func NewLockerService(redisRepository contracts.RedisRepository, logger *zap.Logger) contracts.LockerService {
	onceLockerService.Do(func() {
		lockerServiceInstance = &lockerService{
			RedisRepository: redisRepository,
			Log:             logger,
		}
	})
	return lockerServiceInstance
}

func (s *lockerService) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Info("lockerService.TryLock called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRedisKey, key),
		zap.Duration(constvars.LoggingLockExpirationTimeKey, expiration),
	)

	token := uuid.NewString()
	acquired, err := s.RedisRepository.TrySetNX(ctx, key, token, expiration)
	if err != nil {
		s.Log.Error("lockerService.TryLock error calling RedisRepository.TrySetNX",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return false, "", err
	}
	if !acquired {
		s.Log.Info("lockerService.TryLock lock is held",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
		)
		return false, "", nil
	}

	s.Log.Info("lockerService.TryLock acquired",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRedisKey, key),
		zap.String(constvars.LoggingLockValueKey, token),
	)
	return true, token, nil
}

// Unlock deletes key when it still holds token, in one atomic step on the
// redis side. An expired lock is not an error.
func (s *lockerService) Unlock(ctx context.Context, key, token string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Info("lockerService.Unlock called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRedisKey, key),
	)

	result, err := s.RedisRepository.DeleteIfEquals(ctx, key, token)
	if err != nil {
		s.Log.Error("lockerService.Unlock error calling RedisRepository.DeleteIfEquals",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}

	switch result {
	case constvars.RedisDeleteKeyMissing:
		s.Log.Info("lockerService.Unlock lock already expired",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
		)
		return nil
	case constvars.RedisDeleteValueChanged:
		s.Log.Warn("lockerService.Unlock lock ownership mismatch",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
			zap.String(constvars.LoggingLockExpectedValueKey, token),
		)
		return exceptions.ErrRedisUnlock(errLockNotOwned)
	}

	s.Log.Info("lockerService.Unlock succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRedisKey, key),
	)
	return nil
}
