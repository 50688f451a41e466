// Copyright (c) 2026 Millearnia. All rights reserved.
// Author: steph2pro@millearnia.dev

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/steph2pro/millearnia/internal/platform/apperr"
	"github.com/steph2pro/millearnia/internal/platform/constants"
)

// # Refresh Token Repository

// RedisRefreshTokenRepository implements RefreshTokenRepository on a Redis SET
// per user.
//
// # Atomicity
//
// Redis executes each Lua script as a single indivisible step, which gives
// per-key (and therefore per-user) serialization without any client-side
// locking. Concurrent Rotate calls presenting the same old token are ordered
// by the server: the first script run removes the member, every later run
// observes an empty membership check and returns 0.
type RedisRefreshTokenRepository struct {
	client *redis.Client
}

// NewRefreshTokenRepository creates a new Redis-backed RefreshTokenRepository.
func NewRefreshTokenRepository(client *redis.Client) *RedisRefreshTokenRepository {
	return &RedisRefreshTokenRepository{client: client}
}

// replaceScript empties the user's set and installs the new token as its sole
// member. KEYS[1]=set key, ARGV[1]=token, ARGV[2]=ttl millis.
var replaceScript = redis.NewScript(`
	redis.call('DEL', KEYS[1])
	redis.call('SADD', KEYS[1], ARGV[1])
	redis.call('PEXPIRE', KEYS[1], ARGV[2])
	return 1
`)

// rotateScript swaps the old token for the new one only if the old token is a
// current member. KEYS[1]=set key, ARGV[1]=old, ARGV[2]=new, ARGV[3]=ttl millis.
var rotateScript = redis.NewScript(`
	if redis.call('SISMEMBER', KEYS[1], ARGV[1]) == 0 then
		return 0
	end
	redis.call('SREM', KEYS[1], ARGV[1])
	redis.call('SADD', KEYS[1], ARGV[2])
	redis.call('PEXPIRE', KEYS[1], ARGV[3])
	return 1
`)

/*
Replace discards every stored token for the user and installs the new token.

Description: Implements single-active-session login semantics — the set holds
exactly one member after this call.

Parameters:
  - context: context.Context
  - userID: string
  - token: string
  - ttl: time.Duration

Returns:
  - error: Script execution failures
*/
func (repository *RedisRefreshTokenRepository) Replace(context context.Context, userID, token string, ttl time.Duration) error {
	key := refreshSetKey(userID)

	if err := replaceScript.Run(context, repository.client, []string{key}, token, ttl.Milliseconds()).Err(); err != nil {
		return fmt.Errorf("redis_refresh_repo_replace_failed: %w", err)
	}

	return nil
}

/*
Rotate atomically swaps oldToken for newToken in the user's set.

Description: Membership check and swap run as one Lua script, so concurrent
rotations of the same token produce exactly one winner.

Parameters:
  - context: context.Context
  - userID: string
  - oldToken: string
  - newToken: string
  - ttl: time.Duration

Returns:
  - bool: Whether the rotation won (oldToken was present)
  - error: Script execution failures
*/
func (repository *RedisRefreshTokenRepository) Rotate(context context.Context, userID, oldToken, newToken string, ttl time.Duration) (bool, error) {
	key := refreshSetKey(userID)

	result, err := rotateScript.Run(context, repository.client, []string{key}, oldToken, newToken, ttl.Milliseconds()).Int()
	if err != nil {
		return false, fmt.Errorf("redis_refresh_repo_rotate_failed: %w", err)
	}

	return result == 1, nil
}

/*
Remove deletes a single token from the user's set.

Parameters:
  - context: context.Context
  - userID: string
  - token: string

Returns:
  - error: Execution failures
*/
func (repository *RedisRefreshTokenRepository) Remove(context context.Context, userID, token string) error {
	if err := repository.client.SRem(context, refreshSetKey(userID), token).Err(); err != nil {
		return fmt.Errorf("redis_refresh_repo_remove_failed: %w", err)
	}
	return nil
}

/*
Clear empties the user's refresh-token set, revoking every session.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Execution failures
*/
func (repository *RedisRefreshTokenRepository) Clear(context context.Context, userID string) error {
	if err := repository.client.Del(context, refreshSetKey(userID)).Err(); err != nil {
		return fmt.Errorf("redis_refresh_repo_clear_failed: %w", err)
	}
	return nil
}

// refreshSetKey builds the Redis key of a user's refresh-token set.
func refreshSetKey(userID string) string {
	return constants.RedisPrefixRefreshSet + userID
}

// # OTP Repository

// RedisOTPRepository implements OTPRepository using volatile Redis keys.
//
// # Keying
//
// Codes live under the owning user's ID, never under the code itself: a
// 4-digit code is far too small a namespace to act as a global key, and the
// per-user key makes a re-requested code overwrite the previous one.
type RedisOTPRepository struct {
	client *redis.Client
}

// NewOTPRepository creates a new Redis-backed OTPRepository.
func NewOTPRepository(client *redis.Client) *RedisOTPRepository {
	return &RedisOTPRepository{client: client}
}

/*
Set stores the user's current OTP code with a TTL, replacing any prior code.

Parameters:
  - context: context.Context
  - userID: string
  - code: string
  - ttl: time.Duration

Returns:
  - error: Execution errors
*/
func (repository *RedisOTPRepository) Set(context context.Context, userID string, code string, ttl time.Duration) error {
	key := constants.RedisPrefixOTP + userID

	if err := repository.client.Set(context, key, code, ttl).Err(); err != nil {
		return fmt.Errorf("redis_otp_set_failed: %w", err)
	}

	return nil
}

/*
Get retrieves the OTP code currently issued to the user.

Description: Returns apperr.NotFound if no code is live for the user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - string: Code
  - error: apperr.NotFound or connectivity errors
*/
func (repository *RedisOTPRepository) Get(context context.Context, userID string) (string, error) {
	key := constants.RedisPrefixOTP + userID

	code, err := repository.client.Get(context, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.NotFound("Verification code")
		}
		return "", fmt.Errorf("redis_otp_get_failed: %w", err)
	}

	return code, nil
}

/*
Delete removes the user's OTP code from Redis.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Deletion failures
*/
func (repository *RedisOTPRepository) Delete(context context.Context, userID string) error {
	key := constants.RedisPrefixOTP + userID

	if err := repository.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_otp_delete_failed: %w", err)
	}

	return nil
}

// # Reset Token Repository

// RedisResetTokenRepository implements ResetTokenRepository using Redis.
type RedisResetTokenRepository struct {
	client *redis.Client
}

// NewResetTokenRepository creates a new Redis-backed ResetTokenRepository.
func NewResetTokenRepository(client *redis.Client) *RedisResetTokenRepository {
	return &RedisResetTokenRepository{client: client}
}

/*
Set stores a reset token with its associated userID and TTL.

Parameters:
  - context: context.Context
  - token: string
  - userID: string
  - ttl: time.Duration

Returns:
  - error: Execution errors
*/
func (repository *RedisResetTokenRepository) Set(context context.Context, token string, userID string, ttl time.Duration) error {
	key := constants.RedisPrefixResetToken + token

	if err := repository.client.Set(context, key, userID, ttl).Err(); err != nil {
		return fmt.Errorf("redis_reset_token_set_failed: %w", err)
	}

	return nil
}

/*
Get retrieves the userID for a given reset token.

Description: Returns apperr.NotFound if the token is absent or expired.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - string: Original UserID
  - error: apperr.NotFound or connectivity errors
*/
func (repository *RedisResetTokenRepository) Get(context context.Context, token string) (string, error) {
	key := constants.RedisPrefixResetToken + token

	userID, err := repository.client.Get(context, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.NotFound("Reset token")
		}
		return "", fmt.Errorf("redis_reset_token_get_failed: %w", err)
	}

	return userID, nil
}

/*
Delete removes the reset token from Redis.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - error: Deletion failures
*/
func (repository *RedisResetTokenRepository) Delete(context context.Context, token string) error {
	key := constants.RedisPrefixResetToken + token

	if err := repository.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_reset_token_delete_failed: %w", err)
	}

	return nil
}
