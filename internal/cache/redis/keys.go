package redis

import (
	"fmt"

	"github.com/mcoot/golfhandicap/internal/model"
)

// Key prefix for all cached data
const keyPrefix = "golfhcp"

// playerKey returns the Redis key for a cached Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}
