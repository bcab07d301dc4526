package ethos

import (
	"fmt"
	"strings"

	"github.com/tradeguild/ethos-p2p/pkg/models"
)

// CreateUserkey builds the canonical "{platform}:{username}" lookup key for
// a social identity. A single leading "@" is stripped from the username;
// case is preserved. Callers that cache or dedup by userkey rely on this
// being deterministic.
func CreateUserkey(platform models.Platform, username string) string {
	return fmt.Sprintf("%s:%s", platform, strings.TrimPrefix(username, "@"))
}
