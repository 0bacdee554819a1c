package kuna

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"strconv"
	"sync/atomic"
	"time"
)

// apiPrefix is the path prefix the remote includes in the signed string.
const apiPrefix = "/v3/"

// sign computes HEX(HMAC-SHA384(apiPath + nonce + body, secret)), the
// signature scheme of Kuna API v3.
func sign(secret, path, nonce string, body []byte) string {
	mac := hmac.New(sha512.New384, []byte(secret))
	mac.Write([]byte(apiPrefix + path))
	mac.Write([]byte(nonce))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// nonceSource produces unix-millisecond nonces that are strictly
// increasing even when drawn concurrently, as the exchange rejects
// replayed or out-of-order nonces.
type nonceSource struct {
	last atomic.Int64
}

func (n *nonceSource) Next() string {
	for {
		now := time.Now().UnixMilli()
		prev := n.last.Load()
		if now <= prev {
			now = prev + 1
		}
		if n.last.CompareAndSwap(prev, now) {
			return strconv.FormatInt(now, 10)
		}
	}
}
