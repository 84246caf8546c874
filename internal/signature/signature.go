// Package signature implements the Razorpay payment-callback check:
// hex(HMAC-SHA256(key_secret, order_id + "|" + payment_id)).
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

func Expected(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify compares in constant time. Callers must not surface the
// expected value on mismatch.
func Verify(secret, orderID, paymentID, got string) bool {
	return hmac.Equal([]byte(Expected(secret, orderID, paymentID)), []byte(got))
}
