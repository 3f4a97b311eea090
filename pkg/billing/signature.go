package billing

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
)

// NotificationSignature computes SHA512(order_id + status_code + gross_amount + server_key).
func NotificationSignature(orderId, statusCode, grossAmount, serverKey string) string {
	sum := sha512.Sum512([]byte(orderId + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(sum[:])
}

func VerifyNotificationSignature(orderId, statusCode, grossAmount, serverKey, signature string) bool {
	if serverKey == "" || signature == "" {
		return false
	}
	expected := NotificationSignature(orderId, statusCode, grossAmount, serverKey)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) == 1
}
