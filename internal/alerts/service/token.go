package service

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Unsubscribe tokens are opaque but not secret-bearing: the alert id is a
// random UUID, so possession of the token implies receipt of the email
// that carried it.

func UnsubscribeToken(alertID uuid.UUID) string {
	raw := fmt.Sprintf("%s:%d", alertID, time.Now().Unix())
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

func VerifyUnsubscribeToken(token string) (uuid.UUID, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return uuid.Nil, fmt.Errorf("decode token: %w", err)
	}

	idPart, _, found := strings.Cut(string(raw), ":")
	if !found {
		return uuid.Nil, fmt.Errorf("malformed token")
	}

	alertID, err := uuid.Parse(idPart)
	if err != nil {
		return uuid.Nil, fmt.Errorf("malformed token: %w", err)
	}
	return alertID, nil
}
