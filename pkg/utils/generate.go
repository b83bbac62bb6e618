package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	mrand "math/rand"
	"time"

	"github.com/google/uuid"
)

// ==================== UUID ====================

func GenerateUUID() uuid.UUID {
	return uuid.New()
}

func ParseUUID(uuidStr string) (uuid.UUID, error) {
	return uuid.Parse(uuidStr)
}

// ==================== REFERENCE CODE ====================

// GenerateReferenceCode creates a human-readable booking reference.
// Format: HPB-YYYYMMDD-HHMMSS-RANDOM
func GenerateReferenceCode() string {
	now := time.Now()
	datePart := now.Format("20060102")
	timePart := now.Format("150405")
	randomPart := fmt.Sprintf("%04d", mrand.Intn(10000))

	return fmt.Sprintf("HPB-%s-%s-%s", datePart, timePart, randomPart)
}

// ==================== SHARE TOKEN ====================

// GenerateShareToken returns an unguessable opaque token used for
// group/occasion share links.
func GenerateShareToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
