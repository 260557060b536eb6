package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GeneratePlanID creates a short, human-readable identifier for a computed plan.
// Format: plan-{firstTargetItem}-{8charHexUUID}
//
// Example:
//   - Input: firstTarget="iron_plate"
//   - Output: "plan-iron_plate-a3f8e2b1"
//
// An empty target yields "plan-{8charHexUUID}".
func GeneratePlanID(firstTarget string) string {
	shortUUID := generateShortUUID()
	target := strings.TrimSpace(firstTarget)
	if target == "" {
		return "plan-" + shortUUID
	}
	return "plan-" + target + "-" + shortUUID
}

// generateShortUUID creates an 8-character hex string from a UUID.
func generateShortUUID() string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "")[:8]
}
