package enums

import "fmt"

// SnapshotStatus maps to the snapshot_status_enum enum in Postgres.
type SnapshotStatus string

const (
	SnapshotStatusPending SnapshotStatus = "pending"
	SnapshotStatusSuccess SnapshotStatus = "success"
	SnapshotStatusError   SnapshotStatus = "error"
	SnapshotStatusPartial SnapshotStatus = "partial"
)

var validSnapshotStatuses = []SnapshotStatus{
	SnapshotStatusPending,
	SnapshotStatusSuccess,
	SnapshotStatusError,
	SnapshotStatusPartial,
}

// IsValid reports whether the value matches the canonical snapshot status enum.
func (s SnapshotStatus) IsValid() bool {
	for _, candidate := range validSnapshotStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSnapshotStatus converts raw input into SnapshotStatus.
func ParseSnapshotStatus(value string) (SnapshotStatus, error) {
	for _, candidate := range validSnapshotStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid snapshot status %q", value)
}
