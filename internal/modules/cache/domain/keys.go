package domain

const (
	KeyDomainProgress = "domain_progress"
	KeyTimeSpent      = "time_spent"
	KeyLastUpdated    = "last_time_update"
	KeyActivityReport = "activity_30_day_report"
)

// AllKeys lists every key Clear removes for a user.
var AllKeys = []string{KeyDomainProgress, KeyTimeSpent, KeyLastUpdated, KeyActivityReport}

// ScopedKey namespaces key under userID so one device can hold several accounts.
func ScopedKey(userID, key string) string {
	return userID + ":" + key
}
