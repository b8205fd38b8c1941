package blizzard

// Timezone is a realm timezone, mainly used to narrow realm searches.
// Values the API returns that are not listed here decode as-is.
type Timezone string

const (
	// TimezoneAmericaLosAngeles is the US West realm timezone.
	TimezoneAmericaLosAngeles Timezone = "America/Los_Angeles"
	// TimezoneAmericaNewYork is the US East realm timezone.
	TimezoneAmericaNewYork Timezone = "America/New_York"
)

// String returns the IANA name.
func (t Timezone) String() string {
	return string(t)
}
