package constants

import "time"

// Target site endpoints. Fixed; the tool is purpose-built for this site.
const (
	DefaultCheckinURL = "https://checkin.leaflow.net"
	DefaultMainSite   = "https://leaflow.net"
)

// Session constants. The header set impersonates a common desktop browser so
// responses match what the cookies were captured against.
const (
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/114.0.0.0 Safari/537.36"
	AcceptHeader     = "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,image/apng,*/*;q=0.8,application/signed-exchange;v=b3;q=0.7"
	AcceptLanguage   = "zh-CN,zh;q=0.9,en;q=0.8"
)

// Time and Duration Constants
const (
	DefaultRequestTimeout       = 30 * time.Second
	DefaultDelayBetweenAccounts = 3 * time.Second
)

// Auth probe defaults. Several pages are tried because a single page may not
// reflect login state under load or A/B variation.
var (
	DefaultProbePaths   = []string{"/dashboard", "/user", "/profile"}
	DefaultAuthKeywords = []string{"dashboard", "logout", "profile", "user"}
)

// Check-in detection defaults, matched case-insensitively against page text.
var (
	DefaultAlreadyCheckedInIndicators = []string{"already checked in", "今日已签到"}
	DefaultSuccessIndicators          = []string{"check-in successful", "checkin successful", "签到成功", "success", "已签到"}
)

// CheckinFormField is the single form field signaling the check-in action.
const CheckinFormField = "checkin"

// Reward extraction tuning. MaxUnitLength rejects false-positive unit tokens;
// the value is reverse-engineered from observed page text, not authoritative.
const DefaultMaxUnitLength = 9
