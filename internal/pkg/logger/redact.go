package logger

import "strings"

// RedactEmail masks a lead's email address before it reaches a log sink.
// The domain part stays visible so delivery problems can still be traced to a
// mailbox provider. Local parts of two characters or fewer are masked fully.
//
//	jane.doe@acme.com -> ja***@acme.com
//	jd@acme.com       -> ***@acme.com
func RedactEmail(email string) string {
	local, domainPart, ok := strings.Cut(email, "@")
	if !ok || strings.Contains(domainPart, "@") {
		return "***@***"
	}
	if len(local) <= 2 {
		return "***@" + domainPart
	}
	return local[:2] + "***@" + domainPart
}
