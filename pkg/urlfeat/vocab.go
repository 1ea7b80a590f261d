package urlfeat

// Fixed vocabularies scanned during feature extraction. These lists are part
// of the trained classifier's contract: changing them shifts feature values
// and silently degrades predictions, so they are frozen here.

var urgencyWords = []string{
	"urgent", "verify", "update", "confirm", "suspended", "expire",
}

var securityWords = []string{
	"secure", "account", "login", "signin", "bank", "payment",
}

var brandNames = []string{
	"paypal", "amazon", "apple", "microsoft", "google", "facebook", "netflix",
}

var shortenerDomains = []string{
	"bit.ly", "tinyurl", "goo.gl", "t.co", "ow.ly", "is.gd", "buff.ly",
}

var suspiciousTLDs = []string{
	".tk", ".ml", ".ga", ".cf", ".gq", ".xyz", ".top",
}

var pathKeywords = []string{
	"login", "signin", "verify", "account", "update", "secure",
}

var hackedTerms = []string{
	"hacked", "leaked", "cracked", "wp-admin", "wp-content",
}

var suspiciousExtensions = []string{
	".exe", ".zip", ".apk", ".dmg",
}
