package urlfeat

// The serialized column order is an external, versioned contract with the
// trained classifier: it must match the training schema byte for byte,
// including the historical misspelling "Shortining_Service". The single
// table below is the only place that order is defined; Columns and Values
// are both derived from it.

type column struct {
	name  string
	value func(v *FeatureVector) int
}

var columns = [NumFeatures]column{
	{"url_len", func(v *FeatureVector) int { return v.URLLen }},
	{"@", func(v *FeatureVector) int { return v.AtCount }},
	{"?", func(v *FeatureVector) int { return v.QuestionCount }},
	{"-", func(v *FeatureVector) int { return v.HyphenCount }},
	{".", func(v *FeatureVector) int { return v.DotCount }},
	{"#", func(v *FeatureVector) int { return v.HashCount }},
	{"+", func(v *FeatureVector) int { return v.PlusCount }},
	{"$", func(v *FeatureVector) int { return v.DollarCount }},
	{"!", func(v *FeatureVector) int { return v.BangCount }},
	{"*", func(v *FeatureVector) int { return v.StarCount }},
	{",", func(v *FeatureVector) int { return v.CommaCount }},
	{"digits", func(v *FeatureVector) int { return v.DigitCount }},
	{"abnormal_url", func(v *FeatureVector) int { return v.AbnormalURL }},
	{"https", func(v *FeatureVector) int { return v.HTTPS }},
	{"Shortining_Service", func(v *FeatureVector) int { return v.ShorteningService }},
	{"having_ip_address", func(v *FeatureVector) int { return v.HasIPAddress }},
	{"web_ext_ratio", func(v *FeatureVector) int { return v.WebExtRatio }},
	{"web_unique_domains", func(v *FeatureVector) int { return v.WebUniqueDomains }},
	{"web_favicon", func(v *FeatureVector) int { return v.WebFavicon }},
	{"web_csp", func(v *FeatureVector) int { return v.WebCSP }},
	{"web_xframe", func(v *FeatureVector) int { return v.WebXFrame }},
	{"web_hsts", func(v *FeatureVector) int { return v.WebHSTS }},
	{"web_xcontent", func(v *FeatureVector) int { return v.WebXContent }},
	{"web_security_score", func(v *FeatureVector) int { return v.WebSecurityScore }},
	{"web_forms_count", func(v *FeatureVector) int { return v.WebFormsCount }},
	{"web_password_fields", func(v *FeatureVector) int { return v.WebPasswordFields }},
	{"web_hidden_inputs", func(v *FeatureVector) int { return v.WebHiddenInputs }},
	{"web_has_login", func(v *FeatureVector) int { return v.WebHasLogin }},
	{"web_ssl_valid", func(v *FeatureVector) int { return v.WebSSLValid }},
	{"phish_urgency_words", func(v *FeatureVector) int { return v.UrgencyWords }},
	{"phish_security_words", func(v *FeatureVector) int { return v.SecurityWords }},
	{"phish_brand_hijack", func(v *FeatureVector) int { return v.BrandHijack }},
	{"phish_long_path", func(v *FeatureVector) int { return v.LongPath }},
	{"phish_adv_exact_brand_match", func(v *FeatureVector) int { return v.ExactBrandMatch }},
	{"phish_adv_brand_in_subdomain", func(v *FeatureVector) int { return v.BrandInSubdomain }},
	{"phish_adv_brand_in_path", func(v *FeatureVector) int { return v.BrandInPath }},
	{"phish_adv_hyphen_count", func(v *FeatureVector) int { return v.DomainHyphenCount }},
	{"phish_adv_number_count", func(v *FeatureVector) int { return v.DomainDigitCount }},
	{"phish_adv_suspicious_tld", func(v *FeatureVector) int { return v.SuspiciousTLD }},
	{"phish_adv_long_domain", func(v *FeatureVector) int { return v.LongDomain }},
	{"phish_adv_many_subdomains", func(v *FeatureVector) int { return v.ManySubdomains }},
	{"phish_adv_encoded_chars", func(v *FeatureVector) int { return v.EncodedChars }},
	{"phish_adv_path_keywords", func(v *FeatureVector) int { return v.PathKeywords }},
	{"phish_adv_has_redirect", func(v *FeatureVector) int { return v.HasRedirect }},
	{"phish_adv_many_params", func(v *FeatureVector) int { return v.ManyParams }},
	{"path_has_hacked_terms", func(v *FeatureVector) int { return v.HackedTerms }},
	{"suspicious_extension", func(v *FeatureVector) int { return v.SuspiciousExtension }},
	{"path_underscore_count", func(v *FeatureVector) int { return v.PathUnderscoreCount }},
	{"is_gov_edu", func(v *FeatureVector) int { return v.GovEduTLD }},
}

// Columns returns the contractual column names in serialization order.
func Columns() [NumFeatures]string {
	var names [NumFeatures]string
	for i, c := range columns {
		names[i] = c.name
	}
	return names
}

// Values serializes the vector in the contractual column order.
func (v FeatureVector) Values() [NumFeatures]float64 {
	var out [NumFeatures]float64
	for i, c := range columns {
		out[i] = float64(c.value(&v))
	}
	return out
}
