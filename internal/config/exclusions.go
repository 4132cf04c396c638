package config

// DefaultExcludeDomains returns domains that carry no browsing signal and
// would otherwise crowd the chart: ad-tech redirectors, tracking endpoints,
// and link-shortener hops recorded by the browser on the way to the real
// destination. A listed domain covers all of its subdomains.
func DefaultExcludeDomains() []string {
	return []string{
		// Ad-tech redirectors
		"doubleclick.net",
		"googleadservices.com",
		"googlesyndication.com",
		"ad.atdmt.com",

		// Tracking endpoints
		"google-analytics.com",
		"analytics.google.com",

		// Link-shortener hops
		"t.co",
		"bit.ly",
		"goo.gl",
		"lnkd.in",
		"l.facebook.com",
		"out.reddit.com",
	}
}
