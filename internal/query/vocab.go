package query

// domainContext is appended to every enriched query.
const domainContext = "Vuetify Vue.js component library"

// intentOrder fixes the scoring iteration order. Ties resolve to the earliest
// entry, so this ordering is part of the analyzer contract.
var intentOrder = []Intent{
	IntentAPIReference,
	IntentCodeExample,
	IntentStyling,
	IntentComponentUsage,
	IntentComparison,
	IntentTroubleshooting,
	IntentBestPractices,
	IntentIntegration,
}

var intentKeywords = map[Intent][]string{
	IntentAPIReference: {
		"props", "properties", "attributes", "api", "options",
		"parameters", "configuration", "methods", "events",
	},
	IntentCodeExample: {
		"example", "sample", "demo", "code", "implementation",
		"tutorial", "walkthrough", "snippet",
	},
	IntentStyling: {
		"style", "css", "color", "theme", "appearance", "design",
		"layout", "spacing", "margin", "padding", "elevation",
		"rounded", "variant", "size",
	},
	IntentComponentUsage: {
		"how to", "use", "create", "make", "build", "setup",
		"configure", "implement", "add",
	},
	IntentComparison: {
		"vs", "versus", "difference", "compare", "comparison",
		"between", "alternative", "instead",
	},
	IntentTroubleshooting: {
		"not working", "broken", "error", "issue", "problem",
		"fix", "debug", "troubleshoot", "help",
	},
	IntentBestPractices: {
		"best practice", "recommended", "accessibility", "a11y",
		"performance", "optimization", "should", "guidelines",
	},
	IntentIntegration: {
		"router", "vuex", "pinia", "typescript", "nuxt",
		"integration", "with", "using",
	},
}

// vocabulary is the fixed Vuetify domain vocabulary, scanned in this order.
var vocabulary = []struct {
	category string
	words    []string
}{
	{"colors", []string{"primary", "secondary", "accent", "error", "info",
		"success", "warning", "surface"}},
	{"variants", []string{"elevated", "flat", "tonal", "outlined", "text", "plain"}},
	{"sizes", []string{"x-small", "small", "default", "large", "x-large"}},
	{"density", []string{"default", "comfortable", "compact"}},
	{"themes", []string{"light", "dark", "theme"}},
	{"layout", []string{"container", "row", "col", "spacer", "flex"}},
	{"navigation", []string{"drawer", "tabs", "breadcrumbs", "stepper"}},
	{"input", []string{"validation", "rules", "required", "email"}},
	{"data", []string{"table", "list", "iterator", "pagination", "sorting"}},
}

// contentTypeByIntent maps intents to store content-type filters. Only these
// four intents suggest a filter; the rest search across all content types.
var contentTypeByIntent = map[Intent]string{
	IntentAPIReference:   "api_reference",
	IntentCodeExample:    "code_example",
	IntentComponentUsage: "usage_guide",
	IntentStyling:        "documentation",
}

// intentContext is the intent-specific keyword phrase appended to enriched
// queries.
var intentContext = map[Intent]string{
	IntentAPIReference:    "props methods events API documentation",
	IntentCodeExample:     "code examples implementation tutorial",
	IntentStyling:         "CSS styling themes colors appearance",
	IntentComponentUsage:  "usage guide how-to tutorial",
	IntentTroubleshooting: "troubleshooting debugging solutions",
	IntentBestPractices:   "best practices recommendations guidelines",
}
