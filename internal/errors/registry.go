package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

const docBase = "https://vango.dev/docs/approuter/errors/"

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Build Errors (R001-R099)
	// ============================================

	"R000": {
		Category: CategoryBuild,
		Message:  "Route table build failed",
		Detail:   "The route tree could not be compiled.",
		DocURL:   docBase + "R000",
	},
	"R001": {
		Category: CategoryBuild,
		Message:  "Ambiguous route",
		Detail:   "More than one file declares the page of the same directory. The directory is left out of the route table.",
		DocURL:   docBase + "R001",
	},
	"R002": {
		Category: CategoryBuild,
		Message:  "Duplicate parameter name",
		Detail:   "The same dynamic segment name appears twice in one route, so one value would shadow the other.",
		DocURL:   docBase + "R002",
	},
	"R003": {
		Category: CategoryBuild,
		Message:  "Duplicate route",
		Detail:   "Two directories produce the same URL pattern once organization folders are removed. The first one discovered is kept.",
		DocURL:   docBase + "R003",
	},
	"R004": {
		Category: CategoryBuild,
		Message:  "Invalid segment",
		Detail:   "A directory name has malformed brackets, an invalid parameter name, or a catch-all segment that is not last.",
		DocURL:   docBase + "R004",
	},

	// ============================================
	// Navigation Errors (R100-R199)
	// ============================================

	"R100": {
		Category: CategoryNavigation,
		Message:  "Page not found",
		Detail:   "No route matches the pathname. The not-found page is shown.",
		DocURL:   docBase + "R100",
	},
	"R101": {
		Category: CategoryNavigation,
		Message:  "Load failure",
		Detail:   "A page or layout failed to load. The previous page stays mounted.",
		DocURL:   docBase + "R101",
	},
	"R102": {
		Category: CategoryNavigation,
		Message:  "Missing implementation",
		Detail:   "A route file has no registered page or layout implementation.",
		DocURL:   docBase + "R102",
	},
	"R103": {
		Category: CategoryNavigation,
		Message:  "Cross-origin navigation",
		Detail:   "Programmatic navigation only accepts URLs on the configured origin.",
		DocURL:   docBase + "R103",
	},

	// ============================================
	// Config Errors (C001-C099)
	// ============================================

	"C001": {
		Category: CategoryConfig,
		Message:  "Config file unreadable",
		Detail:   "The configuration file exists but could not be read or parsed.",
		DocURL:   docBase + "C001",
	},
	"C002": {
		Category: CategoryConfig,
		Message:  "Invalid config value",
		Detail:   "A configuration value is out of range or malformed.",
		DocURL:   docBase + "C002",
	},
	"C003": {
		Category: CategoryConfig,
		Message:  "Conflicting route sources",
		Detail:   "Only one of an S3 bucket and a manifest file may be configured as the route source.",
		DocURL:   docBase + "C003",
	},
	"C004": {
		Category: CategoryConfig,
		Message:  "Route source unavailable",
		Detail:   "The route directory, manifest file or bucket could not be listed.",
		DocURL:   docBase + "C004",
	},

	// ============================================
	// Protocol Errors (P001-P099)
	// ============================================

	"P001": {
		Category: CategoryProtocol,
		Message:  "Invalid message",
		Detail:   "A preview client sent a frame that is not a valid JSON message.",
		DocURL:   docBase + "P001",
	},
	"P002": {
		Category: CategoryProtocol,
		Message:  "Unknown message type",
		Detail:   "A preview client sent a message type the server does not handle.",
		DocURL:   docBase + "P002",
	},
}

// GetAllCodes returns all registered error codes, sorted.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
