package detection

// InsecureServerConfiguration is forced onto any root that isn't served over
// https.
const InsecureServerConfiguration = "Insecure server configuration"

const secureScheme = "https://"

// catalog order feeds the seeded shuffles; reordering it changes every result.
var catalog = []string{
	"SQL injection vulnerability",
	"Remote File Inclusion (RFI) vulnerability",
	"Command Injection vulnerability",
	"Software and Data Integrity Failures vulnerability",
	"Server-Side Request Forgery (SSRF) vulnerability",
	"Cross-site scripting (XSS) vulnerability",
	"Broken Access Control vulnerability",
	"Insufficient Logging and Monitoring vulnerability",
	"Security Misconfiguration vulnerability",
	InsecureServerConfiguration,
	"Cryptographic Failure vulnerability",
	"Insecure Design vulnerability",
	"Identification and Authentication Failures vulnerability",
	"Local File Inclusion (LFI) vulnerability",
	"Directory Traversal vulnerability",
	"Open Redirect vulnerability",
	"HTTP Header Injection vulnerability",
	"Vulnerable and Outdated Components vulnerability",
}

var candidatePaths = []string{
	"/about", "/contact", "/login", "/admin", "/blog", "/products",
	"/services", "/faq", "/support", "/careers", "/news", "/events",
	"/gallery", "/team", "/partners", "/resources", "/downloads",
}

// Catalog returns a copy of the finding names in catalog order.
func Catalog() []string {
	out := make([]string, len(catalog))
	copy(out, catalog)
	return out
}

// CandidatePaths returns a copy of the paths discovery samples from.
func CandidatePaths() []string {
	out := make([]string, len(candidatePaths))
	copy(out, candidatePaths)
	return out
}
