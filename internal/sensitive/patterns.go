package sensitive

import "regexp"

// directory names whose contents are treated as sensitive wholesale,
// matched case-insensitively against every path segment
var defaultDirNames = []string{
	".git", ".ssh", ".gnupg", ".aws", ".azure", ".gcloud", ".kube",
	".docker", ".password-store", "secrets", "secret", "credentials",
	"private", "confidential",
}

type namePattern struct {
	re   *regexp.Regexp
	desc string
}

// defaultNamePatterns is evaluated top to bottom against the base filename;
// the first match wins and its description becomes the verdict reason. The
// order is part of the contract: downstream reports key off the reason text.
var defaultNamePatterns = []namePattern{
	{regexp.MustCompile(`(?i)^\.env(\..+)?$`), "environment file"},
	{regexp.MustCompile(`(?i)\.env$`), "environment file"},
	{regexp.MustCompile(`(?i)^(credentials?|secrets?)(\.(json|ya?ml|toml|ini|cfg|conf|txt|xml))?$`), "credential or secret file"},
	{regexp.MustCompile(`(?i)(secret|credential)s?[-_.].*\.(json|ya?ml|toml|ini|cfg|conf|txt|xml)$`), "credential or secret file"},
	{regexp.MustCompile(`(?i)^id_(rsa|dsa|ecdsa|ed25519)$`), "SSH private key"},
	{regexp.MustCompile(`(?i)^(authorized_keys|known_hosts|ssh_config)$`), "SSH configuration file"},
	{regexp.MustCompile(`(?i)private.*key|.*key.*private`), "private key file"},
	{regexp.MustCompile(`(?i)^(\.netrc|\.npmrc|\.pypirc|\.git-credentials)$`), "registry or VCS credential file"},
	{regexp.MustCompile(`(?i)^(\.boto|\.s3cfg|gcloud\.json|service[-_]account.*\.json)$`), "cloud provider credential file"},
	{regexp.MustCompile(`(?i)^(\.pgpass|\.my\.cnf|\.dbshell)$`), "database credential file"},
	{regexp.MustCompile(`(?i)^database\.(ya?ml|json|toml|ini)$`), "database configuration file"},
	{regexp.MustCompile(`(?i)^\.htpasswd$`), "password file"},
	{regexp.MustCompile(`(?i)passw(or)?ds?.*\.(txt|csv|xlsx?|json)$`), "password file"},
	{regexp.MustCompile(`(?i)\.(bak|backup|old)$`), "backup file"},
	{regexp.MustCompile(`(?i)\.(dump|dmp)$|\.sql\.(gz|bz2|xz)$`), "database dump file"},
	{regexp.MustCompile(`(?i)(private|confidential)`), "file marked private or confidential"},
}

// extensions that imply key or certificate material regardless of name
var defaultExtensions = []string{
	".pem", ".key", ".p12", ".pfx", ".jks", ".keystore",
}
