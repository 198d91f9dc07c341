package core

// Config is the process-wide configuration the decision and
// composition layers observe. It is passed by value at construction
// time and never mutated by the core.
type Config struct {
	FQDN string `yaml:"fqdn" json:"fqdn"`

	// SecureRBAC disables the legacy ownership fallback for image
	// mutations when true.
	SecureRBAC bool `yaml:"enforceSecureRbac" json:"enforceSecureRbac"`

	// PropertyProtectionFile names the yaml rule file for the
	// property redaction layer. Empty disables redaction.
	PropertyProtectionFile string `yaml:"propertyProtectionFile" json:"propertyProtectionFile"`

	// RuleDocumentURL overrides the embedded rule document. The
	// enforcer fetches and caches it when set.
	RuleDocumentURL string `yaml:"ruleDocumentUrl" json:"ruleDocumentUrl"`

	// Casbin backend selection. When both paths are set the gateway
	// is wired with the casbin enforcer instead of the rule document
	// evaluator.
	CasbinModelFile  string `yaml:"casbinModelFile" json:"casbinModelFile"`
	CasbinPolicyFile string `yaml:"casbinPolicyFile" json:"casbinPolicyFile"`
}
