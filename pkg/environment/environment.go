// Package environment tags the running deployment so ambient decisions
// (cookie security attributes, error verbosity) can branch on it without
// scattering string comparisons.
package environment

// Environment is the deployment tier the process runs in.
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Production  Environment = "production"
)

// IsProduction treats both "production" and "prod" as production so a
// shortened env var does not silently downgrade security attributes.
func (e Environment) IsProduction() bool {
	return e == Production || e == "prod"
}

func (e Environment) IsDevelopment() bool {
	return e == Development || e == "dev" || e == ""
}

func (e Environment) IsStaging() bool {
	return e == Staging || e == "stage"
}
