package models

// RepositoryRef identifies a GitHub repository that passed validation.
// It is immutable once resolved.
type RepositoryRef struct {
	Owner string `json:"owner"`
	Name  string `json:"name"`
}

func (r *RepositoryRef) String() string {
	return r.Owner + "/" + r.Name
}
