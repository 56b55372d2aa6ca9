package workflow

type RefType string

const (
	RefTypeBranch RefType = "branch"
	RefTypeTag    RefType = "tag"
)

// Reference describes the git ref a workflow run checked out. Base and Head
// are only set for pull request events; Type is empty when the runner does
// not say.
type Reference struct {
	Base      string  `yaml:"base,omitempty"`
	Head      string  `yaml:"head,omitempty"`
	Full      string  `yaml:"full"`
	Short     string  `yaml:"short"`
	Type      RefType `yaml:"type,omitempty"`
	Protected bool    `yaml:"protected"`
}

// Reference reads GITHUB_REF and its companion variables. GITHUB_REF is
// required.
func (r *Reader) Reference() (Reference, error) {
	full, err := r.require("GITHUB_REF")
	if err != nil {
		return Reference{}, err
	}
	ref := Reference{Full: full}
	ref.Base, _ = r.lookup("GITHUB_BASE_REF")
	ref.Head, _ = r.lookup("GITHUB_HEAD_REF")
	ref.Short, _ = r.lookup("GITHUB_REF_NAME")

	if v, ok := r.lookup("GITHUB_REF_TYPE"); ok && v != "" {
		switch RefType(v) {
		case RefTypeBranch, RefTypeTag:
			ref.Type = RefType(v)
		default:
			return Reference{}, &EnumError{
				Key:     "GITHUB_REF_TYPE",
				Value:   v,
				Allowed: []string{string(RefTypeBranch), string(RefTypeTag)},
			}
		}
	}
	if v, ok := r.lookup("GITHUB_REF_PROTECTED"); ok && v != "" {
		if v != "true" && v != "false" {
			return Reference{}, &EnumError{
				Key:     "GITHUB_REF_PROTECTED",
				Value:   v,
				Allowed: []string{"true", "false"},
			}
		}
		ref.Protected = v == "true"
	}
	return ref, nil
}
