package naming

import (
	"fmt"
	"regexp"
	"strings"

	"bindery/internal/aip"
	"bindery/internal/services"
)

// Resolved is the identity a naming policy derives from an AIP folder name.
type Resolved struct {
	Department aip.Department
	// Base is the identifier without the type suffix; the final AIP id is
	// always Base plus the type classification.
	Base  string
	Title string
	// RenameTo, when non-empty, is the canonical folder name the
	// restructure stage applies for this department's workflow.
	RenameTo string
}

// Policy parses one department's folder naming grammar. Adding a department
// means adding a Policy implementation, not new branches in the stages.
type Policy interface {
	Department() aip.Department
	// Matches reports whether the folder name carries this department's prefix.
	Matches(folder string) bool
	// Parse derives the identity, or a services.Divert when the name does
	// not satisfy the department's grammar.
	Parse(folder string) (Resolved, error)
}

var allPolicies = []Policy{
	russellPolicy{},
	hargrettPolicy{},
}

// Policies returns the policy variants enabled by the department allow-list.
func Policies(departments []string) []Policy {
	allowed := make(map[string]struct{}, len(departments))
	for _, dept := range departments {
		allowed[strings.ToLower(strings.TrimSpace(dept))] = struct{}{}
	}
	selected := make([]Policy, 0, len(allPolicies))
	for _, policy := range allPolicies {
		if _, ok := allowed[string(policy.Department())]; ok {
			selected = append(selected, policy)
		}
	}
	return selected
}

// Resolve finds the policy matching the folder's department prefix and parses
// the name. A folder matching no enabled department diverts to
// department_unknown.
func Resolve(folder string, policies []Policy) (Resolved, error) {
	for _, policy := range policies {
		if policy.Matches(folder) {
			return policy.Parse(folder)
		}
	}
	return Resolved{}, &services.Divert{
		Kind: aip.ErrDepartmentUnknown,
		Err:  fmt.Errorf("folder %q matches no configured department prefix", folder),
	}
}

// FinalID appends the type classification so media and metadata variants of
// the same identifier never collide.
func FinalID(base string, t aip.Type) string {
	return base + "_" + string(t)
}

// russellPolicy covers rbrl-prefixed folders. The folder name is taken whole
// as the identifier base; the title is deferred and falls back to the id in
// the metadata transform.
type russellPolicy struct{}

func (russellPolicy) Department() aip.Department { return aip.DepartmentRussell }

func (russellPolicy) Matches(folder string) bool {
	return strings.HasPrefix(strings.ToLower(folder), "rbrl")
}

func (russellPolicy) Parse(folder string) (Resolved, error) {
	return Resolved{
		Department: aip.DepartmentRussell,
		Base:       folder,
	}, nil
}

// hargrettPolicy covers har-prefixed folders, which use a compound grammar:
// an identifier, an underscore, and a free-text title. The folder is renamed
// to the bare identifier during restructuring.
type hargrettPolicy struct{}

var hargrettName = regexp.MustCompile(`^(har-ua[0-9]{2}-[0-9]{3})_(.+)$`)

func (hargrettPolicy) Department() aip.Department { return aip.DepartmentHargrett }

func (hargrettPolicy) Matches(folder string) bool {
	return strings.HasPrefix(strings.ToLower(folder), "har-")
}

func (hargrettPolicy) Parse(folder string) (Resolved, error) {
	match := hargrettName.FindStringSubmatch(folder)
	if match == nil {
		return Resolved{}, &services.Divert{
			Kind: aip.ErrFolderNameInvalid,
			Err:  fmt.Errorf("folder %q does not match identifier_title naming", folder),
		}
	}
	return Resolved{
		Department: aip.DepartmentHargrett,
		Base:       match[1],
		Title:      deriveTitle(match[2]),
		RenameTo:   match[1],
	}, nil
}

// DepartmentForArtifact maps a staged artifact filename to its owning
// department by identifying prefix. Manifest partitioning keys on this.
func DepartmentForArtifact(name string) (aip.Department, bool) {
	lowered := strings.ToLower(name)
	switch {
	case strings.HasPrefix(lowered, "rbrl"):
		return aip.DepartmentRussell, true
	case strings.HasPrefix(lowered, "har"):
		return aip.DepartmentHargrett, true
	default:
		return "", false
	}
}
